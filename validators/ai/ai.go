package aiValidators

import (
	"barhop/middleware"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ContextPayload mirrors the situational context captured at check-in time.
type ContextPayload struct {
	DayOfWeek    int    `json:"day_of_week"`
	GroupSize    int    `json:"group_size"`
	CompanyType  string `json:"company_type"`
	BeersAlready int    `json:"beers_already"`
}

type CategorizeRequest struct {
	Description string         `json:"description"`
	Context     ContextPayload `json:"context"`
	BeerName    string         `json:"beer_name"`
}

// validateContext checks the shared context bounds. Used by the categorize
// and check-in validators.
func validateContext(ctx ContextPayload, errors map[string]string) {
	if ctx.DayOfWeek < 0 || ctx.DayOfWeek > 6 {
		errors["context.day_of_week"] = "day_of_week must be between 0 and 6!"
	}
	if ctx.GroupSize < 1 || ctx.GroupSize > 50 {
		errors["context.group_size"] = "group_size must be between 1 and 50!"
	}
	if ctx.BeersAlready < 0 || ctx.BeersAlready > 20 {
		errors["context.beers_already"] = "beers_already must be between 0 and 20!"
	}
}

// ValidateContext is the exported form for other validator packages.
func ValidateContext(ctx ContextPayload, errors map[string]string) {
	validateContext(ctx, errors)
}

func Categorize() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CategorizeRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Description = strings.TrimSpace(reqData.Description)
		if len(reqData.Description) < 3 {
			errors["description"] = "Description must be at least 3 characters long!"
		}

		validateContext(reqData.Context, errors)

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCategorize", reqData)
		return c.Next()
	}
}
