package aiControllers

import (
	"barhop/ratelimit"
	"barhop/utils"
	"barhop/validators/ai"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Categorize converts a free-text check-in description plus context into an
// eleven-dimension rating vector, an overall score and a short review.
// Internal failures degrade to a neutral vector; the endpoint itself always
// answers 200 so rating submission is never blocked by AI unavailability.
func Categorize(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	reqData := c.Locals("validatedCategorize").(*aiValidators.CategorizeRequest)

	limit := ratelimit.Check(fmt.Sprintf("ai:%d", userId))
	if !limit.Success {
		retryAfter := int(time.Until(limit.Reset).Seconds())
		if retryAfter < 0 {
			retryAfter = 0
		}
		c.Set("Retry-After", fmt.Sprintf("%d", retryAfter))
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"error": "Rate limit exceeded (30/hour). Try later.",
			"reset": limit.Reset.UnixMilli(),
		})
	}

	ctx := utils.RatingContext{
		DayOfWeek:    reqData.Context.DayOfWeek,
		GroupSize:    reqData.Context.GroupSize,
		CompanyType:  reqData.Context.CompanyType,
		BeersAlready: reqData.Context.BeersAlready,
	}

	raw, model, err := utils.InferRatings(reqData.Description, ctx, reqData.BeerName)
	if err != nil {
		log.Printf("[ai] inference degraded for user %d: %v", userId, err)
		result := NeutralResult(err.Error())
		return c.JSON(fiber.Map{
			"ratings":   result.Ratings,
			"overall":   result.Overall,
			"ai_review": result.Review,
			"ai_model":  "",
			"error":     result.Reason,
		})
	}

	result := BuildResult(raw, ctx)
	return c.JSON(fiber.Map{
		"ratings":   result.Ratings,
		"overall":   result.Overall,
		"ai_review": result.Review,
		"ai_model":  model,
	})
}
