package checkinValidators

import (
	"barhop/middleware"
	aiValidators "barhop/validators/ai"

	"github.com/gofiber/fiber/v2"
)

type CreateCheckinRequest struct {
	BarID       uint                        `json:"bar_id"`
	BeerName    string                      `json:"beer_name"`
	Description string                      `json:"description"`
	Ratings     map[string]int              `json:"ratings"`
	Context     aiValidators.ContextPayload `json:"context"`
	Overall     *int                        `json:"overall"`
	AIReview    string                      `json:"ai_review"`
	AIModel     string                      `json:"ai_model"`
}

// ratingKeys are the eleven dimensions a check-in must rate.
var ratingKeys = []string{
	"taste", "bitterness", "aroma", "smoothness", "carbonation", "temperature",
	"music", "lighting", "crowd_vibe", "cleanliness", "decor",
}

func Create() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateCheckinRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.BarID == 0 {
			errors["bar_id"] = "bar_id is required!"
		}

		if reqData.Ratings == nil {
			errors["ratings"] = "ratings are required!"
		} else {
			for _, k := range ratingKeys {
				v, ok := reqData.Ratings[k]
				if !ok {
					errors["ratings."+k] = k + " rating is required!"
					continue
				}
				if v < 0 || v > 10 {
					errors["ratings."+k] = k + " rating must be between 0 and 10!"
				}
			}
		}

		aiValidators.ValidateContext(reqData.Context, errors)

		if reqData.Overall != nil && (*reqData.Overall < 0 || *reqData.Overall > 10) {
			errors["overall"] = "overall must be between 0 and 10!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCheckin", reqData)
		return c.Next()
	}
}

type UpdateImagesRequest struct {
	ImagePaths []string `json:"image_paths"`
}

func UpdateImages() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateImagesRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.ImagePaths == nil {
			errors["image_paths"] = "image_paths is required!"
		} else if len(reqData.ImagePaths) > 6 {
			errors["image_paths"] = "A check-in can carry at most 6 images!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedImages", reqData)
		return c.Next()
	}
}

type LikeRequest struct {
	CheckinID uint `json:"checkin_id"`
}

func Like() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(LikeRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.CheckinID == 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"checkin_id": "checkin_id is required!",
			})
		}

		c.Locals("validatedLike", reqData)
		return c.Next()
	}
}
