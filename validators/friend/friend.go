package friendValidators

import (
	"barhop/middleware"

	"github.com/gofiber/fiber/v2"
)

type RequestBody struct {
	ToUser uint `json:"to_user"`
}

func Request() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(RequestBody)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.ToUser == 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"to_user": "to_user is required!",
			})
		}

		c.Locals("validatedFriendRequest", reqData)
		return c.Next()
	}
}

type RespondBody struct {
	RequestID uint   `json:"request_id"`
	Action    string `json:"action"` // accept, reject, block
}

func Respond() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(RespondBody)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.RequestID == 0 {
			errors["request_id"] = "request_id is required!"
		}

		valid := map[string]bool{"accept": true, "reject": true, "block": true}
		if !valid[reqData.Action] {
			errors["action"] = "Invalid action! Allowed: accept, reject, block"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedFriendRespond", reqData)
		return c.Next()
	}
}
