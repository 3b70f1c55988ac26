package aiRoutes

import (
	"barhop/controllers/aiControllers"
	"barhop/middleware"
	aiValidators "barhop/validators/ai"

	"github.com/gofiber/fiber/v2"
)

func SetupAIRoutes(app *fiber.App) {
	aiGroup := app.Group("/ai")

	aiGroup.Post("/categorize", middleware.JWTMiddleware, aiValidators.Categorize(), aiControllers.Categorize)
}
