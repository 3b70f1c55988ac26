package barRoutes

import (
	"barhop/controllers/barControllers"

	"github.com/gofiber/fiber/v2"
)

func SetupBarRoutes(app *fiber.App) {
	barGroup := app.Group("/bars")

	barGroup.Get("/nearby", barControllers.NearbyBars)
	barGroup.Get("/:id", barControllers.GetBar)
	barGroup.Get("/:id/summary", barControllers.BarSummary)
	barGroup.Get("/:id/details", barControllers.BarDetails)
	barGroup.Get("/:id/photos", barControllers.BarPhotos)
}
