package userRoutes

import (
	"barhop/controllers/userControllers"
	"barhop/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App) {
	meGroup := app.Group("/me", middleware.JWTMiddleware)
	meGroup.Get("/stats", userControllers.MyStats)
	meGroup.Get("/top-bars", userControllers.MyTopBars)
	meGroup.Get("/checkins", userControllers.MyCheckins)

	app.Get("/users/search", middleware.JWTMiddleware, userControllers.SearchUsers)
	app.Post("/profiles", middleware.JWTMiddleware, userControllers.UpdateProfile)
}
