package checkinRoutes

import (
	"barhop/controllers/checkinControllers"
	"barhop/middleware"
	checkinValidators "barhop/validators/checkin"

	"github.com/gofiber/fiber/v2"
)

func SetupCheckinRoutes(app *fiber.App) {
	checkinGroup := app.Group("/checkins")

	checkinGroup.Post("/", middleware.JWTMiddleware, checkinValidators.Create(), checkinControllers.CreateCheckin)
	checkinGroup.Post("/like", middleware.JWTMiddleware, checkinValidators.Like(), checkinControllers.LikeCheckin)
	checkinGroup.Delete("/like", middleware.JWTMiddleware, checkinControllers.UnlikeCheckin)
	checkinGroup.Get("/:id", checkinControllers.GetCheckin)
	checkinGroup.Put("/:id", middleware.JWTMiddleware, checkinValidators.UpdateImages(), checkinControllers.UpdateCheckinImages)
	checkinGroup.Delete("/:id", middleware.JWTMiddleware, checkinControllers.DeleteCheckin)
}
