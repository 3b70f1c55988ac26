package friendRoutes

import (
	"barhop/controllers/friendControllers"
	"barhop/middleware"
	friendValidators "barhop/validators/friend"

	"github.com/gofiber/fiber/v2"
)

func SetupFriendRoutes(app *fiber.App) {
	friendGroup := app.Group("/friends", middleware.JWTMiddleware)

	friendGroup.Post("/request", friendValidators.Request(), friendControllers.SendRequest)
	friendGroup.Post("/respond", friendValidators.Respond(), friendControllers.RespondRequest)
	friendGroup.Get("/list", friendControllers.ListFriends)
	friendGroup.Get("/activity", friendControllers.FriendsActivity)

	communityGroup := app.Group("/community", middleware.JWTMiddleware)
	communityGroup.Get("/activity", friendControllers.CommunityActivity)
}
