package checkinControllers

import (
	"barhop/database"
	"barhop/models"
	"barhop/ratelimit"
	checkinValidators "barhop/validators/checkin"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm/clause"
)

// LikeCheckin records a like. Inserting an already-liked check-in is a
// no-op, so the endpoint is idempotent.
func LikeCheckin(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	reqData := c.Locals("validatedLike").(*checkinValidators.LikeRequest)

	limit := ratelimit.Check(fmt.Sprintf("like:%d", userId))
	if !limit.Success {
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "Rate limited"})
	}

	db := database.Database.Db

	like := models.CheckinLike{CheckinID: reqData.CheckinID, UserID: userId}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// UnlikeCheckin removes the requester's like from a check-in.
func UnlikeCheckin(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	checkinId := c.QueryInt("checkin_id", 0)
	if checkinId == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing checkin_id"})
	}

	db := database.Database.Db

	if err := db.Unscoped().
		Where("checkin_id = ? AND user_id = ?", checkinId, userId).
		Delete(&models.CheckinLike{}).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
