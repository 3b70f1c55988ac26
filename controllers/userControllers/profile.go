package userControllers

import (
	"barhop/database"
	"barhop/models"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// SearchUsers finds users by username substring, excluding the requester.
// Queries shorter than two characters return an empty set.
func SearchUsers(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	q := strings.TrimSpace(c.Query("q"))
	if len(q) < 2 {
		return c.JSON(fiber.Map{"users": []fiber.Map{}})
	}

	db := database.Database.Db

	var users []models.User
	if err := db.Where("LOWER(username) LIKE LOWER(?) AND id <> ? AND is_deleted = false",
		"%"+q+"%", userId).
		Limit(20).
		Find(&users).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	out := make([]fiber.Map, 0, len(users))
	for _, u := range users {
		out = append(out, fiber.Map{"user_id": u.ID, "username": u.Username})
	}
	return c.JSON(fiber.Map{"users": out})
}

// UpdateProfile sets the requester's username.
func UpdateProfile(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	reqData := new(struct {
		Username string `json:"username"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	reqData.Username = strings.TrimSpace(reqData.Username)
	if reqData.Username == "" || len(reqData.Username) > 80 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid username"})
	}

	db := database.Database.Db

	var existing models.User
	if err := db.Where("username = ? AND id <> ?", reqData.Username, userId).
		First(&existing).Error; err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Username is already taken"})
	}

	if err := db.Model(&models.User{}).
		Where("id = ?", userId).
		Update("username", reqData.Username).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"ok": true, "user_id": userId})
}
