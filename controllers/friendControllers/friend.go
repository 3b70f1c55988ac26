package friendControllers

import (
	"barhop/database"
	"barhop/models"
	"barhop/ratelimit"
	friendValidators "barhop/validators/friend"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// friendIDsFor resolves the accepted friend set for a user, either side of
// the edge.
func friendIDsFor(userId uint) ([]uint, error) {
	db := database.Database.Db

	var edges []models.FriendEdge
	if err := db.Where("(user_id = ? OR friend_id = ?) AND status = ?",
		userId, userId, models.FriendAccepted).Find(&edges).Error; err != nil {
		return nil, err
	}

	seen := make(map[uint]bool)
	ids := make([]uint, 0, len(edges))
	for _, e := range edges {
		other := e.FriendID
		if e.FriendID == userId {
			other = e.UserID
		}
		if !seen[other] {
			seen[other] = true
			ids = append(ids, other)
		}
	}
	return ids, nil
}

// SendRequest creates a pending friend edge. An existing edge in either
// direction is returned as-is rather than duplicated.
func SendRequest(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	reqData := c.Locals("validatedFriendRequest").(*friendValidators.RequestBody)

	if reqData.ToUser == userId {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot friend yourself"})
	}

	limit := ratelimit.Check(fmt.Sprintf("friend-req:%d", userId))
	if !limit.Success {
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "Rate limited"})
	}

	db := database.Database.Db

	var target models.User
	if err := db.Where("id = ? AND is_deleted = false", reqData.ToUser).First(&target).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	var existing models.FriendEdge
	err := db.Where("(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)",
		userId, reqData.ToUser, reqData.ToUser, userId).First(&existing).Error
	if err == nil {
		return c.JSON(fiber.Map{"id": existing.ID, "status": existing.Status})
	}

	edge := models.FriendEdge{UserID: userId, FriendID: reqData.ToUser, Status: models.FriendPending}
	if err := db.Create(&edge).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": edge.ID})
}

// RespondRequest accepts, rejects or blocks a friend request. Only a
// participant of the edge may respond; rejecting a pending request deletes it.
func RespondRequest(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	reqData := c.Locals("validatedFriendRespond").(*friendValidators.RespondBody)

	limit := ratelimit.Check(fmt.Sprintf("friend-resp:%d", userId))
	if !limit.Success {
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "Rate limited"})
	}

	db := database.Database.Db

	var edge models.FriendEdge
	if err := db.Where("id = ?", reqData.RequestID).First(&edge).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if edge.UserID != userId && edge.FriendID != userId {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	switch reqData.Action {
	case "accept":
		edge.Status = models.FriendAccepted
	case "block":
		edge.Status = models.FriendBlocked
	case "reject":
		if edge.Status == models.FriendPending {
			if err := db.Delete(&edge).Error; err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
			}
			return c.JSON(fiber.Map{"status": "rejected"})
		}
		return c.JSON(fiber.Map{"status": edge.Status})
	}

	if err := db.Save(&edge).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": edge.Status})
}

// ListFriends returns the requester's accepted friends with usernames and
// friendship start times.
func ListFriends(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	db := database.Database.Db

	var edges []models.FriendEdge
	if err := db.Where("(user_id = ? OR friend_id = ?) AND status = ?",
		userId, userId, models.FriendAccepted).Find(&edges).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if len(edges) == 0 {
		return c.JSON(fiber.Map{"friends": []fiber.Map{}})
	}

	sinceByID := make(map[uint]interface{})
	ids := make([]uint, 0, len(edges))
	for _, e := range edges {
		other := e.FriendID
		if e.FriendID == userId {
			other = e.UserID
		}
		if _, ok := sinceByID[other]; !ok {
			sinceByID[other] = e.CreatedAt
			ids = append(ids, other)
		}
	}

	var users []models.User
	if err := db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	nameByID := make(map[uint]string, len(users))
	for _, u := range users {
		nameByID[u.ID] = u.Username
	}

	friends := make([]fiber.Map, 0, len(ids))
	for _, id := range ids {
		friends = append(friends, fiber.Map{
			"user_id":  id,
			"username": nameByID[id],
			"since":    sinceByID[id],
		})
	}
	return c.JSON(fiber.Map{"friends": friends})
}
