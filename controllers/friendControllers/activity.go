package friendControllers

import (
	"barhop/database"
	"barhop/models"
	"time"

	"github.com/gofiber/fiber/v2"
)

// likeInfo is the per-check-in like decoration for activity feeds.
type likeInfo struct {
	count int64
	liked bool
}

// likesFor aggregates like counts for a set of check-ins, marking the ones
// the requester liked.
func likesFor(checkinIDs []uint, userId uint) map[uint]likeInfo {
	out := make(map[uint]likeInfo, len(checkinIDs))
	if len(checkinIDs) == 0 {
		return out
	}

	db := database.Database.Db

	var likes []models.CheckinLike
	if err := db.Where("checkin_id IN ?", checkinIDs).Find(&likes).Error; err != nil {
		return out
	}

	for _, l := range likes {
		info := out[l.CheckinID]
		info.count++
		if l.UserID == userId {
			info.liked = true
		}
		out[l.CheckinID] = info
	}
	return out
}

// activityItems shapes check-in rows into feed items with like decoration.
func activityItems(rows []models.Checkin, userId uint) []fiber.Map {
	ids := make([]uint, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	likes := likesFor(ids, userId)

	items := make([]fiber.Map, 0, len(rows))
	for _, r := range rows {
		username := r.User.Username
		if username == "" {
			username = "Unknown"
		}
		items = append(items, fiber.Map{
			"checkin": fiber.Map{
				"id":         r.ID,
				"beer_name":  r.BeerName,
				"overall":    r.Overall,
				"created_at": r.CreatedAt,
			},
			"bar":         fiber.Map{"id": r.BarID, "name": r.Bar.Name},
			"user":        fiber.Map{"id": r.UserID, "username": username},
			"likes_count": likes[r.ID].count,
			"liked_by_me": likes[r.ID].liked,
		})
	}
	return items
}

// feedQuery loads recent check-ins with bar and user joins, honoring an
// optional `since` cursor (strictly older than).
func feedQuery(userIDs []uint, limit int, since string) ([]models.Checkin, error) {
	db := database.Database.Db

	q := db.Preload("Bar").Preload("User").
		Order("created_at DESC").
		Limit(limit)
	if userIDs != nil {
		q = q.Where("user_id IN ?", userIDs)
	}
	if since != "" {
		if ts, err := time.Parse(time.RFC3339, since); err == nil {
			q = q.Where("created_at < ?", ts)
		}
	}

	var rows []models.Checkin
	err := q.Find(&rows).Error
	return rows, err
}

// FriendsActivity returns recent check-ins by the requester's accepted
// friends, newest first.
func FriendsActivity(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	limit := c.QueryInt("limit", 20)
	if limit > 50 {
		limit = 50
	}
	since := c.Query("since")

	friendIDs, err := friendIDsFor(userId)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if len(friendIDs) == 0 {
		return c.JSON(fiber.Map{"items": []fiber.Map{}})
	}

	rows, err := feedQuery(friendIDs, limit, since)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"items": activityItems(rows, userId)})
}

// CommunityActivity returns the global recent check-in feed.
func CommunityActivity(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	limit := c.QueryInt("limit", 50)
	if limit > 100 {
		limit = 100
	}
	since := c.Query("since")

	rows, err := feedQuery(nil, limit, since)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"items": activityItems(rows, userId)})
}
