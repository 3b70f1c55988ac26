package barControllers

import (
	"barhop/config"
	"barhop/database"
	"barhop/middleware"
	"barhop/models"
	"barhop/utils"
	"encoding/json"
	"log"
	"sort"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm/clause"
)

// NearbyBars looks up bars around a coordinate via Mapbox category search,
// upserts them into the local store and returns them with any known
// aggregates. Falls back to mock bars so the map never renders empty.
func NearbyBars(c *fiber.Ctx) error {
	lat := c.QueryFloat("lat", 9999)
	lng := c.QueryFloat("lng", 9999)
	limit := c.QueryInt("limit", 20)
	mock := c.Query("mock") == "1"

	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "lat/lng required"})
	}

	if mock || config.AppConfig.MapboxToken == "" {
		bars := utils.GenerateMockBars(lat, lng, 8)
		return c.JSON(fiber.Map{"bars": bars, "aggregates": []models.BarAggregate{}, "mock": true})
	}

	rows := utils.SearchNearbyBars(lat, lng, limit)
	if len(rows) == 0 {
		log.Println("[nearby] no real bars found; returning mock fallback")
		bars := utils.GenerateMockBars(lat, lng, 6)
		return c.JSON(fiber.Map{"bars": bars, "aggregates": []models.BarAggregate{}, "mock": true})
	}

	db := database.Database.Db

	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "provider"}, {Name: "provider_place_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "address", "lat", "lng", "updated_at"}),
	}).Create(&rows).Error; err != nil {
		log.Printf("[nearby] upsert error: %v", err)
		// Return unsaved rows so the map can still render
		return c.JSON(fiber.Map{"bars": rows, "aggregates": []models.BarAggregate{}, "warn": "db-upsert-failed"})
	}

	ids := make([]uint, 0, len(rows))
	for _, b := range rows {
		ids = append(ids, b.ID)
	}

	var aggregates []models.BarAggregate
	if err := db.Where("bar_id IN ?", ids).Find(&aggregates).Error; err != nil {
		log.Printf("[nearby] aggregates error: %v", err)
	}

	return c.JSON(fiber.Map{"bars": rows, "aggregates": aggregates})
}

// GetBar returns one bar with its rolling aggregate, if any.
func GetBar(c *fiber.Ctx) error {
	barId := c.Params("id")

	db := database.Database.Db

	var bar models.Bar
	if err := db.Where("id = ?", barId).First(&bar).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	}

	var agg models.BarAggregate
	var aggregates interface{}
	if err := db.Where("bar_id = ?", bar.ID).First(&agg).Error; err == nil {
		aggregates = agg
	}

	return c.JSON(fiber.Map{"bar": bar, "aggregates": aggregates})
}

// BarDetails returns the requester's history at a bar (when authenticated)
// plus a limited community slice.
func BarDetails(c *fiber.Ctx) error {
	barId := c.Params("id")

	db := database.Database.Db

	myCheckins := []fiber.Map{}
	myTop := []fiber.Map{}
	var myLastVisit interface{}

	if userId, ok := middleware.OptionalUserID(c); ok {
		var rows []models.Checkin
		if err := db.Where("user_id = ? AND bar_id = ?", userId, barId).
			Order("created_at DESC").
			Limit(50).
			Find(&rows).Error; err == nil {
			for _, r := range rows {
				myCheckins = append(myCheckins, fiber.Map{
					"id":         r.ID,
					"beer_name":  r.BeerName,
					"overall":    r.Overall,
					"ai_review":  r.AIReview,
					"created_at": r.CreatedAt,
				})
			}
			if len(rows) > 0 {
				myLastVisit = rows[0].CreatedAt
			}

			sorted := make([]models.Checkin, len(rows))
			copy(sorted, rows)
			sort.SliceStable(sorted, func(i, j int) bool {
				return derefOr(sorted[i].Overall, 0) > derefOr(sorted[j].Overall, 0)
			})
			for i, r := range sorted {
				if i == 3 {
					break
				}
				myTop = append(myTop, fiber.Map{
					"id":         r.ID,
					"beer_name":  r.BeerName,
					"overall":    r.Overall,
					"ai_review":  r.AIReview,
					"created_at": r.CreatedAt,
				})
			}
		}
	}

	// Community slice: limited columns only
	community := []fiber.Map{}
	var communityRows []models.Checkin
	if err := db.Preload("User").
		Where("bar_id = ?", barId).
		Order("created_at DESC").
		Limit(10).
		Find(&communityRows).Error; err == nil {
		for _, r := range communityRows {
			community = append(community, fiber.Map{
				"id":         r.ID,
				"beer_name":  r.BeerName,
				"overall":    r.Overall,
				"ai_review":  r.AIReview,
				"created_at": r.CreatedAt,
				"username":   r.User.Username,
			})
		}
	}

	return c.JSON(fiber.Map{
		"my_checkins":   myCheckins,
		"my_top":        myTop,
		"my_last_visit": myLastVisit,
		"community":     community,
	})
}

// BarPhotos flattens recent check-in photo attachments for a bar, capped at
// 12 images across the 20 newest photo-carrying check-ins.
func BarPhotos(c *fiber.Ctx) error {
	barId := c.Params("id")

	db := database.Database.Db

	var rows []models.Checkin
	if err := db.Preload("User").
		Where("bar_id = ? AND image_paths IS NOT NULL", barId).
		Order("created_at DESC").
		Limit(20).
		Find(&rows).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	photos := []fiber.Map{}
	for _, r := range rows {
		if len(r.ImagePaths) == 0 {
			continue
		}
		var paths []string
		if err := json.Unmarshal(r.ImagePaths, &paths); err != nil {
			continue
		}
		for _, p := range paths {
			photos = append(photos, fiber.Map{
				"image_path":  p,
				"checkin_id":  r.ID,
				"username":    r.User.Username,
				"uploaded_at": r.CreatedAt,
			})
		}
	}

	if len(photos) > 12 {
		photos = photos[:12]
	}
	return c.JSON(fiber.Map{"photos": photos})
}

func derefOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}
