package checkinControllers

import (
	"barhop/database"
	"barhop/models"
	"barhop/utils"
	checkinValidators "barhop/validators/checkin"
	"encoding/json"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func intPtr(v int) *int { return &v }

// CreateCheckin persists a full check-in record: the rating vector, the
// situational context, optional AI review provenance, and JSON snapshots of
// both for forward compatibility.
func CreateCheckin(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	reqData := c.Locals("validatedCheckin").(*checkinValidators.CreateCheckinRequest)

	db := database.Database.Db

	var bar models.Bar
	if err := db.Where("id = ?", reqData.BarID).First(&bar).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Bar not found"})
	}

	ratingsJSON, _ := json.Marshal(reqData.Ratings)
	contextJSON, _ := json.Marshal(reqData.Context)

	checkin := models.Checkin{
		UserID:      userId,
		BarID:       bar.ID,
		BeerName:    reqData.BeerName,
		Description: reqData.Description,
		AIReview:    reqData.AIReview,
		AIModel:     reqData.AIModel,

		Taste:       intPtr(reqData.Ratings["taste"]),
		Bitterness:  intPtr(reqData.Ratings["bitterness"]),
		Aroma:       intPtr(reqData.Ratings["aroma"]),
		Smoothness:  intPtr(reqData.Ratings["smoothness"]),
		Carbonation: intPtr(reqData.Ratings["carbonation"]),
		Temperature: intPtr(reqData.Ratings["temperature"]),
		Music:       intPtr(reqData.Ratings["music"]),
		Lighting:    intPtr(reqData.Ratings["lighting"]),
		CrowdVibe:   intPtr(reqData.Ratings["crowd_vibe"]),
		Cleanliness: intPtr(reqData.Ratings["cleanliness"]),
		Decor:       intPtr(reqData.Ratings["decor"]),

		Overall: reqData.Overall,

		DayOfWeek:    reqData.Context.DayOfWeek,
		GroupSize:    reqData.Context.GroupSize,
		CompanyType:  reqData.Context.CompanyType,
		BeersAlready: reqData.Context.BeersAlready,

		RatingsJSON: ratingsJSON,
		ContextJSON: contextJSON,

		ShareToken: uuid.NewString(),
	}

	if err := db.Create(&checkin).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	// Best-effort aggregate refresh; the scheduler will catch up otherwise
	if err := utils.RefreshBarAggregate(bar.ID); err != nil {
		log.Printf("Aggregate refresh after check-in failed: %v", err)
	}

	return c.JSON(fiber.Map{"id": checkin.ID})
}

// GetCheckin returns one check-in with its bar.
func GetCheckin(c *fiber.Ctx) error {
	checkinId := c.Params("id")

	db := database.Database.Db

	var checkin models.Checkin
	if err := db.Preload("Bar").Where("id = ?", checkinId).First(&checkin).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	}

	return c.JSON(fiber.Map{"checkin": fiber.Map{
		"id":            checkin.ID,
		"user_id":       checkin.UserID,
		"created_at":    checkin.CreatedAt,
		"beer_name":     checkin.BeerName,
		"description":   checkin.Description,
		"ai_review":     checkin.AIReview,
		"ai_model":      checkin.AIModel,
		"taste":         checkin.Taste,
		"bitterness":    checkin.Bitterness,
		"aroma":         checkin.Aroma,
		"smoothness":    checkin.Smoothness,
		"carbonation":   checkin.Carbonation,
		"temperature":   checkin.Temperature,
		"music":         checkin.Music,
		"lighting":      checkin.Lighting,
		"crowd_vibe":    checkin.CrowdVibe,
		"cleanliness":   checkin.Cleanliness,
		"decor":         checkin.Decor,
		"day_of_week":   checkin.DayOfWeek,
		"group_size":    checkin.GroupSize,
		"company_type":  checkin.CompanyType,
		"beers_already": checkin.BeersAlready,
		"overall":       checkin.Overall,
		"image_paths":   checkin.ImagePaths,
		"bar": fiber.Map{
			"id":      checkin.Bar.ID,
			"name":    checkin.Bar.Name,
			"address": checkin.Bar.Address,
			"lat":     checkin.Bar.Lat,
			"lng":     checkin.Bar.Lng,
		},
	}})
}

// DeleteCheckin removes a check-in; only its owner may delete it.
func DeleteCheckin(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	checkinId := c.Params("id")

	db := database.Database.Db

	var checkin models.Checkin
	if err := db.Where("id = ?", checkinId).First(&checkin).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	}
	if checkin.UserID != userId {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	if err := db.Delete(&checkin).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := utils.RefreshBarAggregate(checkin.BarID); err != nil {
		log.Printf("Aggregate refresh after delete failed: %v", err)
	}

	return c.JSON(fiber.Map{"ok": true})
}

// UpdateCheckinImages replaces a check-in's attached image path list.
// Only the owner may modify it; everything else on the record is immutable.
func UpdateCheckinImages(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	checkinId := c.Params("id")
	reqData := c.Locals("validatedImages").(*checkinValidators.UpdateImagesRequest)

	db := database.Database.Db

	var checkin models.Checkin
	if err := db.Where("id = ?", checkinId).First(&checkin).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	}
	if checkin.UserID != userId {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	paths, _ := json.Marshal(reqData.ImagePaths)
	if err := db.Model(&checkin).Update("image_paths", paths).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"ok": true})
}
