package barControllers

import (
	"barhop/database"
	"barhop/models"
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

// summaryFreshness is how long a cached venue summary stays valid.
const summaryFreshness = 7 * 24 * time.Hour

// summaryWindow bounds how many recent check-ins feed a recomputation.
const summaryWindow = 50

// SummaryFresh reports whether a cached summary computed at the given time
// is still within the freshness window.
func SummaryFresh(updatedAt *time.Time, now time.Time) bool {
	return updatedAt != nil && now.Sub(*updatedAt) < summaryFreshness
}

// BarSummary returns the cached community summary for a bar, recomputing it
// lazily from the 50 most recent check-ins when absent or older than 7 days.
func BarSummary(c *fiber.Ctx) error {
	barId := c.Params("id")

	db := database.Database.Db

	var bar models.Bar
	if err := db.Where("id = ?", barId).First(&bar).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	// Fresh cache: return stored values verbatim, no check-in read
	if bar.AISummary != "" && SummaryFresh(bar.SummaryUpdatedAt, time.Now()) {
		scores := map[string]float64{}
		if len(bar.AggregateScores) > 0 {
			if err := json.Unmarshal(bar.AggregateScores, &scores); err != nil {
				scores = map[string]float64{}
			}
		}
		return c.JSON(fiber.Map{
			"summary":          bar.AISummary,
			"cached":           true,
			"aggregate_scores": scores,
		})
	}

	var checkins []models.Checkin
	err := db.Where("bar_id = ?", bar.ID).
		Order("created_at DESC").
		Limit(summaryWindow).
		Find(&checkins).Error
	if err != nil || len(checkins) == 0 {
		return c.JSON(fiber.Map{
			"summary":          InsufficientDataSummary,
			"cached":           false,
			"aggregate_scores": map[string]float64{},
		})
	}

	scores := ComputeAggregates(checkins)
	summary := ComposeSummary(scores)

	// Persist the refreshed cache; last writer wins between concurrent
	// recomputations, which is fine for a display cache.
	scoresJSON, _ := json.Marshal(scores)
	now := time.Now()
	if err := db.Model(&bar).Updates(map[string]interface{}{
		"ai_summary":         summary,
		"summary_updated_at": now,
		"aggregate_scores":   scoresJSON,
	}).Error; err != nil {
		log.Printf("Failed to cache summary for bar %d: %v", bar.ID, err)
	}

	return c.JSON(fiber.Map{
		"summary":          summary,
		"cached":           false,
		"aggregate_scores": scores,
	})
}
