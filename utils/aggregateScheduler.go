package utils

import (
	"barhop/database"
	"barhop/models"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm/clause"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[AGG-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// RefreshBarAggregate recomputes the running check-in count and average
// overall for one bar. Called best-effort after check-in writes.
func RefreshBarAggregate(barID uint) error {
	db := database.Database.Db

	var row struct {
		CheckinCount int64
		AvgOverall   float64
	}
	if err := db.Model(&models.Checkin{}).
		Select("COUNT(*) AS checkin_count, COALESCE(AVG(overall), 0) AS avg_overall").
		Where("bar_id = ? AND deleted_at IS NULL", barID).
		Scan(&row).Error; err != nil {
		return err
	}

	agg := models.BarAggregate{
		BarID:        barID,
		CheckinCount: row.CheckinCount,
		AvgOverall:   row.AvgOverall,
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "bar_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"checkin_count", "avg_overall", "updated_at"}),
	}).Create(&agg).Error
}

// refreshAllBarAggregates walks every bar that has check-ins and refreshes
// its aggregate row.
func refreshAllBarAggregates() {
	db := database.Database.Db

	var barIDs []uint
	if err := db.Model(&models.Checkin{}).
		Where("deleted_at IS NULL").
		Distinct("bar_id").
		Pluck("bar_id", &barIDs).Error; err != nil {
		logScheduler("Error fetching bar ids: " + err.Error())
		return
	}

	refreshed := 0
	for _, id := range barIDs {
		if err := RefreshBarAggregate(id); err != nil {
			logScheduler("Error refreshing aggregates for bar: " + err.Error())
			continue
		}
		refreshed++
	}
	logScheduler(fmt.Sprintf("Refreshed aggregates for %d bars", refreshed))
}

// StartAggregateScheduler refreshes bar aggregates hourly.
func StartAggregateScheduler() {
	c := cron.New()

	if _, err := c.AddFunc("@every 1h", refreshAllBarAggregates); err != nil {
		logScheduler("Failed to schedule aggregate refresh: " + err.Error())
		return
	}

	c.Start()
	logScheduler("Aggregate scheduler started (hourly)")
}
