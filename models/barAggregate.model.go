package models

import "gorm.io/gorm"

// BarAggregate holds rolling per-bar check-in statistics, recomputed by the
// aggregate scheduler and best-effort after check-in writes.
type BarAggregate struct {
	gorm.Model
	BarID        uint    `gorm:"not null;uniqueIndex" json:"bar_id"`
	CheckinCount int64   `gorm:"default:0" json:"checkin_count"`
	AvgOverall   float64 `gorm:"default:0" json:"avg_overall"`
}
