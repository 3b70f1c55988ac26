package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Bar struct {
	gorm.Model
	Name            string  `gorm:"not null" json:"name"`
	Address         string  `gorm:"default:''" json:"address"`
	Lat             float64 `json:"lat"`
	Lng             float64 `json:"lng"`
	Provider        string  `gorm:"not null;uniqueIndex:idx_provider_place" json:"provider"`
	ProviderPlaceID string  `gorm:"not null;uniqueIndex:idx_provider_place" json:"provider_place_id"`

	// Cached community summary, refreshed lazily when older than 7 days
	AISummary        string         `gorm:"type:text;default:''" json:"ai_summary"`
	SummaryUpdatedAt *time.Time     `json:"summary_updated_at"`
	AggregateScores  datatypes.JSON `json:"aggregate_scores"`
}
