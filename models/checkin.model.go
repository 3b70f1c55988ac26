package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Checkin struct {
	gorm.Model
	UserID uint `gorm:"not null;index" json:"user_id"`
	User   User `gorm:"foreignKey:UserID" json:"-"`
	BarID  uint `gorm:"not null;index" json:"bar_id"`
	Bar    Bar  `gorm:"foreignKey:BarID" json:"-"`

	BeerName    string `gorm:"default:''" json:"beer_name"`
	Description string `gorm:"type:text;default:''" json:"description"`

	// AI provenance: generated review text and the model that produced it
	AIReview string `gorm:"type:text;default:''" json:"ai_review"`
	AIModel  string `gorm:"default:''" json:"ai_model"`

	// Rating dimensions, 0-10. Nullable so older rows without a dimension
	// drop out of that dimension's aggregate instead of dragging it down.
	Taste       *int `json:"taste"`
	Bitterness  *int `json:"bitterness"`
	Aroma       *int `json:"aroma"`
	Smoothness  *int `json:"smoothness"`
	Carbonation *int `json:"carbonation"`
	Temperature *int `json:"temperature"`
	Music       *int `json:"music"`
	Lighting    *int `json:"lighting"`
	CrowdVibe   *int `json:"crowd_vibe"`
	Cleanliness *int `json:"cleanliness"`
	Decor       *int `json:"decor"`

	Overall *int `json:"overall"`

	// Situational context captured at check-in time
	DayOfWeek    int    `json:"day_of_week"`
	GroupSize    int    `json:"group_size"`
	CompanyType  string `gorm:"default:''" json:"company_type"`
	BeersAlready int    `json:"beers_already"`

	RatingsJSON datatypes.JSON `json:"ratings_json"`
	ContextJSON datatypes.JSON `json:"context_json"`

	// Attached photo paths, owner-editable after creation (max 6)
	ImagePaths datatypes.JSON `json:"image_paths"`

	ShareToken string `gorm:"uniqueIndex" json:"share_token"`
}
