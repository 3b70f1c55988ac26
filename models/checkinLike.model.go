package models

import "gorm.io/gorm"

type CheckinLike struct {
	gorm.Model
	CheckinID uint `gorm:"not null;uniqueIndex:idx_checkin_user_like" json:"checkin_id"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_checkin_user_like" json:"user_id"`

	Checkin Checkin `gorm:"foreignKey:CheckinID" json:"-"`
	User    User    `gorm:"foreignKey:UserID" json:"-"`
}
