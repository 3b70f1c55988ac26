package models

import "gorm.io/gorm"

const (
	FriendPending  = "pending"
	FriendAccepted = "accepted"
	FriendBlocked  = "blocked"
)

// FriendEdge is a single row per pair; UserID is the requester.
type FriendEdge struct {
	gorm.Model
	UserID   uint   `gorm:"not null;uniqueIndex:idx_friend_pair" json:"user_id"`
	FriendID uint   `gorm:"not null;uniqueIndex:idx_friend_pair" json:"friend_id"`
	Status   string `gorm:"not null;default:'pending'" json:"status"`
}
