package models

import "time"

// Follow represents a directed follow edge between two users.
// The composite primary key (FollowerID, FollowingID) guarantees at most one
// edge per pair, which is what makes the follow action idempotent.
type Follow struct {
	FollowerID  uint `gorm:"primaryKey"`
	FollowingID uint `gorm:"primaryKey"`
	CreatedAt   time.Time

	// Define foreign key relationships
	Follower  User `gorm:"foreignKey:FollowerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Following User `gorm:"foreignKey:FollowingID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
