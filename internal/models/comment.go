package models

import "time"

// Comment is attached to a post and optionally replies to another comment on
// the same post (the same-post rule is validated in the handlers). Deleting a
// post removes its comments, and deleting a parent removes its replies.
type Comment struct {
	ID        uint   `gorm:"primaryKey"`
	PostID    uint   `gorm:"not null;index"`
	UserID    uint   `gorm:"not null;index"`
	Content   string `gorm:"type:text;not null"`
	ParentID  *uint  `gorm:"index"`
	CreatedAt time.Time

	User   User     `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Post   Post     `gorm:"foreignKey:PostID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Parent *Comment `gorm:"foreignKey:ParentID;references:ID;constraint:OnDelete:CASCADE;"`
}
