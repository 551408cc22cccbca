package models

import (
	"time"
)

type Comment struct {
	ID          string    `gorm:"primaryKey;size:16" json:"id"`
	ArtworkID   uint      `gorm:"not null;index" json:"artwork_id"`
	Artwork     Artwork   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Text        string    `gorm:"type:text;not null" json:"text"`
	UserAddress string    `gorm:"not null;index" json:"user_address"`
	UserName    string    `json:"user_name,omitempty"`
	UserAvatar  string    `json:"user_avatar,omitempty"`
	PositionX   int       `gorm:"not null" json:"position_x"` // percent of image width, [0,100]
	PositionY   int       `gorm:"not null" json:"position_y"` // percent of image height, [0,100]
	IsDeleted   bool      `gorm:"default:false;not null;index" json:"is_deleted"`
	CreatedAt   time.Time `json:"created_at"`
}

// Positions are stored as whole percentages of the image bounding box.
// Pixel coordinates are a rendering artifact and are never persisted.
