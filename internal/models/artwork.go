package models

import (
	"time"
)

type Artwork struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Title            string    `gorm:"not null" json:"title"`
	ArtistName       string    `gorm:"not null" json:"artist_name"`
	ArtistAvatar     string    `gorm:"not null" json:"artist_avatar"`
	ArtistProfileURL string    `gorm:"column:artist_profile_url" json:"artist_profile_url"`
	Description      string    `gorm:"type:text" json:"description"`
	Image            string    `gorm:"not null" json:"image"`
	ImageURL         string    `gorm:"column:image_url;not null" json:"image_url"`
	Likes            int       `gorm:"default:0;not null" json:"likes"`    // upvote count only
	Comments         int       `gorm:"default:0;not null" json:"comments"` // live (non-deleted) comment count
	Score            int       `gorm:"default:0;not null" json:"score"`    // net sentiment, +1 up / -1 down
	CuratorAddress   string    `gorm:"not null;index" json:"curator_address"`
	CuratorName      string    `json:"curator_name"`
	CuratorAvatar    string    `json:"curator_avatar"`
	DateAdded        time.Time `gorm:"column:date_added;autoCreateTime" json:"date_added"`
}

// Likes and Score are denormalized aggregates. They are only ever mutated
// through relative column updates paired with the vote row change, never
// recomputed from the votes table at read time.
