package models

import (
	"time"
)

type VoteType string

const (
	VoteUp   VoteType = "up"
	VoteDown VoteType = "down"
)

type Vote struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ArtworkID   uint      `gorm:"not null;uniqueIndex:idx_artwork_voter" json:"artwork_id"`
	UserAddress string    `gorm:"not null;uniqueIndex:idx_artwork_voter" json:"user_address"`
	Type        VoteType  `gorm:"column:vote_type;size:4;not null" json:"vote_type"`
	CreatedAt   time.Time `json:"created_at"`
}

// At most one row per (artwork, voter). A repeat vote flips the type in
// place or deletes the row; it never creates a second one.
