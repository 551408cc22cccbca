package services

import (
	"context"

	"artvote/internal/models"
)

// Storage is the thin query/RPC surface the services run against. The
// Postgres implementation lives in internal/db; tests use an in-memory fake.
//
// Counter operations (IncrementCommentCount, DecrementCommentCount,
// ApplyScoreDelta) are relative and atomic: they add to the stored value
// server-side, never overwrite it, which keeps concurrent vote transitions
// commutative without client-side locking.
type Storage interface {
	// Transact runs fn against a Storage whose operations form one logical
	// unit. Backends with real transactions roll back on error; backends
	// without them may run fn directly and rely on the services'
	// retry-then-report discipline for the counter step.
	Transact(ctx context.Context, fn func(Storage) error) error

	InsertComment(ctx context.Context, c *models.Comment) error
	// SoftDeleteComment flags the comment deleted iff (id, userAddress)
	// matches a live row, returning the affected row or ErrNotFound.
	SoftDeleteComment(ctx context.Context, id, userAddress string) (*models.Comment, error)
	// UpdateCommentPosition has the same ownership-match discipline:
	// zero rows affected is ErrNotFound, never a silent success.
	UpdateCommentPosition(ctx context.Context, id, userAddress string, x, y int) error
	ListComments(ctx context.Context, artworkID uint) ([]models.Comment, error)
	IncrementCommentCount(ctx context.Context, artworkID uint) error
	DecrementCommentCount(ctx context.Context, artworkID uint) error

	// GetVote returns nil, nil when the voter has no vote on the artwork.
	GetVote(ctx context.Context, artworkID uint, userAddress string) (*models.Vote, error)
	UpsertVote(ctx context.Context, artworkID uint, userAddress string, t models.VoteType) error
	DeleteVote(ctx context.Context, id uint) error
	ApplyScoreDelta(ctx context.Context, artworkID uint, scoreChange, likesChange int) error

	CreateArtwork(ctx context.Context, a *models.Artwork) error
	GetArtwork(ctx context.Context, id uint) (*models.Artwork, error)
	ListArtworks(ctx context.Context) ([]models.Artwork, error)
	CountVotes(ctx context.Context, artworkID uint) (up, down int, err error)
}
