package services

import (
	"context"
	"math"
	"time"

	"artvote/internal/models"
	"artvote/internal/utils"
)

// CommentView is a comment with its position reconstituted from the stored
// integer percentages.
type CommentView struct {
	ID          string         `json:"id"`
	ArtworkID   uint           `json:"artwork_id"`
	Text        string         `json:"text"`
	UserAddress string         `json:"user_address"`
	UserName    string         `json:"user_name,omitempty"`
	UserAvatar  string         `json:"user_avatar,omitempty"`
	Position    utils.Position `json:"position"`
	CreatedAt   time.Time      `json:"created_at"`
}

// CommentStore handles the comment lifecycle for one storage backend:
// create, soft-delete, reposition, list. Every counter side effect rides in
// the same logical transaction as its row mutation.
type CommentStore struct {
	store Storage
}

func NewCommentStore(store Storage) *CommentStore {
	return &CommentStore{store: store}
}

// Create persists a new comment at the given position and increments the
// artwork's comment counter. The position is rounded to whole percentages
// here, at the persistence boundary, so in-memory dragging stays smooth.
func (s *CommentStore) Create(ctx context.Context, artworkID uint, text string, pos utils.Position, author, name, avatar string) (*CommentView, error) {
	if author == "" {
		return nil, ErrUnauthenticated
	}
	text = utils.SanitizeText(text)
	if text == "" {
		return nil, ErrEmptyContent
	}

	comment := &models.Comment{
		ID:          utils.RandString(12),
		ArtworkID:   artworkID,
		Text:        text,
		UserAddress: utils.NormalizeAddress(author),
		UserName:    name,
		UserAvatar:  avatar,
		PositionX:   roundPercent(pos.X),
		PositionY:   roundPercent(pos.Y),
	}

	err := s.store.Transact(ctx, func(st Storage) error {
		if err := st.InsertComment(ctx, comment); err != nil {
			return err
		}
		return bumpCounter(ctx, st.IncrementCommentCount, artworkID, "comment increment")
	})
	if err != nil {
		return nil, err
	}

	view := toView(*comment)
	return &view, nil
}

// SoftDelete flags the comment deleted if the requester owns it, then
// decrements the artwork's comment counter, mirroring the increment done at
// create. A non-owner request matches zero rows and surfaces as ErrNotFound.
func (s *CommentStore) SoftDelete(ctx context.Context, commentID, requester string) error {
	if requester == "" {
		return ErrUnauthenticated
	}

	return s.store.Transact(ctx, func(st Storage) error {
		comment, err := st.SoftDeleteComment(ctx, commentID, utils.NormalizeAddress(requester))
		if err != nil {
			return err
		}
		return bumpCounter(ctx, st.DecrementCommentCount, comment.ArtworkID, "comment decrement")
	})
}

// UpdatePosition moves a comment bubble. Same ownership discipline as
// delete; no counter side effect.
func (s *CommentStore) UpdatePosition(ctx context.Context, commentID, requester string, pos utils.Position) error {
	if requester == "" {
		return ErrUnauthenticated
	}
	return s.store.UpdateCommentPosition(ctx, commentID, utils.NormalizeAddress(requester), roundPercent(pos.X), roundPercent(pos.Y))
}

// List returns all live comments for the artwork, newest first.
func (s *CommentStore) List(ctx context.Context, artworkID uint) ([]CommentView, error) {
	comments, err := s.store.ListComments(ctx, artworkID)
	if err != nil {
		return nil, err
	}

	views := make([]CommentView, 0, len(comments))
	for _, c := range comments {
		views = append(views, toView(c))
	}
	return views, nil
}

func toView(c models.Comment) CommentView {
	return CommentView{
		ID:          c.ID,
		ArtworkID:   c.ArtworkID,
		Text:        c.Text,
		UserAddress: c.UserAddress,
		UserName:    c.UserName,
		UserAvatar:  c.UserAvatar,
		Position:    utils.Position{X: float64(c.PositionX), Y: float64(c.PositionY)},
		CreatedAt:   c.CreatedAt,
	}
}

func roundPercent(v float64) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return int(math.Round(v))
}

// bumpCounter applies a relative counter update, retrying once. A second
// failure after the row mutation already went through is a data-integrity
// event and comes back as a ReconciliationError rather than being swallowed.
func bumpCounter(ctx context.Context, fn func(context.Context, uint) error, artworkID uint, step string) error {
	err := fn(ctx, artworkID)
	if err == nil {
		return nil
	}
	if err = fn(ctx, artworkID); err == nil {
		return nil
	}
	return &ReconciliationError{ArtworkID: artworkID, Step: step, Err: err}
}
