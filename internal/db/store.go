package db

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"artvote/internal/models"
	"artvote/internal/services"
)

// Store is the Postgres-backed implementation of services.Storage. Counter
// updates are relative column expressions applied server-side; Transact
// collapses a row mutation and its counter delta into one DB transaction.
type Store struct {
	db *gorm.DB
}

var _ services.Storage = (*Store)(nil)

func NewStore(gdb *gorm.DB) *Store {
	return &Store{db: gdb}
}

func (s *Store) Transact(ctx context.Context, fn func(services.Storage) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

func (s *Store) InsertComment(ctx context.Context, c *models.Comment) error {
	return s.db.WithContext(ctx).Create(c).Error
}

func (s *Store) SoftDeleteComment(ctx context.Context, id, userAddress string) (*models.Comment, error) {
	res := s.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("id = ? AND user_address = ? AND is_deleted = ?", id, userAddress, false).
		Update("is_deleted", true)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// Missing row and ownership mismatch are indistinguishable here,
		// and are treated the same by callers.
		return nil, services.ErrNotFound
	}

	var c models.Comment
	if err := s.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Store) UpdateCommentPosition(ctx context.Context, id, userAddress string, x, y int) error {
	res := s.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("id = ? AND user_address = ? AND is_deleted = ?", id, userAddress, false).
		Updates(map[string]interface{}{"position_x": x, "position_y": y})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return services.ErrNotFound
	}
	return nil
}

func (s *Store) ListComments(ctx context.Context, artworkID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.WithContext(ctx).
		Where("artwork_id = ? AND is_deleted = ?", artworkID, false).
		Order("created_at DESC").
		Find(&comments).Error
	return comments, err
}

func (s *Store) IncrementCommentCount(ctx context.Context, artworkID uint) error {
	return s.bumpArtwork(ctx, artworkID, map[string]interface{}{
		"comments": gorm.Expr("comments + 1"),
	})
}

func (s *Store) DecrementCommentCount(ctx context.Context, artworkID uint) error {
	// Floor at zero; a decrement can race a repair job.
	return s.bumpArtwork(ctx, artworkID, map[string]interface{}{
		"comments": gorm.Expr("GREATEST(comments - 1, 0)"),
	})
}

func (s *Store) GetVote(ctx context.Context, artworkID uint, userAddress string) (*models.Vote, error) {
	var v models.Vote
	err := s.db.WithContext(ctx).
		Where("artwork_id = ? AND user_address = ?", artworkID, userAddress).
		First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *Store) UpsertVote(ctx context.Context, artworkID uint, userAddress string, t models.VoteType) error {
	v := models.Vote{
		ArtworkID:   artworkID,
		UserAddress: userAddress,
		Type:        t,
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "artwork_id"}, {Name: "user_address"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"vote_type": t}),
		}).
		Create(&v).Error
}

func (s *Store) DeleteVote(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Vote{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return services.ErrNotFound
	}
	return nil
}

func (s *Store) ApplyScoreDelta(ctx context.Context, artworkID uint, scoreChange, likesChange int) error {
	return s.bumpArtwork(ctx, artworkID, map[string]interface{}{
		"score": gorm.Expr("score + ?", scoreChange),
		"likes": gorm.Expr("likes + ?", likesChange),
	})
}

func (s *Store) CreateArtwork(ctx context.Context, a *models.Artwork) error {
	return s.db.WithContext(ctx).Create(a).Error
}

func (s *Store) GetArtwork(ctx context.Context, id uint) (*models.Artwork, error) {
	var a models.Artwork
	err := s.db.WithContext(ctx).First(&a, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, services.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *Store) ListArtworks(ctx context.Context) ([]models.Artwork, error) {
	var artworks []models.Artwork
	err := s.db.WithContext(ctx).Order("date_added DESC").Find(&artworks).Error
	return artworks, err
}

func (s *Store) CountVotes(ctx context.Context, artworkID uint) (up, down int, err error) {
	var upvotes, downvotes int64
	if err := s.db.WithContext(ctx).Model(&models.Vote{}).
		Where("artwork_id = ? AND vote_type = ?", artworkID, models.VoteUp).
		Count(&upvotes).Error; err != nil {
		return 0, 0, err
	}
	if err := s.db.WithContext(ctx).Model(&models.Vote{}).
		Where("artwork_id = ? AND vote_type = ?", artworkID, models.VoteDown).
		Count(&downvotes).Error; err != nil {
		return 0, 0, err
	}
	return int(upvotes), int(downvotes), nil
}

func (s *Store) bumpArtwork(ctx context.Context, artworkID uint, cols map[string]interface{}) error {
	res := s.db.WithContext(ctx).
		Model(&models.Artwork{}).
		Where("id = ?", artworkID).
		UpdateColumns(cols)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return services.ErrNotFound
	}
	return nil
}
