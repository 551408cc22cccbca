package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"artvote/internal/models"
)

// memStorage is an in-memory Storage for tests. It has no real
// transactions: Transact runs the closure directly, which exercises the
// services' retry-then-report counter discipline. Counter failures can be
// injected to simulate a backend whose RPCs flake independently of row
// writes.
type memStorage struct {
	mu           sync.Mutex
	artworks     map[uint]*models.Artwork
	comments     map[string]*models.Comment
	commentOrder []string
	votes        map[uint]*models.Vote
	nextVoteID   uint
	nextArtID    uint

	failCommentCounts int
	failScoreDeltas   int
}

func newMemStorage() *memStorage {
	return &memStorage{
		artworks: make(map[uint]*models.Artwork),
		comments: make(map[string]*models.Comment),
		votes:    make(map[uint]*models.Vote),
	}
}

func (m *memStorage) addArtwork() *models.Artwork {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextArtID++
	a := &models.Artwork{ID: m.nextArtID, Title: "artwork", DateAdded: time.Now()}
	m.artworks[a.ID] = a
	return a
}

func (m *memStorage) Transact(ctx context.Context, fn func(Storage) error) error {
	return fn(m)
}

func (m *memStorage) InsertComment(ctx context.Context, c *models.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.artworks[c.ArtworkID]; !ok {
		return ErrNotFound
	}
	c.CreatedAt = time.Now()
	cp := *c
	m.comments[c.ID] = &cp
	m.commentOrder = append(m.commentOrder, c.ID)
	return nil
}

func (m *memStorage) SoftDeleteComment(ctx context.Context, id, userAddress string) (*models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.comments[id]
	if !ok || c.IsDeleted || c.UserAddress != userAddress {
		return nil, ErrNotFound
	}
	c.IsDeleted = true
	cp := *c
	return &cp, nil
}

func (m *memStorage) UpdateCommentPosition(ctx context.Context, id, userAddress string, x, y int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.comments[id]
	if !ok || c.IsDeleted || c.UserAddress != userAddress {
		return ErrNotFound
	}
	c.PositionX, c.PositionY = x, y
	return nil
}

func (m *memStorage) ListComments(ctx context.Context, artworkID uint) ([]models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Comment
	for i := len(m.commentOrder) - 1; i >= 0; i-- {
		c := m.comments[m.commentOrder[i]]
		if c.ArtworkID == artworkID && !c.IsDeleted {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *memStorage) IncrementCommentCount(ctx context.Context, artworkID uint) error {
	return m.bumpComments(artworkID, 1)
}

func (m *memStorage) DecrementCommentCount(ctx context.Context, artworkID uint) error {
	return m.bumpComments(artworkID, -1)
}

func (m *memStorage) bumpComments(artworkID uint, delta int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failCommentCounts > 0 {
		m.failCommentCounts--
		return errors.New("counter rpc unavailable")
	}
	a, ok := m.artworks[artworkID]
	if !ok {
		return ErrNotFound
	}
	a.Comments += delta
	if a.Comments < 0 {
		a.Comments = 0
	}
	return nil
}

func (m *memStorage) GetVote(ctx context.Context, artworkID uint, userAddress string) (*models.Vote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, v := range m.votes {
		if v.ArtworkID == artworkID && v.UserAddress == userAddress {
			cp := *v
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memStorage) UpsertVote(ctx context.Context, artworkID uint, userAddress string, t models.VoteType) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, v := range m.votes {
		if v.ArtworkID == artworkID && v.UserAddress == userAddress {
			v.Type = t
			return nil
		}
	}
	m.nextVoteID++
	m.votes[m.nextVoteID] = &models.Vote{
		ID:          m.nextVoteID,
		ArtworkID:   artworkID,
		UserAddress: userAddress,
		Type:        t,
	}
	return nil
}

func (m *memStorage) DeleteVote(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.votes[id]; !ok {
		return ErrNotFound
	}
	delete(m.votes, id)
	return nil
}

func (m *memStorage) ApplyScoreDelta(ctx context.Context, artworkID uint, scoreChange, likesChange int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failScoreDeltas > 0 {
		m.failScoreDeltas--
		return errors.New("counter rpc unavailable")
	}
	a, ok := m.artworks[artworkID]
	if !ok {
		return ErrNotFound
	}
	a.Score += scoreChange
	a.Likes += likesChange
	return nil
}

func (m *memStorage) CreateArtwork(ctx context.Context, a *models.Artwork) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextArtID++
	a.ID = m.nextArtID
	a.DateAdded = time.Now()
	cp := *a
	m.artworks[a.ID] = &cp
	return nil
}

func (m *memStorage) GetArtwork(ctx context.Context, id uint) (*models.Artwork, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.artworks[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *memStorage) ListArtworks(ctx context.Context) ([]models.Artwork, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Artwork, 0, len(m.artworks))
	for i := m.nextArtID; i >= 1; i-- {
		if a, ok := m.artworks[i]; ok {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (m *memStorage) CountVotes(ctx context.Context, artworkID uint) (up, down int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, v := range m.votes {
		if v.ArtworkID != artworkID {
			continue
		}
		if v.Type == models.VoteUp {
			up++
		} else {
			down++
		}
	}
	return up, down, nil
}
