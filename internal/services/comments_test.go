package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artvote/internal/utils"
)

func TestCreateCommentRoundsAndCounts(t *testing.T) {
	store := newMemStorage()
	artwork := store.addArtwork()
	comments := NewCommentStore(store)
	ctx := context.Background()

	created, err := comments.Create(ctx, artwork.ID, "lovely texture", utils.Position{X: 12.7, Y: 88.3}, "0xaaa", "alice", "")
	require.NoError(t, err)

	// Sub-percent precision is intentionally dropped at the persistence
	// boundary.
	assert.Equal(t, utils.Position{X: 13, Y: 88}, created.Position)

	list, err := comments.List(ctx, artwork.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, utils.Position{X: 13, Y: 88}, list[0].Position)

	a, _ := store.GetArtwork(ctx, artwork.ID)
	assert.Equal(t, 1, a.Comments)
}

func TestCreateCommentValidation(t *testing.T) {
	store := newMemStorage()
	artwork := store.addArtwork()
	comments := NewCommentStore(store)
	ctx := context.Background()
	pos := utils.Position{X: 50, Y: 50}

	_, err := comments.Create(ctx, artwork.ID, "text", pos, "", "", "")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = comments.Create(ctx, artwork.ID, "   ", pos, "0xaaa", "", "")
	assert.ErrorIs(t, err, ErrEmptyContent)

	// Markup-only text sanitizes to nothing.
	_, err = comments.Create(ctx, artwork.ID, "<img src=x>", pos, "0xaaa", "", "")
	assert.ErrorIs(t, err, ErrEmptyContent)

	a, _ := store.GetArtwork(ctx, artwork.ID)
	assert.Equal(t, 0, a.Comments, "rejected comments must not bump the counter")
}

func TestCreateCommentSanitizesText(t *testing.T) {
	store := newMemStorage()
	artwork := store.addArtwork()
	comments := NewCommentStore(store)

	created, err := comments.Create(context.Background(), artwork.ID, "<b>bold</b> claim", utils.Position{X: 50, Y: 50}, "0xaaa", "", "")
	require.NoError(t, err)
	assert.Equal(t, "bold claim", created.Text)
}

func TestCreateCommentClampsPosition(t *testing.T) {
	store := newMemStorage()
	artwork := store.addArtwork()
	comments := NewCommentStore(store)

	created, err := comments.Create(context.Background(), artwork.ID, "edge case", utils.Position{X: -3, Y: 140}, "0xaaa", "", "")
	require.NoError(t, err)
	assert.Equal(t, utils.Position{X: 0, Y: 100}, created.Position)
}

func TestCreateCommentReconciliation(t *testing.T) {
	store := newMemStorage()
	artwork := store.addArtwork()
	comments := NewCommentStore(store)
	ctx := context.Background()

	// One transient counter failure: retry saves it.
	store.failCommentCounts = 1
	_, err := comments.Create(ctx, artwork.ID, "first", utils.Position{X: 50, Y: 50}, "0xaaa", "", "")
	require.NoError(t, err)
	a, _ := store.GetArtwork(ctx, artwork.ID)
	assert.Equal(t, 1, a.Comments)

	// Persistent failure after the row insert surfaces as a
	// reconciliation error, not a silent drift.
	store.failCommentCounts = 2
	_, err = comments.Create(ctx, artwork.ID, "second", utils.Position{X: 50, Y: 50}, "0xaaa", "", "")
	var rec *ReconciliationError
	assert.ErrorAs(t, err, &rec)
}

func TestSoftDeleteOwnership(t *testing.T) {
	store := newMemStorage()
	artwork := store.addArtwork()
	comments := NewCommentStore(store)
	ctx := context.Background()

	created, err := comments.Create(ctx, artwork.ID, "mine", utils.Position{X: 50, Y: 50}, "0xaaa", "", "")
	require.NoError(t, err)

	// A non-owner matches zero rows; the counter and the list are
	// untouched.
	err = comments.SoftDelete(ctx, created.ID, "0xbbb")
	assert.ErrorIs(t, err, ErrNotFound)

	list, _ := comments.List(ctx, artwork.ID)
	assert.Len(t, list, 1)
	a, _ := store.GetArtwork(ctx, artwork.ID)
	assert.Equal(t, 1, a.Comments)

	// The owner succeeds, counter mirrors the create.
	err = comments.SoftDelete(ctx, created.ID, "0xaaa")
	require.NoError(t, err)

	list, _ = comments.List(ctx, artwork.ID)
	assert.Empty(t, list, "soft-deleted comments never appear in lists")
	a, _ = store.GetArtwork(ctx, artwork.ID)
	assert.Equal(t, 0, a.Comments)

	// Deleting twice finds nothing.
	err = comments.SoftDelete(ctx, created.ID, "0xaaa")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSoftDeleteUnauthenticated(t *testing.T) {
	comments := NewCommentStore(newMemStorage())
	err := comments.SoftDelete(context.Background(), "whatever", "")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestUpdatePositionOwnership(t *testing.T) {
	store := newMemStorage()
	artwork := store.addArtwork()
	comments := NewCommentStore(store)
	ctx := context.Background()

	created, err := comments.Create(ctx, artwork.ID, "movable", utils.Position{X: 50, Y: 50}, "0xAAA", "", "")
	require.NoError(t, err)

	err = comments.UpdatePosition(ctx, created.ID, "0xbbb", utils.Position{X: 10, Y: 10})
	assert.ErrorIs(t, err, ErrNotFound)

	// Owner moves it; mixed-case address still matches after
	// normalization, and the new position is rounded.
	err = comments.UpdatePosition(ctx, created.ID, "0xAaA", utils.Position{X: 33.4, Y: 66.6})
	require.NoError(t, err)

	list, _ := comments.List(ctx, artwork.ID)
	require.Len(t, list, 1)
	assert.Equal(t, utils.Position{X: 33, Y: 67}, list[0].Position)
}

func TestListNewestFirst(t *testing.T) {
	store := newMemStorage()
	artwork := store.addArtwork()
	comments := NewCommentStore(store)
	ctx := context.Background()

	_, err := comments.Create(ctx, artwork.ID, "first", utils.Position{X: 10, Y: 10}, "0xaaa", "", "")
	require.NoError(t, err)
	_, err = comments.Create(ctx, artwork.ID, "second", utils.Position{X: 20, Y: 20}, "0xaaa", "", "")
	require.NoError(t, err)

	list, err := comments.List(ctx, artwork.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].Text)
	assert.Equal(t, "first", list[1].Text)
}
