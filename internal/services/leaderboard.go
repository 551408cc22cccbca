package services

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/singleflight"

	"artvote/internal/models"
	"artvote/internal/utils"
)

const leaderboardCacheKey = "leaderboard:ranked"

// LeaderboardEntry pairs an artwork with its raw vote counts and the
// confidence rank computed from them at read time.
type LeaderboardEntry struct {
	Artwork   models.Artwork `json:"artwork"`
	Upvotes   int            `json:"upvotes"`
	Downvotes int            `json:"downvotes"`
	Rank      float64        `json:"rank"`
}

// LeaderboardService orders artworks by the Wilson lower bound of their
// vote counts. The rank is recomputed on read and never persisted; the
// stored score column is a separate running tally and plays no part here.
type LeaderboardService struct {
	store Storage
	group singleflight.Group
}

func NewLeaderboardService(store Storage) *LeaderboardService {
	return &LeaderboardService{store: store}
}

// Top returns the highest-ranked artworks, at most limit of them.
func (s *LeaderboardService) Top(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	entries, err := s.ranked(ctx)
	if err != nil {
		return nil, err
	}
	if limit > 0 && limit < len(entries) {
		entries = entries[:limit]
	}
	return entries, nil
}

// Invalidate drops the cached ranking; called after any vote transition.
func (s *LeaderboardService) Invalidate() {
	utils.GetCache().Delete(leaderboardCacheKey)
}

// ranked returns the full ranking, cached for a minute. Concurrent misses
// collapse into one recompute.
func (s *LeaderboardService) ranked(ctx context.Context) ([]LeaderboardEntry, error) {
	if cached := utils.GetCache().Get(leaderboardCacheKey); cached != nil {
		return cached.([]LeaderboardEntry), nil
	}

	v, err, _ := s.group.Do(leaderboardCacheKey, func() (interface{}, error) {
		entries, err := s.compute(ctx)
		if err != nil {
			return nil, err
		}
		utils.GetCache().Set(leaderboardCacheKey, entries, time.Minute)
		return entries, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]LeaderboardEntry), nil
}

func (s *LeaderboardService) compute(ctx context.Context) ([]LeaderboardEntry, error) {
	artworks, err := s.store.ListArtworks(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(artworks))
	for _, a := range artworks {
		up, down, err := s.store.CountVotes(ctx, a.ID)
		if err != nil {
			return nil, err
		}
		entries = append(entries, LeaderboardEntry{
			Artwork:   a,
			Upvotes:   up,
			Downvotes: down,
			Rank:      utils.WilsonScore(up, down),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Rank != entries[j].Rank {
			return entries[i].Rank > entries[j].Rank
		}
		if entries[i].Upvotes != entries[j].Upvotes {
			return entries[i].Upvotes > entries[j].Upvotes
		}
		return entries[i].Artwork.ID < entries[j].Artwork.ID
	})

	return entries, nil
}
