package services

import (
	"context"
	"fmt"

	"artvote/internal/models"
	"artvote/internal/utils"
)

// VoteResult reports the state a vote click settled into and the counter
// deltas it applied.
type VoteResult struct {
	// Vote is the resulting row, nil when the click toggled the vote off.
	Vote       *models.Vote `json:"vote"`
	ScoreDelta int          `json:"score_delta"`
	LikesDelta int          `json:"likes_delta"`
}

// VoteLedger drives the per-(artwork, voter) vote state machine. Each click
// is one logical transaction: the vote row change and the artwork counter
// delta both apply, or the caller hears about it.
type VoteLedger struct {
	store Storage
}

func NewVoteLedger(store Storage) *VoteLedger {
	return &VoteLedger{store: store}
}

// Cast applies one vote click. From no vote, a click creates one; clicking
// the already-active type again removes it (deliberate unvote, not an
// error); clicking the opposite type flips the row in place.
//
// Counter deltas per transition, with S the current state and T the click:
//
//	S=None  T=Up   -> Up    likes+1 score+1
//	S=None  T=Down -> Down  likes+0 score-1
//	S=Up    T=Up   -> None  likes-1 score-1
//	S=Up    T=Down -> Down  likes-1 score-2
//	S=Down  T=Up   -> Up    likes+1 score+2
//	S=Down  T=Down -> None  likes+0 score+1
//
// likes counts upvotes only; score is net sentiment. The flip deltas are
// not derivable from the fresh-vote ones, so keep this table exact.
func (s *VoteLedger) Cast(ctx context.Context, artworkID uint, voter string, t models.VoteType) (*VoteResult, error) {
	if voter == "" {
		return nil, ErrUnauthenticated
	}
	if t != models.VoteUp && t != models.VoteDown {
		return nil, fmt.Errorf("unknown vote type %q", t)
	}
	voter = utils.NormalizeAddress(voter)

	var result *VoteResult
	err := s.store.Transact(ctx, func(st Storage) error {
		existing, err := st.GetVote(ctx, artworkID, voter)
		if err != nil {
			return err
		}

		var scoreDelta, likesDelta int
		var after *models.Vote

		switch {
		case existing == nil:
			if err := st.UpsertVote(ctx, artworkID, voter, t); err != nil {
				return err
			}
			if t == models.VoteUp {
				scoreDelta, likesDelta = 1, 1
			} else {
				scoreDelta, likesDelta = -1, 0
			}
			after = &models.Vote{ArtworkID: artworkID, UserAddress: voter, Type: t}

		case existing.Type == t:
			// Same type clicked again: remove the vote.
			if err := st.DeleteVote(ctx, existing.ID); err != nil {
				return err
			}
			if t == models.VoteUp {
				scoreDelta, likesDelta = -1, -1
			} else {
				scoreDelta, likesDelta = 1, 0
			}

		default:
			// Opposite type: flip the row in place.
			if err := st.UpsertVote(ctx, artworkID, voter, t); err != nil {
				return err
			}
			if t == models.VoteUp {
				scoreDelta, likesDelta = 2, 1
			} else {
				scoreDelta, likesDelta = -2, -1
			}
			after = &models.Vote{ID: existing.ID, ArtworkID: artworkID, UserAddress: voter, Type: t}
		}

		if err := applyDelta(ctx, st, artworkID, scoreDelta, likesDelta); err != nil {
			return err
		}

		result = &VoteResult{Vote: after, ScoreDelta: scoreDelta, LikesDelta: likesDelta}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Current returns the voter's standing vote on the artwork, nil for none.
func (s *VoteLedger) Current(ctx context.Context, artworkID uint, voter string) (*models.Vote, error) {
	if voter == "" {
		return nil, nil
	}
	return s.store.GetVote(ctx, artworkID, utils.NormalizeAddress(voter))
}

func applyDelta(ctx context.Context, st Storage, artworkID uint, scoreChange, likesChange int) error {
	err := st.ApplyScoreDelta(ctx, artworkID, scoreChange, likesChange)
	if err == nil {
		return nil
	}
	if err = st.ApplyScoreDelta(ctx, artworkID, scoreChange, likesChange); err == nil {
		return nil
	}
	return &ReconciliationError{ArtworkID: artworkID, Step: "score delta", Err: err}
}
