package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"artvote/internal/middleware"
	"artvote/internal/models"
	"artvote/internal/services"
	"artvote/internal/utils"
)

type VoteHandler struct {
	store       services.Storage
	ledger      *services.VoteLedger
	leaderboard *services.LeaderboardService
	feed        *services.ArtworkFeed
}

func NewVoteHandler(store services.Storage, ledger *services.VoteLedger, leaderboard *services.LeaderboardService, feed *services.ArtworkFeed) *VoteHandler {
	return &VoteHandler{
		store:       store,
		ledger:      ledger,
		leaderboard: leaderboard,
		feed:        feed,
	}
}

// Cast handles one vote click on an artwork. Clicking the active type again
// is the defined unvote, so there is no duplicate-vote error here.
func (h *VoteHandler) Cast(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))
	if id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid artwork id"})
		return
	}

	var req struct {
		Type models.VoteType `json:"type" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || (req.Type != models.VoteUp && req.Type != models.VoteDown) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "type must be up or down"})
		return
	}
	ctx := c.Request.Context()

	result, err := h.ledger.Cast(ctx, id, middleware.Wallet(c), req.Type)
	if err != nil {
		APIError(c, err)
		return
	}

	utils.GetCache().Delete(detailCacheKey(id))
	h.leaderboard.Invalidate()
	h.feed.Notify(id)

	// Return the authoritative counters, not a client-side guess.
	artwork, err := h.store.GetArtwork(ctx, id)
	if err != nil {
		APIError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"vote":  result.Vote,
		"likes": artwork.Likes,
		"score": artwork.Score,
	})
}
