package handlers

import (
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"artvote/internal/middleware"
	"artvote/internal/models"
	"artvote/internal/services"
	"artvote/internal/utils"
)

type ArtworkHandler struct {
	store       services.Storage
	comments    *services.CommentStore
	votes       *services.VoteLedger
	curation    *services.CurationService
	leaderboard *services.LeaderboardService
}

func NewArtworkHandler(store services.Storage, comments *services.CommentStore, votes *services.VoteLedger, curation *services.CurationService, leaderboard *services.LeaderboardService) *ArtworkHandler {
	return &ArtworkHandler{
		store:       store,
		comments:    comments,
		votes:       votes,
		curation:    curation,
		leaderboard: leaderboard,
	}
}

// List returns the artwork catalog, newest first.
func (h *ArtworkHandler) List(c *gin.Context) {
	artworks, err := h.store.ListArtworks(c.Request.Context())
	if err != nil {
		APIError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"artworks": artworks})
}

// artworkDetail is the per-artwork view shared by every visitor; the
// caller's own vote is layered on separately so this part can be cached.
type artworkDetail struct {
	Artwork         models.Artwork         `json:"artwork"`
	Comments        []services.CommentView `json:"comments"`
	Upvotes         int                    `json:"upvotes"`
	Downvotes       int                    `json:"downvotes"`
	DescriptionHTML template.HTML          `json:"description_html"`
}

// Detail returns one artwork with its comments, vote tallies, and the
// requesting wallet's standing vote.
func (h *ArtworkHandler) Detail(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))
	if id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid artwork id"})
		return
	}
	ctx := c.Request.Context()

	var detail *artworkDetail
	if cached := utils.GetCache().Get(detailCacheKey(id)); cached != nil {
		detail = cached.(*artworkDetail)
	} else {
		artwork, err := h.store.GetArtwork(ctx, id)
		if err != nil {
			APIError(c, err)
			return
		}
		comments, err := h.comments.List(ctx, id)
		if err != nil {
			APIError(c, err)
			return
		}
		up, down, err := h.store.CountVotes(ctx, id)
		if err != nil {
			APIError(c, err)
			return
		}
		detail = &artworkDetail{
			Artwork:         *artwork,
			Comments:        comments,
			Upvotes:         up,
			Downvotes:       down,
			DescriptionHTML: utils.RenderDescription(artwork.Description),
		}
		utils.GetCache().Set(detailCacheKey(id), detail, 5*time.Minute)
	}

	userVote, err := h.votes.Current(ctx, id, middleware.Wallet(c))
	if err != nil {
		APIError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"artwork":          detail.Artwork,
		"comments":         detail.Comments,
		"upvotes":          detail.Upvotes,
		"downvotes":        detail.Downvotes,
		"description_html": detail.DescriptionHTML,
		"user_vote":        userVote,
	})
}

// Leaderboard returns the top artworks by confidence rank.
func (h *ArtworkHandler) Leaderboard(c *gin.Context) {
	limit := utils.StringToInt(c.DefaultQuery("limit", "15"))
	if limit <= 0 || limit > 100 {
		limit = 15
	}

	entries, err := h.leaderboard.Top(c.Request.Context(), limit)
	if err != nil {
		APIError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"leaderboard": entries})
}

// Eligibility tells the view whether the connected wallet may curate, so it
// can show or hide the submission form up front.
func (h *ArtworkHandler) Eligibility(c *gin.Context) {
	eligible := h.curation.Eligible(c.Request.Context(), middleware.Wallet(c))
	c.JSON(http.StatusOK, gin.H{"eligible": eligible})
}

// Curate submits a marketplace artwork URL for curation.
func (h *ArtworkHandler) Curate(c *gin.Context) {
	var req struct {
		URL string `json:"url" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url is required"})
		return
	}

	name, avatar := middleware.WalletProfile(c)
	artwork, err := h.curation.Submit(c.Request.Context(), req.URL, middleware.Wallet(c), name, avatar)
	if err != nil {
		APIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"artwork": artwork})
}

func detailCacheKey(id uint) string {
	return fmt.Sprintf("artwork:detail:shared:%d", id)
}
