package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"artvote/internal/middleware"
	"artvote/internal/services"
	"artvote/internal/utils"
)

type CommentHandler struct {
	comments *services.CommentStore
	feed     *services.ArtworkFeed
}

func NewCommentHandler(comments *services.CommentStore, feed *services.ArtworkFeed) *CommentHandler {
	return &CommentHandler{comments: comments, feed: feed}
}

// List returns the live comments for an artwork, newest first, positions in
// percent space.
func (h *CommentHandler) List(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))
	if id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid artwork id"})
		return
	}

	comments, err := h.comments.List(c.Request.Context(), id)
	if err != nil {
		APIError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// Create places a comment bubble on the artwork.
func (h *CommentHandler) Create(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))
	if id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid artwork id"})
		return
	}

	var req struct {
		Text     string         `json:"text"`
		Position utils.Position `json:"position"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed body"})
		return
	}

	name, avatar := middleware.WalletProfile(c)
	comment, err := h.comments.Create(c.Request.Context(), id, req.Text, req.Position, middleware.Wallet(c), name, avatar)
	if err != nil {
		APIError(c, err)
		return
	}

	utils.GetCache().Delete(detailCacheKey(id))
	h.feed.Notify(id)

	c.JSON(http.StatusCreated, gin.H{"comment": comment})
}

// Delete soft-deletes a comment the caller owns.
func (h *CommentHandler) Delete(c *gin.Context) {
	artworkID := utils.StringToUint(c.Param("id"))
	commentID := c.Param("cid")
	if artworkID == 0 || commentID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.comments.SoftDelete(c.Request.Context(), commentID, middleware.Wallet(c)); err != nil {
		APIError(c, err)
		return
	}

	utils.GetCache().Delete(detailCacheKey(artworkID))
	h.feed.Notify(artworkID)

	c.Status(http.StatusNoContent)
}

// UpdatePosition moves a comment bubble the caller owns.
func (h *CommentHandler) UpdatePosition(c *gin.Context) {
	artworkID := utils.StringToUint(c.Param("id"))
	commentID := c.Param("cid")
	if artworkID == 0 || commentID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req struct {
		Position utils.Position `json:"position"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed body"})
		return
	}

	if err := h.comments.UpdatePosition(c.Request.Context(), commentID, middleware.Wallet(c), req.Position); err != nil {
		APIError(c, err)
		return
	}

	utils.GetCache().Delete(detailCacheKey(artworkID))
	h.feed.Notify(artworkID)

	c.Status(http.StatusNoContent)
}
