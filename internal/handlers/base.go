package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"artvote/internal/services"
)

// APIError maps the service error taxonomy onto HTTP statuses. Nothing
// here is fatal; every failure becomes a dismissible message for the view.
func APIError(c *gin.Context, err error) {
	var rec *services.ReconciliationError
	switch {
	case errors.Is(err, services.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "wallet not connected"})
	case errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "operation refused"})
	case errors.Is(err, services.ErrEmptyContent):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "comment text is empty"})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.As(err, &rec):
		// Data-integrity event, reported apart from user mistakes.
		log.Printf("reconciliation failure: %v", rec)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "counter update failed, counts may be stale"})
	default:
		log.Printf("request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
