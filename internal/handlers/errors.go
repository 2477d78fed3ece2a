package handlers

import (
	"errors"
	"net/http"

	"taskboard/backend/internal/repositories"
	"taskboard/backend/internal/session"

	"github.com/gin-gonic/gin"
)

// handleRepoError maps repository failures onto status codes. The
// service's message is surfaced on persistence failures; nothing is
// retried.
func handleRepoError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
	case errors.Is(err, session.ErrNotLoggedIn):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed to process request",
			"details": err.Error(),
		})
	}
}
