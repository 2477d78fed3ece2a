package handlers

import (
	"net/http"
	"time"

	"taskboard/backend/internal/repositories"
	"taskboard/backend/internal/session"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AuthHandler struct {
	db         *gorm.DB
	users      repositories.UserRepository
	sessions   *session.Store
	cookieName string
	cookieTTL  time.Duration
}

func NewAuthHandler(db *gorm.DB, users repositories.UserRepository, sessions *session.Store, cookieName string, cookieTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		db:         db,
		users:      users,
		sessions:   sessions,
		cookieName: cookieName,
		cookieTTL:  cookieTTL,
	}
}

// Login is the lookup-or-create flow: an unseen email creates a user,
// a known one logs in as the existing user without touching its stored
// name. There is no password.
func (h *AuthHandler) Login(c *gin.Context) {
	var input struct {
		Name  string `json:"name" binding:"required"`
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.FindOrCreateByEmail(h.db, input.Name, input.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed to log in",
			"details": err.Error(),
		})
		return
	}

	token, err := h.sessions.Create(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed to open session",
			"details": err.Error(),
		})
		return
	}

	c.SetCookie(h.cookieName, token, int(h.cookieTTL.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	token, err := c.Cookie(h.cookieName)
	if err == nil && token != "" {
		if err := h.sessions.Destroy(c.Request.Context(), token); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to close session"})
			return
		}
	}

	c.SetCookie(h.cookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
