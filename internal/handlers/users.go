package handlers

import (
	"net/http"

	"taskboard/backend/internal/middleware"
	"taskboard/backend/internal/repositories"
	"taskboard/backend/internal/session"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UserHandler struct {
	db    *gorm.DB
	users repositories.UserRepository
}

func NewUserHandler(db *gorm.DB, users repositories.UserRepository) *UserHandler {
	return &UserHandler{db: db, users: users}
}

func (h *UserHandler) GetUsers(c *gin.Context) {
	users, err := h.users.ListAll(h.db.WithContext(c.Request.Context()))
	if err != nil {
		handleRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

func (h *UserHandler) Me(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	if !sess.LoggedIn {
		handleRepoError(c, session.ErrNotLoggedIn)
		return
	}

	user, err := h.users.GetByID(h.db.WithContext(c.Request.Context()), sess.UserID)
	if err != nil {
		handleRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
