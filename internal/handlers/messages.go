package handlers

import (
	"net/http"

	"taskboard/backend/internal/middleware"
	"taskboard/backend/internal/repositories"
	"taskboard/backend/internal/session"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type MessageHandler struct {
	db       *gorm.DB
	messages repositories.MessageRepository
}

func NewMessageHandler(db *gorm.DB, messages repositories.MessageRepository) *MessageHandler {
	return &MessageHandler{db: db, messages: messages}
}

// ListMessages returns the thread ascending by timestamp. The task is
// deliberately not checked for existence: a deleted task's thread stays
// queryable.
func (h *MessageHandler) ListMessages(c *gin.Context) {
	taskID, ok := parseID(c, "id")
	if !ok {
		return
	}

	messages, err := h.messages.ListForTask(h.db.WithContext(c.Request.Context()), taskID)
	if err != nil {
		handleRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

func (h *MessageHandler) PostMessage(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	if !sess.LoggedIn {
		handleRepoError(c, session.ErrNotLoggedIn)
		return
	}

	taskID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var input struct {
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message, err := h.messages.Post(h.db.WithContext(c.Request.Context()), taskID, sess.UserID, input.Message)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed to post message",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusCreated, message)
}
