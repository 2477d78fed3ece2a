package handlers

import (
	"net/http"

	"taskboard/backend/internal/repositories"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type AssignmentHandler struct {
	db          *gorm.DB
	assignments repositories.AssignmentRepository
}

func NewAssignmentHandler(db *gorm.DB, assignments repositories.AssignmentRepository) *AssignmentHandler {
	return &AssignmentHandler{db: db, assignments: assignments}
}

// Assign links a user to the task. No duplicate check: assigning the
// same user twice inserts two rows.
func (h *AssignmentHandler) Assign(c *gin.Context) {
	taskID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var input struct {
		UserID string `json:"user_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID, err := uuid.FromString(input.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id"})
		return
	}

	if err := h.assignments.Assign(h.db.WithContext(c.Request.Context()), taskID, userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed to assign user",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"task_id": taskID, "user_id": userID})
}

func (h *AssignmentHandler) ListUsersForTask(c *gin.Context) {
	taskID, ok := parseID(c, "id")
	if !ok {
		return
	}

	users, err := h.assignments.ListUsersForTask(h.db.WithContext(c.Request.Context()), taskID)
	if err != nil {
		handleRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}
