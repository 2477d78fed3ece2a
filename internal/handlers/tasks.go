package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"taskboard/backend/internal/middleware"
	"taskboard/backend/internal/repositories"
	"taskboard/backend/internal/session"
	"taskboard/backend/internal/view"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type TaskHandler struct {
	db           *gorm.DB
	tasks        repositories.TaskRepository
	messages     repositories.MessageRepository
	users        repositories.UserRepository
	pollInterval time.Duration
}

func NewTaskHandler(db *gorm.DB, tasks repositories.TaskRepository, messages repositories.MessageRepository, users repositories.UserRepository, pollInterval time.Duration) *TaskHandler {
	return &TaskHandler{
		db:           db,
		tasks:        tasks,
		messages:     messages,
		users:        users,
		pollInterval: pollInterval,
	}
}

// CreateTask inserts the task and assigns it to the caller in one
// transaction. A budget, when given, is folded into the description the
// way the new-task form does it.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	if !sess.LoggedIn {
		handleRepoError(c, session.ErrNotLoggedIn)
		return
	}

	var input struct {
		Title       string   `json:"title" binding:"required"`
		Description string   `json:"description"`
		Budget      *float64 `json:"budget"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	description := input.Description
	if input.Budget != nil {
		description += fmt.Sprintf("\n\nBudget: $%.2f", *input.Budget)
	}

	task, err := h.tasks.CreateAssigned(h.db, input.Title, description, sess.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed to create task",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusCreated, task)
}

// GetTasks serves the task list screen: the caller's assigned tasks run
// through the list view's filter and search, plus the header fields the
// screen shows.
func (h *TaskHandler) GetTasks(c *gin.Context) {
	sess := middleware.CurrentSession(c)

	filter := c.DefaultQuery("status", view.FilterAll)
	if !view.ValidFilter(filter) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status filter"})
		return
	}

	listView := view.NewTaskListView(h.db, h.tasks, h.users, sess)
	if err := listView.Load(c.Request.Context()); err != nil {
		handleRepoError(c, err)
		return
	}
	listView.SetFilter(filter)
	listView.SetSearchQuery(c.Query("q"))

	c.JSON(http.StatusOK, gin.H{
		"tasks":      listView.VisibleTasks(),
		"tasks_left": listView.TasksLeft(),
		"user_name":  listView.UserName(),
	})
}

func (h *TaskHandler) GetTaskByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	detail := h.detailView(c)
	if err := detail.Load(c.Request.Context(), id); err != nil {
		handleRepoError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"task":           detail.Task(),
		"status_actions": detail.StatusActions(),
	})
}

// UpdateTaskStatus writes the new status unconditionally once it passes
// the three-state check. Concurrent writers are last-write-wins.
func (h *TaskHandler) UpdateTaskStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	detail := h.detailView(c)
	if err := detail.Load(c.Request.Context(), id); err != nil {
		handleRepoError(c, err)
		return
	}
	if err := detail.UpdateStatus(c.Request.Context(), input.Status); err != nil {
		if errors.Is(err, view.ErrInvalidStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		handleRepoError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail.Task())
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.tasks.Delete(h.db, id); err != nil {
		handleRepoError(c, err)
		return
	}
	c.JSON(http.StatusNoContent, nil)
}

func (h *TaskHandler) detailView(c *gin.Context) *view.TaskDetailView {
	return view.NewTaskDetailView(h.db, h.tasks, h.messages, middleware.CurrentSession(c), h.pollInterval)
}

func parseID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.FromString(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}
