// Package view implements the two screen controllers: the task list and
// the task detail with its polled chat thread. Controllers hold only
// in-memory view state; every activation re-fetches from the
// repositories.
package view

import (
	"context"
	"errors"
	"strings"

	"taskboard/backend/internal/models"
	"taskboard/backend/internal/repositories"
	"taskboard/backend/internal/session"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// FilterAll shows every status; the other filter values are the three
// task statuses themselves.
const FilterAll = "All"

// ErrInvalidStatus is returned when a status update names a value
// outside the three-state lifecycle. The data layer would happily
// persist it, so the controller is where the check lives.
var ErrInvalidStatus = errors.New("invalid task status")

func ValidFilter(filter string) bool {
	return filter == FilterAll || models.ValidStatus(filter)
}

// TaskListView drives the task list screen: the user's assigned tasks
// plus a status filter and a title search, both purely presentational.
type TaskListView struct {
	db    *gorm.DB
	tasks repositories.TaskRepository
	users repositories.UserRepository
	sess  session.Session

	loaded      bool
	taskList    []models.Task
	userName    string
	filter      string
	searchQuery string
}

func NewTaskListView(db *gorm.DB, tasks repositories.TaskRepository, users repositories.UserRepository, sess session.Session) *TaskListView {
	return &TaskListView{
		db:     db,
		tasks:  tasks,
		users:  users,
		sess:   sess,
		filter: FilterAll,
	}
}

// Load fetches the user's assigned tasks and display name. Without a
// logged-in session it fails immediately; the caller redirects to
// login.
func (v *TaskListView) Load(ctx context.Context) error {
	if !v.sess.LoggedIn {
		return session.ErrNotLoggedIn
	}

	db := v.db.WithContext(ctx)

	tasks, err := v.tasks.ListForUser(db, v.sess.UserID)
	if err != nil {
		return err
	}

	user, err := v.users.GetByID(db, v.sess.UserID)
	if err != nil {
		return err
	}

	v.taskList = tasks
	v.userName = user.Name
	v.loaded = true
	return nil
}

func (v *TaskListView) UserName() string {
	return v.userName
}

func (v *TaskListView) Filter() string {
	return v.filter
}

func (v *TaskListView) SetFilter(filter string) {
	v.filter = filter
}

func (v *TaskListView) SetSearchQuery(query string) {
	v.searchQuery = query
}

// VisibleTasks applies the status filter, then the case-insensitive
// title substring search, in that order. Neither predicate re-queries
// the repository.
func (v *TaskListView) VisibleTasks() []models.Task {
	filtered := v.taskList

	if v.filter != FilterAll {
		kept := make([]models.Task, 0, len(filtered))
		for _, task := range filtered {
			if task.Status == v.filter {
				kept = append(kept, task)
			}
		}
		filtered = kept
	}

	if v.searchQuery != "" {
		query := strings.ToLower(v.searchQuery)
		kept := make([]models.Task, 0, len(filtered))
		for _, task := range filtered {
			if strings.Contains(strings.ToLower(task.Title), query) {
				kept = append(kept, task)
			}
		}
		filtered = kept
	}

	return filtered
}

// TasksLeft counts tasks that are neither Completed nor Snoozed,
// ignoring the filter and search.
func (v *TaskListView) TasksLeft() int {
	count := 0
	for _, task := range v.taskList {
		if task.Status != models.StatusCompleted && task.Status != models.StatusSnoozed {
			count++
		}
	}
	return count
}

// UpdateStatus validates the status, writes it, and only then mutates
// the local view state. A failed write leaves the view untouched.
func (v *TaskListView) UpdateStatus(ctx context.Context, taskID uuid.UUID, status string) error {
	if !models.ValidStatus(status) {
		return ErrInvalidStatus
	}
	if err := v.tasks.UpdateStatus(v.db.WithContext(ctx), taskID, status); err != nil {
		return err
	}
	for i := range v.taskList {
		if v.taskList[i].ID == taskID {
			v.taskList[i].Status = status
		}
	}
	return nil
}

// Delete removes the task and drops it from the local list once the
// repository confirms.
func (v *TaskListView) Delete(ctx context.Context, taskID uuid.UUID) error {
	if err := v.tasks.Delete(v.db.WithContext(ctx), taskID); err != nil {
		return err
	}
	kept := v.taskList[:0]
	for _, task := range v.taskList {
		if task.ID != taskID {
			kept = append(kept, task)
		}
	}
	v.taskList = kept
	return nil
}
