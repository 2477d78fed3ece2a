package view

import (
	"context"
	"sync"
	"time"

	"taskboard/backend/internal/models"
	"taskboard/backend/internal/repositories"
	"taskboard/backend/internal/session"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// TaskDetailView drives the task detail screen: the task itself, its
// chat thread, and the overflow-menu status actions. The thread is kept
// fresh by a fixed-interval poll; there is no push channel. The poll
// goroutine and the caller both touch the view, so state is
// mutex-guarded.
type TaskDetailView struct {
	db       *gorm.DB
	tasks    repositories.TaskRepository
	messages repositories.MessageRepository
	sess     session.Session
	interval time.Duration

	mu       sync.Mutex
	task     models.Task
	thread   []models.TaskMessage
	stopPoll chan struct{}
	pollDone chan struct{}
}

func NewTaskDetailView(db *gorm.DB, tasks repositories.TaskRepository, messages repositories.MessageRepository, sess session.Session, pollInterval time.Duration) *TaskDetailView {
	if pollInterval <= 0 {
		pollInterval = time.Second
	}
	return &TaskDetailView{
		db:       db,
		tasks:    tasks,
		messages: messages,
		sess:     sess,
		interval: pollInterval,
	}
}

// Load fetches the task and its thread. A missing task surfaces as
// repositories.ErrNotFound.
func (v *TaskDetailView) Load(ctx context.Context, taskID uuid.UUID) error {
	db := v.db.WithContext(ctx)

	task, err := v.tasks.GetByID(db, taskID)
	if err != nil {
		return err
	}
	thread, err := v.messages.ListForTask(db, taskID)
	if err != nil {
		return err
	}

	v.mu.Lock()
	v.task = task
	v.thread = thread
	v.mu.Unlock()
	return nil
}

func (v *TaskDetailView) Task() models.Task {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.task
}

func (v *TaskDetailView) Messages() []models.TaskMessage {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]models.TaskMessage, len(v.thread))
	copy(out, v.thread)
	return out
}

// StartPolling re-fetches the thread (messages only, never the task) on
// every tick until Stop is called or the context is cancelled. A failed
// tick keeps the previous thread; the next tick tries again.
func (v *TaskDetailView) StartPolling(ctx context.Context) {
	v.mu.Lock()
	if v.stopPoll != nil {
		v.mu.Unlock()
		return
	}
	stop := make(chan struct{})
	done := make(chan struct{})
	v.stopPoll = stop
	v.pollDone = done
	v.mu.Unlock()

	go func() {
		defer close(done)
		ticker := time.NewTicker(v.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-stop:
				return
			case <-ticker.C:
				v.refreshThread(ctx)
			}
		}
	}()
}

// Stop tears the poll down deterministically and waits for the
// goroutine to exit. Stopping a view that never polled is a no-op.
func (v *TaskDetailView) Stop() {
	v.mu.Lock()
	stop := v.stopPoll
	done := v.pollDone
	v.stopPoll = nil
	v.pollDone = nil
	v.mu.Unlock()

	if stop == nil {
		return
	}
	close(stop)
	<-done
}

// PostMessage requires a logged-in session, writes the message, and
// refreshes the thread immediately instead of waiting for the next
// tick.
func (v *TaskDetailView) PostMessage(ctx context.Context, text string) error {
	if !v.sess.LoggedIn {
		return session.ErrNotLoggedIn
	}

	v.mu.Lock()
	taskID := v.task.ID
	v.mu.Unlock()

	if _, err := v.messages.Post(v.db.WithContext(ctx), taskID, v.sess.UserID, text); err != nil {
		return err
	}
	v.refreshThread(ctx)
	return nil
}

// StatusActions returns the two statuses the overflow menu offers: the
// ones the task is not currently in.
func (v *TaskDetailView) StatusActions() []string {
	v.mu.Lock()
	defer v.mu.Unlock()

	switch v.task.Status {
	case models.StatusActive:
		return []string{models.StatusCompleted, models.StatusSnoozed}
	case models.StatusSnoozed:
		return []string{models.StatusActive, models.StatusCompleted}
	case models.StatusCompleted:
		return []string{models.StatusActive, models.StatusSnoozed}
	default:
		return nil
	}
}

// UpdateStatus validates and writes the new status, then mutates the
// local task only after the write succeeds.
func (v *TaskDetailView) UpdateStatus(ctx context.Context, status string) error {
	if !models.ValidStatus(status) {
		return ErrInvalidStatus
	}

	v.mu.Lock()
	taskID := v.task.ID
	v.mu.Unlock()

	if err := v.tasks.UpdateStatus(v.db.WithContext(ctx), taskID, status); err != nil {
		return err
	}

	v.mu.Lock()
	v.task.Status = status
	v.mu.Unlock()
	return nil
}

// Delete removes the task. The caller navigates back to the list; the
// thread and assignments stay behind, orphaned.
func (v *TaskDetailView) Delete(ctx context.Context) error {
	v.mu.Lock()
	taskID := v.task.ID
	v.mu.Unlock()

	return v.tasks.Delete(v.db.WithContext(ctx), taskID)
}

func (v *TaskDetailView) refreshThread(ctx context.Context) {
	v.mu.Lock()
	taskID := v.task.ID
	v.mu.Unlock()

	thread, err := v.messages.ListForTask(v.db.WithContext(ctx), taskID)
	if err != nil {
		return
	}

	v.mu.Lock()
	v.thread = thread
	v.mu.Unlock()
}
