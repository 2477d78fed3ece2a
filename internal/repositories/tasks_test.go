package repositories_test

import (
	"testing"

	"taskboard/backend/internal/models"
	"taskboard/backend/internal/repositories"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTask_DefaultsToActive(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewTaskRepository()

	task, err := repo.Create(db, "Buy milk", "", "")
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, task.Status)
	assert.NotEqual(t, uuid.Nil, task.ID)

	stored, err := repo.GetByID(db, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", stored.Title)
	assert.Equal(t, models.StatusActive, stored.Status)
}

func TestGetTaskByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewTaskRepository()

	_, err := repo.GetByID(db, uuid.Must(uuid.NewV4()))
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestListForUser_OnlyAssignedTasks(t *testing.T) {
	db := setupTestDB(t)
	tasks := repositories.NewTaskRepository()
	assignments := repositories.NewAssignmentRepository()

	alice := createUser(t, db, "Alice", "alice@example.com")
	bob := createUser(t, db, "Bob", "bob@example.com")

	mine, err := tasks.Create(db, "Mine", "", "")
	require.NoError(t, err)
	theirs, err := tasks.Create(db, "Theirs", "", "")
	require.NoError(t, err)
	_, err = tasks.Create(db, "Unassigned", "", "")
	require.NoError(t, err)

	require.NoError(t, assignments.Assign(db, mine.ID, alice.ID))
	require.NoError(t, assignments.Assign(db, theirs.ID, bob.ID))

	listed, err := tasks.ListForUser(db, alice.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, mine.ID, listed[0].ID)
}

func TestListForUser_DuplicateAssignmentListsTaskOnce(t *testing.T) {
	db := setupTestDB(t)
	tasks := repositories.NewTaskRepository()
	assignments := repositories.NewAssignmentRepository()

	alice := createUser(t, db, "Alice", "alice@example.com")
	task, err := tasks.Create(db, "Doubly assigned", "", "")
	require.NoError(t, err)

	require.NoError(t, assignments.Assign(db, task.ID, alice.ID))
	require.NoError(t, assignments.Assign(db, task.ID, alice.ID))

	listed, err := tasks.ListForUser(db, alice.ID)
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestCreateAssigned_TaskAndAssignmentTogether(t *testing.T) {
	db := setupTestDB(t)
	tasks := repositories.NewTaskRepository()

	alice := createUser(t, db, "Alice", "alice@example.com")

	task, err := tasks.CreateAssigned(db, "Buy milk", "", alice.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, task.Status)

	listed, err := tasks.ListForUser(db, alice.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, task.ID, listed[0].ID)

	var count int64
	db.Model(&models.TaskAssignment{}).Where("task_id = ?", task.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestUpdateStatus_WritesWhateverItIsGiven(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewTaskRepository()

	task, err := repo.Create(db, "Task", "", "")
	require.NoError(t, err)

	// The data layer does not validate; the view controller does.
	require.NoError(t, repo.UpdateStatus(db, task.ID, "Bogus"))

	stored, err := repo.GetByID(db, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bogus", stored.Status)
}

func TestDeleteTask_OrphansMessagesAndAssignments(t *testing.T) {
	db := setupTestDB(t)
	tasks := repositories.NewTaskRepository()
	assignments := repositories.NewAssignmentRepository()
	messages := repositories.NewMessageRepository()

	alice := createUser(t, db, "Alice", "alice@example.com")
	task, err := tasks.CreateAssigned(db, "Doomed", "", alice.ID)
	require.NoError(t, err)
	_, err = messages.Post(db, task.ID, alice.ID, "still here")
	require.NoError(t, err)

	require.NoError(t, tasks.Delete(db, task.ID))

	_, err = tasks.GetByID(db, task.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	listed, err := tasks.ListForUser(db, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, listed)

	// No cascade: the thread and the link rows stay queryable.
	thread, err := messages.ListForTask(db, task.ID)
	require.NoError(t, err)
	assert.Len(t, thread, 1)

	assignees, err := assignments.ListUsersForTask(db, task.ID)
	require.NoError(t, err)
	assert.Len(t, assignees, 1)
}
