package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"taskboard/backend/internal/gateway"
	"taskboard/backend/internal/handlers"
	"taskboard/backend/internal/middleware"
	"taskboard/backend/internal/repositories"
	"taskboard/backend/internal/session"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const testCookie = "taskboard_session"

type testApp struct {
	router   *gin.Engine
	db       *gorm.DB
	sessions *session.Store
	users    repositories.UserRepository
	tasks    repositories.TaskRepository
	messages repositories.MessageRepository
}

func setupTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gateway.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := gateway.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	mr := miniredis.RunT(t)
	storeConfig := session.DefaultStoreConfig()
	storeConfig.Addr = mr.Addr()
	storeConfig.Secret = "test-secret"
	sessions := session.NewStore(storeConfig)

	app := &testApp{
		db:       db,
		sessions: sessions,
		users:    repositories.NewUserRepository(),
		tasks:    repositories.NewTaskRepository(),
		messages: repositories.NewMessageRepository(),
	}

	router := gin.New()
	v1 := router.Group("/api/v1")

	authHandler := handlers.NewAuthHandler(db, app.users, sessions, testCookie, time.Hour)
	v1.POST("/auth/login", authHandler.Login)
	v1.POST("/auth/logout", authHandler.Logout)

	protected := v1.Group("")
	protected.Use(middleware.RequireSession(sessions, testCookie))

	taskHandler := handlers.NewTaskHandler(db, app.tasks, app.messages, app.users, time.Second)
	messageHandler := handlers.NewMessageHandler(db, app.messages)
	assignmentHandler := handlers.NewAssignmentHandler(db, repositories.NewAssignmentRepository())
	userHandler := handlers.NewUserHandler(db, app.users)

	protected.POST("/tasks", taskHandler.CreateTask)
	protected.GET("/tasks", taskHandler.GetTasks)
	protected.GET("/tasks/:id", taskHandler.GetTaskByID)
	protected.PUT("/tasks/:id/status", taskHandler.UpdateTaskStatus)
	protected.DELETE("/tasks/:id", taskHandler.DeleteTask)
	protected.GET("/tasks/:id/messages", messageHandler.ListMessages)
	protected.POST("/tasks/:id/messages", messageHandler.PostMessage)
	protected.POST("/tasks/:id/assignments", assignmentHandler.Assign)
	protected.GET("/tasks/:id/assignments", assignmentHandler.ListUsersForTask)
	protected.GET("/users", userHandler.GetUsers)
	protected.GET("/users/me", userHandler.Me)

	app.router = router
	return app
}

// loginAs opens a session directly against the store and returns the
// cookie to attach to requests.
func (app *testApp) loginAs(t *testing.T, name, email string) (*http.Cookie, string) {
	t.Helper()

	user, err := app.users.FindOrCreateByEmail(app.db, name, email)
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	token, err := app.sessions.Create(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("Failed to open session: %v", err)
	}
	return &http.Cookie{Name: testCookie, Value: token}, user.ID.String()
}

func (app *testApp) do(t *testing.T, method, path string, body interface{}, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		reader = bytes.NewBuffer(encoded)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)
	return w
}
