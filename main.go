package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskboard/backend/internal/config"
	"taskboard/backend/internal/gateway"
	"taskboard/backend/internal/handlers"
	"taskboard/backend/internal/middleware"
	"taskboard/backend/internal/repositories"
	"taskboard/backend/internal/session"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

// Application holds all application dependencies and state.
type Application struct {
	Config   *config.Config
	Log      zerolog.Logger
	DB       *gorm.DB
	Sessions *session.Store
	Router   *gin.Engine
	Server   *http.Server

	Tasks       repositories.TaskRepository
	Assignments repositories.AssignmentRepository
	Messages    repositories.MessageRepository
	Users       repositories.UserRepository
}

func main() {
	// A missing .env is fine; the environment itself may carry the config.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := newLogger(cfg)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	app, err := initializeApplication(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize application")
	}

	app.setupRoutes()
	app.startServer()
}

func newLogger(cfg *config.Config) zerolog.Logger {
	if cfg.IsProduction() {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		return zerolog.New(os.Stdout).With().Timestamp().Logger()
	}

	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	writer := zerolog.NewConsoleWriter()
	writer.TimeFormat = time.DateTime
	return zerolog.New(writer).With().Timestamp().Logger()
}

func initializeApplication(cfg *config.Config, log zerolog.Logger) (*Application, error) {
	app := &Application{
		Config: cfg,
		Log:    log,
	}

	log.Info().Str("environment", cfg.Server.Environment).Msg("initializing task board backend")

	db, err := gateway.Connect(&gateway.Config{
		DSN:             cfg.GetDatabaseDSN(),
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
	})
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	app.DB = db

	if err := gateway.Migrate(db); err != nil {
		return nil, fmt.Errorf("database migration failed: %w", err)
	}
	log.Info().Msg("database connected and migrated")

	app.Sessions = session.NewStore(&session.StoreConfig{
		Addr:         cfg.GetRedisAddr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		MaxRetries:   cfg.Redis.MaxRetries,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
		Secret:       cfg.Session.Secret,
		TTL:          cfg.Session.TTL,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.Sessions.Ping(ctx); err != nil {
		return nil, fmt.Errorf("session store unavailable: %w", err)
	}
	log.Info().Msg("session store connected")

	app.Tasks = repositories.NewTaskRepository()
	app.Assignments = repositories.NewAssignmentRepository()
	app.Messages = repositories.NewMessageRepository()
	app.Users = repositories.NewUserRepository()

	return app, nil
}

func (app *Application) setupRoutes() {
	r := gin.New()

	r.Use(middleware.RequestLogger(app.Log))
	r.Use(middleware.RecoveryWithLog(app.Log))

	if app.Config.RateLimit.Enabled {
		limit := rate.Limit(float64(app.Config.RateLimit.RequestsPerMin) / 60.0)
		r.Use(middleware.RateLimiter(limit, app.Config.RateLimit.BurstSize))
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", app.healthHandler())

	v1 := r.Group("/api/v1")

	authHandler := handlers.NewAuthHandler(app.DB, app.Users, app.Sessions, app.Config.Session.CookieName, app.Config.Session.TTL)
	authRoutes := v1.Group("/auth")
	{
		authRoutes.POST("/login", authHandler.Login)
		authRoutes.POST("/logout", authHandler.Logout)
	}

	protected := v1.Group("")
	protected.Use(middleware.RequireSession(app.Sessions, app.Config.Session.CookieName))
	{
		taskHandler := handlers.NewTaskHandler(app.DB, app.Tasks, app.Messages, app.Users, app.Config.Chat.PollInterval)
		messageHandler := handlers.NewMessageHandler(app.DB, app.Messages)
		assignmentHandler := handlers.NewAssignmentHandler(app.DB, app.Assignments)
		userHandler := handlers.NewUserHandler(app.DB, app.Users)

		taskRoutes := protected.Group("/tasks")
		{
			taskRoutes.POST("", taskHandler.CreateTask)
			taskRoutes.GET("", taskHandler.GetTasks)
			taskRoutes.GET("/:id", taskHandler.GetTaskByID)
			taskRoutes.PUT("/:id/status", taskHandler.UpdateTaskStatus)
			taskRoutes.DELETE("/:id", taskHandler.DeleteTask)

			taskRoutes.GET("/:id/messages", messageHandler.ListMessages)
			taskRoutes.POST("/:id/messages", messageHandler.PostMessage)

			taskRoutes.POST("/:id/assignments", assignmentHandler.Assign)
			taskRoutes.GET("/:id/assignments", assignmentHandler.ListUsersForTask)
		}

		userRoutes := protected.Group("/users")
		{
			userRoutes.GET("", userHandler.GetUsers)
			userRoutes.GET("/me", userHandler.Me)
		}
	}

	app.Router = r
}

func (app *Application) startServer() {
	addr := app.Config.GetServerAddr()

	app.Server = &http.Server{
		Addr:         addr,
		Handler:      app.Router,
		ReadTimeout:  app.Config.Server.ReadTimeout,
		WriteTimeout: app.Config.Server.WriteTimeout,
		IdleTimeout:  app.Config.Server.IdleTimeout,
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		app.Log.Info().Msg("shutting down server")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := app.Server.Shutdown(ctx); err != nil {
			app.Log.Error().Err(err).Msg("server forced to shutdown")
		}

		app.cleanup()
	}()

	app.Log.Info().Str("addr", addr).Msg("server starting")

	if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		app.Log.Fatal().Err(err).Msg("server failed to start")
	}
}

func (app *Application) cleanup() {
	if app.Sessions != nil {
		if err := app.Sessions.Close(); err != nil {
			app.Log.Warn().Err(err).Msg("error closing session store")
		}
	}

	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				app.Log.Warn().Err(err).Msg("error closing database")
			}
		}
	}
}

func (app *Application) healthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "healthy",
			"timestamp": time.Now().Format(time.RFC3339),
			"service":   "taskboard-backend",
		}

		sqlDB, err := app.DB.DB()
		if err != nil || sqlDB.Ping() != nil {
			health["status"] = "unhealthy"
			health["database"] = "down"
			c.JSON(http.StatusServiceUnavailable, health)
			return
		}
		health["database"] = "up"

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := app.Sessions.Ping(ctx); err != nil {
			health["sessions"] = "down"
		} else {
			health["sessions"] = "up"
		}

		c.JSON(http.StatusOK, health)
	}
}
