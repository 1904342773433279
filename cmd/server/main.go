package main

import (
	"fmt"
	"log"
	"net"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yukikurage/student-task-tracker/internal/config"
	"github.com/yukikurage/student-task-tracker/internal/constants"
	"github.com/yukikurage/student-task-tracker/internal/database"
	"github.com/yukikurage/student-task-tracker/internal/handlers"
	"github.com/yukikurage/student-task-tracker/internal/logger"
	"github.com/yukikurage/student-task-tracker/internal/middleware"
	"github.com/yukikurage/student-task-tracker/internal/repository"
	"github.com/yukikurage/student-task-tracker/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	zlog, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync(zlog)

	if err := run(cfg, zlog); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, zlog *zap.Logger) error {
	if err := requireLoopback(cfg.HTTPAddr); err != nil {
		return err
	}

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Open the store; tables are created on open
	store, err := database.Open(cfg, zlog)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	sessionStore, err := newSessionStore(cfg)
	if err != nil {
		return err
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(zlog))
	r.Use(sessions.Sessions(constants.SessionCookieName, sessionStore))

	handlers.RegisterRoutes(r, newServices(cfg, store, zlog), zlog)

	zlog.Info("server starting", zap.String("addr", cfg.HTTPAddr), zap.String("db_driver", cfg.DBDriver))
	if err := r.Run(cfg.HTTPAddr); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

func newServices(cfg *config.Config, store *database.Store, zlog *zap.Logger) handlers.Services {
	userRepo := repository.NewUserRepository(store)
	courseRepo := repository.NewCourseRepository(store)
	taskRepo := repository.NewTaskRepository(store)

	courseService := services.NewCourseService(courseRepo, zlog.Named("courses"))
	taskService := services.NewTaskService(taskRepo, courseRepo, zlog.Named("tasks"))

	return handlers.Services{
		Auth:      services.NewAuthService(userRepo, zlog.Named("auth")),
		Courses:   courseService,
		Tasks:     taskService,
		Dashboard: services.NewDashboardService(taskService, courseService).WithWindows(cfg.DashboardWindowDays, cfg.ReminderWindowDays),
	}
}

// newSessionStore builds the cookie store, or a Redis store when
// SESSION_STORE=redis.
func newSessionStore(cfg *config.Config) (sessions.Store, error) {
	var store sessions.Store
	switch cfg.SessionStore {
	case "redis":
		redisAddr := net.JoinHostPort(cfg.RedisHost, cfg.RedisPort)
		rs, err := redisStore.NewStore(
			10,        // Redis pool size
			"tcp",     // network type
			redisAddr, // Redis address from config
			"",        // password (empty = no password)
			[]byte(cfg.SessionSecret),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create Redis store: %w", err)
		}
		store = rs
	case "cookie", "":
		store = cookie.NewStore([]byte(cfg.SessionSecret))
	default:
		return nil, fmt.Errorf("unknown SESSION_STORE %q", cfg.SessionStore)
	}

	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   cfg.GinMode == gin.ReleaseMode,
		SameSite: http.SameSiteLaxMode,
	})
	return store, nil
}

// requireLoopback refuses to serve on anything but a loopback address.
func requireLoopback(addr string) error {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("invalid HTTP_ADDR %q: %w", addr, err)
	}
	if host == "localhost" {
		return nil
	}
	if ip := net.ParseIP(host); ip != nil && ip.IsLoopback() {
		return nil
	}
	return fmt.Errorf("HTTP_ADDR %q is not a loopback address", addr)
}
