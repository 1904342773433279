package database

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yukikurage/student-task-tracker/internal/config"
	"github.com/yukikurage/student-task-tracker/internal/models"
)

// Store is the process-wide handle to the task database. It is opened once
// at startup, handed to every repository and closed once at shutdown.
// All writes go through Write, which serializes them.
type Store struct {
	db      *gorm.DB
	writeMu sync.Mutex
	log     *zap.Logger
}

// Open connects to the configured database and runs migrations.
func Open(cfg *config.Config, log *zap.Logger) (*Store, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(gormLogLevel(cfg.DBLogLevel)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.DBDriver == "" || cfg.DBDriver == "sqlite" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to access connection pool: %w", err)
		}
		// sqlite allows a single writer
		sqlDB.SetMaxOpenConns(1)
	}

	store := NewStore(db, log)
	if err := store.Migrate(); err != nil {
		store.Close()
		return nil, err
	}

	store.log.Info("database connection established", zap.String("driver", driverName(cfg)))
	return store, nil
}

// NewStore wraps an already opened gorm connection without migrating it.
func NewStore(db *gorm.DB, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{db: db, log: log}
}

func dialectorFor(cfg *config.Config) (gorm.Dialector, error) {
	switch driverName(cfg) {
	case "sqlite":
		return sqlite.Open(SQLiteDSN(cfg.DBPath)), nil
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local&clientFoundRows=true",
			cfg.DBUser,
			cfg.DBPassword,
			cfg.DBHost,
			portOrDefault(cfg.DBPort, "3306"),
			cfg.DBName,
		)
		return mysql.Open(dsn), nil
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			cfg.DBHost,
			portOrDefault(cfg.DBPort, "5432"),
			cfg.DBUser,
			cfg.DBPassword,
			cfg.DBName,
		)
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}
}

func portOrDefault(port, fallback string) string {
	if port == "" {
		return fallback
	}
	return port
}

func driverName(cfg *config.Config) string {
	if cfg.DBDriver == "" {
		return "sqlite"
	}
	return strings.ToLower(cfg.DBDriver)
}

// SQLiteDSN turns a database file path into a DSN with foreign keys enforced.
func SQLiteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on"
}

func gormLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

// Migrate creates the schema if it does not exist yet.
func (s *Store) Migrate() error {
	s.log.Debug("running database migrations")
	err := s.db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.AcademicTask{},
		&models.PersonalTask{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// DB returns a session bound to ctx for reads.
func (s *Store) DB(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

// Write runs fn inside a transaction while holding the store's write lock.
// Either every statement in fn is applied or none is.
func (s *Store) Write(ctx context.Context, fn func(tx *gorm.DB) error) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	return s.db.WithContext(ctx).Transaction(fn)
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
