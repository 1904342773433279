// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yukikurage/student-task-tracker/internal/config"
	"github.com/yukikurage/student-task-tracker/internal/database"
	"github.com/yukikurage/student-task-tracker/internal/models"
)

// PrepareStore opens a migrated sqlite store in a fresh temporary file.
func PrepareStore(t *testing.T) *database.Store {
	t.Helper()

	store, err := database.Open(&config.Config{
		DBDriver:   "sqlite",
		DBPath:     filepath.Join(t.TempDir(), "test.db"),
		DBLogLevel: "silent",
	}, zap.NewNop())
	if err != nil {
		t.Fatalf("PrepareStore() failed: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// PrepareMockStore returns a store backed by go-sqlmock through the postgres dialector.
func PrepareMockStore(t *testing.T) (*database.Store, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() failed: %v", err)
	}
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("gorm.Open(sqlmock) failed: %v", err)
	}
	return database.NewStore(db, zap.NewNop()), mock
}

// CreateUser inserts a user directly, hashing pwd the way registration does.
func CreateUser(t *testing.T, store *database.Store, name, pwd string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	user := &models.User{Name: name, Password: string(hash)}
	if err := store.DB(context.Background()).Create(user).Error; err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return user
}

func CreateCourse(t *testing.T, store *database.Store, name string, userID uint64) *models.Course {
	t.Helper()

	course := &models.Course{Name: name, UserID: userID}
	if err := store.DB(context.Background()).Create(course).Error; err != nil {
		t.Fatalf("CreateCourse() failed: %v", err)
	}
	return course
}

func CreateAcademicTask(t *testing.T, store *database.Store, title string, deadline models.Date, status models.TaskStatus, courseID uint64) *models.AcademicTask {
	t.Helper()

	task := &models.AcademicTask{
		Title:    title,
		Deadline: deadline,
		Status:   status,
		CourseID: courseID,
	}
	if err := store.DB(context.Background()).Create(task).Error; err != nil {
		t.Fatalf("CreateAcademicTask() failed: %v", err)
	}
	return task
}

func CreatePersonalTask(t *testing.T, store *database.Store, title, category string, deadline models.Date, status models.TaskStatus, userID uint64) *models.PersonalTask {
	t.Helper()

	task := &models.PersonalTask{
		Title:    title,
		Category: category,
		Deadline: deadline,
		Status:   status,
		UserID:   userID,
	}
	if err := store.DB(context.Background()).Create(task).Error; err != nil {
		t.Fatalf("CreatePersonalTask() failed: %v", err)
	}
	return task
}
