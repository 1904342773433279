package repository

import (
	"context"
	"fmt"

	"github.com/yukikurage/student-task-tracker/internal/models"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// CreateAcademic inserts an academic task; the store assigns its ID
	CreateAcademic(ctx context.Context, task *models.AcademicTask) error

	// CreatePersonal inserts a personal task; the store assigns its ID
	CreatePersonal(ctx context.Context, task *models.PersonalTask) error

	// FindAcademicByID finds an academic task with its course preloaded
	FindAcademicByID(ctx context.Context, id uint64) (*models.AcademicTask, error)

	// FindPersonalByID finds a personal task by ID
	FindPersonalByID(ctx context.Context, id uint64) (*models.PersonalTask, error)

	// UpdateAcademic overwrites every editable field of an academic task
	UpdateAcademic(ctx context.Context, task *models.AcademicTask) (bool, error)

	// UpdatePersonal overwrites every editable field of a personal task
	UpdatePersonal(ctx context.Context, task *models.PersonalTask) (bool, error)

	// UpdateStatus sets the status of one task; false means no such task
	UpdateStatus(ctx context.Context, kind models.TaskKind, id uint64, status models.TaskStatus) (bool, error)

	// Delete removes one task; false means no such task
	Delete(ctx context.Context, kind models.TaskKind, id uint64) (bool, error)

	// List returns a user's academic tasks followed by their personal tasks
	List(ctx context.Context, filter TaskFilter) ([]models.Task, error)
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	UserID         uint64
	DeadlineFrom   *models.Date
	DeadlineTo     *models.Date
	SortByDeadline bool
}

// CourseRepository defines the interface for course data access
type CourseRepository interface {
	// Create creates a new course
	Create(ctx context.Context, course *models.Course) error

	// FindByID finds a course by ID
	FindByID(ctx context.Context, id uint64) (*models.Course, error)

	// ListByUserID lists a user's courses in creation order
	ListByUserID(ctx context.Context, userID uint64) ([]models.Course, error)

	// Delete removes a course and its academic tasks; false means no such course
	Delete(ctx context.Context, id uint64) (bool, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uint64) (*models.User, error)

	// FindByName finds a user by name
	FindByName(ctx context.Context, name string) (*models.User, error)
}

// taskTable returns the model and primary key column backing a task kind.
func taskTable(kind models.TaskKind) (any, string, error) {
	switch kind {
	case models.KindAcademic:
		return &models.AcademicTask{}, "task_id", nil
	case models.KindPersonal:
		return &models.PersonalTask{}, "personal_task_id", nil
	}
	return nil, "", fmt.Errorf("unknown task kind %q", kind)
}
