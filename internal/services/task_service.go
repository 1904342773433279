package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/yukikurage/student-task-tracker/internal/constants"
	apierrors "github.com/yukikurage/student-task-tracker/internal/errors"
	"github.com/yukikurage/student-task-tracker/internal/models"
	"github.com/yukikurage/student-task-tracker/internal/repository"
)

var (
	ErrTaskNotFound = errors.New("task not found")
)

// TaskService provides business logic for academic and personal tasks.
type TaskService struct {
	taskRepo   repository.TaskRepository
	courseRepo repository.CourseRepository
	log        *zap.Logger
	today      func() models.Date
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, courseRepo repository.CourseRepository, log *zap.Logger) *TaskService {
	return &TaskService{
		taskRepo:   taskRepo,
		courseRepo: courseRepo,
		log:        log,
		today:      models.Today,
	}
}

// WithClock replaces the source of "today" used for deadline windows.
func (s *TaskService) WithClock(today func() models.Date) *TaskService {
	s.today = today
	return s
}

// Today returns the current date as seen by the service.
func (s *TaskService) Today() models.Date {
	return s.today()
}

// AddAcademicTaskInput represents parameters to create an academic task.
// When UserID is set the course must belong to that user.
type AddAcademicTaskInput struct {
	Title       string `validate:"notblank" label:"title"`
	Description string
	Deadline    models.Date
	Status      models.TaskStatus
	CourseID    uint64
	UserID      uint64
}

// AddPersonalTaskInput represents parameters to create a personal task.
type AddPersonalTaskInput struct {
	Title       string `validate:"notblank" label:"title"`
	Description string
	Category    string `validate:"notblank" label:"category"`
	Deadline    models.Date
	Status      models.TaskStatus
	UserID      uint64 `validate:"required" label:"owner"`
}

// UpdateTaskInput holds the fields to change; nil fields are kept.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Deadline    *models.Date
	Status      *models.TaskStatus
	Category    *string
	CourseID    *uint64
}

// AddAcademicTask validates and stores a new academic task.
func (s *TaskService) AddAcademicTask(ctx context.Context, input AddAcademicTaskInput) (*models.Task, error) {
	input.Title = strings.TrimSpace(input.Title)
	if err := validateInput(input); err != nil {
		return nil, err
	}
	status, err := normalizeStatus(input.Status)
	if err != nil {
		return nil, err
	}
	if input.Deadline.IsZero() {
		return nil, apierrors.Invalid("deadline must not be empty")
	}
	course, err := s.checkCourse(ctx, input.CourseID, input.UserID)
	if err != nil {
		return nil, err
	}

	task := &models.AcademicTask{
		Title:       input.Title,
		Description: input.Description,
		Deadline:    input.Deadline,
		Status:      status,
		CourseID:    input.CourseID,
		Course:      course,
	}
	if err := s.taskRepo.CreateAcademic(ctx, task); err != nil {
		return nil, persistenceError(s.log, "create academic task", err, zap.Uint64("course_id", input.CourseID))
	}

	s.log.Info("academic task created", zap.Uint64("task_id", task.ID), zap.Uint64("course_id", task.CourseID))
	result := task.ToTask()
	return &result, nil
}

// AddPersonalTask validates and stores a new personal task.
func (s *TaskService) AddPersonalTask(ctx context.Context, input AddPersonalTaskInput) (*models.Task, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Category = strings.TrimSpace(input.Category)
	if err := validateInput(input); err != nil {
		return nil, err
	}
	status, err := normalizeStatus(input.Status)
	if err != nil {
		return nil, err
	}
	if input.Deadline.IsZero() {
		return nil, apierrors.Invalid("deadline must not be empty")
	}

	task := &models.PersonalTask{
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Deadline:    input.Deadline,
		Status:      status,
		UserID:      input.UserID,
	}
	if err := s.taskRepo.CreatePersonal(ctx, task); err != nil {
		return nil, persistenceError(s.log, "create personal task", err, zap.Uint64("user_id", input.UserID))
	}

	s.log.Info("personal task created", zap.Uint64("task_id", task.ID), zap.Uint64("user_id", task.UserID))
	result := task.ToTask()
	return &result, nil
}

// GetTask returns a task of the given kind, or nil when it does not exist.
func (s *TaskService) GetTask(ctx context.Context, kind models.TaskKind, id uint64) (*models.Task, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}

	var task models.Task
	switch kind {
	case models.KindAcademic:
		academic, err := s.taskRepo.FindAcademicByID(ctx, id)
		if err != nil {
			return nil, s.findError(err, kind, id)
		}
		task = academic.ToTask()
	case models.KindPersonal:
		personal, err := s.taskRepo.FindPersonalByID(ctx, id)
		if err != nil {
			return nil, s.findError(err, kind, id)
		}
		task = personal.ToTask()
	}
	return &task, nil
}

// findError maps a lookup failure: not found becomes (nil, nil) in GetTask.
func (s *TaskService) findError(err error, kind models.TaskKind, id uint64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return persistenceError(s.log, "find task", err, zap.String("kind", string(kind)), zap.Uint64("task_id", id))
}

// UpdateTask changes the given fields of an existing task. It fails with
// ErrTaskNotFound when the task does not exist.
func (s *TaskService) UpdateTask(ctx context.Context, kind models.TaskKind, id uint64, input UpdateTaskInput) (*models.Task, error) {
	current, err := s.GetTask(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrTaskNotFound
	}

	if input.Title != nil {
		current.Title = strings.TrimSpace(*input.Title)
		if current.Title == "" {
			return nil, apierrors.Invalid("title must not be empty")
		}
	}
	if input.Description != nil {
		current.Description = *input.Description
	}
	if input.Deadline != nil {
		if input.Deadline.IsZero() {
			return nil, apierrors.Invalid("deadline must not be empty")
		}
		current.Deadline = *input.Deadline
	}
	if input.Status != nil {
		if current.Status, err = normalizeStatus(*input.Status); err != nil {
			return nil, err
		}
	}

	var matched bool
	switch kind {
	case models.KindAcademic:
		if input.Category != nil {
			return nil, apierrors.Invalid("academic tasks have no category")
		}
		if input.CourseID != nil {
			if _, err := s.checkCourse(ctx, *input.CourseID, current.OwnerUserID); err != nil {
				return nil, err
			}
			current.CourseID = *input.CourseID
		}
		matched, err = s.taskRepo.UpdateAcademic(ctx, &models.AcademicTask{
			ID:          id,
			Title:       current.Title,
			Description: current.Description,
			Deadline:    current.Deadline,
			Status:      current.Status,
			CourseID:    current.CourseID,
		})
	case models.KindPersonal:
		if input.CourseID != nil {
			return nil, apierrors.Invalid("personal tasks have no course")
		}
		if input.Category != nil {
			current.Category = strings.TrimSpace(*input.Category)
			if current.Category == "" {
				return nil, apierrors.Invalid("category must not be empty")
			}
		}
		matched, err = s.taskRepo.UpdatePersonal(ctx, &models.PersonalTask{
			ID:          id,
			Title:       current.Title,
			Description: current.Description,
			Category:    current.Category,
			Deadline:    current.Deadline,
			Status:      current.Status,
			UserID:      current.OwnerUserID,
		})
	}
	if err != nil {
		return nil, persistenceError(s.log, "update task", err, zap.String("kind", string(kind)), zap.Uint64("task_id", id))
	}
	if !matched {
		return nil, ErrTaskNotFound
	}

	return s.GetTask(ctx, kind, id)
}

// UpdateTaskStatus sets a task's status. Any transition is allowed,
// including to the current value. It returns false when no task matched.
func (s *TaskService) UpdateTaskStatus(ctx context.Context, kind models.TaskKind, id uint64, status models.TaskStatus) (bool, error) {
	if err := checkKind(kind); err != nil {
		return false, err
	}
	if !status.Valid() {
		return false, apierrors.Invalid("status must be one of Not Started, In Progress, Done")
	}

	updated, err := s.taskRepo.UpdateStatus(ctx, kind, id, status)
	if err != nil {
		return false, persistenceError(s.log, "update task status", err, zap.String("kind", string(kind)), zap.Uint64("task_id", id))
	}
	return updated, nil
}

// DeleteTask removes a task. It returns false when no task matched.
func (s *TaskService) DeleteTask(ctx context.Context, kind models.TaskKind, id uint64) (bool, error) {
	if err := checkKind(kind); err != nil {
		return false, err
	}

	deleted, err := s.taskRepo.Delete(ctx, kind, id)
	if err != nil {
		return false, persistenceError(s.log, "delete task", err, zap.String("kind", string(kind)), zap.Uint64("task_id", id))
	}
	if deleted {
		s.log.Info("task deleted", zap.String("kind", string(kind)), zap.Uint64("task_id", id))
	}
	return deleted, nil
}

// ListTasks returns the user's academic tasks followed by their personal tasks.
func (s *TaskService) ListTasks(ctx context.Context, userID uint64) ([]models.Task, error) {
	tasks, err := s.taskRepo.List(ctx, repository.TaskFilter{UserID: userID})
	if err != nil {
		return nil, persistenceError(s.log, "list tasks", err, zap.Uint64("user_id", userID))
	}
	return tasks, nil
}

// UpcomingDeadlines returns the user's tasks due between today and
// today+windowDays inclusive, sorted by deadline. Completed tasks are
// included. Windows longer than constants.MaxWindowDays are rejected.
func (s *TaskService) UpcomingDeadlines(ctx context.Context, userID uint64, windowDays int) ([]models.Task, error) {
	if windowDays < 0 {
		return nil, apierrors.Invalid("window must not be negative")
	}
	if windowDays > constants.MaxWindowDays {
		return nil, apierrors.Invalid(fmt.Sprintf("window must be at most %d days", constants.MaxWindowDays))
	}

	from := s.today()
	to := from.AddDays(windowDays)
	tasks, err := s.taskRepo.List(ctx, repository.TaskFilter{
		UserID:         userID,
		DeadlineFrom:   &from,
		DeadlineTo:     &to,
		SortByDeadline: true,
	})
	if err != nil {
		return nil, persistenceError(s.log, "list upcoming tasks", err, zap.Uint64("user_id", userID), zap.Int("window_days", windowDays))
	}
	return tasks, nil
}

// checkCourse rejects the NoCourse placeholder and, when userID is set, a
// course owned by someone else. An unknown course is left to the store's
// foreign key.
func (s *TaskService) checkCourse(ctx context.Context, courseID, userID uint64) (*models.Course, error) {
	if courseID == models.NoCourse.ID {
		return nil, apierrors.Invalid("please select a course")
	}

	course, err := s.courseRepo.FindByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, persistenceError(s.log, "find course", err, zap.Uint64("course_id", courseID))
	}
	if userID != 0 && course.UserID != userID {
		return nil, apierrors.Invalid("course does not belong to user")
	}
	return course, nil
}

func normalizeStatus(status models.TaskStatus) (models.TaskStatus, error) {
	if status == "" {
		return models.TaskStatusNotStarted, nil
	}
	if !status.Valid() {
		return "", apierrors.Invalid("status must be one of Not Started, In Progress, Done")
	}
	return status, nil
}

func checkKind(kind models.TaskKind) error {
	switch kind {
	case models.KindAcademic, models.KindPersonal:
		return nil
	}
	return apierrors.Invalid("task kind must be academic or personal")
}
