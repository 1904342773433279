package services

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/yukikurage/student-task-tracker/internal/models"
	"github.com/yukikurage/student-task-tracker/internal/repository"
)

// CourseService provides business logic for course operations.
type CourseService struct {
	courseRepo repository.CourseRepository
	log        *zap.Logger
}

// NewCourseService creates a new CourseService.
func NewCourseService(courseRepo repository.CourseRepository, log *zap.Logger) *CourseService {
	return &CourseService{
		courseRepo: courseRepo,
		log:        log,
	}
}

// AddCourseInput represents parameters to create a new course.
type AddCourseInput struct {
	Name   string `validate:"notblank" label:"course name"`
	UserID uint64 `validate:"required" label:"owner"`
}

// AddCourse creates a new course owned by input.UserID.
func (s *CourseService) AddCourse(ctx context.Context, input AddCourseInput) (*models.Course, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	course := &models.Course{
		Name:   input.Name,
		UserID: input.UserID,
	}
	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, persistenceError(s.log, "create course", err, zap.Uint64("user_id", input.UserID))
	}

	return course, nil
}

// ListCourses returns the courses a user owns.
func (s *CourseService) ListCourses(ctx context.Context, userID uint64) ([]models.Course, error) {
	courses, err := s.courseRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, persistenceError(s.log, "list courses", err, zap.Uint64("user_id", userID))
	}
	return courses, nil
}

// CourseOptions returns the choices for a course picker: the user's courses,
// or the NoCourse placeholder when there are none.
func (s *CourseService) CourseOptions(ctx context.Context, userID uint64) ([]models.Course, error) {
	courses, err := s.ListCourses(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(courses) == 0 {
		return []models.Course{models.NoCourse}, nil
	}
	return courses, nil
}

// GetCourse returns a course, or nil when it does not exist.
func (s *CourseService) GetCourse(ctx context.Context, courseID uint64) (*models.Course, error) {
	course, err := s.courseRepo.FindByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, persistenceError(s.log, "find course", err, zap.Uint64("course_id", courseID))
	}
	return course, nil
}

// CourseName resolves a course's display name. It returns "" when the
// course does not exist or cannot be read.
func (s *CourseService) CourseName(ctx context.Context, courseID uint64) string {
	course, err := s.GetCourse(ctx, courseID)
	if err != nil || course == nil {
		return ""
	}
	return course.Name
}

// DeleteCourse removes a user's course together with its academic tasks.
// It returns false when the user owns no such course.
func (s *CourseService) DeleteCourse(ctx context.Context, userID, courseID uint64) (bool, error) {
	course, err := s.GetCourse(ctx, courseID)
	if err != nil {
		return false, err
	}
	if course == nil || course.UserID != userID {
		return false, nil
	}

	deleted, err := s.courseRepo.Delete(ctx, courseID)
	if err != nil {
		return false, persistenceError(s.log, "delete course", err, zap.Uint64("course_id", courseID))
	}
	if deleted {
		s.log.Info("course deleted", zap.Uint64("course_id", courseID), zap.Uint64("user_id", userID))
	}
	return deleted, nil
}
