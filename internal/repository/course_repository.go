package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yukikurage/student-task-tracker/internal/database"
	"github.com/yukikurage/student-task-tracker/internal/models"
)

// GormCourseRepository is a GORM implementation of CourseRepository
type GormCourseRepository struct {
	store *database.Store
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(store *database.Store) CourseRepository {
	return &GormCourseRepository{store: store}
}

// Create creates a new course
func (r *GormCourseRepository) Create(ctx context.Context, course *models.Course) error {
	return r.store.Write(ctx, func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).Create(course).Error
	})
}

// FindByID finds a course by ID
func (r *GormCourseRepository) FindByID(ctx context.Context, id uint64) (*models.Course, error) {
	var course models.Course
	if err := r.store.DB(ctx).First(&course, id).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

// ListByUserID lists all courses owned by a user
func (r *GormCourseRepository) ListByUserID(ctx context.Context, userID uint64) ([]models.Course, error) {
	var courses []models.Course
	if err := r.store.DB(ctx).
		Where("user_id = ?", userID).
		Order("course_id ASC").
		Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

// Delete deletes a course and all of its academic tasks in a transaction
func (r *GormCourseRepository) Delete(ctx context.Context, id uint64) (bool, error) {
	var deleted bool
	err := r.store.Write(ctx, func(tx *gorm.DB) error {
		// Delete all academic tasks of the course
		if err := tx.Where("course_id = ?", id).Delete(&models.AcademicTask{}).Error; err != nil {
			return err
		}

		// Delete course
		result := tx.Where("course_id = ?", id).Delete(&models.Course{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected > 0
		return nil
	})
	return deleted, err
}
