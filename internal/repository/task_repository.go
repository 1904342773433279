package repository

import (
	"context"
	"sort"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yukikurage/student-task-tracker/internal/database"
	"github.com/yukikurage/student-task-tracker/internal/models"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	store *database.Store
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(store *database.Store) TaskRepository {
	return &GormTaskRepository{store: store}
}

// CreateAcademic creates a new academic task
func (r *GormTaskRepository) CreateAcademic(ctx context.Context, task *models.AcademicTask) error {
	return r.store.Write(ctx, func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).Create(task).Error
	})
}

// CreatePersonal creates a new personal task
func (r *GormTaskRepository) CreatePersonal(ctx context.Context, task *models.PersonalTask) error {
	return r.store.Write(ctx, func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).Create(task).Error
	})
}

// FindAcademicByID finds an academic task by ID
func (r *GormTaskRepository) FindAcademicByID(ctx context.Context, id uint64) (*models.AcademicTask, error) {
	var task models.AcademicTask
	if err := r.store.DB(ctx).Preload("Course").First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// FindPersonalByID finds a personal task by ID
func (r *GormTaskRepository) FindPersonalByID(ctx context.Context, id uint64) (*models.PersonalTask, error) {
	var task models.PersonalTask
	if err := r.store.DB(ctx).First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateAcademic updates an academic task
func (r *GormTaskRepository) UpdateAcademic(ctx context.Context, task *models.AcademicTask) (bool, error) {
	return r.update(ctx, models.KindAcademic, task.ID, map[string]any{
		"title":       task.Title,
		"description": task.Description,
		"deadline":    task.Deadline,
		"status":      task.Status,
		"course_id":   task.CourseID,
	})
}

// UpdatePersonal updates a personal task
func (r *GormTaskRepository) UpdatePersonal(ctx context.Context, task *models.PersonalTask) (bool, error) {
	return r.update(ctx, models.KindPersonal, task.ID, map[string]any{
		"title":       task.Title,
		"description": task.Description,
		"category":    task.Category,
		"deadline":    task.Deadline,
		"status":      task.Status,
	})
}

// UpdateStatus sets the status of a task of either kind
func (r *GormTaskRepository) UpdateStatus(ctx context.Context, kind models.TaskKind, id uint64, status models.TaskStatus) (bool, error) {
	return r.update(ctx, kind, id, map[string]any{"status": status})
}

func (r *GormTaskRepository) update(ctx context.Context, kind models.TaskKind, id uint64, fields map[string]any) (bool, error) {
	model, idColumn, err := taskTable(kind)
	if err != nil {
		return false, err
	}

	var matched bool
	err = r.store.Write(ctx, func(tx *gorm.DB) error {
		result := tx.Model(model).Where(idColumn+" = ?", id).Updates(fields)
		if result.Error != nil {
			return result.Error
		}
		matched = result.RowsAffected > 0
		return nil
	})
	return matched, err
}

// Delete deletes a task of either kind
func (r *GormTaskRepository) Delete(ctx context.Context, kind models.TaskKind, id uint64) (bool, error) {
	model, idColumn, err := taskTable(kind)
	if err != nil {
		return false, err
	}

	var deleted bool
	err = r.store.Write(ctx, func(tx *gorm.DB) error {
		result := tx.Where(idColumn+" = ?", id).Delete(model)
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected > 0
		return nil
	})
	return deleted, err
}

// List retrieves a user's tasks of both kinds with optional deadline filtering
func (r *GormTaskRepository) List(ctx context.Context, filter TaskFilter) ([]models.Task, error) {
	db := r.store.DB(ctx)

	var academic []models.AcademicTask
	ownedCourses := db.Model(&models.Course{}).Select("course_id").Where("user_id = ?", filter.UserID)
	academicQuery := applyDeadlineFilter(db.Preload("Course").Where("course_id IN (?)", ownedCourses), filter)
	if err := academicQuery.Order("task_id ASC").Find(&academic).Error; err != nil {
		return nil, err
	}

	var personal []models.PersonalTask
	personalQuery := applyDeadlineFilter(db.Where("user_id = ?", filter.UserID), filter)
	if err := personalQuery.Order("personal_task_id ASC").Find(&personal).Error; err != nil {
		return nil, err
	}

	tasks := make([]models.Task, 0, len(academic)+len(personal))
	for _, t := range academic {
		tasks = append(tasks, t.ToTask())
	}
	for _, t := range personal {
		tasks = append(tasks, t.ToTask())
	}

	if filter.SortByDeadline {
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].Deadline.Before(tasks[j].Deadline)
		})
	}

	return tasks, nil
}

// applyDeadlineFilter restricts a query to the inclusive deadline range
func applyDeadlineFilter(query *gorm.DB, filter TaskFilter) *gorm.DB {
	if filter.DeadlineFrom != nil {
		query = query.Where("deadline >= ?", *filter.DeadlineFrom)
	}
	if filter.DeadlineTo != nil {
		query = query.Where("deadline <= ?", *filter.DeadlineTo)
	}
	return query
}
