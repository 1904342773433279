package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yukikurage/student-task-tracker/internal/database"
	"github.com/yukikurage/student-task-tracker/internal/models"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	store *database.Store
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(store *database.Store) UserRepository {
	return &GormUserRepository{store: store}
}

// Create creates a new user
func (r *GormUserRepository) Create(ctx context.Context, user *models.User) error {
	return r.store.Write(ctx, func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).Create(user).Error
	})
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uint64) (*models.User, error) {
	var user models.User
	if err := r.store.DB(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByName finds a user by name
func (r *GormUserRepository) FindByName(ctx context.Context, name string) (*models.User, error) {
	var user models.User
	if err := r.store.DB(ctx).Where("name = ?", name).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
