package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yukikurage/student-task-tracker/internal/models"
	"github.com/yukikurage/student-task-tracker/internal/testutil"
)

func TestUserRepository(t *testing.T) {
	store := testutil.PrepareStore(t)
	repo := NewUserRepository(store)
	ctx := context.Background()

	user := &models.User{Name: "alice", Password: "hash"}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotZero(t, user.ID)

	found, err := repo.FindByName(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	found, err = repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", found.Name)

	_, err = repo.FindByName(ctx, "nobody")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// name is unique
	err = repo.Create(ctx, &models.User{Name: "alice", Password: "other"})
	assert.Error(t, err)
}
