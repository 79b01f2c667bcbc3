package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"go-smart-inventory/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&model.User{}))
	return db
}

func TestUserRepo_PromoteAndResetPassword(t *testing.T) {
	repo := NewUserRepo(newTestDB(t))

	user := &model.User{Username: "alice", Email: "alice@example.com", Role: model.RoleStaff}
	require.NoError(t, user.SetPassword("secret1"))
	require.NoError(t, repo.Create(user))

	found, err := repo.FindByEmail("alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	// Same flow as cmd/create-admin: promote and reset the password
	found.Role = model.RoleAdmin
	require.NoError(t, found.SetPassword("rotated"))
	require.NoError(t, repo.Update(found))

	again, err := repo.FindByEmail("alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, again.Role)
	assert.True(t, again.CheckPassword("rotated"))
	assert.False(t, again.CheckPassword("secret1"))
}

func TestUserRepo_FindByEmailMissing(t *testing.T) {
	repo := NewUserRepo(newTestDB(t))

	_, err := repo.FindByEmail("ghost@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
