package user

import (
	"context"
	"testing"
	"time"

	"github.com/Meseret1G/inventory-management-system/pkg/db/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, conn.AutoMigrate(&models.User{}))
	return conn
}

func seedUser(t *testing.T, repo *Repository, email string) *models.User {
	t.Helper()
	created, err := repo.Create(context.Background(), &models.User{
		Email:        email,
		PasswordHash: "x",
		IsActive:     true,
	})
	require.NoError(t, err)
	return created
}

func TestCreateAssignsID(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	created := seedUser(t, repo, "ops@example.com")
	require.NotEqual(t, uuid.Nil, created.ID)
}

func TestFindByEmail(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	seedUser(t, repo, "ops@example.com")

	found, err := repo.FindByEmail(context.Background(), "ops@example.com")
	require.NoError(t, err)
	require.Equal(t, "ops@example.com", found.Email)

	_, err = repo.FindByEmail(context.Background(), "nobody@example.com")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestEmailExists(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	seedUser(t, repo, "ops@example.com")

	exists, err := repo.EmailExists(context.Background(), "ops@example.com")
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = repo.EmailExists(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	require.False(t, exists)
}

func TestRecordLogin(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	created := seedUser(t, repo, "ops@example.com")

	at := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, repo.RecordLogin(context.Background(), created.ID, at))

	reloaded, err := repo.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.LastLoginAt)
	require.True(t, reloaded.LastLoginAt.UTC().Truncate(time.Second).Equal(at))
}
