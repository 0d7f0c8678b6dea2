package repository

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"admin-console/internal/database"
	"admin-console/internal/model"
)

// openPostgres connects to DATABASE_URL or skips the test.
func openPostgres(t *testing.T) *database.DB {
	t.Helper()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		t.Skip("DATABASE_URL not set")
	}

	db, err := database.New(context.Background(), databaseURL, 4, 1)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, db.EnsureSchema(context.Background()))
	// A second run finds the table and leaves it alone.
	require.NoError(t, db.EnsureSchema(context.Background()))
	require.NoError(t, db.Health(context.Background()))
	return db
}

func TestSettingsRepositoryRoundtrip(t *testing.T) {
	db := openPostgres(t)
	repo := NewSettingsRepository(db.Pool)
	ctx := context.Background()

	token := "test_token_" + uuid.NewString()
	profile := "test_profile_" + uuid.NewString()
	t.Cleanup(func() { _ = repo.Delete(context.Background(), token, profile) })

	_, err := repo.Get(ctx, token)
	require.ErrorIs(t, err, model.ErrKeyNotFound)

	require.NoError(t, repo.Set(ctx, token, "first"))
	require.NoError(t, repo.Set(ctx, token, "second"))
	require.NoError(t, repo.Set(ctx, profile, `{"id":1}`))

	value, err := repo.Get(ctx, token)
	require.NoError(t, err)
	require.Equal(t, "second", value)

	require.NoError(t, repo.Delete(ctx, token, profile))
	_, err = repo.Get(ctx, profile)
	require.ErrorIs(t, err, model.ErrKeyNotFound)

	require.NoError(t, repo.Delete(ctx))
}

func TestDatabaseRejectsBadURL(t *testing.T) {
	t.Parallel()

	_, err := database.New(context.Background(), "://not a url", 1, 0)
	require.Error(t, err)

	var empty *database.DB
	require.Error(t, empty.EnsureSchema(context.Background()))
}
