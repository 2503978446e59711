package storage

import (
	"context"
	"os"
	"testing"
	"time"

	"cafe-site/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Integration test against a migrated database. Skipped unless
// TEST_DATABASE_URL is set (run `cafe-site migrate` against it first).
func TestPostgresStore_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("skipping postgres integration test: TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	defer pool.Close()

	store := NewPostgresStore(pool)

	doc := models.DefaultCafeData()
	require.NoError(t, store.Content.Replace(ctx, doc))
	got, err := store.Content.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, doc, got)

	email := "it-" + uuid.NewString() + "@example.com"
	u := &models.User{
		ID: uuid.NewString(), FirstName: "Int", LastName: "Test", Email: email,
		PasswordHash: "x", CreatedAt: time.Now().UTC().Truncate(time.Microsecond), IsActive: true,
	}
	require.NoError(t, store.Users.Create(ctx, u))
	assert.ErrorIs(t, store.Users.Create(ctx, &models.User{ID: uuid.NewString(), Email: email, CreatedAt: time.Now()}), ErrDuplicateEmail)

	byEmail, err := store.Users.ByEmail(ctx, email)
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	s := &models.Session{Handle: uuid.NewString(), UserID: u.ID, CreatedAt: time.Now(), ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, store.Sessions.Create(ctx, s))
	gotS, err := store.Sessions.Get(ctx, s.Handle)
	require.NoError(t, err)
	assert.Equal(t, u.ID, gotS.UserID)
	require.NoError(t, store.Sessions.Delete(ctx, s.Handle))
	_, err = store.Sessions.Get(ctx, s.Handle)
	assert.ErrorIs(t, err, ErrNotFound)
}
