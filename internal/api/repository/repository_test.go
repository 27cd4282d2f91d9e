package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"finledger/database"
	"finledger/internal/api/models"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(database.DriverSQLite, ":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { database.Close(db) })

	return db
}

func createUser(t *testing.T, store Store, login string) *models.User {
	t.Helper()

	user := &models.User{Login: login, PasswordHash: "hash"}
	require.NoError(t, store.Users().Create(context.Background(), user))
	return user
}

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"gorm translated", gorm.ErrDuplicatedKey, true},
		{"wrapped gorm", fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey), true},
		{"postgres unique", &pgconn.PgError{Code: "23505"}, true},
		{"postgres fk", &pgconn.PgError{Code: "23503"}, false},
		{"sqlite message", errors.New("constraint failed: UNIQUE constraint failed: users.login (2067)"), true},
		{"other", errors.New("connection refused"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isUniqueViolation(tt.err))
		})
	}
}

func TestStore_WithTxRollsBackOnError(t *testing.T) {
	store := NewStore(newTestDB(t))
	ctx := context.Background()
	boom := errors.New("boom")

	err := store.WithTx(ctx, func(tx Store) error {
		require.NoError(t, tx.Users().Create(ctx, &models.User{Login: "alice", PasswordHash: "hash"}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = store.Users().FindByLogin(ctx, "alice")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_WithTxCommits(t *testing.T) {
	store := NewStore(newTestDB(t))
	ctx := context.Background()

	err := store.WithTx(ctx, func(tx Store) error {
		return tx.Users().Create(ctx, &models.User{Login: "alice", PasswordHash: "hash"})
	})
	require.NoError(t, err)

	user, err := store.Users().FindByLogin(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Login)
}
