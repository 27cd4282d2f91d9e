package service

import (
	"context"
	"testing"
	"time"

	"finledger/database"
	"finledger/internal/api/models"
	"finledger/internal/api/repository"
	"finledger/internal/auth"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestStore(t *testing.T) repository.Store {
	t.Helper()

	db, err := database.Open(database.DriverSQLite, ":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { database.Close(db) })

	return repository.NewStore(db)
}

func newTestIssuer() *auth.TokenIssuer {
	return auth.NewTokenIssuer(auth.TokenConfig{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     10 * time.Minute,
		RefreshTTL:    7 * 24 * time.Hour,
	})
}

func newTestHasher() *auth.PasswordHasher {
	return auth.NewPasswordHasher(bcrypt.MinCost)
}

// MockLoginAttemptTracker mocks the LoginAttemptTracker interface
type MockLoginAttemptTracker struct {
	mock.Mock
}

func (m *MockLoginAttemptTracker) Blocked(ctx context.Context, login string) (bool, error) {
	args := m.Called(ctx, login)
	return args.Bool(0), args.Error(1)
}

func (m *MockLoginAttemptTracker) RecordFailure(ctx context.Context, login string) error {
	args := m.Called(ctx, login)
	return args.Error(0)
}

func (m *MockLoginAttemptTracker) Reset(ctx context.Context, login string) error {
	args := m.Called(ctx, login)
	return args.Error(0)
}

// MockUserRepository mocks the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByLogin(ctx context.Context, login string) (*models.User, error) {
	args := m.Called(ctx, login)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockTransactionRepository mocks the TransactionRepository interface
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Create(ctx context.Context, transaction *models.Transaction) error {
	args := m.Called(ctx, transaction)
	return args.Error(0)
}

func (m *MockTransactionRepository) ListByUser(ctx context.Context, userID int64, page, pageSize int) ([]models.Transaction, error) {
	args := m.Called(ctx, userID, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) Summarize(ctx context.Context, userID int64) (models.Summary, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(models.Summary), args.Error(1)
}

func (m *MockTransactionRepository) Delete(ctx context.Context, id, userID int64) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// mockStore hands out mock repositories; WithTx runs fn against itself.
type mockStore struct {
	users        repository.UserRepository
	transactions repository.TransactionRepository
}

func (s *mockStore) Users() repository.UserRepository                 { return s.users }
func (s *mockStore) RefreshTokens() repository.RefreshTokenRepository { return nil }
func (s *mockStore) Transactions() repository.TransactionRepository   { return s.transactions }

func (s *mockStore) WithTx(ctx context.Context, fn func(tx repository.Store) error) error {
	return fn(s)
}

// failingRefreshIssuer signs access tokens normally but cannot issue refresh tokens.
type failingRefreshIssuer struct {
	*auth.TokenIssuer
	err error
}

func (i *failingRefreshIssuer) IssueRefreshToken(int64) (auth.IssuedToken, error) {
	return auth.IssuedToken{}, i.err
}
