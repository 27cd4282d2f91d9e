package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store groups the repositories over one database handle.
// WithTx hands fn a Store whose repositories all share a single transaction.
type Store interface {
	Users() UserRepository
	RefreshTokens() RefreshTokenRepository
	Transactions() TransactionRepository
	WithTx(ctx context.Context, fn func(tx Store) error) error
}

type gormStore struct {
	db *gorm.DB
}

// NewStore creates a Store backed by GORM
func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Users() UserRepository {
	return NewUserRepository(s.db)
}

func (s *gormStore) RefreshTokens() RefreshTokenRepository {
	return NewRefreshTokenRepository(s.db)
}

func (s *gormStore) Transactions() TransactionRepository {
	return NewTransactionRepository(s.db)
}

// WithTx commits when fn returns nil and rolls back on error or panic.
func (s *gormStore) WithTx(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}
