package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"finledger/internal/api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RefreshTokenRepository is the refresh token ledger.
type RefreshTokenRepository interface {
	// Create records a new unconsumed entry.
	Create(ctx context.Context, token *models.RefreshToken) error
	// FindUnconsumed looks up an entry by its exact token string among unconsumed rows.
	// Expiry is not checked here.
	FindUnconsumed(ctx context.Context, token string) (*models.RefreshToken, error)
	// MarkConsumed flips consumed to true. Returns ErrAlreadyConsumed if another
	// caller got there first.
	MarkConsumed(ctx context.Context, id int64) error
	// DeleteExpired removes entries that expired before the given instant.
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// refreshTokenRepository is the GORM implementation of RefreshTokenRepository
type refreshTokenRepository struct {
	db *gorm.DB
}

// NewRefreshTokenRepository creates a new instance of RefreshTokenRepository
func NewRefreshTokenRepository(db *gorm.DB) RefreshTokenRepository {
	return &refreshTokenRepository{db: db}
}

func (r *refreshTokenRepository) Create(ctx context.Context, token *models.RefreshToken) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(token).Error; err != nil {
		return fmt.Errorf("create refresh token: %w", err)
	}
	return nil
}

func (r *refreshTokenRepository) FindUnconsumed(ctx context.Context, token string) (*models.RefreshToken, error) {
	var refreshToken models.RefreshToken
	err := r.db.WithContext(ctx).
		Where("token = ? AND consumed = ?", token, false).
		First(&refreshToken).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find refresh token: %w", err)
	}
	return &refreshToken, nil
}

// MarkConsumed is a single conditional UPDATE: of two concurrent rotations of
// the same token only one sees an affected row.
func (r *refreshTokenRepository) MarkConsumed(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).
		Model(&models.RefreshToken{}).
		Where("id = ? AND consumed = ?", id, false).
		Update("consumed", true)
	if result.Error != nil {
		return fmt.Errorf("mark refresh token consumed: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrAlreadyConsumed
	}
	return nil
}

func (r *refreshTokenRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ?", before).
		Delete(&models.RefreshToken{})
	if result.Error != nil {
		return 0, fmt.Errorf("delete expired refresh tokens: %w", result.Error)
	}
	return result.RowsAffected, nil
}
