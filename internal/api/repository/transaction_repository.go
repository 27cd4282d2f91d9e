package repository

import (
	"context"
	"fmt"

	"finledger/internal/api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TransactionRepository interface {
	Create(ctx context.Context, transaction *models.Transaction) error
	ListByUser(ctx context.Context, userID int64, page, pageSize int) ([]models.Transaction, error)
	Summarize(ctx context.Context, userID int64) (models.Summary, error)
	// Delete removes the transaction only if userID owns it; otherwise ErrNotFound.
	Delete(ctx context.Context, id, userID int64) error
}

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

// Create a new transaction
func (r *transactionRepository) Create(ctx context.Context, transaction *models.Transaction) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(transaction).Error; err != nil {
		return fmt.Errorf("create transaction: %w", err)
	}
	return nil
}

// ListByUser returns one page of the user's transactions, newest first
func (r *transactionRepository) ListByUser(ctx context.Context, userID int64, page, pageSize int) ([]models.Transaction, error) {
	var transactions []models.Transaction

	offset := (page - 1) * pageSize
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		Order("id DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&transactions).Error
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	return transactions, nil
}

// Summarize counts the user's transactions and totals income and expense
func (r *transactionRepository) Summarize(ctx context.Context, userID int64) (models.Summary, error) {
	var summary models.Summary

	err := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Select(
			"COUNT(*) AS count, "+
				"COALESCE(SUM(CASE WHEN kind = ? THEN amount ELSE 0 END), 0) AS income, "+
				"COALESCE(SUM(CASE WHEN kind = ? THEN amount ELSE 0 END), 0) AS expense",
			models.KindIncome, models.KindExpense,
		).
		Where("user_id = ?", userID).
		Scan(&summary).Error
	if err != nil {
		return models.Summary{}, fmt.Errorf("summarize transactions: %w", err)
	}

	return summary, nil
}

func (r *transactionRepository) Delete(ctx context.Context, id, userID int64) error {
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.Transaction{})
	if result.Error != nil {
		return fmt.Errorf("delete transaction: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
