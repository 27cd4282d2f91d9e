package service

import (
	"context"
	"errors"
	"math"

	"finledger/internal/api/dto"
	"finledger/internal/api/models"
	"finledger/internal/api/repository"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

type TransactionService interface {
	ListTransactions(ctx context.Context, userID int64, page, limit int) (*dto.TransactionListResponse, error)
	CreateTransaction(ctx context.Context, userID int64, req dto.CreateTransactionRequest) (int64, error)
	DeleteTransaction(ctx context.Context, userID, transactionID int64) error
}

type transactionService struct {
	transactions repository.TransactionRepository
}

func NewTransactionService(transactions repository.TransactionRepository) TransactionService {
	return &transactionService{transactions: transactions}
}

// ListTransactions returns one page of the user's transactions with totals over all of them.
// Page and limit below 1 fall back to the defaults; limit is capped at MaxLimit.
func (s *transactionService) ListTransactions(ctx context.Context, userID int64, page, limit int) (*dto.TransactionListResponse, error) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	// an offset past math.MaxInt would wrap around, and no page can start there anyway
	var items []models.Transaction
	if page <= math.MaxInt/limit {
		var err error
		items, err = s.transactions.ListByUser(ctx, userID, page, limit)
		if err != nil {
			return nil, err
		}
	}

	summary, err := s.transactions.Summarize(ctx, userID)
	if err != nil {
		return nil, err
	}

	return dto.NewTransactionListResponse(items, summary, page, limit), nil
}

// CreateTransaction validates and stores a transaction owned by userID.
func (s *transactionService) CreateTransaction(ctx context.Context, userID int64, req dto.CreateTransactionRequest) (int64, error) {
	if req.Name == "" || req.Amount == nil || req.Category == "" || req.Kind == "" {
		return 0, &ValidationError{Message: "Nome, valor, categoria e tipo são obrigatórios"}
	}
	if req.Kind != models.KindIncome && req.Kind != models.KindExpense {
		return 0, &ValidationError{Message: `Tipo deve ser "entrada" ou "saida"`}
	}

	amount := *req.Amount
	if amount < 0 || amount != math.Trunc(amount) || amount >= math.MaxInt64 {
		return 0, &ValidationError{Message: "Valor deve ser um número positivo em centavos"}
	}

	transaction := &models.Transaction{
		UserID:   userID,
		Name:     req.Name,
		Amount:   int64(amount),
		Category: req.Category,
		Kind:     req.Kind,
	}
	if err := s.transactions.Create(ctx, transaction); err != nil {
		return 0, err
	}

	return transaction.ID, nil
}

func (s *transactionService) DeleteTransaction(ctx context.Context, userID, transactionID int64) error {
	if err := s.transactions.Delete(ctx, transactionID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTransactionNotFound
		}
		return err
	}
	return nil
}
