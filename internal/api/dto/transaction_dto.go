package dto

import (
	"time"

	"finledger/internal/api/models"
)

// CreateTransactionRequest for recording a transaction.
// Valor is decoded as a number so the service can reject fractional cents explicitly.
type CreateTransactionRequest struct {
	Name     string   `json:"nome" binding:"required"`
	Amount   *float64 `json:"valor" binding:"required"`
	Category string   `json:"categoria" binding:"required"`
	Kind     string   `json:"tipo" binding:"required"`
}

type CreateTransactionResponse struct {
	Message string `json:"mensagem"`
	ID      int64  `json:"id"`
}

// TransactionResponse for returning a single transaction
type TransactionResponse struct {
	ID       int64     `json:"id"`
	UserID   int64     `json:"usuario_id"`
	Name     string    `json:"nome"`
	Amount   int64     `json:"valor"`
	Category string    `json:"categoria"`
	Kind     string    `json:"tipo"`
	Date     time.Time `json:"data"`
}

// FromModelToTransactionResponse converts a Transaction model to TransactionResponse DTO
func FromModelToTransactionResponse(t *models.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:       t.ID,
		UserID:   t.UserID,
		Name:     t.Name,
		Amount:   t.Amount,
		Category: t.Category,
		Kind:     t.Kind,
		Date:     t.Date,
	}
}

type Pagination struct {
	CurrentPage int   `json:"paginaAtual"`
	Limit       int   `json:"limite"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"totalPaginas"`
	HasNext     bool  `json:"temProxima"`
	HasPrevious bool  `json:"temAnterior"`
}

// SummaryResponse: balance is income minus expense
type SummaryResponse struct {
	Balance int64 `json:"total"`
	Income  int64 `json:"entradas"`
	Expense int64 `json:"saidas"`
}

type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transacoes"`
	Pagination   Pagination            `json:"paginacao"`
	Summary      SummaryResponse       `json:"resumo"`
}

// NewTransactionListResponse creates a paginated transaction response
func NewTransactionListResponse(items []models.Transaction, summary models.Summary, page, limit int) *TransactionListResponse {
	data := make([]TransactionResponse, 0, len(items))
	for i := range items {
		data = append(data, FromModelToTransactionResponse(&items[i]))
	}

	totalPages := int(summary.Count) / limit
	if int(summary.Count)%limit != 0 {
		totalPages++
	}

	return &TransactionListResponse{
		Transactions: data,
		Pagination: Pagination{
			CurrentPage: page,
			Limit:       limit,
			Total:       summary.Count,
			TotalPages:  totalPages,
			HasNext:     page < totalPages,
			HasPrevious: page > 1,
		},
		Summary: SummaryResponse{
			Balance: summary.Income - summary.Expense,
			Income:  summary.Income,
			Expense: summary.Expense,
		},
	}
}
