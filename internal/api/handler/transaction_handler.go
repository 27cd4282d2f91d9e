package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"finledger/internal/api/dto"
	"finledger/internal/api/middleware"
	"finledger/internal/api/service"

	"github.com/gin-gonic/gin"
)

const (
	msgMissingFields = "Nome, valor, categoria e tipo são obrigatórios"
	msgInvalidAmount = "Valor deve ser um número positivo em centavos"
)

type TransactionHandler struct {
	transactionService service.TransactionService
}

func NewTransactionHandler(transactionService service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// RegisterRoutes registers transaction routes (already authenticated by parent middleware)
func (h *TransactionHandler) RegisterRoutes(router *gin.RouterGroup) {
	transactions := router.Group("/transacoes")
	{
		transactions.GET("", h.List)
		transactions.POST("", h.Create)
		transactions.DELETE("/:id", h.Delete)
	}
}

// List returns the caller's transactions with pagination and totals
// GET /api/transacoes?pagina=1&limite=10
func (h *TransactionHandler) List(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Token não fornecido")
		return
	}

	// unparsable values fall back to the defaults in the service
	page, _ := strconv.Atoi(c.Query("pagina"))
	limit, _ := strconv.Atoi(c.Query("limite"))

	resp, err := h.transactionService.ListTransactions(c.Request.Context(), userID, page, limit)
	if err != nil {
		respondInternal(c, http.StatusInternalServerError, "Erro ao buscar transações", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Create records a transaction for the caller
// POST /api/transacoes
func (h *TransactionHandler) Create(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Token não fornecido")
		return
	}

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field == "valor" {
			respondError(c, http.StatusBadRequest, msgInvalidAmount)
			return
		}
		respondError(c, http.StatusBadRequest, msgMissingFields)
		return
	}

	id, err := h.transactionService.CreateTransaction(c.Request.Context(), userID, req)
	if err != nil {
		var validationErr *service.ValidationError
		if errors.As(err, &validationErr) {
			respondError(c, http.StatusBadRequest, validationErr.Message)
			return
		}
		respondInternal(c, http.StatusInternalServerError, "Erro ao criar transação", err)
		return
	}

	c.JSON(http.StatusCreated, dto.CreateTransactionResponse{
		Message: "Transação criada com sucesso",
		ID:      id,
	})
}

// Delete removes one of the caller's transactions
// DELETE /api/transacoes/:id
func (h *TransactionHandler) Delete(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Token não fornecido")
		return
	}

	transactionID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "ID de transação inválido")
		return
	}

	if err := h.transactionService.DeleteTransaction(c.Request.Context(), userID, transactionID); err != nil {
		if errors.Is(err, service.ErrTransactionNotFound) {
			respondError(c, http.StatusNotFound, "Transação não encontrada")
			return
		}
		respondInternal(c, http.StatusInternalServerError, "Erro ao deletar transação", err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Transação deletada com sucesso"})
}
