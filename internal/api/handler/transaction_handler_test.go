package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"finledger/internal/api/dto"
	"finledger/internal/api/middleware"
	"finledger/internal/api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockTransactionService mocks the TransactionService interface
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) ListTransactions(ctx context.Context, userID int64, page, limit int) (*dto.TransactionListResponse, error) {
	args := m.Called(userID, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TransactionListResponse), args.Error(1)
}

func (m *MockTransactionService) CreateTransaction(ctx context.Context, userID int64, req dto.CreateTransactionRequest) (int64, error) {
	args := m.Called(userID, req)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTransactionService) DeleteTransaction(ctx context.Context, userID, transactionID int64) error {
	args := m.Called(userID, transactionID)
	return args.Error(0)
}

// newTransactionRouter stands in for the auth middleware by binding user 7.
func newTransactionRouter(svc service.TransactionService) *gin.Engine {
	router := setupRouter()
	api := router.Group("/api", func(c *gin.Context) {
		c.Set(middleware.UserIDKey, int64(7))
		c.Next()
	})
	NewTransactionHandler(svc).RegisterRoutes(api)
	return router
}

func doRequest(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestListTransactions_PassesQuery(t *testing.T) {
	mockService := new(MockTransactionService)
	router := newTransactionRouter(mockService)

	mockService.On("ListTransactions", int64(7), 2, 5).Return(&dto.TransactionListResponse{
		Transactions: []dto.TransactionResponse{},
		Pagination:   dto.Pagination{CurrentPage: 2, Limit: 5},
	}, nil)

	w := doRequest(router, "GET", "/api/transacoes?pagina=2&limite=5")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"paginaAtual":2`)
	assert.Contains(t, w.Body.String(), `"transacoes":[]`)
	mockService.AssertExpectations(t)
}

func TestListTransactions_UnparsableQueryFallsBack(t *testing.T) {
	mockService := new(MockTransactionService)
	router := newTransactionRouter(mockService)

	mockService.On("ListTransactions", int64(7), 0, 0).Return(&dto.TransactionListResponse{}, nil)

	w := doRequest(router, "GET", "/api/transacoes?pagina=abc")

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestListTransactions_StorageError(t *testing.T) {
	mockService := new(MockTransactionService)
	router := newTransactionRouter(mockService)

	mockService.On("ListTransactions", int64(7), 0, 0).Return(nil, errors.New("db down"))

	w := doRequest(router, "GET", "/api/transacoes")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Erro ao buscar transações", errorMessage(t, w))
}

func TestCreateTransaction_Success(t *testing.T) {
	mockService := new(MockTransactionService)
	router := newTransactionRouter(mockService)

	mockService.On("CreateTransaction", int64(7), mock.MatchedBy(func(req dto.CreateTransactionRequest) bool {
		return req.Name == "Salário" && req.Amount != nil && *req.Amount == 500000 && req.Kind == "entrada"
	})).Return(int64(3), nil)

	w := postJSON(router, "/api/transacoes", `{"nome":"Salário","valor":500000,"categoria":"trabalho","tipo":"entrada"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"mensagem":"Transação criada com sucesso","id":3}`, w.Body.String())
}

func TestCreateTransaction_BindingErrors(t *testing.T) {
	router := newTransactionRouter(new(MockTransactionService))

	w := postJSON(router, "/api/transacoes", `{"nome":"x","categoria":"y","tipo":"entrada"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Nome, valor, categoria e tipo são obrigatórios", errorMessage(t, w))

	w = postJSON(router, "/api/transacoes", `{"nome":"x","valor":"100","categoria":"y","tipo":"entrada"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Valor deve ser um número positivo em centavos", errorMessage(t, w))
}

func TestCreateTransaction_ValidationError(t *testing.T) {
	mockService := new(MockTransactionService)
	router := newTransactionRouter(mockService)

	mockService.On("CreateTransaction", int64(7), mock.Anything).
		Return(int64(0), &service.ValidationError{Message: `Tipo deve ser "entrada" ou "saida"`})

	w := postJSON(router, "/api/transacoes", `{"nome":"x","valor":1,"categoria":"y","tipo":"outro"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, `Tipo deve ser "entrada" ou "saida"`, errorMessage(t, w))
}

func TestDeleteTransaction(t *testing.T) {
	mockService := new(MockTransactionService)
	router := newTransactionRouter(mockService)

	mockService.On("DeleteTransaction", int64(7), int64(3)).Return(nil)
	mockService.On("DeleteTransaction", int64(7), int64(4)).Return(service.ErrTransactionNotFound)
	mockService.On("DeleteTransaction", int64(7), int64(5)).Return(errors.New("db down"))

	w := doRequest(router, "DELETE", "/api/transacoes/3")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"mensagem":"Transação deletada com sucesso"}`, w.Body.String())

	w = doRequest(router, "DELETE", "/api/transacoes/4")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Transação não encontrada", errorMessage(t, w))

	w = doRequest(router, "DELETE", "/api/transacoes/5")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Erro ao deletar transação", errorMessage(t, w))

	w = doRequest(router, "DELETE", "/api/transacoes/abc")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
