package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether a dependency is reachable.
type Pinger func(ctx context.Context) error

type IndexHandler struct {
	ping Pinger
}

func NewIndexHandler(ping Pinger) *IndexHandler {
	return &IndexHandler{ping: ping}
}

func (h *IndexHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/", h.Index)
	router.GET("/health", h.Health)
}

// Index lists the public endpoints
// GET /
func (h *IndexHandler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"mensagem": "API Finance - Gerenciador de Transações",
		"endpoints": gin.H{
			"POST /api/criar-conta":      "Criar nova conta (login, senha)",
			"POST /api/login":            "Fazer login (login, senha)",
			"POST /api/refresh-token":    "Renovar token de acesso (refreshToken)",
			"GET /api/transacoes":        "Listar transações com paginação (requer autenticação) - Query params: pagina, limite",
			"POST /api/transacoes":       "Criar transação (requer autenticação)",
			"DELETE /api/transacoes/:id": "Deletar transação (requer autenticação)",
		},
	})
}

// Health checks the database connection
// GET /health
func (h *IndexHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.ping(ctx); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
