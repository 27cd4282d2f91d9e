// Package api assembles the HTTP surface of the ledger.
package api

import (
	"log/slog"
	"net/http"

	"finledger/internal/api/dto"
	"finledger/internal/api/handler"
	"finledger/internal/api/middleware"
	"finledger/internal/api/service"

	"github.com/gin-gonic/gin"
)

type Dependencies struct {
	AuthService        service.AuthService
	TransactionService service.TransactionService
	Verifier           middleware.AccessTokenVerifier
	Ping               handler.Pinger
	Logger             *slog.Logger
	// RateLimiter is optional; nil disables per-IP limiting
	RateLimiter *middleware.IPRateLimiter
	// TrustedProxies may set X-Forwarded-For / X-Real-IP; empty means the client IP is the peer address
	TrustedProxies []string
}

// NewRouter wires handlers and middleware into a gin engine.
func NewRouter(deps Dependencies) *gin.Engine {
	r := gin.New()
	if err := r.SetTrustedProxies(deps.TrustedProxies); err != nil {
		deps.Logger.Warn("invalid_trusted_proxies", "error", err)
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(deps.Logger))
	if deps.RateLimiter != nil {
		r.Use(middleware.RateLimit(deps.RateLimiter))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Rota não encontrada"})
	})

	handler.NewIndexHandler(deps.Ping).RegisterRoutes(r)

	// Public routes
	apiGroup := r.Group("/api")
	handler.NewAuthHandler(deps.AuthService).RegisterRoutes(apiGroup)

	// Protected routes
	protected := apiGroup.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Verifier))
	handler.NewTransactionHandler(deps.TransactionService).RegisterRoutes(protected)

	return r
}
