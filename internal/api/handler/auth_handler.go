package handler

import (
	"errors"
	"net/http"

	"finledger/internal/api/dto"
	"finledger/internal/api/service"

	"github.com/gin-gonic/gin"
)

const (
	msgMissingCredentials = "Login e senha são obrigatórios"
	msgInvalidToken       = "Refresh token inválido, expirado ou já utilizado"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRoutes registers the public authentication routes
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/criar-conta", h.Register)
	router.POST("/login", h.Login)
	router.POST("/refresh-token", h.RefreshToken)
}

// Register creates an account
// POST /api/criar-conta
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, msgMissingCredentials)
		return
	}

	id, err := h.authService.Register(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			respondError(c, http.StatusBadRequest, msgMissingCredentials)
		case errors.Is(err, service.ErrDuplicateLogin):
			respondError(c, http.StatusBadRequest, "Login já existe")
		case errors.Is(err, service.ErrPasswordTooLong):
			respondError(c, http.StatusBadRequest, "Senha deve ter no máximo 72 bytes")
		default:
			respondInternal(c, http.StatusInternalServerError, "Erro ao criar conta", err)
		}
		return
	}

	c.JSON(http.StatusCreated, dto.RegisterResponse{
		Message: "Conta criada com sucesso",
		ID:      id,
	})
}

// Login authenticates and returns an access and refresh token
// POST /api/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, msgMissingCredentials)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			respondError(c, http.StatusBadRequest, msgMissingCredentials)
		case errors.Is(err, service.ErrInvalidCredentials):
			respondError(c, http.StatusUnauthorized, "Credenciais inválidas")
		case errors.Is(err, service.ErrTooManyAttempts):
			respondError(c, http.StatusTooManyRequests, "Muitas tentativas de login, tente novamente mais tarde")
		default:
			respondInternal(c, http.StatusInternalServerError, "Erro ao realizar login", err)
		}
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Message:      "Login realizado com sucesso",
		Token:        result.AccessToken,
		RefreshToken: result.RefreshToken,
		User: dto.UserView{
			ID:    result.User.ID,
			Login: result.User.Login,
		},
	})
}

// RefreshToken rotates a refresh token into a new token pair.
// Every rejection cause gets the same 401 message.
// POST /api/refresh-token
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Refresh token é obrigatório")
		return
	}

	pair, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			respondError(c, http.StatusBadRequest, "Refresh token é obrigatório")
		case errors.Is(err, service.ErrInvalidToken):
			respondError(c, http.StatusUnauthorized, msgInvalidToken)
		default:
			respondInternal(c, http.StatusInternalServerError, "Erro ao processar refresh token", err)
		}
		return
	}

	c.JSON(http.StatusOK, dto.RefreshResponse{
		Message:      "Token atualizado com sucesso",
		Token:        pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}
