package dto

// Data Transfer Objects for authentication requests and responses.
// Field names on the wire follow the public API contract (Portuguese).

// RegisterRequest: payload for account creation
type RegisterRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"senha" binding:"required"`
}

// LoginRequest: payload for user login
type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"senha" binding:"required"`
}

// RegisterResponse: response payload after successful registration
type RegisterResponse struct {
	Message string `json:"mensagem"`
	ID      int64  `json:"id"`
}

// UserView is the public view of an account
type UserView struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
}

// LoginResponse: response payload after successful authentication
type LoginResponse struct {
	Message      string   `json:"mensagem"`
	Token        string   `json:"token"`
	RefreshToken string   `json:"refreshToken"`
	User         UserView `json:"usuario"`
}

// RefreshTokenRequest: payload for rotating a refresh token
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// RefreshResponse: response payload after a successful rotation
type RefreshResponse struct {
	Message      string `json:"mensagem"`
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

// ErrorResponse is the single error shape returned by every endpoint
type ErrorResponse struct {
	Error string `json:"erro"`
}

type MessageResponse struct {
	Message string `json:"mensagem"`
}
