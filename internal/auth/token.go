// Package auth holds the credential primitives: bcrypt password hashing and
// the HS256 access/refresh token issuer.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token has expired")
)

// Claims is the payload of both access and refresh tokens.
// The user id travels as "id"; jti makes every token string unique.
type Claims struct {
	UserID int64 `json:"id"`
	jwt.RegisteredClaims
}

// IssuedToken is a signed token together with the expiry encoded in it.
type IssuedToken struct {
	Token     string
	ExpiresAt time.Time
}

type TokenConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

// TokenIssuer signs and verifies access and refresh tokens.
// The two kinds use distinct secrets so neither can stand in for the other.
type TokenIssuer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

func NewTokenIssuer(cfg TokenConfig) *TokenIssuer {
	return &TokenIssuer{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessTTL:     cfg.AccessTTL,
		refreshTTL:    cfg.RefreshTTL,
		now:           time.Now,
	}
}

// WithClock replaces the issuer's time source. Intended for tests.
func (i *TokenIssuer) WithClock(now func() time.Time) *TokenIssuer {
	i.now = now
	return i
}

func (i *TokenIssuer) IssueAccessToken(userID int64) (IssuedToken, error) {
	return i.sign(userID, i.accessSecret, i.accessTTL)
}

func (i *TokenIssuer) IssueRefreshToken(userID int64) (IssuedToken, error) {
	return i.sign(userID, i.refreshSecret, i.refreshTTL)
}

func (i *TokenIssuer) VerifyAccessToken(token string) (*Claims, error) {
	return i.verify(token, i.accessSecret)
}

func (i *TokenIssuer) VerifyRefreshToken(token string) (*Claims, error) {
	return i.verify(token, i.refreshSecret)
}

func (i *TokenIssuer) sign(userID int64, secret []byte, ttl time.Duration) (IssuedToken, error) {
	now := i.now()
	issuedAt := jwt.NewNumericDate(now)
	expiresAt := jwt.NewNumericDate(now.Add(ttl))

	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  issuedAt,
			ExpiresAt: expiresAt,
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return IssuedToken{}, fmt.Errorf("sign token: %w", err)
	}

	// expiresAt is already truncated to the JWT's second precision
	return IssuedToken{Token: signed, ExpiresAt: expiresAt.Time}, nil
}

func (i *TokenIssuer) verify(tokenString string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid || claims.UserID <= 0 {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
