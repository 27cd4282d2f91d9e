package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"finledger/internal/api/models"
	"finledger/internal/api/repository"
	"finledger/internal/auth"
)

// PasswordHasher is satisfied by *auth.PasswordHasher.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hashedPassword string) bool
}

// TokenIssuer is satisfied by *auth.TokenIssuer.
type TokenIssuer interface {
	IssueAccessToken(userID int64) (auth.IssuedToken, error)
	IssueRefreshToken(userID int64) (auth.IssuedToken, error)
	VerifyRefreshToken(token string) (*auth.Claims, error)
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type LoginResult struct {
	TokenPair
	User *models.User
}

type AuthService interface {
	Register(ctx context.Context, login, password string) (int64, error)
	Login(ctx context.Context, login, password string) (*LoginResult, error)
	// Refresh consumes a refresh token and returns a new pair. Every refusal is ErrInvalidToken.
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
}

type authService struct {
	store    repository.Store
	hasher   PasswordHasher
	issuer   TokenIssuer
	attempts LoginAttemptTracker
	logger   *slog.Logger
	now      func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

type AuthServiceOption func(*authService)

func WithLoginAttemptTracker(tracker LoginAttemptTracker) AuthServiceOption {
	return func(s *authService) {
		if tracker != nil {
			s.attempts = tracker
		}
	}
}

// WithClock sets the time source used to check ledger expiry.
func WithClock(now func() time.Time) AuthServiceOption {
	return func(s *authService) {
		s.now = now
	}
}

func NewAuthService(
	store repository.Store,
	hasher PasswordHasher,
	issuer TokenIssuer,
	logger *slog.Logger,
	opts ...AuthServiceOption,
) AuthService {
	s := &authService{
		store:    store,
		hasher:   hasher,
		issuer:   issuer,
		attempts: NoopLoginAttemptTracker{},
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register hashes the password and creates the account, returning its id.
func (s *authService) Register(ctx context.Context, login, password string) (int64, error) {
	if login == "" || password == "" {
		return 0, ErrValidation
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return 0, ErrPasswordTooLong
		}
		return 0, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Login:        login,
		PasswordHash: hashed,
	}
	if err := s.store.Users().Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateLogin) {
			return 0, ErrDuplicateLogin
		}
		return 0, err
	}

	s.logger.Info("user_registered", "user_id", user.ID)
	return user.ID, nil
}

// Login authenticates a user and returns a fresh access and refresh token pair.
func (s *authService) Login(ctx context.Context, login, password string) (*LoginResult, error) {
	if login == "" || password == "" {
		return nil, ErrValidation
	}

	blocked, err := s.attempts.Blocked(ctx, login)
	if err != nil {
		s.logger.Warn("login_attempts_unavailable", "error", err)
	} else if blocked {
		s.logger.Warn("login_throttled", "login", login)
		return nil, ErrTooManyAttempts
	}

	user, err := s.store.Users().FindByLogin(ctx, login)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		// User not found: still pay for a bcrypt comparison so both failures take the same time
		s.hasher.Verify(password, s.dummyPasswordHash())
		s.recordFailure(ctx, login)
		return nil, ErrInvalidCredentials
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.recordFailure(ctx, login)
		return nil, ErrInvalidCredentials
	}

	if err := s.attempts.Reset(ctx, login); err != nil {
		s.logger.Warn("login_attempts_reset_failed", "error", err)
	}

	pair, err := s.issuePair(ctx, s.store, user.ID)
	if err != nil {
		return nil, err
	}

	return &LoginResult{TokenPair: *pair, User: user}, nil
}

// Refresh rotates a refresh token: the presented token must verify, match an
// unconsumed and unexpired ledger row, and win the consume; the replacement is
// written in the same transaction.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	if refreshToken == "" {
		return nil, ErrValidation
	}

	claims, err := s.issuer.VerifyRefreshToken(refreshToken)
	if err != nil {
		s.logger.Warn("refresh_token_rejected", "reason", err.Error())
		return nil, ErrInvalidToken
	}

	var pair *TokenPair
	err = s.store.WithTx(ctx, func(tx repository.Store) error {
		entry, err := tx.RefreshTokens().FindUnconsumed(ctx, refreshToken)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				s.logger.Warn("refresh_token_reuse_or_unknown", "user_id", claims.UserID)
				return ErrInvalidToken
			}
			return err
		}

		if !entry.Active(s.now()) {
			s.logger.Warn("refresh_token_expired", "user_id", claims.UserID, "token_id", entry.ID)
			return ErrInvalidToken
		}
		if entry.UserID != claims.UserID {
			s.logger.Warn("refresh_token_owner_mismatch", "user_id", claims.UserID, "token_id", entry.ID)
			return ErrInvalidToken
		}

		if err := tx.RefreshTokens().MarkConsumed(ctx, entry.ID); err != nil {
			if errors.Is(err, repository.ErrAlreadyConsumed) {
				s.logger.Warn("refresh_token_reuse_or_unknown", "user_id", claims.UserID, "token_id", entry.ID)
				return ErrInvalidToken
			}
			return err
		}

		pair, err = s.issuePair(ctx, tx, claims.UserID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return pair, nil
}

// issuePair mints an access and refresh token and records the refresh token in store's ledger.
func (s *authService) issuePair(ctx context.Context, store repository.Store, userID int64) (*TokenPair, error) {
	access, err := s.issuer.IssueAccessToken(userID)
	if err != nil {
		return nil, err
	}

	refresh, err := s.issuer.IssueRefreshToken(userID)
	if err != nil {
		return nil, err
	}

	entry := &models.RefreshToken{
		UserID:    userID,
		Token:     refresh.Token,
		ExpiresAt: refresh.ExpiresAt,
	}
	if err := store.RefreshTokens().Create(ctx, entry); err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: access.Token, RefreshToken: refresh.Token}, nil
}

func (s *authService) recordFailure(ctx context.Context, login string) {
	if err := s.attempts.RecordFailure(ctx, login); err != nil {
		s.logger.Warn("login_attempts_record_failed", "error", err)
	}
}

// dummyPasswordHash is computed once with the configured hasher so its cost matches real hashes.
func (s *authService) dummyPasswordHash() string {
	s.dummyOnce.Do(func() {
		hashed, err := s.hasher.Hash("finledger-dummy-password")
		if err != nil {
			s.logger.Error("dummy_hash_failed", "error", err)
			return
		}
		s.dummyHash = hashed
	})
	return s.dummyHash
}
