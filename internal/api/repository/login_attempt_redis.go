package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginAttemptRepository counts failed logins per login in fixed Redis windows.
type LoginAttemptRepository struct {
	client      redis.Cmdable
	maxAttempts int
	window      time.Duration
}

func NewLoginAttemptRepository(client redis.Cmdable, maxAttempts int, window time.Duration) *LoginAttemptRepository {
	return &LoginAttemptRepository{
		client:      client,
		maxAttempts: maxAttempts,
		window:      window,
	}
}

func loginAttemptKey(login string) string {
	return fmt.Sprintf("login_attempts:%s", login)
}

// Blocked reports whether login has used up its failed attempts for the current window.
func (r *LoginAttemptRepository) Blocked(ctx context.Context, login string) (bool, error) {
	count, err := r.client.Get(ctx, loginAttemptKey(login)).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("read login attempts: %w", err)
	}
	return count >= r.maxAttempts, nil
}

// RecordFailure bumps the counter. INCR and EXPIRE NX go out in one MULTI/EXEC,
// so a counter never exists without its window; the first failure opens it.
// EXPIRE NX needs Redis 7.0 or newer.
func (r *LoginAttemptRepository) RecordFailure(ctx context.Context, login string) error {
	key := loginAttemptKey(login)

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, r.window)
		return nil
	})
	if err != nil {
		return fmt.Errorf("record login attempt: %w", err)
	}
	return nil
}

func (r *LoginAttemptRepository) Reset(ctx context.Context, login string) error {
	if err := r.client.Del(ctx, loginAttemptKey(login)).Err(); err != nil {
		return fmt.Errorf("reset login attempts: %w", err)
	}
	return nil
}
