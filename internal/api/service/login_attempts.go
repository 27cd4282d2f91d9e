package service

import "context"

// LoginAttemptTracker throttles repeated failed logins for the same login.
type LoginAttemptTracker interface {
	Blocked(ctx context.Context, login string) (bool, error)
	RecordFailure(ctx context.Context, login string) error
	Reset(ctx context.Context, login string) error
}

// NoopLoginAttemptTracker never blocks. Used when Redis is not configured.
type NoopLoginAttemptTracker struct{}

func (NoopLoginAttemptTracker) Blocked(context.Context, string) (bool, error) { return false, nil }
func (NoopLoginAttemptTracker) RecordFailure(context.Context, string) error   { return nil }
func (NoopLoginAttemptTracker) Reset(context.Context, string) error           { return nil }
