package service

import (
	"context"
	"log/slog"
	"time"

	"finledger/internal/api/repository"
)

// TokenPruner deletes expired refresh token ledger rows on an interval.
// Consumed rows are kept until they expire so reuse attempts still find them.
type TokenPruner struct {
	tokens   repository.RefreshTokenRepository
	interval time.Duration
	logger   *slog.Logger
	now      func() time.Time
}

func NewTokenPruner(tokens repository.RefreshTokenRepository, interval time.Duration, logger *slog.Logger) *TokenPruner {
	return &TokenPruner{
		tokens:   tokens,
		interval: interval,
		logger:   logger,
		now:      time.Now,
	}
}

// PruneOnce removes rows that expired before now and returns how many were deleted.
func (p *TokenPruner) PruneOnce(ctx context.Context) (int64, error) {
	deleted, err := p.tokens.DeleteExpired(ctx, p.now())
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		p.logger.Info("expired_refresh_tokens_pruned", "count", deleted)
	}
	return deleted, nil
}

// Run prunes immediately and then every interval until ctx is done.
// A non-positive interval disables pruning.
func (p *TokenPruner) Run(ctx context.Context) {
	if p.interval <= 0 {
		p.logger.Info("token_pruner_disabled")
		return
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.logger.Info("token_pruner_started", "interval", p.interval.String())
	p.prune(ctx)

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("token_pruner_stopped")
			return
		case <-ticker.C:
			p.prune(ctx)
		}
	}
}

func (p *TokenPruner) prune(ctx context.Context) {
	if _, err := p.PruneOnce(ctx); err != nil && ctx.Err() == nil {
		p.logger.Error("token_prune_failed", "error", err)
	}
}
