package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginAttemptRepository_BlockedAfterMaxAttempts(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := NewLoginAttemptRepository(client, 3, 15*time.Minute)
	ctx := context.Background()

	mock.ExpectGet("login_attempts:alice").RedisNil()
	blocked, err := repo.Blocked(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, blocked)

	mock.ExpectGet("login_attempts:alice").SetVal("2")
	blocked, err = repo.Blocked(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, blocked)

	mock.ExpectGet("login_attempts:alice").SetVal("3")
	blocked, err = repo.Blocked(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, blocked)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginAttemptRepository_RecordFailureSetsWindowWithCounter(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := NewLoginAttemptRepository(client, 3, 15*time.Minute)
	ctx := context.Background()

	// first failure opens the window
	mock.ExpectTxPipeline()
	mock.ExpectIncr("login_attempts:alice").SetVal(1)
	mock.ExpectExpireNX("login_attempts:alice", 15*time.Minute).SetVal(true)
	mock.ExpectTxPipelineExec()
	require.NoError(t, repo.RecordFailure(ctx, "alice"))

	// later failures keep the existing window
	mock.ExpectTxPipeline()
	mock.ExpectIncr("login_attempts:alice").SetVal(2)
	mock.ExpectExpireNX("login_attempts:alice", 15*time.Minute).SetVal(false)
	mock.ExpectTxPipelineExec()
	require.NoError(t, repo.RecordFailure(ctx, "alice"))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginAttemptRepository_RecordFailureRestoresMissingWindow(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := NewLoginAttemptRepository(client, 3, 15*time.Minute)

	// a counter left without a TTL gets one on the next failure
	mock.ExpectTxPipeline()
	mock.ExpectIncr("login_attempts:alice").SetVal(4)
	mock.ExpectExpireNX("login_attempts:alice", 15*time.Minute).SetVal(true)
	mock.ExpectTxPipelineExec()
	require.NoError(t, repo.RecordFailure(context.Background(), "alice"))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginAttemptRepository_Reset(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := NewLoginAttemptRepository(client, 3, 15*time.Minute)

	mock.ExpectDel("login_attempts:alice").SetVal(1)
	require.NoError(t, repo.Reset(context.Background(), "alice"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginAttemptRepository_RedisErrors(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := NewLoginAttemptRepository(client, 3, 15*time.Minute)
	ctx := context.Background()

	mock.ExpectGet("login_attempts:alice").SetErr(errors.New("connection refused"))
	_, err := repo.Blocked(ctx, "alice")
	assert.ErrorContains(t, err, "read login attempts")

	mock.ExpectTxPipeline()
	mock.ExpectIncr("login_attempts:alice").SetErr(errors.New("connection refused"))
	mock.ExpectExpireNX("login_attempts:alice", 15*time.Minute).SetVal(true)
	mock.ExpectTxPipelineExec()
	assert.ErrorContains(t, repo.RecordFailure(ctx, "alice"), "record login attempt")
}
