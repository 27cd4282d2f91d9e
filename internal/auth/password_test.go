package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	hash, err := h.Hash("secret1")
	require.NoError(t, err)

	assert.NotEqual(t, "secret1", hash)
	assert.True(t, h.Verify("secret1", hash))
	assert.False(t, h.Verify("wrong", hash))
}

func TestPasswordHasher_Salted(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	first, err := h.Hash("secret1")
	require.NoError(t, err)
	second, err := h.Hash("secret1")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, h.Verify("secret1", first))
	assert.True(t, h.Verify("secret1", second))
}

func TestPasswordHasher_UsesConfiguredCost(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost + 1)

	hash, err := h.Hash("secret1")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost+1, cost)
}

func TestPasswordHasher_OutOfRangeCostFallsBack(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewPasswordHasher(0).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewPasswordHasher(bcrypt.MaxCost+1).cost)
}

func TestPasswordHasher_MalformedHashIsMismatch(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	assert.False(t, h.Verify("secret1", ""))
	assert.False(t, h.Verify("secret1", "not-a-bcrypt-hash"))
}

func TestPasswordHasher_TooLong(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	_, err := h.Hash(strings.Repeat("a", 73))
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}
