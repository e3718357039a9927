package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCheck(t *testing.T) {
	PasswordCost = bcrypt.MinCost
	h, err := HashPassword("password")
	require.NoError(t, err)
	assert.NotEqual(t, "password", h)
	assert.True(t, CheckPassword("password", h))
	assert.False(t, CheckPassword("Password", h))
	assert.False(t, CheckPassword("password", "not-a-hash"))
}

func TestHashEmpty(t *testing.T) {
	_, err := HashPassword("")
	assert.ErrorIs(t, err, ErrEmptyPassword)
}
