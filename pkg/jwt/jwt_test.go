package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-smart-inventory/internal/model"
)

func TestGenerateAndVerify(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)

	token, err := tm.Generate("alice@example.com", model.RoleAdmin)
	require.NoError(t, err)

	claims, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims.Subject)
	assert.Equal(t, model.RoleAdmin, claims.Role)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestVerify_Expired(t *testing.T) {
	tm := NewTokenManager("secret", -time.Minute)

	token, err := tm.Generate("alice@example.com", model.RoleStaff)
	require.NoError(t, err)

	_, err = tm.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_WrongSecret(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	other := NewTokenManager("different-secret", time.Hour)

	token, err := tm.Generate("alice@example.com", model.RoleStaff)
	require.NoError(t, err)

	_, err = other.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Garbage(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	_, err := tm.Verify("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
