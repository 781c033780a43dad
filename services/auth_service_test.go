package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv()

	resp, err := env.auth.Register("Alice", " Alice@Example.com ", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", resp.User.Email, "email is normalized")
	assert.NotEmpty(t, resp.Token)
	assert.Empty(t, resp.User.Password)

	login, err := env.auth.Login("alice@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)

	_, err = env.auth.Login("alice@example.com", "wrong")
	assert.Error(t, err)
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv()

	_, err := env.auth.Register("", "a@example.com", "secret123")
	assert.Error(t, err, "name is required")

	_, err = env.auth.Register("Alice", "a@example.com", "short")
	assert.Error(t, err, "password too short")

	_, err = env.auth.Register("Alice", "a@example.com", "secret123")
	require.NoError(t, err)
	_, err = env.auth.Register("Other", "A@Example.com", "secret123")
	assert.Error(t, err, "duplicate email")
}

func TestTokenRoundTrip(t *testing.T) {
	env := newTestEnv()

	resp, err := env.auth.Register("Alice", "alice@example.com", "secret123")
	require.NoError(t, err)

	claims, err := env.auth.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)

	user, err := env.auth.GetUserFromToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, user.ID)

	_, err = env.auth.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestTokenRejectedWithDifferentSecret(t *testing.T) {
	env := newTestEnv()
	other := NewAuthService(env.userRepo, "different-secret")

	resp, err := env.auth.Register("Alice", "alice@example.com", "secret123")
	require.NoError(t, err)

	_, err = other.ValidateToken(resp.Token)
	assert.Error(t, err)
}

func TestPasswordResetFlow(t *testing.T) {
	env := newTestEnv()

	_, err := env.auth.Register("Alice", "alice@example.com", "secret123")
	require.NoError(t, err)

	user, err := env.auth.RequestPasswordReset("alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	require.NotEmpty(t, user.ResetToken)

	require.NoError(t, env.auth.ResetPassword(user.ResetToken, "newsecret"))

	_, err = env.auth.Login("alice@example.com", "secret123")
	assert.Error(t, err, "old password no longer works")
	_, err = env.auth.Login("alice@example.com", "newsecret")
	assert.NoError(t, err)

	// Token is single use
	err = env.auth.ResetPassword(user.ResetToken, "another")
	assert.Error(t, err)
}

func TestPasswordResetUnknownEmail(t *testing.T) {
	env := newTestEnv()

	user, err := env.auth.RequestPasswordReset("nobody@example.com")
	assert.NoError(t, err, "unknown emails are not revealed")
	assert.Nil(t, user)
}

func TestResetPasswordValidation(t *testing.T) {
	env := newTestEnv()

	assert.Error(t, env.auth.ResetPassword("sometoken", "short"))
	assert.Error(t, env.auth.ResetPassword("bogus-token", "longenough"))
}
