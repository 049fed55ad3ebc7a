package util

import (
	"testing"
	"time"

	"perf_eval_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	user := &model.User{
		Name:  "Evaluator One",
		Email: "one@example.com",
		Role:  model.Evaluator,
	}
	user.ID = 42

	token, err := GenerateJWT(user, "test-secret", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseJWT(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, model.Evaluator, claims.Role)
	assert.Equal(t, "one@example.com", claims.Email)
}

func TestJWTWrongSecretRejected(t *testing.T) {
	user := &model.User{Email: "one@example.com", Role: model.Admin}
	user.ID = 1

	token, err := GenerateJWT(user, "secret-a", time.Hour)
	require.NoError(t, err)

	_, err = ParseJWT(token, "secret-b")
	assert.Error(t, err)
}

func TestJWTExpiredRejected(t *testing.T) {
	user := &model.User{Email: "one@example.com", Role: model.Admin}
	user.ID = 1

	token, err := GenerateJWT(user, "secret", -time.Minute)
	require.NoError(t, err)

	_, err = ParseJWT(token, "secret")
	assert.Error(t, err)
}
