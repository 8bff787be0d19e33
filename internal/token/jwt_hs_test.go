package token_test

import (
	"context"
	"testing"
	"time"

	"github.com/kstarostin/campfire-store-api/internal/token"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHSProvider_SignAndParse(t *testing.T) {
	provider := token.NewHSProvider("test-secret", "campfire-store")
	userID := uuid.New()

	signed, exp, err := provider.Sign(context.Background(), userID, time.Hour)
	require.NoError(t, err)
	assert.NotEmpty(t, signed)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := provider.Parse(context.Background(), signed)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.NotEmpty(t, claims.JTI)
	assert.WithinDuration(t, exp, claims.Exp, time.Second)
}

func TestHSProvider_UniqueJTIPerToken(t *testing.T) {
	provider := token.NewHSProvider("test-secret", "campfire-store")
	userID := uuid.New()

	first, _, err := provider.Sign(context.Background(), userID, time.Hour)
	require.NoError(t, err)
	second, _, err := provider.Sign(context.Background(), userID, time.Hour)
	require.NoError(t, err)

	c1, err := provider.Parse(context.Background(), first)
	require.NoError(t, err)
	c2, err := provider.Parse(context.Background(), second)
	require.NoError(t, err)
	assert.NotEqual(t, c1.JTI, c2.JTI)
}

func TestHSProvider_WrongSecret(t *testing.T) {
	provider := token.NewHSProvider("test-secret", "campfire-store")
	other := token.NewHSProvider("other-secret", "campfire-store")

	signed, _, err := provider.Sign(context.Background(), uuid.New(), time.Hour)
	require.NoError(t, err)

	_, err = other.Parse(context.Background(), signed)
	assert.Error(t, err)
}

func TestHSProvider_WrongIssuer(t *testing.T) {
	provider := token.NewHSProvider("test-secret", "campfire-store")
	other := token.NewHSProvider("test-secret", "someone-else")

	signed, _, err := provider.Sign(context.Background(), uuid.New(), time.Hour)
	require.NoError(t, err)

	_, err = other.Parse(context.Background(), signed)
	assert.Error(t, err)
}

func TestHSProvider_ExpiredToken(t *testing.T) {
	provider := token.NewHSProvider("test-secret", "campfire-store")

	signed, _, err := provider.Sign(context.Background(), uuid.New(), -time.Minute)
	require.NoError(t, err)

	_, err = provider.Parse(context.Background(), signed)
	assert.Error(t, err)
}
