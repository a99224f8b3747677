package auth

import (
	"testing"

	"taskman/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.JWT = "test_jwt_secret_key_very_long_for_testing"

	return cfg
}

func TestJWTService_IssueAndVerify(t *testing.T) {
	svc, err := NewJWTService(newTestConfig())
	require.NoError(t, err)
	require.NotNil(t, svc)

	userID := primitive.NewObjectID().Hex()

	token, err := svc.Issue(userID)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	got, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestJWTService_InvalidToken(t *testing.T) {
	svc, err := NewJWTService(newTestConfig())
	require.NoError(t, err)

	got, err := svc.Verify("clearly-not-a-jwt-token-format")
	assert.Error(t, err)
	assert.Empty(t, got)
}

func TestJWTService_WrongSecret(t *testing.T) {
	svc, err := NewJWTService(newTestConfig())
	require.NoError(t, err)

	otherCfg := &config.Config{}
	otherCfg.SecretKey.JWT = "a_completely_different_secret"
	other, err := NewJWTService(otherCfg)
	require.NoError(t, err)

	token, err := other.Issue(primitive.NewObjectID().Hex())
	require.NoError(t, err)

	got, err := svc.Verify(token)
	assert.Error(t, err)
	assert.Empty(t, got)
}

func TestJWTService_RejectsUnsignedToken(t *testing.T) {
	svc, err := NewJWTService(newTestConfig())
	require.NoError(t, err)

	// alg=none tokens must never verify.
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "someone"})
	tokenString, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	got, err := svc.Verify(tokenString)
	assert.Error(t, err)
	assert.Empty(t, got)
}

func TestJWTService_MissingSecret(t *testing.T) {
	svc, err := NewJWTService(&config.Config{})
	assert.Error(t, err)
	assert.Nil(t, svc)
}
