package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("super-secret")
	require.NoError(t, err)

	assert.NoError(t, CheckPassword(hash, "super-secret"))
	assert.Error(t, CheckPassword(hash, "wrong"))
}

func TestGenerateAndParseToken(t *testing.T) {
	secret := "test-secret"
	claims := Claims{OperatorID: "o1", Email: "dpo@example.com", Role: RoleOperator}

	token, err := GenerateToken(secret, claims, time.Now(), time.Hour)
	require.NoError(t, err)

	parsed, err := ParseToken(secret, token)
	require.NoError(t, err)
	assert.Equal(t, claims.OperatorID, parsed.OperatorID)
	assert.Equal(t, claims.Email, parsed.Email)
	assert.Equal(t, claims.Role, parsed.Role)
}

func TestParseTokenRejectsWrongSecretAndExpiry(t *testing.T) {
	claims := Claims{OperatorID: "o1", Role: RoleAuditor}

	token, err := GenerateToken("right", claims, time.Now(), time.Hour)
	require.NoError(t, err)
	_, err = ParseToken("wrong", token)
	assert.Error(t, err)

	expired, err := GenerateToken("right", claims, time.Now().Add(-2*time.Hour), time.Hour)
	require.NoError(t, err)
	_, err = ParseToken("right", expired)
	assert.Error(t, err)
}

func TestEmptySecretNeverSignsOrVerifies(t *testing.T) {
	_, err := GenerateToken("", Claims{OperatorID: "o1", Role: RoleOperator}, time.Now(), time.Hour)
	assert.ErrorIs(t, err, ErrInvalidToken)

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{OperatorID: "o1", Role: RoleOperator}).SignedString([]byte(""))
	require.NoError(t, err)
	_, err = ParseToken("", forged)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
