package auth_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ms-booking/internal/auth"
)

func signedToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestExtractTokenFromRequest(t *testing.T) {
	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer abc123")

	token, err := auth.ExtractTokenFromRequest(req)
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	req.Header.Del("Authorization")
	_, err = auth.ExtractTokenFromRequest(req)
	assert.Error(t, err)

	req.Header.Set("Authorization", "Basic abc123")
	_, err = auth.ExtractTokenFromRequest(req)
	assert.Error(t, err)
}

func TestParseClaimsVerified(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	tokenString := signedToken(t, "test-secret", jwt.MapClaims{
		"sub":  "user1",
		"role": "admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	claims, err := auth.ParseClaims(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "user1", claims.UserID)
	assert.Equal(t, "ADMIN", claims.Role)
}

func TestParseClaimsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "right-secret")

	tokenString := signedToken(t, "wrong-secret", jwt.MapClaims{"sub": "user1"})

	_, err := auth.ParseClaims(tokenString)
	assert.Error(t, err)
}

func TestParseClaimsDefaultRole(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	tokenString := signedToken(t, "test-secret", jwt.MapClaims{
		"sub": "user1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	claims, err := auth.ParseClaims(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "USER", claims.Role)
}

func TestParseClaimsMissingSubject(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	tokenString := signedToken(t, "test-secret", jwt.MapClaims{
		"role": "USER",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	_, err := auth.ParseClaims(tokenString)
	assert.Error(t, err)
}
