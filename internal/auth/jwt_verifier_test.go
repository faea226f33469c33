package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"coffeeshop/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testIssuer   = "https://coffee.example.auth0.com/"
	testAudience = "drinks"
)

func newTestVerifier(t *testing.T) (*JWTVerifier, *rsa.PrivateKey) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	keyFunc := func(*jwt.Token) (any, error) { return &key.PublicKey, nil }
	v := NewJWTVerifierWithKeyfunc(keyFunc, VerifierConfig{Issuer: testIssuer, Audience: testAudience}, logger)
	return v, key
}

func sign(t *testing.T, method jwt.SigningMethod, key any, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func validClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"iss":         testIssuer,
		"aud":         testAudience,
		"sub":         "auth0|barista",
		"exp":         time.Now().Add(time.Hour).Unix(),
		"permissions": []string{"get:drinks-detail"},
	}
}

func TestJWTVerifier_VerifyToken(t *testing.T) {
	v, key := newTestVerifier(t)
	otherKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	t.Run("valid token", func(t *testing.T) {
		claims, err := v.VerifyToken(sign(t, jwt.SigningMethodRS256, key, validClaims()))
		require.NoError(t, err)
		assert.Equal(t, "auth0|barista", claims["sub"])
		assert.Equal(t, []any{"get:drinks-detail"}, claims["permissions"])
	})

	tests := []struct {
		name     string
		token    func() string
		wantCode string
	}{
		{
			name: "expired",
			token: func() string {
				c := validClaims()
				c["exp"] = time.Now().Add(-time.Minute).Unix()
				return sign(t, jwt.SigningMethodRS256, key, c)
			},
			wantCode: "token_expired",
		},
		{
			name: "wrong audience",
			token: func() string {
				c := validClaims()
				c["aud"] = "someone-else"
				return sign(t, jwt.SigningMethodRS256, key, c)
			},
			wantCode: "invalid_claims",
		},
		{
			name: "wrong issuer",
			token: func() string {
				c := validClaims()
				c["iss"] = "https://evil.example.com/"
				return sign(t, jwt.SigningMethodRS256, key, c)
			},
			wantCode: "invalid_claims",
		},
		{
			name: "missing exp",
			token: func() string {
				c := validClaims()
				delete(c, "exp")
				return sign(t, jwt.SigningMethodRS256, key, c)
			},
			wantCode: "invalid_claims",
		},
		{
			name: "signed by another key",
			token: func() string {
				return sign(t, jwt.SigningMethodRS256, otherKey, validClaims())
			},
			wantCode: "invalid_header",
		},
		{
			name: "hmac algorithm rejected",
			token: func() string {
				return sign(t, jwt.SigningMethodHS256, []byte("secret"), validClaims())
			},
			wantCode: "invalid_header",
		},
		{
			name:     "garbage",
			token:    func() string { return "not-a-jwt" },
			wantCode: "invalid_header",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := v.VerifyToken(tt.token())
			assert.Nil(t, claims)

			var authErr *domain.AuthError
			require.True(t, errors.As(err, &authErr), "expected AuthError, got %v", err)
			assert.Equal(t, http.StatusUnauthorized, authErr.StatusCode())
			assert.Equal(t, tt.wantCode, authErr.Code)
		})
	}
}

func TestNewJWTVerifier_RequiresURL(t *testing.T) {
	_, err := NewJWTVerifier("", VerifierConfig{}, slog.Default())
	assert.Error(t, err)
}
