package auth

import "coffeeshop/internal/domain/models"

// TokenVerifier defines the interface for access token verification.
// The middleware only depends on this, not on how keys are obtained.
type TokenVerifier interface {
	// VerifyToken validates a token string and returns its decoded claims.
	// Failures are returned as *domain.AuthError with status 401.
	VerifyToken(tokenString string) (models.Claims, error)

	// Close releases any resources held by the verifier (e.g., the JWKS refresh goroutine).
	Close() error
}
