package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"coffeeshop/internal/domain"
	"coffeeshop/internal/domain/models"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
)

// Auth0 signs access tokens with RS256; nothing else is accepted.
var allowedAlgorithms = []string{"RS256"}

// VerifierConfig identifies the token issuer and the API the tokens are for.
type VerifierConfig struct {
	Issuer   string
	Audience string
}

// JWTVerifier implements TokenVerifier on top of golang-jwt.
// Signing keys come from a JWKS endpoint (NewJWTVerifier) or from a
// caller-supplied jwt.Keyfunc (NewJWTVerifierWithKeyfunc).
type JWTVerifier struct {
	keyFunc jwt.Keyfunc
	parser  *jwt.Parser
	cancel  context.CancelFunc
	logger  *slog.Logger
}

// NewJWTVerifier creates a verifier that fetches public keys from the identity provider's JWKS endpoint.
// The JWKS keys are cached and refreshed in the background until Close is called.
func NewJWTVerifier(jwksURL string, cfg VerifierConfig, logger *slog.Logger) (*JWTVerifier, error) {
	if jwksURL == "" {
		return nil, errors.New("JWKS URL cannot be empty")
	}

	ctx, cancel := context.WithCancel(context.Background())
	jwks, err := keyfunc.NewDefaultCtx(ctx, []string{jwksURL})
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to create JWKS client: %w", err)
	}

	logger.Info("JWT verifier initialized", "jwks_url", jwksURL, "issuer", cfg.Issuer, "audience", cfg.Audience)

	v := NewJWTVerifierWithKeyfunc(jwks.Keyfunc, cfg, logger)
	v.cancel = cancel
	return v, nil
}

// NewJWTVerifierWithKeyfunc creates a verifier using a fixed key lookup
func NewJWTVerifierWithKeyfunc(keyFunc jwt.Keyfunc, cfg VerifierConfig, logger *slog.Logger) *JWTVerifier {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods(allowedAlgorithms),
		jwt.WithExpirationRequired(),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(cfg.Audience))
	}

	return &JWTVerifier{
		keyFunc: keyFunc,
		parser:  jwt.NewParser(opts...),
		logger:  logger,
	}
}

// VerifyToken checks signature, issuer, audience and expiry, and returns the claims
func (v *JWTVerifier) VerifyToken(tokenString string) (models.Claims, error) {
	claims := models.Claims{}
	token, err := v.parser.ParseWithClaims(tokenString, claims, v.keyFunc)
	if err != nil {
		return nil, v.classify(err)
	}

	if !token.Valid {
		v.logger.Debug("token is invalid after parsing")
		return nil, errInvalidToken
	}

	return claims, nil
}

// Close stops the background JWKS refresh
func (v *JWTVerifier) Close() error {
	if v.cancel != nil {
		v.cancel()
	}
	v.logger.Info("JWT verifier closed")
	return nil
}

var errInvalidToken = domain.NewAuthError(http.StatusUnauthorized, "invalid_header", "Unable to parse authentication token.")

// classify maps golang-jwt validation errors to the client-facing auth errors
func (v *JWTVerifier) classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		v.logger.Debug("token expired")
		return domain.NewAuthError(http.StatusUnauthorized, "token_expired", "Token expired.")
	case errors.Is(err, jwt.ErrTokenInvalidIssuer),
		errors.Is(err, jwt.ErrTokenInvalidAudience),
		errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		v.logger.Debug("token has incorrect claims", "error", err.Error())
		return domain.NewAuthError(http.StatusUnauthorized, "invalid_claims", "Incorrect claims. Please, check the audience and issuer.")
	default:
		v.logger.Debug("token parse failed", "error", err.Error())
		return errInvalidToken
	}
}
