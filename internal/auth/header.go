package auth

import (
	"net/http"
	"strings"

	"coffeeshop/internal/domain"
)

// ExtractBearerToken validates the structure of an Authorization header
// value and returns the raw token. It does not verify the token.
func ExtractBearerToken(header string) (string, error) {
	if header == "" {
		return "", domain.NewAuthError(http.StatusUnauthorized,
			"authorization_header_missing", "Authorization header is expected.")
	}

	parts := strings.Split(header, " ")
	if len(parts) != 2 {
		return "", domain.NewAuthError(http.StatusUnauthorized,
			"invalid_header", "Authorization header must be bearer token.")
	}

	if !strings.EqualFold(parts[0], "bearer") {
		return "", domain.NewAuthError(http.StatusUnauthorized,
			"invalid_header", `Authorization header must start with "Bearer".`)
	}

	if parts[1] == "" {
		return "", domain.NewAuthError(http.StatusUnauthorized,
			"invalid_header", "Token not found.")
	}

	return parts[1], nil
}

// TokenFromRequest extracts the bearer token from the request's Authorization header
func TokenFromRequest(r *http.Request) (string, error) {
	return ExtractBearerToken(r.Header.Get("Authorization"))
}
