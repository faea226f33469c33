package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"coffeeshop/internal/auth"
	"coffeeshop/internal/domain"
	"coffeeshop/internal/domain/models"
	"coffeeshop/internal/domain/services"
	"coffeeshop/internal/httputil"
)

// Guard gates handlers behind a verified bearer token carrying a permission
type Guard struct {
	verifier   auth.TokenVerifier
	authorizer services.PermissionAuthorizer
	logger     *slog.Logger
}

// NewGuard creates a new auth guard
func NewGuard(verifier auth.TokenVerifier, authorizer services.PermissionAuthorizer, logger *slog.Logger) *Guard {
	return &Guard{
		verifier:   verifier,
		authorizer: authorizer,
		logger:     logger,
	}
}

// RequirePermission wraps next so it only runs for requests whose token
// carries permission. Failures respond with the AuthError envelope and
// never reach the handler.
func (g *Guard) RequirePermission(permission string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := auth.TokenFromRequest(r)
		if err != nil {
			g.deny(w, r, permission, err)
			return
		}

		claims, err := g.verifier.VerifyToken(token)
		if err != nil {
			g.deny(w, r, permission, err)
			return
		}

		if err := g.authorizer.Authorize(claims, permission); err != nil {
			g.deny(w, r, permission, err)
			return
		}

		r = httputil.WithClaims(r, claims)
		r = httputil.WithUserID(r, models.Subject(claims))
		next(w, r)
	}
}

func (g *Guard) deny(w http.ResponseWriter, r *http.Request, permission string, err error) {
	var authErr *domain.AuthError
	if !errors.As(err, &authErr) {
		g.logger.Error("unexpected auth failure", "error", err, "path", r.URL.Path)
		httputil.RespondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	g.logger.Debug("request denied",
		"path", r.URL.Path,
		"method", r.Method,
		"permission", permission,
		"status", authErr.Status,
		"code", authErr.Code,
		"request_id", httputil.GetRequestID(r),
	)
	httputil.RespondErrorWithCode(w, authErr.Status, authErr.Code, authErr.Description)
}
