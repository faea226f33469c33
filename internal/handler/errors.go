package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"coffeeshop/internal/domain"
	"coffeeshop/internal/httputil"
)

// Fixed client messages. The cause of a 422 is logged, never returned.
const (
	msgNotFound      = "resource not found"
	msgUnprocessable = "unprocessable"
	msgInternal      = "internal server error"
)

// handleError converts domain errors to HTTP responses
func handleError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var (
		authErr       *domain.AuthError
		validationErr *domain.ValidationError
	)

	switch {
	case errors.As(err, &authErr):
		httputil.RespondErrorWithCode(w, authErr.Status, authErr.Code, authErr.Description)
	case errors.As(err, &validationErr):
		httputil.RespondError(w, http.StatusBadRequest, validationErr.Message)
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, msgNotFound)
	case errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrUnprocessable):
		logger.Warn("unprocessable request",
			"error", err,
			"path", r.URL.Path,
			"method", r.Method,
			"request_id", httputil.GetRequestID(r),
		)
		httputil.RespondError(w, http.StatusUnprocessableEntity, msgUnprocessable)
	case errors.Is(err, domain.ErrStorage):
		logger.Error("storage failure",
			"error", err,
			"path", r.URL.Path,
			"method", r.Method,
			"request_id", httputil.GetRequestID(r),
		)
		httputil.RespondError(w, http.StatusUnprocessableEntity, msgUnprocessable)
	default:
		logger.Error("unexpected error",
			"error", err,
			"path", r.URL.Path,
			"method", r.Method,
			"request_id", httputil.GetRequestID(r),
		)
		httputil.RespondError(w, http.StatusInternalServerError, msgInternal)
	}
}
