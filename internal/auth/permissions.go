package auth

import (
	"net/http"
	"slices"

	"coffeeshop/internal/domain"
	"coffeeshop/internal/domain/models"
)

// Permissions required by the drinks API
const (
	PermGetDrinksDetail = "get:drinks-detail"
	PermPostDrinks      = "post:drinks"
	PermPatchDrinks     = "patch:drinks"
	PermDeleteDrinks    = "delete:drinks"
)

// PermissionChecker implements services.PermissionAuthorizer with an exact
// membership test on the "permissions" claim.
type PermissionChecker struct{}

// NewPermissionChecker creates a new permission checker
func NewPermissionChecker() *PermissionChecker {
	return &PermissionChecker{}
}

// Authorize implements services.PermissionAuthorizer
func (PermissionChecker) Authorize(claims models.Claims, permission string) error {
	return CheckPermissions(claims, permission)
}

// CheckPermissions returns nil if permission is one of the strings in the
// claims' "permissions" entry. A missing or malformed entry is a 400, a
// missing permission a 403.
func CheckPermissions(claims map[string]any, permission string) error {
	raw, ok := claims[models.PermissionsClaim]
	if !ok {
		return errPermissionsMissing
	}

	granted, ok := permissionList(raw)
	if !ok {
		return errPermissionsMissing
	}

	if !slices.Contains(granted, permission) {
		return domain.NewAuthError(http.StatusForbidden, "unauthorized", "Permission not found.")
	}
	return nil
}

var errPermissionsMissing = domain.NewAuthError(http.StatusBadRequest, "invalid_claims", "Permissions not included in JWT.")

// permissionList accepts the shapes a decoded claim can take: []any from
// encoding/json, or []string when claims are built in code.
func permissionList(raw any) ([]string, bool) {
	switch v := raw.(type) {
	case []string:
		return v, true
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}
