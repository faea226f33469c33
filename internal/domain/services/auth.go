package services

import "coffeeshop/internal/domain/models"

// PermissionAuthorizer decides whether verified claims grant a permission.
// Implementations return a *domain.AuthError on denial.
type PermissionAuthorizer interface {
	// Authorize checks that the claims carry the required permission string
	Authorize(claims models.Claims, permission string) error
}
