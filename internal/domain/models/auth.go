package models

import "github.com/golang-jwt/jwt/v5"

// PermissionsClaim is the claim carrying the granted permission strings
const PermissionsClaim = "permissions"

// Claims is the decoded payload of a verified access token.
// Kept as a map so the permission check can tell a missing claim from an empty one.
type Claims = jwt.MapClaims

// Subject returns the "sub" claim, or "" if absent
func Subject(c Claims) string {
	sub, err := c.GetSubject()
	if err != nil {
		return ""
	}
	return sub
}
