// File: internal/common/context_helpers.go
package common

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Principal is the authenticated caller attached to a request.
type Principal struct {
	ID    uuid.UUID
	Email string
	Role  string
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// CanAccess reports whether the principal may act on the user identified by target.
func (p Principal) CanAccess(target uuid.UUID) bool {
	return p.IsAdmin() || p.ID == target
}

// GetTokenFromHeader extracts the bearer token from an Authorization header value.
// Returns an empty string if the header is missing or malformed.
func GetTokenFromHeader(authHeader string) string {
	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], AuthorizationTypeBearer) {
		return ""
	}
	return parts[1]
}

// SetPrincipal stores the authenticated caller in the Gin context.
func SetPrincipal(c *gin.Context, p Principal) {
	c.Set(UserIDKey, p.ID)
	c.Set(UserEmailKey, p.Email)
	c.Set(UserRoleKey, p.Role)
}

// GetPrincipalFromContext returns the authenticated caller, or false if the
// request did not pass through the auth middleware.
func GetPrincipalFromContext(c *gin.Context) (Principal, bool) {
	id := GetUserIDFromContext(c)
	if id == uuid.Nil {
		return Principal{}, false
	}
	return Principal{
		ID:    id,
		Email: c.GetString(UserEmailKey),
		Role:  GetUserRoleFromContext(c),
	}, true
}

// GetUserIDFromContext retrieves the user ID from the Gin context.
// Returns uuid.Nil if not found or not a UUID.
func GetUserIDFromContext(c *gin.Context) uuid.UUID {
	val, exists := c.Get(UserIDKey)
	if !exists {
		return uuid.Nil
	}
	userID, ok := val.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return userID
}

// GetUserRoleFromContext retrieves the user role from the Gin context.
func GetUserRoleFromContext(c *gin.Context) string {
	val, exists := c.Get(UserRoleKey)
	if !exists {
		return ""
	}
	role, ok := val.(string)
	if !ok {
		return ""
	}
	return role
}
