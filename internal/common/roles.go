package common

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// IsValidRole reports whether role is one of the known roles.
func IsValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}
