// File: internal/auth/model.go
package auth

import (
	"conectar_backend/internal/user"

	"github.com/google/uuid"
)

// RegisterRequest defines the structure for self-registration.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=72"` // bcrypt max is 72 bytes
	Role     string `json:"role" binding:"omitempty,oneof=admin user"`
}

// LoginRequest defines the structure for login requests.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// GoogleAuthRequest carries the identity asserted by a Google sign-in on the client.
type GoogleAuthRequest struct {
	IDToken  string  `json:"idToken" binding:"required"`
	Email    string  `json:"email" binding:"required,email,max=255"`
	Name     string  `json:"name" binding:"required,max=255"`
	GoogleID string  `json:"googleId" binding:"required,max=255"`
	PhotoURL *string `json:"photoURL" binding:"omitempty,max=2048"`
}

// AuthUser is the reduced user projection returned by password login.
type AuthUser struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
}

// GoogleAuthUser is the projection returned by Google login. photoURL is
// always present, null when unknown.
type GoogleAuthUser struct {
	AuthUser
	PhotoURL     *string `json:"photoURL"`
	IsGoogleUser bool    `json:"isGoogleUser"`
}

// LoginResponse is the body of a successful login.
type LoginResponse struct {
	AccessToken string   `json:"access_token"`
	User        AuthUser `json:"user"`
}

// GoogleLoginResponse is the body of a successful Google login.
type GoogleLoginResponse struct {
	AccessToken string         `json:"access_token"`
	User        GoogleAuthUser `json:"user"`
}

func toAuthUser(u *user.User) AuthUser {
	return AuthUser{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

func toGoogleAuthUser(u *user.User) GoogleAuthUser {
	return GoogleAuthUser{AuthUser: toAuthUser(u), PhotoURL: u.PhotoURL, IsGoogleUser: u.IsGoogleUser}
}
