// File: internal/user/model.go
package user

import (
	"strings"
	"time"

	"conectar_backend/internal/common"

	"github.com/google/uuid"
)

// User represents the user model in the database.
type User struct {
	common.BaseModel
	Name         string     `gorm:"type:varchar(255);not null"`
	Email        string     `gorm:"type:varchar(255);uniqueIndex;not null"`
	Password     *string    `gorm:"type:varchar(255)"` // NULL for Google-only accounts
	Role         string     `gorm:"type:varchar(20);not null;default:'user'"`
	LastLogin    *time.Time `gorm:"column:last_login;index"`
	GoogleID     *string    `gorm:"column:google_id;type:varchar(255);uniqueIndex"`
	PhotoURL     *string    `gorm:"column:photo_url;type:text"`
	IsGoogleUser bool       `gorm:"column:is_google_user;not null;default:false"`
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return "users"
}

func (u *User) GetID() uuid.UUID {
	return u.ID
}

func (u *User) GetEmail() string {
	return u.Email
}

func (u *User) GetRole() string {
	return u.Role
}

// HasPassword reports whether the account can log in with a password.
func (u *User) HasPassword() bool {
	return u.Password != nil && *u.Password != ""
}

// --- DTOs (Data Transfer Objects) for API requests/responses ---

// CreateUserRequest is the admin payload for POST /users.
type CreateUserRequest struct {
	Name     string  `json:"name" binding:"required,max=255"`
	Email    string  `json:"email" binding:"required,email,max=255"`
	Password *string `json:"password" binding:"omitempty,min=6,max=72"` // bcrypt max is 72 bytes
	Role     string  `json:"role" binding:"omitempty,oneof=admin user"`
}

// UpdateUserRequest is a partial patch; nil fields are left unchanged.
type UpdateUserRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=255"`
	Email    *string `json:"email" binding:"omitempty,email,max=255"`
	Password *string `json:"password" binding:"omitempty,min=6,max=72"`
	Role     *string `json:"role" binding:"omitempty,oneof=admin user"`
}

// UpdateProfileRequest is the self-service patch. It has no role field.
type UpdateProfileRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=255"`
	Email    *string `json:"email" binding:"omitempty,email,max=255"`
	Password *string `json:"password" binding:"omitempty,min=6,max=72"`
}

// ToUpdateUserRequest widens a profile patch to a user patch.
func (r UpdateProfileRequest) ToUpdateUserRequest() UpdateUserRequest {
	return UpdateUserRequest{Name: r.Name, Email: r.Email, Password: r.Password}
}

// ListUsersQuery holds the GET /users filters.
type ListUsersQuery struct {
	Role   string `form:"role" binding:"omitempty,oneof=admin user"`
	Name   string `form:"name"`
	SortBy string `form:"sortBy" binding:"omitempty,oneof=name email role createdAt updatedAt lastLogin"`
	Order  string `form:"order"`
}

// UserResponse is the public projection of a user. It never carries the password.
type UserResponse struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Role         string     `json:"role"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	LastLogin    *time.Time `json:"lastLogin"`
	GoogleID     *string    `json:"googleId"`
	PhotoURL     *string    `json:"photoURL"`
	IsGoogleUser bool       `json:"isGoogleUser"`
}

// ToUserResponse converts a User model to a UserResponse DTO.
func ToUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Role:         u.Role,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
		LastLogin:    u.LastLogin,
		GoogleID:     u.GoogleID,
		PhotoURL:     u.PhotoURL,
		IsGoogleUser: u.IsGoogleUser,
	}
}

// ToUserResponses converts a slice of users.
func ToUserResponses(users []User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, ToUserResponse(&users[i]))
	}
	return out
}

// NormalizeEmail trims and lower-cases an address before storage or lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
