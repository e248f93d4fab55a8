// File: internal/user/repository.go
package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"conectar_backend/internal/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines the interface for user data operations.
type Repository interface {
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByEmailOrGoogleID(ctx context.Context, email, googleID string) (*User, error)
	FindAll(ctx context.Context, query ListUsersQuery) ([]User, error)
	FindInactiveSince(ctx context.Context, cutoff time.Time) ([]User, error)
	Update(ctx context.Context, user *User) error
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM user repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

// sortColumns maps accepted sortBy values to column names.
var sortColumns = map[string]string{
	"name":      "name",
	"email":     "email",
	"role":      "role",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"lastLogin": "last_login",
}

// Create inserts a new user record into the database.
func (r *gormRepository) Create(ctx context.Context, user *User) error {
	user.Email = NormalizeEmail(user.Email)
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return translateWriteError(err)
	}
	return nil
}

// FindByID retrieves a user by their ID.
func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var userModel User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&userModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Usuário não encontrado.")
		}
		return nil, err
	}
	return &userModel, nil
}

// FindByEmail retrieves a user by their email address.
func (r *gormRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var userModel User
	err := r.db.WithContext(ctx).Where("email = ?", NormalizeEmail(email)).First(&userModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("User not found with this email.")
		}
		return nil, err
	}
	return &userModel, nil
}

// FindByEmailOrGoogleID returns the first user matching either identifier.
func (r *gormRepository) FindByEmailOrGoogleID(ctx context.Context, email, googleID string) (*User, error) {
	var userModel User
	err := r.db.WithContext(ctx).
		Where("email = ?", NormalizeEmail(email)).
		Or("google_id = ?", googleID).
		Order("created_at ASC").
		First(&userModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("User not found with this email or Google ID.")
		}
		return nil, err
	}
	return &userModel, nil
}

// FindAll lists users matching the query. Results are unordered unless SortBy is set.
func (r *gormRepository) FindAll(ctx context.Context, query ListUsersQuery) ([]User, error) {
	tx := r.db.WithContext(ctx).Model(&User{})
	if query.Role != "" {
		tx = tx.Where("role = ?", query.Role)
	}
	if query.Name != "" {
		tx = tx.Where(`name LIKE ? ESCAPE '\'`, "%"+escapeLike(query.Name)+"%")
	}
	if column, ok := sortColumns[query.SortBy]; ok {
		direction := "ASC"
		if strings.EqualFold(query.Order, "desc") {
			direction = "DESC"
		}
		tx = tx.Order(column + " " + direction)
	}

	var users []User
	if err := tx.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// FindInactiveSince returns users who never logged in or last logged in before cutoff.
func (r *gormRepository) FindInactiveSince(ctx context.Context, cutoff time.Time) ([]User, error) {
	var users []User
	err := r.db.WithContext(ctx).
		Where("last_login IS NULL OR last_login < ?", cutoff).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// Update writes every column of an existing user. Returns ErrNotFound when the
// row is gone; it never inserts.
func (r *gormRepository) Update(ctx context.Context, user *User) error {
	user.Email = NormalizeEmail(user.Email)
	res := r.db.WithContext(ctx).Model(user).Select("*").Omit("id", "created_at").Updates(user)
	if res.Error != nil {
		return translateWriteError(res.Error)
	}
	if res.RowsAffected == 0 {
		return common.ErrNotFound.WithDetails("Usuário não encontrado.")
	}
	return nil
}

// UpdateLastLogin sets last_login for a single user. Returns ErrNotFound when no row matched.
func (r *gormRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Update("last_login", at)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return common.ErrNotFound.WithDetails("User disappeared before last login could be recorded.")
	}
	return nil
}

// Delete hard-deletes a user. Returns ErrNotFound when no row matched.
func (r *gormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return common.ErrNotFound.WithDetails("Usuário não encontrado.")
	}
	return nil
}

// translateWriteError maps unique-constraint violations to the API error for a taken email.
// google_id is the only other unique column and collisions there are reported the same way.
func translateWriteError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "duplicate key value violates unique constraint") {
		return common.ErrEmailAlreadyExists
	}
	return err
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
