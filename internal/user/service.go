// File: internal/user/service.go
package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"conectar_backend/internal/common"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultInactiveAfter is how long without a login makes a user inactive.
const DefaultInactiveAfter = 30 * 24 * time.Hour

// Service defines the interface for user management.
type Service interface {
	Create(ctx context.Context, req CreateUserRequest) (*User, error)
	FindAll(ctx context.Context, query ListUsersQuery) ([]User, error)
	FindOne(ctx context.Context, id uuid.UUID) (*User, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateUserRequest) (*User, error)
	Remove(ctx context.Context, id uuid.UUID) (*User, error)
	FindInactiveUsers(ctx context.Context) ([]User, error)
	EnsureAdmin(ctx context.Context, name, email, password string) (usr *User, created bool, err error)
}

type service struct {
	repo          Repository
	logger        *zap.Logger
	inactiveAfter time.Duration
	now           func() time.Time
}

// NewService creates a new user service. inactiveDays <= 0 selects the 30 day default.
func NewService(repo Repository, logger *zap.Logger, inactiveDays int) Service {
	inactiveAfter := DefaultInactiveAfter
	if inactiveDays > 0 {
		inactiveAfter = time.Duration(inactiveDays) * 24 * time.Hour
	}
	return &service{
		repo:          repo,
		logger:        logger.Named("UserService"),
		inactiveAfter: inactiveAfter,
		now:           time.Now,
	}
}

// Create adds a user on behalf of an admin.
func (s *service) Create(ctx context.Context, req CreateUserRequest) (*User, error) {
	if err := s.ensureEmailAvailable(ctx, req.Email, uuid.Nil); err != nil {
		return nil, err
	}

	usr := &User{
		Name:  req.Name,
		Email: req.Email,
		Role:  common.RoleUser,
	}
	if req.Role != "" {
		usr.Role = req.Role
	}
	if req.Password != nil {
		hash, err := common.HashPassword(*req.Password)
		if err != nil {
			s.logger.Error("Failed to hash password for new user", zap.Error(err))
			return nil, err
		}
		usr.Password = &hash
	}

	if err := s.repo.Create(ctx, usr); err != nil {
		if _, ok := common.IsAPIError(err); !ok {
			s.logger.Error("Failed to create user", zap.Error(err), zap.String("email", req.Email))
		}
		return nil, err
	}

	s.logger.Info("User created", zap.String("userID", usr.ID.String()), zap.String("role", usr.Role))
	return usr, nil
}

func (s *service) FindAll(ctx context.Context, query ListUsersQuery) ([]User, error) {
	users, err := s.repo.FindAll(ctx, query)
	if err != nil {
		s.logger.Error("Failed to list users", zap.Error(err))
		return nil, err
	}
	return users, nil
}

func (s *service) FindOne(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

// Update applies a partial patch. A changed email must not belong to anyone else.
func (s *service) Update(ctx context.Context, id uuid.UUID, req UpdateUserRequest) (*User, error) {
	usr, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil && NormalizeEmail(*req.Email) != usr.Email {
		if err := s.ensureEmailAvailable(ctx, *req.Email, usr.ID); err != nil {
			return nil, err
		}
		usr.Email = *req.Email
	}
	if req.Name != nil {
		usr.Name = *req.Name
	}
	if req.Role != nil {
		usr.Role = *req.Role
	}
	if req.Password != nil {
		hash, err := common.HashPassword(*req.Password)
		if err != nil {
			s.logger.Error("Failed to hash password during update", zap.Error(err), zap.String("userID", id.String()))
			return nil, err
		}
		usr.Password = &hash
	}

	if err := s.repo.Update(ctx, usr); err != nil {
		if _, ok := common.IsAPIError(err); !ok {
			s.logger.Error("Failed to update user", zap.Error(err), zap.String("userID", id.String()))
		}
		return nil, err
	}

	s.logger.Info("User updated", zap.String("userID", id.String()))
	return usr, nil
}

// Remove hard-deletes the user and returns the record as it was before deletion.
func (s *service) Remove(ctx context.Context, id uuid.UUID) (*User, error) {
	usr, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	s.logger.Info("User deleted", zap.String("userID", id.String()))
	return usr, nil
}

// FindInactiveUsers returns users with no login, or none within the inactivity window.
func (s *service) FindInactiveUsers(ctx context.Context) ([]User, error) {
	cutoff := s.now().UTC().Add(-s.inactiveAfter)
	users, err := s.repo.FindInactiveSince(ctx, cutoff)
	if err != nil {
		s.logger.Error("Failed to list inactive users", zap.Error(err))
		return nil, err
	}
	return users, nil
}

// EnsureAdmin creates an admin account unless the email is already registered.
func (s *service) EnsureAdmin(ctx context.Context, name, email, password string) (*User, bool, error) {
	existing, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, false, fmt.Errorf("checking for existing admin: %w", err)
	}

	usr, err := s.Create(ctx, CreateUserRequest{
		Name:     name,
		Email:    email,
		Password: &password,
		Role:     common.RoleAdmin,
	})
	if err != nil {
		return nil, false, err
	}
	return usr, true, nil
}

// ensureEmailAvailable fails with ErrEmailAlreadyExists when the address belongs to
// a user other than self.
func (s *service) ensureEmailAvailable(ctx context.Context, email string, self uuid.UUID) error {
	existing, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		if existing.ID != self {
			s.logger.Warn("Email already registered", zap.String("email", NormalizeEmail(email)))
			return common.ErrEmailAlreadyExists
		}
		return nil
	}
	if errors.Is(err, common.ErrNotFound) {
		return nil
	}
	return fmt.Errorf("failed to check existing user by email: %w", err)
}
