// File: internal/auth/service.go
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"conectar_backend/internal/common"
	"conectar_backend/internal/shared"
	"conectar_backend/internal/user"

	"go.uber.org/zap"
)

// Service implements the register, password login and Google login flows.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*user.User, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	GoogleAuth(ctx context.Context, req GoogleAuthRequest) (*GoogleLoginResponse, error)
}

type service struct {
	users        user.Repository
	tokenService shared.TokenService
	verifier     IDTokenVerifier
	logger       *zap.Logger
	now          func() time.Time
}

// NewService creates the auth service. verifier may be nil.
func NewService(
	users user.Repository,
	tokenService shared.TokenService,
	verifier IDTokenVerifier,
	logger *zap.Logger,
) Service {
	return &service{
		users:        users,
		tokenService: tokenService,
		verifier:     verifier,
		logger:       logger.Named("AuthService"),
		now:          time.Now,
	}
}

// Register creates a password account. Role defaults to user.
func (s *service) Register(ctx context.Context, req RegisterRequest) (*user.User, error) {
	_, err := s.users.FindByEmail(ctx, req.Email)
	if err == nil {
		s.logger.Info("Registration rejected: email already exists", zap.String("email", user.NormalizeEmail(req.Email)))
		return nil, common.ErrEmailAlreadyExists
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing user by email: %w", err)
	}

	hash, err := common.HashPassword(req.Password)
	if err != nil {
		s.logger.Error("Failed to hash password during registration", zap.Error(err))
		return nil, err
	}

	role := common.RoleUser
	if req.Role != "" {
		role = req.Role
	}
	usr := &user.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: &hash,
		Role:     role,
	}
	if err := s.users.Create(ctx, usr); err != nil {
		if _, ok := common.IsAPIError(err); !ok {
			s.logger.Error("Failed to create user in repository", zap.Error(err), zap.String("email", req.Email))
		}
		return nil, err
	}

	s.logger.Info("User registered successfully", zap.String("userID", usr.ID.String()), zap.String("role", usr.Role))
	return usr, nil
}

// Login checks email and password and returns a token with the reduced user projection.
func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	usr, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.logger.Info("Login failed: unknown email", zap.String("email", user.NormalizeEmail(req.Email)))
			return nil, common.ErrInvalidCredentials
		}
		s.logger.Error("Error finding user by email during login", zap.Error(err))
		return nil, err
	}

	if !usr.HasPassword() {
		s.logger.Info("Login failed: account has no password", zap.String("userID", usr.ID.String()))
		return nil, common.ErrInvalidCredentials
	}
	if !common.CheckPasswordHash(req.Password, *usr.Password) {
		s.logger.Info("Login failed: wrong password", zap.String("userID", usr.ID.String()))
		return nil, common.ErrInvalidCredentials
	}

	if err := s.touchLastLogin(ctx, usr); err != nil {
		return nil, err
	}

	token, err := s.issueToken(usr)
	if err != nil {
		return nil, err
	}
	return &LoginResponse{AccessToken: token, User: toAuthUser(usr)}, nil
}

// GoogleAuth finds the user by email or Google ID and refreshes the Google
// profile fields, or creates a passwordless user with role user.
func (s *service) GoogleAuth(ctx context.Context, req GoogleAuthRequest) (*GoogleLoginResponse, error) {
	if err := s.verifyGoogleIdentity(ctx, req); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	usr, err := s.users.FindByEmailOrGoogleID(ctx, req.Email, req.GoogleID)
	switch {
	case err == nil:
		googleID := req.GoogleID
		usr.GoogleID = &googleID
		usr.Name = req.Name
		usr.IsGoogleUser = true
		usr.LastLogin = &now
		if req.PhotoURL != nil {
			usr.PhotoURL = req.PhotoURL
		}
		if err := s.users.Update(ctx, usr); err != nil {
			if _, ok := common.IsAPIError(err); !ok {
				s.logger.Error("Failed to update Google user", zap.Error(err), zap.String("userID", usr.ID.String()))
			}
			return nil, err
		}
		s.logger.Info("Google login for existing user", zap.String("userID", usr.ID.String()))

	case errors.Is(err, common.ErrNotFound):
		googleID := req.GoogleID
		usr = &user.User{
			Name:         req.Name,
			Email:        req.Email,
			Role:         common.RoleUser,
			GoogleID:     &googleID,
			PhotoURL:     req.PhotoURL,
			IsGoogleUser: true,
			LastLogin:    &now,
		}
		if err := s.users.Create(ctx, usr); err != nil {
			if _, ok := common.IsAPIError(err); !ok {
				s.logger.Error("Failed to create Google user", zap.Error(err), zap.String("email", req.Email))
			}
			return nil, err
		}
		s.logger.Info("Google login created a new user", zap.String("userID", usr.ID.String()))

	default:
		s.logger.Error("Error looking up Google user", zap.Error(err))
		return nil, err
	}

	token, err := s.issueToken(usr)
	if err != nil {
		return nil, err
	}
	return &GoogleLoginResponse{AccessToken: token, User: toGoogleAuthUser(usr)}, nil
}

// verifyGoogleIdentity checks the ID token when a verifier is configured. The
// verified email must match the one in the request.
func (s *service) verifyGoogleIdentity(ctx context.Context, req GoogleAuthRequest) error {
	if s.verifier == nil {
		return nil
	}
	token, err := s.verifier.VerifyIDToken(ctx, req.IDToken)
	if err != nil {
		s.logger.Warn("Google ID token rejected", zap.Error(err))
		return common.ErrUnauthorized.WithDetails("Invalid Google ID token.")
	}
	email, _ := token.Claims["email"].(string)
	if !strings.EqualFold(strings.TrimSpace(email), strings.TrimSpace(req.Email)) {
		s.logger.Warn("Google ID token email mismatch", zap.String("uid", token.UID))
		return common.ErrUnauthorized.WithDetails("Google ID token does not match the supplied email.")
	}
	return nil
}

// touchLastLogin records the login time. A user deleted concurrently is not an error.
func (s *service) touchLastLogin(ctx context.Context, usr *user.User) error {
	now := s.now().UTC()
	err := s.users.UpdateLastLogin(ctx, usr.ID, now)
	if err == nil {
		usr.LastLogin = &now
		return nil
	}
	if errors.Is(err, common.ErrNotFound) {
		s.logger.Warn("User vanished before last login was recorded", zap.String("userID", usr.ID.String()))
		return nil
	}
	s.logger.Error("Failed to record last login", zap.Error(err), zap.String("userID", usr.ID.String()))
	return err
}

func (s *service) issueToken(usr *user.User) (string, error) {
	token, _, err := s.tokenService.GenerateAccessToken(usr)
	if err != nil {
		s.logger.Error("Failed to generate access token", zap.Error(err), zap.String("userID", usr.ID.String()))
		return "", fmt.Errorf("failed to generate access token: %w", err)
	}
	return token, nil
}
