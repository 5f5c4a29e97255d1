package service

import (
	"context"
	"errors"
	"log"

	"shopcart-api/internal/model"
	"shopcart-api/internal/repository"
	"shopcart-api/pkg/apierror"

	"golang.org/x/crypto/bcrypt"
)

// AuthService owns the credential store: registration, authentication
// and role checks.
type AuthService struct {
	users repository.UserRepository
}

// NewAuthService creates a new auth service.
func NewAuthService(users repository.UserRepository) *AuthService {
	return &AuthService{users: users}
}

// Register creates a new customer account. Fails with Conflict when the
// username is already taken.
func (s *AuthService) Register(ctx context.Context, username, password string) (*model.User, error) {
	if username == "" {
		return nil, apierror.BadRequest("Username is required")
	}
	if password == "" {
		return nil, apierror.BadRequest("Password is required")
	}

	_, err := s.users.Get(ctx, username)
	if err == nil {
		return nil, apierror.Conflict("Username already registered")
	}
	if !errors.Is(err, repository.ErrNotFound) {
		log.Printf("[AuthService] user lookup failed for %q: %v", username, err)
		return nil, apierror.InternalError("")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("[AuthService] failed to hash password: %v", err)
		return nil, apierror.InternalError("")
	}

	user := &model.User{
		Username:       username,
		HashedPassword: string(hash),
		Role:           model.RoleCustomer,
	}
	if err := s.users.Upsert(ctx, user); err != nil {
		log.Printf("[AuthService] failed to store user %q: %v", username, err)
		return nil, apierror.InternalError("")
	}

	log.Printf("[AuthService] user %q registered", username)
	return user, nil
}

// Authenticate verifies a username/password pair. The bcrypt comparison
// is constant-time against the stored hash; unknown usernames and wrong
// passwords produce the same error.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.users.Get(ctx, username)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			log.Printf("[AuthService] user lookup failed for %q: %v", username, err)
			return nil, apierror.InternalError("")
		}
		return nil, apierror.Unauthorized("Incorrect username or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return nil, apierror.Unauthorized("Incorrect username or password")
	}

	return user, nil
}

// ChangePassword re-hashes and stores a new password after verifying
// the old one.
func (s *AuthService) ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error {
	user, err := s.Authenticate(ctx, username, oldPassword)
	if err != nil {
		return err
	}
	if newPassword == "" {
		return apierror.BadRequest("New password is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("[AuthService] failed to hash password: %v", err)
		return apierror.InternalError("")
	}

	user.HashedPassword = string(hash)
	if err := s.users.Upsert(ctx, user); err != nil {
		log.Printf("[AuthService] failed to store user %q: %v", username, err)
		return apierror.InternalError("")
	}

	log.Printf("[AuthService] user %q changed password", username)
	return nil
}

// RequireAdmin fails with Forbidden unless the user holds the admin role.
func (s *AuthService) RequireAdmin(user *model.User) error {
	if !user.IsAdmin() {
		return apierror.Forbidden("You do not have permission to perform this action")
	}
	return nil
}

// EnsureAdmin seeds the default admin account when it does not exist.
// Called once at startup.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password string) error {
	_, err := s.users.Get(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &model.User{
		Username:       username,
		HashedPassword: string(hash),
		Role:           model.RoleAdmin,
	}
	if err := s.users.Upsert(ctx, admin); err != nil {
		return err
	}

	log.Printf("WARNING: default admin user %q created with the configured seed password; change it", username)
	return nil
}
