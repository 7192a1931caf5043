// Package auth implements the reference server's authentication: bcrypt
// credential checks, JWT access/refresh token pairs for the REST API, and
// cookie sessions for the HTML pages, plus the role middleware both share.
package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/miniapartment/e2e/internal/errs"
	"github.com/miniapartment/e2e/internal/rental"
)

// invalidCredentialsMessage is deliberately generic: login failures must not
// reveal whether the account exists.
const invalidCredentialsMessage = "invalid email or password"

// UserService manages accounts and credential verification.
type UserService struct {
	store *rental.Store
}

// NewUserService creates a user service over the store.
func NewUserService(store *rental.Store) *UserService {
	return &UserService{store: store}
}

// Register creates an account with a bcrypt-hashed password.
func (s *UserService) Register(ctx context.Context, email, password, role string) (rental.User, error) {
	if password == "" {
		return rental.User{}, errs.New(errs.InvalidArgument, "password is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return rental.User{}, errs.Wrap(errs.Internal, "hash password", err)
	}
	return s.store.CreateUser(ctx, email, string(hash), role)
}

// Authenticate verifies credentials and returns the account.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (rental.User, error) {
	if email == "" || password == "" {
		return rental.User{}, errs.New(errs.InvalidArgument, "email and password are required")
	}
	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		return rental.User{}, errs.New(errs.Unauthenticated, invalidCredentialsMessage)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return rental.User{}, errs.New(errs.Unauthenticated, invalidCredentialsMessage)
	}
	return user, nil
}

// SeedDefaults provisions the landlord and renter accounts the suite's
// configuration points at. Existing accounts are left untouched.
func (s *UserService) SeedDefaults(ctx context.Context, adminEmail, adminPassword, userEmail, userPassword string) error {
	for _, acct := range []struct {
		email, password, role string
	}{
		{adminEmail, adminPassword, rental.RoleLandlord},
		{userEmail, userPassword, rental.RoleRenter},
	} {
		if _, err := s.store.GetUserByEmail(ctx, acct.email); err == nil {
			continue
		}
		if _, err := s.Register(ctx, acct.email, acct.password, acct.role); err != nil {
			return err
		}
	}
	return nil
}
