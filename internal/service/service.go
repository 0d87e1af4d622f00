package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/profile-booster/account-service/internal/models"
	"github.com/profile-booster/account-service/internal/token"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned by Login on a password mismatch.
var ErrInvalidCredentials = errors.New("invalid credentials")

// bcryptCost is the work factor for password hashing.
const bcryptCost = 10

// UserStore is the persistence interface the service depends on.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByUsername(ctx context.Context, username string) (*models.User, error)
	FindUserByID(ctx context.Context, id int64) (*models.User, error)
	UpdateUser(ctx context.Context, id int64, username, passwordHash *string) (int64, error)
	DeleteUser(ctx context.Context, id int64) (int64, error)
}

// Service handles business logic
type Service struct {
	store  UserStore
	tokens *token.Manager
	log    *logrus.Logger
}

// NewService initializes a new service
func NewService(store UserStore, tokens *token.Manager, log *logrus.Logger) *Service {
	return &Service{store: store, tokens: tokens, log: log}
}

// Register creates a new user with a hashed password and mints a token for it.
func (s *Service) Register(ctx context.Context, username, password string) (*models.User, string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hashedPassword),
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, "", err
	}

	signed, err := s.tokens.Sign(user.ID, user.Username)
	if err != nil {
		return nil, "", err
	}

	s.log.Infof("User registered: %s", user.Username)
	return user, signed, nil
}

// Login authenticates a user and returns a bearer token.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.store.FindUserByUsername(ctx, username)
	if err != nil {
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	signed, err := s.tokens.Sign(user.ID, user.Username)
	if err != nil {
		return "", err
	}

	s.log.Infof("User logged in: %s", user.Username)
	return signed, nil
}

// GetUser retrieves a user by id.
func (s *Service) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return s.store.FindUserByID(ctx, id)
}

// UpdateUser applies a sparse update, hashing the new password when present.
// At least one field must be non-nil; the handler enforces that before
// calling. Returns the number of affected rows.
func (s *Service) UpdateUser(ctx context.Context, id int64, username, password *string) (int64, error) {
	var passwordHash *string
	if password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*password), bcryptCost)
		if err != nil {
			return 0, fmt.Errorf("failed to hash password: %w", err)
		}
		h := string(hashed)
		passwordHash = &h
	}

	affected, err := s.store.UpdateUser(ctx, id, username, passwordHash)
	if err != nil {
		return 0, err
	}
	if affected > 0 {
		s.log.Infof("User updated: %d", id)
	}
	return affected, nil
}

// DeleteUser removes the user. Returns the number of affected rows.
func (s *Service) DeleteUser(ctx context.Context, id int64) (int64, error) {
	affected, err := s.store.DeleteUser(ctx, id)
	if err != nil {
		return 0, err
	}
	if affected > 0 {
		s.log.Infof("User deleted: %d", id)
	}
	return affected, nil
}
