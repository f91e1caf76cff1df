package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/vendorisk/assessment-server/models"
	"github.com/vendorisk/assessment-server/store"
	"github.com/vendorisk/assessment-server/utils"
)

// IdentityService manages user accounts and credential checks. Raw passwords
// never leave this package; only bcrypt hashes are stored.
type IdentityService struct {
	store *store.Store
}

func NewIdentityService(st *store.Store) *IdentityService {
	return &IdentityService{store: st}
}

func (s *IdentityService) Register(username, password string) (models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return models.User{}, NewValidationError("Username and password are required.")
	}

	count, err := s.store.CountUsersByUsername(username)
	if err != nil {
		return models.User{}, fmt.Errorf("check username: %w", err)
	}
	if count > 0 {
		return models.User{}, NewConflictError("Username already exists")
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{Username: username, PasswordHash: hash}
	if err := s.store.CreateUser(&user); err != nil {
		return models.User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Authenticate returns one generic message for unknown usernames and wrong
// passwords alike, so the login form cannot be used to enumerate accounts.
func (s *IdentityService) Authenticate(username, password string) (models.User, error) {
	user, err := s.store.UserByUsername(strings.TrimSpace(username))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, NewAuthError("Invalid username or password")
	}
	if err != nil {
		return models.User{}, fmt.Errorf("load user: %w", err)
	}

	if !utils.CheckPassword(user.PasswordHash, password) {
		return models.User{}, NewAuthError("Invalid username or password")
	}
	return user, nil
}

func (s *IdentityService) UserByID(id uint) (models.User, error) {
	user, err := s.store.UserByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, NewUnauthorizedError("Unknown user")
	}
	if err != nil {
		return models.User{}, fmt.Errorf("load user: %w", err)
	}
	return user, nil
}
