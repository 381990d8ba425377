// Package users provides database operations for user management.
//
// # Usage
//
//	repo := users.NewRepository(db)
//	user, err := repo.GetUserByToken(ctx, token)
package users

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"

	"gorm.io/gorm"

	"github.com/mrlokans/tracker/internal/apperr"
	"github.com/mrlokans/tracker/internal/database/dberr"
	"github.com/mrlokans/tracker/internal/entities"
)

// DefaultUsername owns every aggregate when authentication is disabled.
const DefaultUsername = "local"

// Repository handles all user database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateUser creates a new user with a generated API token.
func (r *Repository) CreateUser(ctx context.Context, username, email string) (*entities.User, error) {
	if username == "" {
		return nil, apperr.Validationf("users.CreateUser", "username is required")
	}
	token, err := generateToken()
	if err != nil {
		return nil, apperr.Internalw("users.CreateUser", err)
	}

	user := &entities.User{
		Username: username,
		Email:    email,
		Token:    token,
	}
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, dberr.Translate("users.CreateUser", err)
	}
	return user, nil
}

// EnsureDefaultUser returns the local user, creating it on first use.
func (r *Repository) EnsureDefaultUser(ctx context.Context) (*entities.User, error) {
	user, err := r.GetUserByUsername(ctx, DefaultUsername)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperr.NotFound) {
		return nil, err
	}
	return r.CreateUser(ctx, DefaultUsername, DefaultUsername+"@localhost")
}

// GetUserByToken retrieves a user by their API token.
func (r *Repository) GetUserByToken(ctx context.Context, token string) (*entities.User, error) {
	if token == "" {
		return nil, apperr.NotFoundf("users.GetUserByToken", "empty token")
	}
	var user entities.User
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&user).Error; err != nil {
		return nil, dberr.Translate("users.GetUserByToken", err)
	}
	return &user, nil
}

// GetUserByID retrieves a user by ID.
func (r *Repository) GetUserByID(ctx context.Context, id uint) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, dberr.Translate("users.GetUserByID", err)
	}
	return &user, nil
}

// GetUserByUsername retrieves a user by username.
func (r *Repository) GetUserByUsername(ctx context.Context, username string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, dberr.Translate("users.GetUserByUsername", err)
	}
	return &user, nil
}

func generateToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
