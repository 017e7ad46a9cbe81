package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Cynto/watchy-backend/internal/auth"
	"github.com/Cynto/watchy-backend/internal/cache"
	"github.com/Cynto/watchy-backend/internal/model"
	"github.com/Cynto/watchy-backend/internal/repository"
)

const (
	userListCacheKey = "users:all"
	userListCacheTTL = 5 * time.Minute
)

// UserService exposes domain operations over users.
type UserService interface {
	GetAll(ctx context.Context) ([]model.User, error)
	Register(ctx context.Context, username, email, password string, dob time.Time) (*model.User, error)
	AddOne(ctx context.Context, user *model.User) error
	UpdateOne(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

type userService struct {
	repo  repository.UserRepository
	cache *cache.Client
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, cache *cache.Client) UserService {
	return &userService{repo: repo, cache: cache}
}

// GetAll lists every user, served from the cache when warm.
func (s *userService) GetAll(ctx context.Context) ([]model.User, error) {
	if data, _ := s.cache.Get(ctx, userListCacheKey); data != nil {
		var cached []model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(users); err == nil {
		_ = s.cache.Set(ctx, userListCacheKey, payload, userListCacheTTL)
	}
	return users, nil
}

// Register hashes the password, derives the server-assigned fields and inserts
// the new user. A conflict on username or email passes through unchanged for
// the caller to interpret.
func (s *userService) Register(ctx context.Context, username, email, password string, dob time.Time) (*model.User, error) {
	pwdHash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := model.NewUser(username, email, pwdHash, dob)
	if err := s.AddOne(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// AddOne inserts a fully-built user row.
func (s *userService) AddOne(ctx context.Context, user *model.User) error {
	if err := s.repo.Insert(ctx, user); err != nil {
		return err
	}
	_ = s.cache.Delete(ctx, userListCacheKey)
	return nil
}

// UpdateOne rewrites the mutable fields of the user identified by
// user.UserID. A missing user surfaces as ErrUserNotFound from the
// repository's own rows-affected check, so no separate existence probe races
// with the mutation.
func (s *userService) UpdateOne(ctx context.Context, user *model.User) error {
	user.Username = strings.ToLower(user.Username)
	user.Email = strings.ToLower(user.Email)
	if err := s.repo.Update(ctx, user); err != nil {
		return err
	}
	_ = s.cache.Delete(ctx, userListCacheKey)
	return nil
}

// Delete removes the user identified by userID.
func (s *userService) Delete(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.Delete(ctx, userID); err != nil {
		return err
	}
	_ = s.cache.Delete(ctx, userListCacheKey)
	return nil
}
