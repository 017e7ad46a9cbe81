package auth

import (
	"context"
	"fmt"
	"strings"

	apperrors "github.com/Cynto/watchy-backend/internal/errors"
	"github.com/Cynto/watchy-backend/internal/model"
	"github.com/Cynto/watchy-backend/internal/repository"
)

// Credentials carries an inbound authentication payload. Which fields are set
// decides the strategy: a bearer token wins over an email, an email over a
// username.
type Credentials struct {
	Username string
	Email    string
	Password string
	Token    string
}

// Strategy resolves credentials to a principal or an explicit failure.
// "Not found" and "bad password" are sentinel outcomes, never panics; only
// transport faults surface as unexpected errors.
type Strategy interface {
	Resolve(ctx context.Context, creds Credentials) (model.Principal, error)
}

type usernameStrategy struct {
	repo repository.UserRepository
}

func (s *usernameStrategy) Resolve(ctx context.Context, creds Credentials) (model.Principal, error) {
	user, err := s.repo.FindOne(ctx, repository.UserQuery{Username: strings.ToLower(creds.Username)})
	if err != nil {
		return model.Principal{}, err
	}
	if !CheckPassword(creds.Password, user.PwdHash) {
		return model.Principal{}, apperrors.ErrInvalidCredentials
	}
	return user.Principal(), nil
}

type emailStrategy struct {
	repo repository.UserRepository
}

func (s *emailStrategy) Resolve(ctx context.Context, creds Credentials) (model.Principal, error) {
	user, err := s.repo.FindOne(ctx, repository.UserQuery{Email: strings.ToLower(creds.Email)})
	if err != nil {
		return model.Principal{}, err
	}
	if !CheckPassword(creds.Password, user.PwdHash) {
		return model.Principal{}, apperrors.ErrInvalidCredentials
	}
	return user.Principal(), nil
}

type tokenStrategy struct {
	repo       repository.UserRepository
	jwtService *JWTService
}

func (s *tokenStrategy) Resolve(ctx context.Context, creds Credentials) (model.Principal, error) {
	principal, err := s.jwtService.Verify(creds.Token)
	if err != nil {
		return model.Principal{}, err
	}
	// A valid token is not enough: the account must still persist.
	exists, err := s.repo.Exists(ctx, principal.UserID)
	if err != nil {
		return model.Principal{}, fmt.Errorf("confirm user exists: %w", err)
	}
	if !exists {
		return model.Principal{}, apperrors.ErrInvalidCredentials
	}
	return principal, nil
}

// StrategyRegistry holds the closed set of verification strategies and
// selects one by payload shape.
type StrategyRegistry struct {
	byUsername Strategy
	byEmail    Strategy
	byToken    Strategy
}

// NewStrategyRegistry wires the username, email and token strategies over the
// given repository and token verifier.
func NewStrategyRegistry(repo repository.UserRepository, jwtService *JWTService) *StrategyRegistry {
	return &StrategyRegistry{
		byUsername: &usernameStrategy{repo: repo},
		byEmail:    &emailStrategy{repo: repo},
		byToken:    &tokenStrategy{repo: repo, jwtService: jwtService},
	}
}

// Resolve picks the strategy matching the payload shape and runs it. A payload
// with no usable field is a caller fault and never reaches a strategy.
func (r *StrategyRegistry) Resolve(ctx context.Context, creds Credentials) (model.Principal, error) {
	switch {
	case creds.Token != "":
		return r.byToken.Resolve(ctx, creds)
	case creds.Email != "":
		return r.byEmail.Resolve(ctx, creds)
	case creds.Username != "":
		return r.byUsername.Resolve(ctx, creds)
	default:
		return model.Principal{}, apperrors.ErrNoLookupKey
	}
}
