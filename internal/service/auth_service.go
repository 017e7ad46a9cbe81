package service

import (
	"context"
	"fmt"

	"github.com/Cynto/watchy-backend/internal/auth"
	"github.com/Cynto/watchy-backend/internal/model"
	"github.com/Cynto/watchy-backend/internal/repository"
)

// AuthService handles authentication operations.
type AuthService interface {
	// Login resolves the credentials through the matching strategy and, on
	// success, mints a fresh session token for the principal.
	Login(ctx context.Context, creds auth.Credentials) (model.Principal, string, error)
	// Authenticate resolves a bearer token to a principal, confirming the
	// account still persists.
	Authenticate(ctx context.Context, token string) (model.Principal, error)
}

type authService struct {
	registry   *auth.StrategyRegistry
	jwtService *auth.JWTService
}

// NewAuthService creates a new authentication service.
func NewAuthService(repo repository.UserRepository, jwtService *auth.JWTService) AuthService {
	return &authService{
		registry:   auth.NewStrategyRegistry(repo, jwtService),
		jwtService: jwtService,
	}
}

func (s *authService) Login(ctx context.Context, creds auth.Credentials) (model.Principal, string, error) {
	principal, err := s.registry.Resolve(ctx, creds)
	if err != nil {
		return model.Principal{}, "", err
	}

	token, err := s.jwtService.Issue(principal, auth.SessionTokenExpiry)
	if err != nil {
		return model.Principal{}, "", fmt.Errorf("issue session token: %w", err)
	}

	return principal, token, nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (model.Principal, error) {
	return s.registry.Resolve(ctx, auth.Credentials{Token: token})
}
