package router_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Cynto/watchy-backend/internal/auth"
	"github.com/Cynto/watchy-backend/internal/config"
	"github.com/Cynto/watchy-backend/internal/handler"
	"github.com/Cynto/watchy-backend/internal/model"
	"github.com/Cynto/watchy-backend/internal/router"
)

// MockUserService is a mock implementation of service.UserService.
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetAll(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserService) Register(ctx context.Context, username, email, password string, dob time.Time) (*model.User, error) {
	args := m.Called(ctx, username, email, password, dob)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) AddOne(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserService) UpdateOne(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserService) Delete(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockAuthService is a mock implementation of service.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, creds auth.Credentials) (model.Principal, string, error) {
	args := m.Called(ctx, creds)
	return args.Get(0).(model.Principal), args.String(1), args.Error(2)
}

func (m *MockAuthService) Authenticate(ctx context.Context, token string) (model.Principal, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(model.Principal), args.Error(1)
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:         "test-secret",
		SessionCookieName: "watchy_session",
		AllowedOrigins:    []string{"http://localhost"},
	}
}

func setup(authSvc *MockAuthService) *echo.Echo {
	e := echo.New()
	userSvc := new(MockUserService)
	userSvc.On("Delete", mock.Anything, mock.Anything).Return(nil).Maybe()
	router.Register(e, testConfig(),
		handler.NewUserHandler(userSvc),
		handler.NewAuthHandler(authSvc, "watchy_session"),
		authSvc,
	)
	return e
}

func TestSecuredRoutes_RequireToken(t *testing.T) {
	e := setup(new(MockAuthService))

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	// echo-jwt reports a missing token as a malformed request
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSecuredRoutes_RejectForeignToken(t *testing.T) {
	foreign, err := auth.NewJWTService("other-secret").
		Issue(model.Principal{UserID: uuid.New(), Username: "mallory", Rank: 2}, auth.SessionTokenExpiry)
	assert.NoError(t, err)

	e := setup(new(MockAuthService))

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+foreign)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSecuredRoutes_RankGate(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")

	tests := []struct {
		name           string
		rank           int
		expectedStatus int
	}{
		{name: "restricted account", rank: 1, expectedStatus: http.StatusForbidden},
		{name: "standard account", rank: 2, expectedStatus: http.StatusOK},
		{name: "elevated account", rank: 3, expectedStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			principal := model.Principal{
				UserID:   uuid.New(),
				Username: "alice",
				Rank:     tt.rank,
			}
			token, err := jwtService.Issue(principal, auth.SessionTokenExpiry)
			assert.NoError(t, err)

			authSvc := new(MockAuthService)
			authSvc.On("Authenticate", mock.Anything, token).Return(principal, nil)

			e := setup(authSvc)

			req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
			req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Contains(t, rec.Body.String(), principal.UserID.String())
			}
		})
	}
}

func TestSecuredRoutes_SessionCookie(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	principal := model.Principal{UserID: uuid.New(), Username: "alice", Rank: 2}
	token, err := jwtService.Issue(principal, auth.SessionTokenExpiry)
	assert.NoError(t, err)

	authSvc := new(MockAuthService)
	authSvc.On("Authenticate", mock.Anything, token).Return(principal, nil)

	e := setup(authSvc)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.AddCookie(&http.Cookie{Name: "watchy_session", Value: token})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHealthz(t *testing.T) {
	e := setup(new(MockAuthService))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}
