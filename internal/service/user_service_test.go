package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Cynto/watchy-backend/internal/auth"
	apperrors "github.com/Cynto/watchy-backend/internal/errors"
	"github.com/Cynto/watchy-backend/internal/model"
	"github.com/Cynto/watchy-backend/internal/repository"
)

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindOne(ctx context.Context, query repository.UserQuery) (*model.User, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) Exists(ctx context.Context, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) Insert(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func TestUserService_Register(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("Insert", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

	svc := NewUserService(mockRepo, nil)
	dob := time.Date(1994, 3, 12, 0, 0, 0, 0, time.UTC)

	user, err := svc.Register(context.Background(), "Alice", "Alice@X.com", "Secret1!pass", dob)
	assert.NoError(t, err)
	assert.NotNil(t, user)

	// Server-derived fields, never client-supplied.
	assert.NotEqual(t, uuid.Nil, user.UserID)
	assert.Equal(t, model.DefaultRank, user.Rank)
	assert.False(t, user.VerifiedEmail)
	assert.Equal(t, model.PrivacySettings{Friends: true, Following: true}, user.PrivacySettings)

	// Case-insensitive identifiers are stored lowercased.
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@x.com", user.Email)

	// The password is stored only as a verifiable hash.
	assert.NotEqual(t, "Secret1!pass", user.PwdHash)
	assert.True(t, auth.CheckPassword("Secret1!pass", user.PwdHash))

	mockRepo.AssertExpectations(t)
}

func TestUserService_Register_ConflictPassesThrough(t *testing.T) {
	conflict := &apperrors.ConflictError{Field: "username"}

	mockRepo := new(MockUserRepository)
	mockRepo.On("Insert", mock.Anything, mock.AnythingOfType("*model.User")).Return(conflict)

	svc := NewUserService(mockRepo, nil)
	dob := time.Date(1994, 3, 12, 0, 0, 0, 0, time.UTC)

	user, err := svc.Register(context.Background(), "alice", "bob@x.com", "Secret1!pass", dob)
	assert.Nil(t, user)
	assert.Equal(t, conflict, err)

	mockRepo.AssertExpectations(t)
}

func TestUserService_UpdateOne(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name: "successful update",
			setupMock: func(m *MockUserRepository) {
				m.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
		},
		{
			name: "unknown user",
			setupMock: func(m *MockUserRepository) {
				m.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(apperrors.ErrUserNotFound)
			},
			expectedError: apperrors.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc := NewUserService(mockRepo, nil)
			err := svc.UpdateOne(context.Background(), &model.User{
				UserID:   uuid.New(),
				Username: "Alice",
				Email:    "Alice@X.com",
				Rank:     2,
			})

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
				// Identifier normalization happens before the repository call.
				updated := mockRepo.Calls[0].Arguments.Get(1).(*model.User)
				assert.Equal(t, "alice", updated.Username)
				assert.Equal(t, "alice@x.com", updated.Email)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_Delete(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name          string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name: "successful delete",
			setupMock: func(m *MockUserRepository) {
				m.On("Delete", mock.Anything, userID).Return(nil)
			},
		},
		{
			name: "unknown user",
			setupMock: func(m *MockUserRepository) {
				m.On("Delete", mock.Anything, userID).Return(apperrors.ErrUserNotFound)
			},
			expectedError: apperrors.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc := NewUserService(mockRepo, nil)
			err := svc.Delete(context.Background(), userID)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_GetAll(t *testing.T) {
	users := []model.User{
		{ID: 1, UserID: uuid.New(), Username: "alice", Email: "alice@x.com"},
		{ID: 2, UserID: uuid.New(), Username: "bob", Email: "bob@x.com"},
	}

	mockRepo := new(MockUserRepository)
	mockRepo.On("List", mock.Anything).Return(users, nil)

	svc := NewUserService(mockRepo, nil)
	got, err := svc.GetAll(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, users, got)
	mockRepo.AssertExpectations(t)
}
