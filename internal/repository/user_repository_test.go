package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/Cynto/watchy-backend/internal/errors"
)

// FindOne must refuse ambiguous or empty queries before any SQL is issued, so
// these run against a repository with no live connection.
func TestFindOne_DiscriminatorFailFast(t *testing.T) {
	repo := NewUserRepository(nil)

	tests := []struct {
		name  string
		query UserQuery
	}{
		{name: "no discriminator", query: UserQuery{}},
		{name: "username and email", query: UserQuery{Username: "alice", Email: "alice@x.com"}},
		{name: "all three", query: UserQuery{Username: "alice", Email: "alice@x.com", UserID: uuid.New()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := repo.FindOne(context.Background(), tt.query)
			assert.Nil(t, user)
			assert.ErrorIs(t, err, apperrors.ErrNoLookupKey)
		})
	}
}

func TestUserQuery_Column(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name        string
		query       UserQuery
		expectedCol string
		expectedVal interface{}
	}{
		{name: "by username", query: UserQuery{Username: "alice"}, expectedCol: "username", expectedVal: "alice"},
		{name: "by email", query: UserQuery{Email: "alice@x.com"}, expectedCol: "email", expectedVal: "alice@x.com"},
		{name: "by user_id", query: UserQuery{UserID: userID}, expectedCol: "user_id", expectedVal: userID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col, val, err := tt.query.column()
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedCol, col)
			assert.Equal(t, tt.expectedVal, val)
		})
	}
}
