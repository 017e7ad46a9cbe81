package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "github.com/Cynto/watchy-backend/internal/errors"
	"github.com/Cynto/watchy-backend/internal/model"
)

// UserQuery selects a single user by exactly one discriminator. A query with
// no discriminator set never reaches the store.
type UserQuery struct {
	Username string
	Email    string
	UserID   uuid.UUID
}

// column resolves the query to a WHERE clause column and value. Anything
// other than exactly one set discriminator is a logic fault, not a store
// fault.
func (q UserQuery) column() (string, interface{}, error) {
	set := 0
	var col string
	var val interface{}
	if q.Username != "" {
		set++
		col, val = "username", q.Username
	}
	if q.Email != "" {
		set++
		col, val = "email", q.Email
	}
	if q.UserID != uuid.Nil {
		set++
		col, val = "user_id", q.UserID
	}
	if set != 1 {
		return "", nil, apperrors.ErrNoLookupKey
	}
	return col, val, nil
}

// UserRepository defines persistence operations over the users table.
// Mutations run inside explicit transactions and surface store failures only
// after normalization to the canonical store-error shape.
type UserRepository interface {
	FindOne(ctx context.Context, query UserQuery) (*model.User, error)
	Exists(ctx context.Context, userID uuid.UUID) (bool, error)
	List(ctx context.Context) ([]model.User, error)
	Insert(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// FindOne looks a user up by the query's single discriminator.
func (r *userRepository) FindOne(ctx context.Context, query UserQuery) (*model.User, error) {
	col, val, err := query.column()
	if err != nil {
		return nil, err
	}
	var user model.User
	if err := r.db.WithContext(ctx).Where(col+" = ?", val).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.NormalizeStoreError(err)
	}
	return &user, nil
}

// Exists reports whether a user with the given user_id persists.
func (r *userRepository) Exists(ctx context.Context, userID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return false, apperrors.NormalizeStoreError(err)
	}
	return count > 0, nil
}

// List returns all users.
func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, apperrors.NormalizeStoreError(err)
	}
	return users, nil
}

// Insert creates the user inside a transaction. A unique-constraint violation
// is translated into a ConflictError tagged with the colliding column.
func (r *userRepository) Insert(ctx context.Context, user *model.User) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(user).Error
	})
	if err != nil {
		return apperrors.TranslateStoreError(err)
	}
	return nil
}

// Update rewrites the mutable columns of the row matching user.UserID inside a
// transaction. Zero rows affected means the user does not exist, so the
// existence check and the mutation share one transaction.
func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	values := map[string]interface{}{
		"username": user.Username,
		"email":    user.Email,
		"rank":     user.Rank,
	}
	// An empty hash means the caller is not changing the password.
	if user.PwdHash != "" {
		values["pwd_hash"] = user.PwdHash
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.User{}).
			Where("user_id = ?", user.UserID).
			Updates(values)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrUserNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return err
		}
		return apperrors.TranslateStoreError(err)
	}
	return nil
}

// Delete removes the row matching userID inside a transaction, reporting zero
// rows affected as a missing user.
func (r *userRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ?", userID).Delete(&model.User{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrUserNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return err
		}
		return apperrors.NormalizeStoreError(err)
	}
	return nil
}
