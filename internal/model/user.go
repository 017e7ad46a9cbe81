package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultRank is the privilege tier assigned to every new user. Rank 1 is a
// restricted, unverified account; rank 2 and above pass the signed-in gate.
const DefaultRank = 1

// PrivacySettings controls which parts of a profile other users can see.
type PrivacySettings struct {
	Friends   bool `json:"friends"`
	Following bool `json:"following"`
}

// User represents a registered account.
type User struct {
	ID              uint            `json:"id" gorm:"primaryKey"`
	UserID          uuid.UUID       `json:"user_id" gorm:"type:char(36);uniqueIndex;not null"`
	Username        string          `json:"username" gorm:"uniqueIndex;size:20;not null"`
	Email           string          `json:"email" gorm:"uniqueIndex;size:40;not null"`
	PwdHash         string          `json:"-" gorm:"size:200;not null"` // Never expose in JSON
	Rank            int             `json:"rank" gorm:"default:1"`
	DOB             time.Time       `json:"dob"`
	VerifiedEmail   bool            `json:"verified_email" gorm:"default:false"`
	PrivacySettings PrivacySettings `json:"privacy_settings" gorm:"serializer:json"`
	LastLogin       *time.Time      `json:"last_login,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// Principal is the identity subset embedded in issued session tokens, enough
// for downstream authorization without a repository round-trip.
type Principal struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	Rank     int       `json:"rank"`
}

// Principal derives the token-embeddable identity from a user row.
func (u *User) Principal() Principal {
	return Principal{
		UserID:   u.UserID,
		Username: u.Username,
		Rank:     u.Rank,
	}
}

// NewUser builds a user with server-derived fields: a fresh user_id, the
// default rank, unverified email and all-visible privacy settings. Username
// and email are lowercased so uniqueness is case-insensitive.
func NewUser(username, email, pwdHash string, dob time.Time) *User {
	return &User{
		UserID:        uuid.New(),
		Username:      strings.ToLower(username),
		Email:         strings.ToLower(email),
		PwdHash:       pwdHash,
		Rank:          DefaultRank,
		DOB:           dob,
		VerifiedEmail: false,
		PrivacySettings: PrivacySettings{
			Friends:   true,
			Following: true,
		},
	}
}
