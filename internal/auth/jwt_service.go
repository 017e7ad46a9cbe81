package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	apperrors "github.com/Cynto/watchy-backend/internal/errors"
	"github.com/Cynto/watchy-backend/internal/model"
)

// SessionTokenExpiry is the default lifetime of an issued session token.
const SessionTokenExpiry = 182 * 24 * time.Hour

// Claims represents the session token payload.
type Claims struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	Rank     int       `json:"rank"`
	jwt.RegisteredClaims
}

// JWTService handles session token issuance and verification.
type JWTService struct {
	secret []byte
}

// NewJWTService creates a new JWT service with the given secret.
func NewJWTService(secret string) *JWTService {
	return &JWTService{
		secret: []byte(secret),
	}
}

// Issue signs a token carrying the principal, valid for ttl.
func (s *JWTService) Issue(principal model.Principal, ttl time.Duration) (string, error) {
	claims := &Claims{
		UserID:   principal.UserID,
		Username: principal.Username,
		Rank:     principal.Rank,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify validates a token string and returns the embedded principal.
// An expired token maps to ErrTokenExpired; any other validation failure,
// including a foreign secret or signing algorithm, maps to ErrTokenMalformed.
func (s *JWTService) Verify(tokenString string) (model.Principal, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return model.Principal{}, apperrors.ErrTokenExpired
		}
		return model.Principal{}, apperrors.ErrTokenMalformed
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return model.Principal{}, apperrors.ErrTokenMalformed
	}

	return model.Principal{
		UserID:   claims.UserID,
		Username: claims.Username,
		Rank:     claims.Rank,
	}, nil
}
