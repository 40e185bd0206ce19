package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const (
	// AccessTokenExpiry is the duration for which access tokens are valid.
	AccessTokenExpiry = 15 * time.Minute
	// RefreshTokenExpiry is the duration for which refresh tokens are valid.
	RefreshTokenExpiry = 7 * 24 * time.Hour
	// ResetTokenExpiry is the duration for which password reset tokens are valid.
	ResetTokenExpiry = time.Hour
)

// Claims represents JWT claims carried by every token kind.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies the three token kinds. Access, refresh and
// reset tokens each use an independent secret, so a token of one kind never
// verifies as another.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	resetSecret   []byte
}

// NewTokenService creates a token service with the given signing secrets.
func NewTokenService(accessSecret, refreshSecret, resetSecret string) *TokenService {
	return &TokenService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		resetSecret:   []byte(resetSecret),
	}
}

// GenerateAccessToken issues a short-lived access token for the user.
func (s *TokenService) GenerateAccessToken(userID uuid.UUID, email string) (string, error) {
	return s.generate(userID, email, s.accessSecret, AccessTokenExpiry)
}

// GenerateRefreshToken issues a long-lived refresh token for the user.
func (s *TokenService) GenerateRefreshToken(userID uuid.UUID, email string) (string, error) {
	return s.generate(userID, email, s.refreshSecret, RefreshTokenExpiry)
}

// GenerateResetToken issues a time-boxed password reset token bound to the user id.
func (s *TokenService) GenerateResetToken(userID uuid.UUID) (string, error) {
	return s.generate(userID, "", s.resetSecret, ResetTokenExpiry)
}

// ValidateAccessToken validates an access token and returns its claims.
func (s *TokenService) ValidateAccessToken(token string) (*Claims, error) {
	return s.validate(token, s.accessSecret)
}

// ValidateRefreshToken validates a refresh token and returns its claims.
func (s *TokenService) ValidateRefreshToken(token string) (*Claims, error) {
	return s.validate(token, s.refreshSecret)
}

// ValidateResetToken validates a password reset token and returns its claims.
func (s *TokenService) ValidateResetToken(token string) (*Claims, error) {
	return s.validate(token, s.resetSecret)
}

func (s *TokenService) generate(userID uuid.UUID, email string, secret []byte, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID.String(),
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func (s *TokenService) validate(tokenString string, secret []byte) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

// SubjectID parses the user id carried by the claims.
func (c *Claims) SubjectID() (uuid.UUID, error) {
	return uuid.Parse(c.UserID)
}
