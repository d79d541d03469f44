package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"footballiq/internal/clock"
	"footballiq/internal/credentials"
	"footballiq/internal/models"
)

// Auth errors surfaced to handlers
var (
	ErrInvalidCredentials = errors.New("invalid device credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// userStore persists device accounts.
type userStore interface {
	Create(u *models.User) error
	GetByID(id string) (*models.User, error)
}

// TokenClaims is the JWT payload issued to devices. Premium is
// advisory for the client; handlers reload the user for decisions.
type TokenClaims struct {
	Premium bool `json:"premium"`
	jwt.RegisteredClaims
}

// AuthService registers devices and issues bearer tokens
type AuthService struct {
	users         userStore
	jwtSecret     []byte
	tokenDuration time.Duration
	clk           clock.Clock
}

// NewAuthService creates a new auth service
func NewAuthService(users userStore, jwtSecret string, tokenDuration time.Duration, clk clock.Clock) *AuthService {
	return &AuthService{
		users:         users,
		jwtSecret:     []byte(jwtSecret),
		tokenDuration: tokenDuration,
		clk:           clk,
	}
}

// RegisterDevice creates a device account and returns the one-time
// refresh secret alongside the first bearer token. Unknown timezones
// are stored as UTC.
func (s *AuthService) RegisterDevice(timezone string) (*models.User, string, string, error) {
	if clock.LoadLocation(timezone).String() != timezone {
		timezone = "UTC"
	}

	secret, err := credentials.GenerateDeviceSecret()
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to generate device secret: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to hash device secret: %w", err)
	}

	user := &models.User{
		ID:         uuid.NewString(),
		SecretHash: string(hash),
		Timezone:   timezone,
	}

	if err := s.users.Create(user); err != nil {
		return nil, "", "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", "", err
	}

	return user, token, secret, nil
}

// Refresh exchanges the device ID and refresh secret for a new bearer token
func (s *AuthService) Refresh(deviceID, secret string) (string, error) {
	user, err := s.users.GetByID(deviceID)
	if err != nil {
		return "", fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.SecretHash), []byte(secret)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.issueToken(user)
}

// ValidateToken parses a bearer token and loads the current user record
func (s *AuthService) ValidateToken(tokenString string) (*models.User, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	user, err := s.users.GetByID(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidToken
	}

	return user, nil
}

// issueToken signs a fresh HS256 bearer token for the user
func (s *AuthService) issueToken(user *models.User) (string, error) {
	now := s.clk.Now()
	claims := TokenClaims{
		Premium: user.IsPremium,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenDuration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
