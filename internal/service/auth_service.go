package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

// --- Error Definitions ---
var (
	ErrAuthenticationFailed = errors.New("authentication failed: invalid email or password")
	ErrTokenGeneration      = errors.New("failed to generate authentication token")
)

// AdminRole is the only role the console knows about.
const AdminRole = "admin"

// --- Service Interface ---
type AuthService interface {
	Login(ctx context.Context, email, password string) (token string, err error)
	GetJWTSecret() string
}

// --- Service Implementation ---

// authService checks credentials against the single configured operator.
type authService struct {
	adminEmail    string
	adminHash     []byte
	jwtSecret     string
	jwtExpiration time.Duration
	now           func() time.Time
}

// NewAuthService creates a new instance of authService. passwordHash must be
// a bcrypt hash; an empty hash disables login.
func NewAuthService(adminEmail, passwordHash, jwtSecret string, jwtExpiration time.Duration) AuthService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty") // Critical configuration
	}
	if jwtExpiration <= 0 {
		jwtExpiration = time.Hour * 1
	}
	return &authService{
		adminEmail:    strings.ToLower(strings.TrimSpace(adminEmail)),
		adminHash:     []byte(passwordHash),
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
		now:           time.Now,
	}
}

// Login handles operator authentication and JWT generation.
func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	// 1. Basic Input Validation
	if email == "" || password == "" {
		return "", validationError("email and password cannot be empty")
	}

	// 2. Match the configured operator
	if len(s.adminHash) == 0 || strings.ToLower(strings.TrimSpace(email)) != s.adminEmail {
		return "", ErrAuthenticationFailed
	}
	if err := bcrypt.CompareHashAndPassword(s.adminHash, []byte(password)); err != nil {
		return "", ErrAuthenticationFailed
	}

	// 3. Generate JWT
	token, err := s.generateJWT()
	if err != nil {
		return "", ErrTokenGeneration
	}
	return token, nil
}

// --- JWT Helper ---

// Claims is the payload of console tokens.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func (s *authService) generateJWT() (string, error) {
	now := s.now()
	claims := &Claims{
		Role: AdminRole,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.adminEmail,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "gym-admin",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// GetJWTSecret returns the JWT secret for middleware authentication
func (s *authService) GetJWTSecret() string {
	return s.jwtSecret
}
