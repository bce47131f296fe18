package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/listingkit/listingkit-backend/internal/models"
	"github.com/listingkit/listingkit-backend/internal/repository"
)

const minPasswordLength = 8

var (
	ErrMissingCredentials = errors.New("email and password are required")
	ErrWeakPassword       = fmt.Errorf("password must be at least %d characters", minPasswordLength)
	ErrInvalidPassword    = errors.New("invalid login credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// Claims are the JWT claims issued to signed-in users
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// AuthService handles signup, login and token verification
type AuthService struct {
	repo   *repository.UserRepository
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(repo *repository.UserRepository, secret string, ttl time.Duration) *AuthService {
	return &AuthService{
		repo:   repo,
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

func normalizeCredentials(creds models.Credentials) (models.Credentials, error) {
	creds.Email = strings.ToLower(strings.TrimSpace(creds.Email))
	if creds.Email == "" || creds.Password == "" {
		return creds, ErrMissingCredentials
	}
	return creds, nil
}

// SignUp creates an account and returns a session for it
func (s *AuthService) SignUp(ctx context.Context, creds models.Credentials) (*models.AuthSession, error) {
	creds, err := normalizeCredentials(creds)
	if err != nil {
		return nil, err
	}
	if len(creds.Password) < minPasswordLength {
		return nil, ErrWeakPassword
	}

	exists, err := s.repo.ExistsByEmail(ctx, creds.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, repository.ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{Email: creds.Email, PasswordHash: string(hash)}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return s.issue(user)
}

// Login verifies credentials and returns a fresh session
func (s *AuthService) Login(ctx context.Context, creds models.Credentials) (*models.AuthSession, error) {
	creds, err := normalizeCredentials(creds)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.GetByEmail(ctx, creds.Email)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		return nil, ErrInvalidPassword
	}
	return s.issue(user)
}

func (s *AuthService) issue(user *models.User) (*models.AuthSession, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)
	claims := Claims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return &models.AuthSession{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

// VerifyToken parses a bearer token and returns its claims
func (s *AuthService) VerifyToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return claims, nil
}
