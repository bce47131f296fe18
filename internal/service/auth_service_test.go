package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/listingkit/listingkit-backend/internal/database"
	"github.com/listingkit/listingkit-backend/internal/models"
	"github.com/listingkit/listingkit-backend/internal/repository"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(database.Config{Path: ":memory:"}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestAuthService(t *testing.T) *AuthService {
	return NewAuthService(repository.NewUserRepository(openTestDB(t)), "test-secret", time.Hour)
}

func TestAuthService_SignUpAndLogin(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	session, err := svc.SignUp(ctx, models.Credentials{Email: " Agent@Example.com ", Password: "hunter22!"})
	require.NoError(t, err)
	assert.Equal(t, "agent@example.com", session.User.Email)
	assert.NotZero(t, session.User.ID)
	assert.NotEmpty(t, session.Token)
	assert.NotEqual(t, "hunter22!", session.User.PasswordHash)

	claims, err := svc.VerifyToken(session.Token)
	require.NoError(t, err)
	assert.Equal(t, "agent@example.com", claims.Email)

	login, err := svc.Login(ctx, models.Credentials{Email: "agent@example.com", Password: "hunter22!"})
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, login.User.ID)
}

func TestAuthService_SignUpErrors(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.SignUp(ctx, models.Credentials{Email: "a@example.com"})
	assert.ErrorIs(t, err, ErrMissingCredentials)

	_, err = svc.SignUp(ctx, models.Credentials{Email: "a@example.com", Password: "short"})
	assert.ErrorIs(t, err, ErrWeakPassword)

	_, err = svc.SignUp(ctx, models.Credentials{Email: "a@example.com", Password: "long-enough"})
	require.NoError(t, err)

	_, err = svc.SignUp(ctx, models.Credentials{Email: "A@example.com", Password: "long-enough"})
	assert.ErrorIs(t, err, repository.ErrUserExists)
}

func TestAuthService_LoginErrors(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, models.Credentials{Email: "nobody@example.com", Password: "whatever1"})
	assert.ErrorIs(t, err, repository.ErrUserNotFound)

	_, err = svc.SignUp(ctx, models.Credentials{Email: "b@example.com", Password: "right-password"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, models.Credentials{Email: "b@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidPassword)
}

func TestAuthService_VerifyToken(t *testing.T) {
	svc := newTestAuthService(t)
	session, err := svc.SignUp(context.Background(), models.Credentials{Email: "c@example.com", Password: "password123"})
	require.NoError(t, err)

	_, err = svc.VerifyToken(session.Token + "x")
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := NewAuthService(nil, "another-secret", time.Hour)
	_, err = other.VerifyToken(session.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = svc.VerifyToken(session.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
