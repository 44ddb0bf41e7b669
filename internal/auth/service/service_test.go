package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/omarwahbi/VetSync-sub002/internal/auth/domain"
	"github.com/omarwahbi/VetSync-sub002/internal/auth/repository"
	"github.com/omarwahbi/VetSync-sub002/internal/clock"
	"github.com/omarwahbi/VetSync-sub002/internal/config"
)

func setupService(t *testing.T) (domain.Service, *clock.FakeClock) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "auth.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Session{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	repo, sessionRepo := repository.New(db)
	clk := clock.NewFakeClock(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	cfg := config.Config{
		SessionTTL:        15 * time.Minute,
		SessionRefreshTTL: 720 * time.Hour,
	}

	return New(zap.NewNop(), cfg, repo, sessionRepo, node, clk), clk
}

func createTestUser(t *testing.T, svc domain.Service) *domain.User {
	t.Helper()
	user, err := svc.CreateUser(context.Background(), domain.CreateUserRequest{
		ClinicID: snowflake.ID(42),
		Email:    "vet@clinic.example",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	return user
}

func TestLoginAndAuthenticate(t *testing.T) {
	svc, _ := setupService(t)
	user := createTestUser(t, svc)

	result, err := svc.Login(context.Background(), domain.LoginRequest{
		Email:    "vet@clinic.example",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.RawToken)
	require.NotEmpty(t, result.RawRefreshToken)
	require.NotEqual(t, result.RawToken, result.RawRefreshToken)
	require.Equal(t, user.ClinicID, result.ClinicID)

	session, err := svc.Authenticate(context.Background(), result.RawToken)
	require.NoError(t, err)
	require.Equal(t, user.ID, session.UserID)
	require.Equal(t, user.ClinicID, session.ClinicID)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := setupService(t)
	createTestUser(t, svc)

	_, err := svc.Login(context.Background(), domain.LoginRequest{
		Email:    "vet@clinic.example",
		Password: "wrong",
	})
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLoginUnknownUser(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.Login(context.Background(), domain.LoginRequest{
		Email:    "nobody@clinic.example",
		Password: "whatever",
	})
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthenticateExpiredSession(t *testing.T) {
	svc, clk := setupService(t)
	createTestUser(t, svc)

	result, err := svc.Login(context.Background(), domain.LoginRequest{
		Email:    "vet@clinic.example",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	clk.Advance(16 * time.Minute)

	_, err = svc.Authenticate(context.Background(), result.RawToken)
	require.ErrorIs(t, err, domain.ErrSessionExpired)
}

func TestRefreshRotatesSession(t *testing.T) {
	svc, _ := setupService(t)
	createTestUser(t, svc)

	first, err := svc.Login(context.Background(), domain.LoginRequest{
		Email:    "vet@clinic.example",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	second, err := svc.Refresh(context.Background(), first.RawRefreshToken)
	require.NoError(t, err)
	require.NotEqual(t, first.RawToken, second.RawToken)
	require.NotEqual(t, first.RawRefreshToken, second.RawRefreshToken)

	// New pair works, old pair is dead.
	_, err = svc.Authenticate(context.Background(), second.RawToken)
	require.NoError(t, err)

	_, err = svc.Authenticate(context.Background(), first.RawToken)
	require.ErrorIs(t, err, domain.ErrSessionRevoked)

	_, err = svc.Refresh(context.Background(), first.RawRefreshToken)
	require.ErrorIs(t, err, domain.ErrSessionRevoked)
}

func TestRefreshExpired(t *testing.T) {
	svc, clk := setupService(t)
	createTestUser(t, svc)

	result, err := svc.Login(context.Background(), domain.LoginRequest{
		Email:    "vet@clinic.example",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	clk.Advance(721 * time.Hour)

	_, err = svc.Refresh(context.Background(), result.RawRefreshToken)
	require.ErrorIs(t, err, domain.ErrSessionExpired)
}

func TestLogoutRevokesSession(t *testing.T) {
	svc, _ := setupService(t)
	createTestUser(t, svc)

	result, err := svc.Login(context.Background(), domain.LoginRequest{
		Email:    "vet@clinic.example",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), result.RawToken))

	_, err = svc.Authenticate(context.Background(), result.RawToken)
	require.ErrorIs(t, err, domain.ErrSessionRevoked)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	svc, _ := setupService(t)
	createTestUser(t, svc)

	_, err := svc.CreateUser(context.Background(), domain.CreateUserRequest{
		ClinicID: snowflake.ID(42),
		Email:    "vet@clinic.example",
		Password: "another password",
	})
	require.ErrorIs(t, err, domain.ErrUserExists)
}

func TestCreateUserShortPassword(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.CreateUser(context.Background(), domain.CreateUserRequest{
		ClinicID: snowflake.ID(42),
		Email:    "vet@clinic.example",
		Password: "short",
	})
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
}
