package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	CreateUser(ctx context.Context, req CreateUserRequest) (*User, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	Refresh(ctx context.Context, rawRefreshToken string) (*LoginResult, error)
	Logout(ctx context.Context, rawToken string) error
	Authenticate(ctx context.Context, rawToken string) (*Session, error)
	ChangePassword(ctx context.Context, userID snowflake.ID, newPassword string) error
}

type CreateUserRequest struct {
	ClinicID    snowflake.ID
	Email       string
	Password    string
	DisplayName string
	Role        string
}

type LoginRequest struct {
	Email     string
	Password  string
	UserAgent string
	IPAddress string
}

// LoginResult carries the only copy of the raw token pair the caller
// will ever see.
type LoginResult struct {
	SessionID        snowflake.ID
	UserID           snowflake.ID
	ClinicID         snowflake.ID
	RawToken         string
	RawRefreshToken  string
	ExpiresAt        time.Time
	RefreshExpiresAt time.Time
}
