// Package domain contains core types for the auth service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// User represents a clinic staff account.
type User struct {
	ID           snowflake.ID `gorm:"primaryKey"`
	ClinicID     snowflake.ID `gorm:"column:clinic_id;not null;index"`
	Email        string       `gorm:"column:email;type:text;not null;uniqueIndex"`
	DisplayName  string       `gorm:"column:display_name;type:text"`
	PasswordHash *string      `gorm:"column:password_hash;type:text"`
	Role         string       `gorm:"column:role;type:text;not null;default:'staff'"`
	IsActive     bool         `gorm:"column:is_active;not null;default:true"`
	CreatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (User) TableName() string { return "users" }

// Session represents a persisted login session. Only token hashes are
// stored; the raw values are handed to the client once at issue time.
type Session struct {
	ID               snowflake.ID `gorm:"primaryKey"`
	UserID           snowflake.ID `gorm:"column:user_id;not null;index"`
	ClinicID         snowflake.ID `gorm:"column:clinic_id;not null;index"`
	SessionTokenHash string       `gorm:"column:session_token_hash;type:text;not null;uniqueIndex"`
	RefreshTokenHash string       `gorm:"column:refresh_token_hash;type:text;not null;uniqueIndex"`
	UserAgent        string       `gorm:"column:user_agent;type:text"`
	IPAddress        string       `gorm:"column:ip_address;type:text"`
	ExpiresAt        time.Time    `gorm:"column:expires_at;not null;index"`
	RefreshExpiresAt time.Time    `gorm:"column:refresh_expires_at;not null"`
	RevokedAt        *time.Time   `gorm:"column:revoked_at"`
	CreatedAt        time.Time    `gorm:"column:created_at;not null;default:CURRENT_TIMESTAMP"`
	LastSeenAt       time.Time    `gorm:"column:last_seen_at;not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Session) TableName() string { return "sessions" }
