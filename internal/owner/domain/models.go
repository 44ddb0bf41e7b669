package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Owner is a clinic client who owns one or more pets.
type Owner struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	ClinicID  snowflake.ID `gorm:"not null;index" json:"clinic_id"`
	FirstName string       `gorm:"not null" json:"first_name"`
	LastName  string       `gorm:"not null" json:"last_name"`
	Email     string       `gorm:"type:text" json:"email,omitempty"`
	Phone     string       `gorm:"type:text" json:"phone,omitempty"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Owner) TableName() string { return "owners" }
