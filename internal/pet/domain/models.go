package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Pet belongs to exactly one owner; clinic ownership is transitive through
// the owner and denormalized here so visit queries stay single-join.
type Pet struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	ClinicID  snowflake.ID `gorm:"not null;index" json:"clinic_id"`
	OwnerID   snowflake.ID `gorm:"not null;index" json:"owner_id"`
	Name      string       `gorm:"not null" json:"name"`
	Species   string       `gorm:"type:text" json:"species,omitempty"`
	Breed     string       `gorm:"type:text" json:"breed,omitempty"`
	BirthDate *time.Time   `gorm:"" json:"birth_date,omitempty"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Pet) TableName() string { return "pets" }
