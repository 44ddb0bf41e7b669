package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Visit is a scheduled appointment for a pet. ReminderSent is monotonic:
// it only ever flips false to true, and only together with the owning
// clinic's usage counter increment.
type Visit struct {
	ID                snowflake.ID `gorm:"primaryKey" json:"id"`
	ClinicID          snowflake.ID `gorm:"not null;index" json:"clinic_id"`
	PetID             snowflake.ID `gorm:"not null;index" json:"pet_id"`
	VisitDate         time.Time    `gorm:"not null;index" json:"visit_date"`
	VisitType         string       `gorm:"type:text" json:"visit_type,omitempty"`
	Notes             string       `gorm:"type:text" json:"notes,omitempty"`
	NextReminderDate  *time.Time   `gorm:"index" json:"next_reminder_date,omitempty"`
	IsReminderEnabled bool         `gorm:"not null;default:false" json:"is_reminder_enabled"`
	ReminderSent      bool         `gorm:"not null;default:false" json:"reminder_sent"`
	CreatedAt         time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt         time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Visit) TableName() string { return "visits" }
