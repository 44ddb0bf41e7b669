package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Clinic is a tenant. Every boundary computation in the product (dashboard
// windows, reminder due checks, quota periods) happens in the clinic's
// timezone; an empty or invalid value degrades to UTC at read time.
type Clinic struct {
	ID                      snowflake.ID      `gorm:"primaryKey" json:"id"`
	Name                    string            `gorm:"not null" json:"name"`
	Timezone                string            `gorm:"type:text" json:"timezone"`
	IsActive                bool              `gorm:"not null;default:true" json:"is_active"`
	CanSendReminders        bool              `gorm:"not null;default:false" json:"can_send_reminders"`
	SubscriptionEndDate     *time.Time        `gorm:"" json:"subscription_end_date,omitempty"`
	ReminderMonthlyLimit    int               `gorm:"not null;default:0" json:"reminder_monthly_limit"`
	RemindersSentThisPeriod int               `gorm:"not null;default:0" json:"reminders_sent_this_period"`
	UsagePeriod             string            `gorm:"type:text;not null;default:''" json:"usage_period"`
	Metadata                datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt               time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt               time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Clinic) TableName() string { return "clinics" }
