// models/reminder_log.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReminderLog records every payment-reminder SMS sent for an overdue balance.
type ReminderLog struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null"`
	CompanyID uuid.UUID `gorm:"type:uuid;index;not null"`

	Amount       float64 `gorm:"type:decimal(12,2)"`
	Message      string  `gorm:"type:text"`
	Status       string  `gorm:"type:varchar(20)"` // sent, failed
	ErrorMessage string  `gorm:"type:text"`
	SentAt       time.Time

	gorm.Model
}

func (r *ReminderLog) BeforeCreate(tx *gorm.DB) (err error) {
	r.ID = uuid.New()
	return
}
