package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Company is a buyer that can be selected on a draft invoice.
type Company struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null" json:"-"`

	GstNo     string `gorm:"not null;uniqueIndex:idx_user_gstno,priority:2" json:"gstNo"`
	Name      string `gorm:"not null" json:"name"`
	Address   string `json:"address"`
	State     string `json:"state"`
	StateCode string `gorm:"type:varchar(2)" json:"stateCode"`
	Phone     string `json:"phone"`

	PendingAmount   float64    `gorm:"type:decimal(12,2);default:0.0" json:"pendingAmount"`
	LastTransaction *time.Time `json:"lastTransaction"`

	Invoices []Invoice `gorm:"foreignKey:CompanyID" json:"-"`

	gorm.Model `json:"-"`
}
