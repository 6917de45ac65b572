package models

import (
	"taxinvoice-backend/utils"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Email    string    `gorm:"uniqueIndex;not null"`
	Password string    `gorm:"not null"`
	Name     string    `gorm:"not null"`
	Phone    string

	// Seller details printed on every generated invoice
	BusinessName string `gorm:"not null"`
	GstNo        string `gorm:"not null"`
	Address      string
	State        string
	StateCode    string `gorm:"type:varchar(2)"`

	// Bank details for the invoice footer
	BankName    string
	BankAccount string
	BankIFSC    string

	LastLogin *time.Time
	IsActive  bool `gorm:"default:true"`

	Companies      []Company       `gorm:"foreignKey:UserID"`
	InventoryItems []InventoryItem `gorm:"foreignKey:UserID"`
	Invoices       []Invoice       `gorm:"foreignKey:UserID"`

	gorm.Model
}

// Initialize UUID and hash password before creating
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	u.ID = uuid.New()
	hashed, err := utils.HashPassword(u.Password)
	if err != nil {
		return err
	}
	u.Password = hashed
	return
}
