package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InventoryItem is a sellable item with its HSN/SAC code and GST rate.
type InventoryItem struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null" json:"-"`

	Name    string  `gorm:"not null" json:"name"`
	HSN     string  `gorm:"column:hsn;type:varchar(8)" json:"hsn"`
	Rate    float64 `gorm:"type:decimal(10,2);not null" json:"rate"`
	Stock   int     `gorm:"default:0" json:"stock"`
	Unit    string  `gorm:"type:varchar(10)" json:"unit"` // e.g. MT, Bags, Nos
	GSTRate float64 `gorm:"column:gst_rate;type:decimal(5,2);default:0.0" json:"gstRate"`

	gorm.Model `json:"-"`
}
