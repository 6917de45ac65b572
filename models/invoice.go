package models

import (
	"time"

	"github.com/google/uuid"
)

type Invoice struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null" json:"-"`

	InvoiceNumber string    `gorm:"uniqueIndex;not null" json:"invoiceNumber"`
	CompanyID     uuid.UUID `gorm:"type:uuid;index;not null" json:"companyId"`
	InvoiceDate   time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"invoiceDate"`

	Subtotal   float64 `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	TotalTax   float64 `gorm:"type:decimal(12,2);not null" json:"totalTax"`
	RoundOff   float64 `gorm:"type:decimal(4,2);default:0.0" json:"roundOff"`
	GrandTotal float64 `gorm:"type:decimal(12,2);not null" json:"grandTotal"`

	// Pass-through invoice options captured at generation time
	PaymentTerms  string     `gorm:"type:varchar(20)" json:"paymentTerms"`
	DueDate       *time.Time `json:"dueDate"`
	Notes         string     `json:"notes"`
	TransportMode string     `gorm:"type:varchar(20)" json:"transportMode"`
	VehicleNo     string     `gorm:"type:varchar(20)" json:"vehicleNo"`

	Items []InvoiceLineItem `gorm:"foreignKey:InvoiceID" json:"items"`
}

// InvoiceLineItem is a snapshot of an inventory item at generation time.
// Rates and HSN codes are copied, not referenced, so later edits to the
// inventory never change an issued invoice.
type InvoiceLineItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	InvoiceID uuid.UUID `gorm:"type:uuid;index;not null" json:"-"`
	ItemID    uuid.UUID `gorm:"type:uuid;index;not null" json:"itemId"`

	Name          string  `gorm:"not null" json:"name"`
	HSN           string  `gorm:"column:hsn;type:varchar(8)" json:"hsn"`
	Quantity      int     `gorm:"default:1" json:"quantity"`
	Unit          string  `gorm:"type:varchar(10)" json:"unit"`
	Rate          float64 `gorm:"type:decimal(10,2);not null" json:"rate"`
	Discount      float64 `gorm:"type:decimal(5,2);default:0.0" json:"discount"` // percentage
	GSTRate       float64 `gorm:"column:gst_rate;type:decimal(5,2)" json:"gstRate"`
	TaxableAmount float64 `gorm:"type:decimal(12,2);not null" json:"taxableAmount"`
	TaxAmount     float64 `gorm:"type:decimal(12,2);not null" json:"taxAmount"`
}
