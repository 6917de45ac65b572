package controllers

import (
	"errors"
	"net/http"
	"os"
	"taxinvoice-backend/billing"
	"taxinvoice-backend/config"
	"taxinvoice-backend/models"
	"taxinvoice-backend/session"
	"taxinvoice-backend/utils"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Drafts holds the in-memory draft invoices; wired in main().
var Drafts *session.Store

// AddDraftItemInput references the inventory item to add to the draft
type AddDraftItemInput struct {
	ItemID uuid.UUID `json:"itemId" binding:"required"`
}

// UpdateDraftLineInput carries a quantity and/or discount change
type UpdateDraftLineInput struct {
	Quantity *int     `json:"quantity"`
	Discount *float64 `json:"discount"`
}

// SelectDraftCompanyInput references the buyer for the draft
type SelectDraftCompanyInput struct {
	CompanyID uuid.UUID `json:"companyId" binding:"required"`
}

// SetDraftOptionsInput carries the pass-through invoice options
type SetDraftOptionsInput struct {
	PaymentTerms  string     `json:"paymentTerms" binding:"omitempty,oneof=immediate 15days 30days 45days"`
	DueDate       *time.Time `json:"dueDate"`
	Notes         string     `json:"notes"`
	TransportMode string     `json:"transportMode" binding:"omitempty,oneof=road rail air ship"`
	VehicleNo     string     `json:"vehicleNo"`
}

// HSNRow is one row of the HSN summary in API responses.
type HSNRow struct {
	HSN          string `json:"hsn"`
	GSTRate      string `json:"gstRate"`
	TaxableValue string `json:"taxableValue"`
	TaxAmount    string `json:"taxAmount"`
}

// TotalsResponse carries the computed totals with 2-decimal formatting.
type TotalsResponse struct {
	Subtotal        string   `json:"subtotal"`
	TotalTax        string   `json:"totalTax"`
	RoundOff        string   `json:"roundOff"`
	GrandTotal      string   `json:"grandTotal"`
	PreviousBalance string   `json:"previousBalance"`
	RunningBalance  string   `json:"runningBalance"`
	HSNSummary      []HSNRow `json:"hsnSummary"`
}

func totalsResponse(totals billing.Totals) TotalsResponse {
	out := TotalsResponse{
		Subtotal:        totals.Subtotal.StringFixed(2),
		TotalTax:        totals.TotalTax.StringFixed(2),
		RoundOff:        totals.RoundOff.StringFixed(2),
		GrandTotal:      totals.GrandTotal.StringFixed(2),
		PreviousBalance: totals.PreviousBalance.StringFixed(2),
		RunningBalance:  totals.RunningBalance.StringFixed(2),
		HSNSummary:      []HSNRow{},
	}
	for _, row := range totals.HSNSummary {
		out.HSNSummary = append(out.HSNSummary, HSNRow{
			HSN:          row.HSN,
			GSTRate:      row.GSTRate.StringFixed(2),
			TaxableValue: row.TaxableValue.StringFixed(2),
			TaxAmount:    row.TaxAmount.StringFixed(2),
		})
	}
	return out
}

// fallbackGSTRate is applied to lines without their own rate.
func fallbackGSTRate() decimal.Decimal {
	if env := os.Getenv("DEFAULT_GST_RATE"); env != "" {
		if rate, err := decimal.NewFromString(env); err == nil {
			return rate
		}
	}
	return decimal.NewFromInt(18)
}

// GetDraft returns the user's draft and its computed totals
func GetDraft(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	userUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return
	}

	draft := Drafts.Get(userUUID)

	previousBalance := decimal.Zero
	if draft.CompanyID != nil {
		var company models.Company
		if err := config.DB.Where("user_id = ? AND id = ?", userUUID, *draft.CompanyID).
			First(&company).Error; err == nil {
			previousBalance = decimal.NewFromFloat(company.PendingAmount)
		}
	}

	totals, err := billing.ComputeTotals(draft.BillingLines(), fallbackGSTRate(), previousBalance)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute totals: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"draft":  draft,
		"totals": totalsResponse(totals),
	})
}

// AddDraftItem adds an inventory item to the draft, incrementing the
// quantity when the item is already on it.
func AddDraftItem(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	userUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return
	}

	var input AddDraftItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var item models.InventoryItem
	if err := config.DB.Where("user_id = ? AND id = ?", userUUID, input.ItemID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Item not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	line, err := Drafts.AddItem(userUUID, item)
	if errors.Is(err, session.ErrStockLimit) {
		utils.RespondWithError(c, http.StatusBadRequest, "Maximum stock reached for "+item.Name)
		return
	}

	c.JSON(http.StatusOK, line)
}

// UpdateDraftLine changes the quantity and/or discount of one line
func UpdateDraftLine(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	userUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return
	}

	lineUUID, err := uuid.Parse(c.Param("lineId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid line ID format")
		return
	}

	var input UpdateDraftLineInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if err := Drafts.UpdateLine(userUUID, lineUUID, input.Quantity, input.Discount); err != nil {
		respondDraftError(c, err)
		return
	}

	c.JSON(http.StatusOK, Drafts.Get(userUUID))
}

// RemoveDraftLine deletes one line from the draft
func RemoveDraftLine(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	userUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return
	}

	lineUUID, err := uuid.Parse(c.Param("lineId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid line ID format")
		return
	}

	if err := Drafts.RemoveLine(userUUID, lineUUID); err != nil {
		respondDraftError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item removed from invoice"})
}

// SelectDraftCompany sets the buyer on the draft
func SelectDraftCompany(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	userUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return
	}

	var input SelectDraftCompanyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var company models.Company
	if err := config.DB.Where("user_id = ? AND id = ?", userUUID, input.CompanyID).
		First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Company not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	Drafts.SelectCompany(userUUID, company.ID)

	c.JSON(http.StatusOK, gin.H{"message": "Company selected", "company": company})
}

// SetDraftOptions replaces the draft's invoice options
func SetDraftOptions(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	userUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return
	}

	var input SetDraftOptionsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	opts := session.DefaultOptions()
	if input.PaymentTerms != "" {
		opts.PaymentTerms = input.PaymentTerms
	}
	if input.DueDate != nil {
		opts.DueDate = *input.DueDate
	} else {
		opts.DueDate = utils.DueDateFor(opts.PaymentTerms, time.Now())
	}
	opts.Notes = input.Notes
	if input.TransportMode != "" {
		opts.TransportMode = input.TransportMode
	}
	opts.VehicleNo = input.VehicleNo

	Drafts.SetOptions(userUUID, opts)

	c.JSON(http.StatusOK, Drafts.Get(userUUID).Options)
}

// ClearDraft resets the draft: no lines, no company, default options
func ClearDraft(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	userUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return
	}

	Drafts.Clear(userUUID)

	c.JSON(http.StatusOK, gin.H{"message": "Invoice cleared"})
}

func respondDraftError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, session.ErrLineNotFound):
		utils.RespondWithError(c, http.StatusNotFound, "Line item not found")
	case errors.Is(err, session.ErrStockLimit):
		utils.RespondWithError(c, http.StatusBadRequest, "Quantity exceeds available stock")
	case errors.Is(err, session.ErrInvalidQuantity), errors.Is(err, session.ErrInvalidDiscount):
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	default:
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update draft")
	}
}
