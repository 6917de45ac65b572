package controllers

import (
	"errors"
	"log"
	"net/http"
	"taxinvoice-backend/billing"
	"taxinvoice-backend/config"
	"taxinvoice-backend/models"
	"taxinvoice-backend/pdf"
	"taxinvoice-backend/utils"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GenerateInvoice turns the user's draft into a persisted invoice and streams
// the rendered PDF back as a download. The PDF is rendered before anything is
// written so a layout failure leaves no half-created invoice behind. The draft
// is NOT cleared afterwards; the user clears it explicitly.
func GenerateInvoice(c *gin.Context) {
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
	if len(draft.Lines) == 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "Cannot generate an invoice with no items")
		return
	}
	if draft.CompanyID == nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Select a company before generating the invoice")
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", userUUID).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load profile")
		return
	}

	var company models.Company
	if err := config.DB.Where("user_id = ? AND id = ?", userUUID, *draft.CompanyID).
		First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Selected company no longer exists")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	previousBalance := decimal.NewFromFloat(company.PendingAmount)
	totals, err := billing.ComputeTotals(draft.BillingLines(), fallbackGSTRate(), previousBalance)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid draft: "+err.Error())
		return
	}

	invoiceDate := time.Now()
	invoiceNumber := utils.GenerateInvoiceNumber(invoiceDate)

	renderer := pdf.NewRenderer(pdf.Seller{
		Name:        user.BusinessName,
		GstNo:       user.GstNo,
		Address:     user.Address,
		State:       user.State,
		StateCode:   user.StateCode,
		BankName:    user.BankName,
		BankAccount: user.BankAccount,
		BankIFSC:    user.BankIFSC,
	})

	document, err := renderer.Render(
		pdf.Meta{
			InvoiceNumber: invoiceNumber,
			InvoiceDate:   invoiceDate,
			DueDate:       draft.Options.DueDate,
			PaymentTerms:  draft.Options.PaymentTerms,
			Notes:         draft.Options.Notes,
			TransportMode: draft.Options.TransportMode,
			VehicleNo:     draft.Options.VehicleNo,
		},
		pdf.Buyer{
			Name:      company.Name,
			GstNo:     company.GstNo,
			Address:   company.Address,
			State:     company.State,
			StateCode: company.StateCode,
		},
		totals,
	)
	if err != nil {
		log.Printf("PDF generation failed for %s: %v", invoiceNumber, err)
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	invoice := models.Invoice{
		ID:            uuid.New(),
		UserID:        userUUID,
		InvoiceNumber: invoiceNumber,
		CompanyID:     company.ID,
		InvoiceDate:   invoiceDate,
		Subtotal:      totals.Subtotal.InexactFloat64(),
		TotalTax:      totals.TotalTax.InexactFloat64(),
		RoundOff:      totals.RoundOff.InexactFloat64(),
		GrandTotal:    totals.GrandTotal.InexactFloat64(),
		PaymentTerms:  draft.Options.PaymentTerms,
		DueDate:       &draft.Options.DueDate,
		Notes:         draft.Options.Notes,
		TransportMode: draft.Options.TransportMode,
		VehicleNo:     draft.Options.VehicleNo,
	}
	for i, line := range totals.Lines {
		invoice.Items = append(invoice.Items, models.InvoiceLineItem{
			ID:            uuid.New(),
			InvoiceID:     invoice.ID,
			ItemID:        draft.Lines[i].ItemID,
			Name:          line.Name,
			HSN:           line.HSN,
			Quantity:      line.Quantity,
			Unit:          line.Unit,
			Rate:          line.Rate.InexactFloat64(),
			Discount:      line.Discount.InexactFloat64(),
			GSTRate:       line.EffectiveGSTRate.InexactFloat64(),
			TaxableAmount: line.TaxableAmount.InexactFloat64(),
			TaxAmount:     line.TaxAmount.InexactFloat64(),
		})
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(&invoice).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save invoice")
		return
	}

	if err := tx.Model(&models.Company{}).Where("id = ?", company.ID).Updates(map[string]interface{}{
		"pending_amount":   totals.RunningBalance.InexactFloat64(),
		"last_transaction": invoiceDate,
	}).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update company balance")
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save invoice")
		return
	}

	log.Printf("Generated invoice %s for company %s (grand total %s)",
		invoiceNumber, company.Name, totals.GrandTotal.StringFixed(2))

	c.Header("Content-Disposition", `attachment; filename="`+pdf.Filename(invoiceNumber)+`"`)
	c.Data(http.StatusOK, "application/pdf", document)
}

// GetInvoices lists the user's generated invoices, newest first
func GetInvoices(c *gin.Context) {
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

	var invoices []models.Invoice
	if err := config.DB.Preload("Items").Where("user_id = ?", userUUID).
		Order("invoice_date DESC").Find(&invoices).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve invoices")
		return
	}

	invoices = billing.Deduplicate(invoices, func(inv models.Invoice) uuid.UUID { return inv.ID })

	c.JSON(http.StatusOK, invoices)
}

// GetInvoice retrieves a specific invoice with its line items
func GetInvoice(c *gin.Context) {
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

	invoiceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid invoice ID format")
		return
	}

	var invoice models.Invoice
	if err := config.DB.Preload("Items").Where("user_id = ? AND id = ?", userUUID, invoiceUUID).
		First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, invoice)
}
