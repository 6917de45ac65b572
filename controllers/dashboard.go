package controllers

import (
	"net/http"
	"taxinvoice-backend/config"
	"taxinvoice-backend/models"
	"taxinvoice-backend/utils"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetDashboard returns the overview counters shown on the landing screen:
// catalogue size, buyer count, invoices issued, outstanding balance across
// all buyers and this fiscal year's billed total.
func GetDashboard(c *gin.Context) {
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

	var itemCount, companyCount, invoiceCount int64
	config.DB.Model(&models.InventoryItem{}).Where("user_id = ?", userUUID).Count(&itemCount)
	config.DB.Model(&models.Company{}).Where("user_id = ?", userUUID).Count(&companyCount)
	config.DB.Model(&models.Invoice{}).Where("user_id = ?", userUUID).Count(&invoiceCount)

	var outstanding float64
	config.DB.Model(&models.Company{}).Where("user_id = ?", userUUID).
		Select("COALESCE(SUM(pending_amount), 0)").Scan(&outstanding)

	// Billed total since the start of the current fiscal year (April 1st)
	now := time.Now()
	fyStart := time.Date(now.Year(), time.April, 1, 0, 0, 0, 0, now.Location())
	if now.Month() < time.April {
		fyStart = fyStart.AddDate(-1, 0, 0)
	}
	var billed float64
	config.DB.Model(&models.Invoice{}).
		Where("user_id = ? AND invoice_date >= ?", userUUID, fyStart).
		Select("COALESCE(SUM(grand_total), 0)").Scan(&billed)

	var recent []models.Invoice
	config.DB.Where("user_id = ?", userUUID).
		Order("invoice_date DESC").Limit(5).Find(&recent)

	c.JSON(http.StatusOK, gin.H{
		"itemCount":          itemCount,
		"companyCount":       companyCount,
		"invoiceCount":       invoiceCount,
		"outstandingBalance": outstanding,
		"fiscalYear":         utils.FiscalYear(now),
		"fiscalYearBilled":   billed,
		"recentInvoices":     recent,
	})
}
