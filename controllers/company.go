package controllers

import (
	"errors"
	"log"
	"net/http"
	"taxinvoice-backend/billing"
	"taxinvoice-backend/cache"
	"taxinvoice-backend/config"
	"taxinvoice-backend/models"
	"taxinvoice-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CompanyCache is the local snapshot of the buyer list; wired in main().
var CompanyCache *cache.CompanyCache

// CreateCompanyInput defines the expected JSON structure for creating a company
type CreateCompanyInput struct {
	GstNo     string  `json:"gstNo" binding:"required"`
	Name      string  `json:"name" binding:"required"`
	Address   string  `json:"address"`
	State     string  `json:"state"`
	StateCode string  `json:"stateCode"`
	Phone     string  `json:"phone"`
	Pending   float64 `json:"pendingAmount" binding:"min=0"`
}

// UpdateCompanyInput defines the expected JSON structure for updating a company
type UpdateCompanyInput struct {
	GstNo     *string  `json:"gstNo"`
	Name      *string  `json:"name"`
	Address   *string  `json:"address"`
	State     *string  `json:"state"`
	StateCode *string  `json:"stateCode"`
	Phone     *string  `json:"phone"`
	Pending   *float64 `json:"pendingAmount"`
}

func saveCompanySnapshot(companies []models.Company) {
	if CompanyCache == nil {
		return
	}
	if err := CompanyCache.Save(companies); err != nil {
		log.Printf("Failed to write company cache: %v", err)
	}
}

// CreateCompany creates a new buyer for the user
func CreateCompany(c *gin.Context) {
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

	var input CreateCompanyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.ValidateGSTIN(input.GstNo) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid GSTIN format")
		return
	}
	gstNo := utils.NormalizeGSTIN(input.GstNo)

	if input.Phone != "" && !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	// Check if the GSTIN already exists for this user
	var existing models.Company
	if err := config.DB.Where("user_id = ? AND gst_no = ?", userUUID, gstNo).
		First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Company with this GSTIN already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	company := models.Company{
		ID:            uuid.New(),
		UserID:        userUUID,
		GstNo:         gstNo,
		Name:          input.Name,
		Address:       input.Address,
		State:         input.State,
		StateCode:     input.StateCode,
		Phone:         input.Phone,
		PendingAmount: input.Pending,
	}

	if err := config.DB.Create(&company).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create company")
		return
	}

	var companies []models.Company
	if err := config.DB.Where("user_id = ?", userUUID).Order("created_at ASC").
		Find(&companies).Error; err == nil {
		saveCompanySnapshot(companies)
	}

	c.JSON(http.StatusCreated, company)
}

// GetCompanies lists the user's buyers, seeding the starter list on first use
// and deduplicating by id before responding.
func GetCompanies(c *gin.Context) {
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

	var companies []models.Company
	if err := config.DB.Where("user_id = ?", userUUID).Order("created_at ASC").
		Find(&companies).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve companies")
		return
	}

	if len(companies) == 0 {
		companies = append([]models.Company(nil), config.SeedCompanies...)
		for i := range companies {
			companies[i].ID = uuid.New()
			companies[i].UserID = userUUID
		}
		if err := config.DB.Create(&companies).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to seed companies")
			return
		}
	}

	companies = billing.Deduplicate(companies, func(co models.Company) uuid.UUID { return co.ID })
	saveCompanySnapshot(companies)

	c.JSON(http.StatusOK, companies)
}

// GetCompany retrieves a specific company by ID
func GetCompany(c *gin.Context) {
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

	companyUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid company ID format")
		return
	}

	var company models.Company
	if err := config.DB.Where("user_id = ? AND id = ?", userUUID, companyUUID).
		First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Company not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, company)
}

// UpdateCompany updates an existing company
func UpdateCompany(c *gin.Context) {
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

	companyUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid company ID format")
		return
	}

	var input UpdateCompanyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var company models.Company
	if err := config.DB.Where("user_id = ? AND id = ?", userUUID, companyUUID).
		First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Company not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.GstNo != nil {
		if !utils.ValidateGSTIN(*input.GstNo) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid GSTIN format")
			return
		}
		gstNo := utils.NormalizeGSTIN(*input.GstNo)

		if company.GstNo != gstNo {
			var existing models.Company
			if err := config.DB.Where("user_id = ? AND gst_no = ?", userUUID, gstNo).
				First(&existing).Error; err == nil {
				utils.RespondWithError(c, http.StatusConflict, "Another company with this GSTIN already exists")
				return
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
				return
			}
		}
		company.GstNo = gstNo
	}
	if input.Name != nil {
		company.Name = *input.Name
	}
	if input.Address != nil {
		company.Address = *input.Address
	}
	if input.State != nil {
		company.State = *input.State
	}
	if input.StateCode != nil {
		company.StateCode = *input.StateCode
	}
	if input.Phone != nil {
		if *input.Phone != "" && !utils.ValidatePhone(*input.Phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}
		company.Phone = *input.Phone
	}
	if input.Pending != nil {
		if *input.Pending < 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "Pending amount cannot be negative")
			return
		}
		company.PendingAmount = *input.Pending
	}

	if err := config.DB.Save(&company).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update company")
		return
	}

	c.JSON(http.StatusOK, company)
}

// DeleteCompany soft deletes a company
func DeleteCompany(c *gin.Context) {
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

	companyUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid company ID format")
		return
	}

	var company models.Company
	if err := config.DB.Where("user_id = ? AND id = ?", userUUID, companyUUID).
		First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Company not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if err := config.DB.Delete(&company).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete company")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Company deleted successfully"})
}
