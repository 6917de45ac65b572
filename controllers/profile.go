package controllers

import (
	"net/http"
	"taxinvoice-backend/config"
	"taxinvoice-backend/models"
	"taxinvoice-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UpdateProfileInput carries the seller and bank details printed on invoices.
type UpdateProfileInput struct {
	Name         *string `json:"name"`
	Phone        *string `json:"phone"`
	BusinessName *string `json:"businessName"`
	GstNo        *string `json:"gstNo"`
	Address      *string `json:"address"`
	State        *string `json:"state"`
	StateCode    *string `json:"stateCode"`
	BankName     *string `json:"bankName"`
	BankAccount  *string `json:"bankAccount"`
	BankIFSC     *string `json:"bankIfsc"`
}

func UpdateProfile(c *gin.Context) {
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

	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", userUUID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "User not found")
		return
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.BusinessName != nil {
		user.BusinessName = *input.BusinessName
	}
	if input.GstNo != nil {
		if !utils.ValidateGSTIN(*input.GstNo) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid GSTIN format")
			return
		}
		user.GstNo = utils.NormalizeGSTIN(*input.GstNo)
	}
	if input.Address != nil {
		user.Address = *input.Address
	}
	if input.State != nil {
		user.State = *input.State
	}
	if input.StateCode != nil {
		user.StateCode = *input.StateCode
	}
	if input.BankName != nil {
		user.BankName = *input.BankName
	}
	if input.BankAccount != nil {
		user.BankAccount = *input.BankAccount
	}
	if input.BankIFSC != nil {
		user.BankIFSC = *input.BankIFSC
	}

	if err := config.DB.Save(&user).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
}
