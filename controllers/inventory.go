package controllers

import (
	"errors"
	"net/http"
	"taxinvoice-backend/billing"
	"taxinvoice-backend/config"
	"taxinvoice-backend/models"
	"taxinvoice-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateItemInput defines the expected JSON structure for creating an item
type CreateItemInput struct {
	Name    string  `json:"name" binding:"required"`
	HSN     string  `json:"hsn"`
	Rate    float64 `json:"rate" binding:"min=0"`
	Stock   int     `json:"stock" binding:"min=0"`
	Unit    string  `json:"unit" binding:"required"`
	GSTRate float64 `json:"gstRate" binding:"min=0,max=100"`
}

// UpdateItemInput defines the expected JSON structure for updating an item
type UpdateItemInput struct {
	Name    *string  `json:"name"`
	HSN     *string  `json:"hsn"`
	Rate    *float64 `json:"rate"`
	Stock   *int     `json:"stock"`
	Unit    *string  `json:"unit"`
	GSTRate *float64 `json:"gstRate"`
}

// CreateItem adds an inventory item for the user
func CreateItem(c *gin.Context) {
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

	var input CreateItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	item := models.InventoryItem{
		ID:      uuid.New(),
		UserID:  userUUID,
		Name:    input.Name,
		HSN:     input.HSN,
		Rate:    input.Rate,
		Stock:   input.Stock,
		Unit:    input.Unit,
		GSTRate: input.GSTRate,
	}

	if err := config.DB.Create(&item).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create item")
		return
	}

	c.JSON(http.StatusCreated, item)
}

// GetItems lists the user's inventory, optionally filtered by ?q= matching
// name or HSN code case-insensitively. Seeds the starter catalogue on first
// use and deduplicates by id before responding.
func GetItems(c *gin.Context) {
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

	query := config.DB.Where("user_id = ?", userUUID)
	if q := c.Query("q"); q != "" {
		pattern := "%" + utils.EscapeLike(q) + "%"
		query = query.Where("name ILIKE ? OR hsn ILIKE ?", pattern, pattern)
	}

	var items []models.InventoryItem
	if err := query.Order("created_at ASC").Find(&items).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve items")
		return
	}

	// First-time use: seed the starter catalogue, but never for a search
	if len(items) == 0 && c.Query("q") == "" {
		items = config.DefaultInventory()
		for i := range items {
			items[i].ID = uuid.New()
			items[i].UserID = userUUID
		}
		if err := config.DB.Create(&items).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to seed inventory")
			return
		}
	}

	items = billing.Deduplicate(items, func(i models.InventoryItem) uuid.UUID { return i.ID })

	c.JSON(http.StatusOK, items)
}

// GetItem retrieves a specific inventory item by ID
func GetItem(c *gin.Context) {
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

	itemUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid item ID format")
		return
	}

	var item models.InventoryItem
	if err := config.DB.Where("user_id = ? AND id = ?", userUUID, itemUUID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Item not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, item)
}

// UpdateItem updates an existing inventory item
func UpdateItem(c *gin.Context) {
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

	itemUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid item ID format")
		return
	}

	var input UpdateItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var item models.InventoryItem
	if err := config.DB.Where("user_id = ? AND id = ?", userUUID, itemUUID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Item not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		item.Name = *input.Name
	}
	if input.HSN != nil {
		item.HSN = *input.HSN
	}
	if input.Rate != nil {
		if *input.Rate < 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "Rate cannot be negative")
			return
		}
		item.Rate = *input.Rate
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "Stock cannot be negative")
			return
		}
		item.Stock = *input.Stock
	}
	if input.Unit != nil {
		item.Unit = *input.Unit
	}
	if input.GSTRate != nil {
		if *input.GSTRate < 0 || *input.GSTRate > 100 {
			utils.RespondWithError(c, http.StatusBadRequest, "GST rate must be between 0 and 100")
			return
		}
		item.GSTRate = *input.GSTRate
	}

	if err := config.DB.Save(&item).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update item")
		return
	}

	c.JSON(http.StatusOK, item)
}

// DeleteItem soft deletes an inventory item
func DeleteItem(c *gin.Context) {
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

	itemUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid item ID format")
		return
	}

	var item models.InventoryItem
	if err := config.DB.Where("user_id = ? AND id = ?", userUUID, itemUUID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Item not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if err := config.DB.Delete(&item).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete item")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item deleted successfully"})
}
