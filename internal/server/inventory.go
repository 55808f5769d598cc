package server

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"chakula/internal/models"
)

type inventoryItemRequest struct {
	ItemName          string  `json:"item_name" binding:"required"`
	Quantity          float64 `json:"quantity"`
	Unit              string  `json:"unit" binding:"required"`
	CostPerUnit       float64 `json:"cost_per_unit"`
	LowStockThreshold float64 `json:"low_stock_threshold"`
	ExpiryDays        int     `json:"expiry_days"`
}

type receiveStockRequest struct {
	Quantity    float64 `json:"quantity" binding:"required"`
	CostPerUnit float64 `json:"cost_per_unit"`
	Supplier    string  `json:"supplier"`
}

// adjustStockRequest carries a signed quantity: negative for usage or
// waste, positive for corrections upward. Reason is required so the
// movement trail stays meaningful.
type adjustStockRequest struct {
	Quantity float64 `json:"quantity" binding:"required"`
	Reason   string  `json:"reason" binding:"required"`
}

// ListInventory returns every stock item for the restaurant.
func (s *Server) ListInventory(c *gin.Context) {
	restaurant, err := s.currentRestaurant(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var items []models.InventoryItem
	if err := s.db.Where("restaurant_id = ?", restaurant.ID).Order("item_name").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, items)
}

// CreateInventoryItem adds a stock-keeping unit.
func (s *Server) CreateInventoryItem(c *gin.Context) {
	restaurant, err := s.currentRestaurant(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var req inventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item := models.InventoryItem{
		RestaurantID:      restaurant.ID,
		ItemName:          req.ItemName,
		Quantity:          req.Quantity,
		Unit:              models.InventoryUnit(req.Unit),
		CostPerUnit:       req.CostPerUnit,
		LowStockThreshold: req.LowStockThreshold,
		ExpiryDays:        req.ExpiryDays,
	}
	if item.ExpiryDays == 0 {
		item.ExpiryDays = 30
	}
	if err := s.db.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, item)
}

// ReceiveStock records a delivery: an IN movement plus the quantity
// bump, in one transaction. The response is the re-read item so the
// client never computes the new quantity itself.
func (s *Server) ReceiveStock(c *gin.Context) {
	restaurant, err := s.currentRestaurant(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var req receiveStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "received quantity must be positive"})
		return
	}

	var item models.InventoryItem
	if err := s.db.Where("id = ? AND restaurant_id = ?", c.Param("id"), restaurant.ID).First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Inventory item not found"})
		return
	}

	tx := s.db.Begin()
	movement := models.StockMovement{
		InventoryItemID: item.ID,
		MovementType:    models.MovementIn,
		Quantity:        req.Quantity,
		Reason:          "purchase",
		Supplier:        req.Supplier,
		CostPerUnit:     req.CostPerUnit,
	}
	if err := tx.Create(&movement).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	item.Quantity += req.Quantity
	if req.CostPerUnit > 0 {
		item.CostPerUnit = req.CostPerUnit
	}
	if err := tx.Save(&item).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, item)
}

// AdjustStock records a signed correction. Usage and waste come through
// here as negative quantities with a reason code.
func (s *Server) AdjustStock(c *gin.Context) {
	restaurant, err := s.currentRestaurant(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var req adjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var item models.InventoryItem
	if err := s.db.Where("id = ? AND restaurant_id = ?", c.Param("id"), restaurant.ID).First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Inventory item not found"})
		return
	}
	if item.Quantity+req.Quantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "adjustment would take stock below zero"})
		return
	}

	movementType := models.MovementAdjust
	if req.Quantity < 0 {
		movementType = models.MovementOut
	}

	tx := s.db.Begin()
	movement := models.StockMovement{
		InventoryItemID: item.ID,
		MovementType:    movementType,
		Quantity:        math.Abs(req.Quantity),
		Reason:          req.Reason,
	}
	if err := tx.Create(&movement).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	item.Quantity += req.Quantity
	if err := tx.Save(&item).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, item)
}
