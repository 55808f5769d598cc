package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chakula/internal/models"
)

type menuItemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int    `json:"price"`
	CostPrice   int    `json:"cost_price"`
	Category    string `json:"category"`
	ImageURL    string `json:"image_url"`
	IsAvailable *bool  `json:"is_available"`
	PrepStation string `json:"prep_station"`
}

// ListMenu returns the restaurant's full catalog, including items
// currently marked unavailable. Filtering is the client's concern.
func (s *Server) ListMenu(c *gin.Context) {
	restaurant, err := s.currentRestaurant(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var items []models.MenuItem
	if err := s.db.Where("restaurant_id = ?", restaurant.ID).Order("category, name").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, items)
}

// CreateMenuItem adds a dish to the catalog.
func (s *Server) CreateMenuItem(c *gin.Context) {
	restaurant, err := s.currentRestaurant(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var req menuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item := models.MenuItem{
		RestaurantID: restaurant.ID,
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		CostPrice:    req.CostPrice,
		Category:     req.Category,
		ImageURL:     req.ImageURL,
		IsAvailable:  true,
		PrepStation:  req.PrepStation,
	}
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}
	if item.PrepStation == "" {
		item.PrepStation = "main"
	}

	if err := models.ValidateMenuItem(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.db.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, item)
}

// UpdateMenuItem edits a dish. Only fields present in the request body
// change; the availability toggle rides through here too.
func (s *Server) UpdateMenuItem(c *gin.Context) {
	restaurant, err := s.currentRestaurant(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var item models.MenuItem
	if err := s.db.Where("id = ? AND restaurant_id = ?", c.Param("id"), restaurant.ID).First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}

	var req menuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name != "" {
		item.Name = req.Name
	}
	if req.Description != "" {
		item.Description = req.Description
	}
	if req.Price > 0 {
		item.Price = req.Price
	}
	if req.CostPrice > 0 {
		item.CostPrice = req.CostPrice
	}
	if req.Category != "" {
		item.Category = req.Category
	}
	if req.ImageURL != "" {
		item.ImageURL = req.ImageURL
	}
	if req.PrepStation != "" {
		item.PrepStation = req.PrepStation
	}
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}

	if err := s.db.Save(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteMenuItem removes a dish from the catalog (soft delete).
func (s *Server) DeleteMenuItem(c *gin.Context) {
	restaurant, err := s.currentRestaurant(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var item models.MenuItem
	if err := s.db.Where("id = ? AND restaurant_id = ?", c.Param("id"), restaurant.ID).First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}
	if err := s.db.Delete(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item deleted successfully"})
}
