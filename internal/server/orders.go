package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"

	"chakula/internal/metrics"
	"chakula/internal/models"
)

type orderItemRequest struct {
	MenuItemID uint `json:"menu_item_id" binding:"required"`
	Quantity   int  `json:"quantity" binding:"required"`
}

// createOrderRequest carries item ids and quantities only. Prices are
// never trusted from the client; unit prices are snapshotted from the
// menu at creation.
type createOrderRequest struct {
	Items           []orderItemRequest `json:"items" binding:"required"`
	OrderType       string             `json:"order_type"`
	DeliveryChannel string             `json:"delivery_channel"`
	PaymentMethod   string             `json:"payment_method"`
	CustomerName    string             `json:"customer_name"`
	CustomerPhone   string             `json:"customer_phone"`
	TableNumber     *int               `json:"table_number"`
	Notes           string             `json:"notes"`
}

type statusUpdateRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// ListOrders returns the restaurant's orders, newest first, optionally
// filtered by ?status=.
func (s *Server) ListOrders(c *gin.Context) {
	restaurant, err := s.currentRestaurant(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	q := s.db.Preload("Items").Where("restaurant_id = ?", restaurant.ID).Order("created_at desc").Limit(200)
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var orders []models.Order
	if err := q.Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// ActiveOrders returns only the orders the kitchen board shows:
// pending, prep and ready, oldest first.
func (s *Server) ActiveOrders(c *gin.Context) {
	restaurant, err := s.currentRestaurant(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var orders []models.Order
	err = s.db.Preload("Items").
		Where("restaurant_id = ? AND status IN (?)", restaurant.ID,
			[]models.OrderStatus{models.OrderStatusPending, models.OrderStatusPrep, models.OrderStatusReady}).
		Order("created_at asc").
		Find(&orders).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GetOrder returns one order with its items.
func (s *Server) GetOrder(c *gin.Context) {
	restaurant, err := s.currentRestaurant(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var order models.Order
	err = s.db.Preload("Items").
		Where("id = ? AND restaurant_id = ?", c.Param("id"), restaurant.ID).
		First(&order).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	c.JSON(http.StatusOK, order)
}

// CreateOrder accepts a POS order for the caller's restaurant.
func (s *Server) CreateOrder(c *gin.Context) {
	restaurant, err := s.currentRestaurant(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	s.createOrderFor(c, restaurant.ID, "")
}

// CreatePublicOrder accepts an unauthenticated storefront order. The
// restaurant is selected by query parameter and the channel is forced
// to "app".
func (s *Server) CreatePublicOrder(c *gin.Context) {
	restaurantID, err := strconv.Atoi(c.Query("restaurant_id"))
	if err != nil || restaurantID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "restaurant_id query parameter required"})
		return
	}

	var restaurant models.Restaurant
	if err := s.db.First(&restaurant, restaurantID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}
	s.createOrderFor(c, restaurant.ID, models.ChannelApp)
}

func (s *Server) createOrderFor(c *gin.Context, restaurantID uint, forceChannel models.DeliveryChannel) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "order must contain at least one item"})
		return
	}

	order := models.Order{
		RestaurantID:    restaurantID,
		Status:          models.OrderStatusPending,
		OrderType:       models.OrderType(req.OrderType),
		DeliveryChannel: models.DeliveryChannel(req.DeliveryChannel),
		PaymentMethod:   req.PaymentMethod,
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		TableNumber:     req.TableNumber,
		Notes:           req.Notes,
	}
	if order.OrderType == "" {
		order.OrderType = models.OrderTypeDineIn
	}
	if forceChannel != "" {
		order.DeliveryChannel = forceChannel
	}
	if order.DeliveryChannel == "" {
		order.DeliveryChannel = models.ChannelWalkIn
	}
	if order.PaymentMethod == "" {
		order.PaymentMethod = models.PaymentPending
	}

	tx := s.db.Begin()
	for _, line := range req.Items {
		if line.Quantity < 1 {
			tx.Rollback()
			c.JSON(http.StatusBadRequest, gin.H{"error": "item quantity must be positive"})
			return
		}
		var item models.MenuItem
		if err := tx.Where("id = ? AND restaurant_id = ?", line.MenuItemID, restaurantID).First(&item).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown menu item"})
			return
		}
		order.Items = append(order.Items, models.OrderItem{
			MenuItemID: item.ID,
			Quantity:   line.Quantity,
			UnitPrice:  item.Price,
			ItemName:   item.Name,
		})
		order.Total += item.Price * line.Quantity
	}

	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	metrics.OrdersCreated.WithLabelValues(string(order.OrderType)).Inc()
	s.hub.BroadcastOrderEvent("order_created", &order)
	c.JSON(http.StatusCreated, order)
}

// UpdateOrderStatus advances an order one step along its lifecycle.
// Setting the current status again is a no-op; skipping a step or
// moving backwards is rejected. Cancellation is allowed from any
// active status since it originates outside the board.
func (s *Server) UpdateOrderStatus(c *gin.Context) {
	restaurant, err := s.currentRestaurant(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var req statusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}

	var order models.Order
	err = s.db.Preload("Items").
		Where("id = ? AND restaurant_id = ?", c.Param("id"), restaurant.ID).
		First(&order).Error
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if order.Status == req.Status {
		c.JSON(http.StatusOK, order)
		return
	}

	legal := models.NextStatus[order.Status] == req.Status ||
		(req.Status == models.OrderStatusCancelled && order.Active())
	if !legal {
		c.JSON(http.StatusConflict, gin.H{
			"error": "illegal transition from " + string(order.Status) + " to " + string(req.Status),
		})
		return
	}

	order.Status = req.Status
	if req.Status == models.OrderStatusServed {
		now := time.Now()
		order.CompletedAt = &now
	}
	if err := s.db.Save(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	metrics.StatusTransitions.WithLabelValues(string(req.Status)).Inc()
	s.hub.BroadcastOrderEvent("order_updated", &order)
	c.JSON(http.StatusOK, order)
}
