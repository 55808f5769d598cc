package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"chakula/internal/analytics"
	"chakula/internal/models"
)

// The /ai/* handlers all follow the same shape: load the rows the
// module needs, hand them to the pure analytics function, return the
// payload. Keeping the math out of the handlers keeps it testable
// without a database.

func (s *Server) loadRecentOrders(restaurantID uint, days int) ([]models.Order, error) {
	cutoff := time.Now().AddDate(0, 0, -days)
	var orders []models.Order
	err := s.db.Preload("Items").
		Where("restaurant_id = ? AND created_at >= ?", restaurantID, cutoff).
		Find(&orders).Error
	return orders, err
}

// AIDashboard aggregates every analytics module into one health view.
func (s *Server) AIDashboard(c *gin.Context) {
	restaurant, err := s.currentRestaurant(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	orders, err := s.loadRecentOrders(restaurant.ID, 30)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var menuItems []models.MenuItem
	if err := s.db.Where("restaurant_id = ?", restaurant.ID).Find(&menuItems).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	var invItems []models.InventoryItem
	if err := s.db.Where("restaurant_id = ?", restaurant.ID).Find(&invItems).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	movements, err := s.loadMovements(invItems, now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	var reservations []models.Reservation
	if err := s.db.Where("restaurant_id = ?", restaurant.ID).Find(&reservations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	menu := analytics.AnalyzeMenu(menuItems, orders, now)
	revenue := analytics.ForecastRevenue(orders, now)
	kitchen := analytics.AnalyzeKitchen(orders, now)
	inventory := analytics.PredictInventory(invItems, movements, now)
	resInsights := analytics.AnalyzeReservations(reservations, revenue.Trends.AvgOrderValue, now)

	quick := s.quickStats(restaurant.ID, revenue, len(menuItems), now)
	dashboard := analytics.BuildDashboard(menu, revenue, kitchen, inventory, resInsights, quick)

	if s.advisor != nil {
		dashboard.Alerts = s.advisor.Rephrase(c.Request.Context(), dashboard.Alerts)
	}
	c.JSON(http.StatusOK, dashboard)
}

// quickStats runs the handful of direct counts the dashboard header
// needs. Failures degrade to zeros rather than failing the whole page.
func (s *Server) quickStats(restaurantID uint, revenue analytics.RevenueForecast, menuCount int, now time.Time) analytics.QuickStats {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	yesterday := today.AddDate(0, 0, -1)

	stats := analytics.QuickStats{
		MenuItems:       menuCount,
		TotalRevenue30d: revenue.Trends.TotalRevenue,
		AvgOrderValue:   revenue.Trends.AvgOrderValue,
	}

	type sum struct {
		N     int
		Total int
	}
	var todaySum, ydaySum sum
	s.db.Model(&models.Order{}).
		Where("restaurant_id = ? AND created_at >= ? AND status <> ?", restaurantID, today, models.OrderStatusCancelled).
		Select("COUNT(*) AS n, COALESCE(SUM(total), 0) AS total").Scan(&todaySum)
	s.db.Model(&models.Order{}).
		Where("restaurant_id = ? AND created_at >= ? AND created_at < ? AND status <> ?",
			restaurantID, yesterday, today, models.OrderStatusCancelled).
		Select("COUNT(*) AS n, COALESCE(SUM(total), 0) AS total").Scan(&ydaySum)

	stats.TodayOrders = todaySum.N
	stats.TodayRevenue = todaySum.Total
	stats.YesterdayRevenue = ydaySum.Total
	if ydaySum.Total > 0 {
		stats.DayOverDayChange = float64(todaySum.Total-ydaySum.Total) / float64(ydaySum.Total) * 100
	}

	var pending int
	s.db.Model(&models.Order{}).
		Where("restaurant_id = ? AND status IN (?)", restaurantID,
			[]models.OrderStatus{models.OrderStatusPending, models.OrderStatusPrep, models.OrderStatusReady}).
		Count(&pending)
	stats.PendingOrders = pending
	return stats
}

// AIMenuEngineering classifies the menu by popularity versus margin.
func (s *Server) AIMenuEngineering(c *gin.Context) {
	restaurant, err := s.currentRestaurant(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var items []models.MenuItem
	if err := s.db.Where("restaurant_id = ?", restaurant.ID).Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	orders, err := s.loadRecentOrders(restaurant.ID, 30)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	result := analytics.AnalyzeMenu(items, orders, time.Now())
	if s.advisor != nil {
		result.Recommendations = s.advisor.Rephrase(c.Request.Context(), result.Recommendations)
	}
	c.JSON(http.StatusOK, result)
}

// AIRevenueForecast projects the next week from day-of-week averages.
func (s *Server) AIRevenueForecast(c *gin.Context) {
	restaurant, err := s.currentRestaurant(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	orders, err := s.loadRecentOrders(restaurant.ID, 30)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, analytics.ForecastRevenue(orders, time.Now()))
}

// AIInventoryPredictions estimates depletion dates from movement history.
func (s *Server) AIInventoryPredictions(c *gin.Context) {
	restaurant, err := s.currentRestaurant(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var items []models.InventoryItem
	if err := s.db.Where("restaurant_id = ?", restaurant.ID).Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	movements, err := s.loadMovements(items, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	result := analytics.PredictInventory(items, movements, time.Now())
	if s.advisor != nil {
		result.Alerts = s.advisor.Rephrase(c.Request.Context(), result.Alerts)
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) loadMovements(items []models.InventoryItem, now time.Time) ([]models.StockMovement, error) {
	if len(items) == 0 {
		return nil, nil
	}
	ids := make([]uint, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	cutoff := now.AddDate(0, 0, -30)
	var movements []models.StockMovement
	err := s.db.Where("inventory_item_id IN (?) AND created_at >= ?", ids, cutoff).Find(&movements).Error
	return movements, err
}

// AIReservationInsights reports no-show rates and their revenue cost.
func (s *Server) AIReservationInsights(c *gin.Context) {
	restaurant, err := s.currentRestaurant(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var reservations []models.Reservation
	if err := s.db.Where("restaurant_id = ?", restaurant.ID).Find(&reservations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	orders, err := s.loadRecentOrders(restaurant.ID, 30)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	avgCheck := analytics.ForecastRevenue(orders, now).Trends.AvgOrderValue
	c.JSON(http.StatusOK, analytics.AnalyzeReservations(reservations, avgCheck, now))
}

// AIKitchenIntelligence reports fulfillment times and peak load hours.
func (s *Server) AIKitchenIntelligence(c *gin.Context) {
	restaurant, err := s.currentRestaurant(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	orders, err := s.loadRecentOrders(restaurant.ID, 30)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	result := analytics.AnalyzeKitchen(orders, time.Now())
	if s.advisor != nil {
		result.Recommendations = s.advisor.Rephrase(c.Request.Context(), result.Recommendations)
	}
	c.JSON(http.StatusOK, result)
}
