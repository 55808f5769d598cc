package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"chakula/internal/models"
)

func paidOrder(created time.Time, total int, orderType models.OrderType) models.Order {
	o := models.Order{Status: models.OrderStatusServed, Total: total, OrderType: orderType}
	o.CreatedAt = created
	return o
}

func TestForecastRevenueTrends(t *testing.T) {
	// a Thursday, so weekday buckets are predictable
	now := time.Date(2026, 8, 20, 22, 0, 0, 0, time.UTC)

	orders := []models.Order{
		paidOrder(now.AddDate(0, 0, -1), 50000, models.OrderTypeDineIn),  // this week
		paidOrder(now.AddDate(0, 0, -2), 30000, models.OrderTypeTakeout), // this week
		paidOrder(now.AddDate(0, 0, -10), 40000, models.OrderTypeDineIn), // last week
	}

	result := ForecastRevenue(orders, now)

	trends := result.Trends
	assert.Equal(t, 120000, trends.TotalRevenue)
	assert.Equal(t, 3, trends.TotalOrders)
	assert.Equal(t, 40000, trends.AvgOrderValue)
	assert.Equal(t, 40000, trends.MedianCheck)
	// 80000 this week vs 40000 last week
	assert.InDelta(t, 100.0, trends.WeekOverWeekGrowth, 0.1)

	assert.Equal(t, 90000, result.ByOrderType["dine_in"])
	assert.Equal(t, 30000, result.ByOrderType["takeout"])
	assert.Len(t, result.DailyRevenue, 3)
}

func TestForecastRevenueExcludesCancelled(t *testing.T) {
	now := time.Now()
	orders := []models.Order{
		paidOrder(now.AddDate(0, 0, -1), 50000, models.OrderTypeDineIn),
		{Status: models.OrderStatusCancelled, Total: 99999},
	}
	orders[1].CreatedAt = now.AddDate(0, 0, -1)

	result := ForecastRevenue(orders, now)
	assert.Equal(t, 50000, result.Trends.TotalRevenue)
	assert.Equal(t, 1, result.Trends.TotalOrders)
}

func TestForecastRevenueSevenDayProjection(t *testing.T) {
	now := time.Date(2026, 8, 20, 22, 0, 0, 0, time.UTC)
	// two Fridays of history at 60000 each
	fri1 := time.Date(2026, 8, 7, 19, 0, 0, 0, time.UTC)
	fri2 := time.Date(2026, 8, 14, 19, 0, 0, 0, time.UTC)
	orders := []models.Order{
		paidOrder(fri1, 60000, models.OrderTypeDineIn),
		paidOrder(fri2, 60000, models.OrderTypeDineIn),
	}

	result := ForecastRevenue(orders, now)

	assert.Len(t, result.Forecast, 7)
	for _, day := range result.Forecast {
		if day.Day == "Friday" {
			assert.Equal(t, 60000, day.Projected)
		}
	}
	assert.Equal(t, "Friday", result.Trends.PeakDay)
}

func TestForecastRevenueEmpty(t *testing.T) {
	result := ForecastRevenue(nil, time.Now())
	assert.Zero(t, result.Trends.TotalRevenue)
	assert.Empty(t, result.DailyRevenue)
	assert.Len(t, result.Forecast, 7)
	for _, day := range result.Forecast {
		assert.Zero(t, day.Projected)
	}
}
