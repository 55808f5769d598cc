package analytics

import (
	"testing"
	"time"

	"github.com/jinzhu/gorm"
	"github.com/stretchr/testify/assert"

	"chakula/internal/models"
)

func menuItem(id uint, name string, price, cost int) models.MenuItem {
	return models.MenuItem{
		Model:       gorm.Model{ID: id},
		Name:        name,
		Price:       price,
		CostPrice:   cost,
		Category:    "mains",
		IsAvailable: true,
	}
}

func orderAt(created time.Time, status models.OrderStatus, items ...models.OrderItem) models.Order {
	o := models.Order{Status: status, Items: items}
	o.CreatedAt = created
	return o
}

func line(menuItemID uint, qty, unitPrice int) models.OrderItem {
	return models.OrderItem{MenuItemID: menuItemID, Quantity: qty, UnitPrice: unitPrice}
}

func TestAnalyzeMenuClassification(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	items := []models.MenuItem{
		menuItem(1, "Ugali Beef", 5000, 1500),    // popular, thin margin
		menuItem(2, "Nyama Choma", 45000, 20000), // popular, profitable
		menuItem(3, "Soda", 15000, 8000),         // slow, thin margin
		menuItem(4, "Pilau", 30000, 9000),        // slow, profitable
	}
	orders := []models.Order{
		orderAt(now.AddDate(0, 0, -2), models.OrderStatusServed,
			line(1, 10, 5000), line(2, 8, 45000)),
		orderAt(now.AddDate(0, 0, -3), models.OrderStatusServed,
			line(3, 2, 15000)),
	}

	result := AnalyzeMenu(items, orders, now)

	byName := make(map[string]MenuItemStats)
	for _, row := range result.Matrix {
		byName[row.Name] = row
	}

	assert.Equal(t, ClassPlowhorse, byName["Ugali Beef"].Classification)
	assert.Equal(t, ClassStar, byName["Nyama Choma"].Classification)
	assert.Equal(t, ClassDog, byName["Soda"].Classification)
	assert.Equal(t, ClassPuzzle, byName["Pilau"].Classification)

	assert.Equal(t, 1, result.Summary.Stars)
	assert.Equal(t, 1, result.Summary.Plowhorses)
	assert.Equal(t, 1, result.Summary.Puzzles)
	assert.Equal(t, 1, result.Summary.Dogs)
	assert.Equal(t, 10*5000+8*45000+2*15000, result.Summary.TotalRevenue)
}

func TestAnalyzeMenuExcludesCancelled(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	items := []models.MenuItem{menuItem(1, "Ugali Beef", 5000, 1500)}
	orders := []models.Order{
		orderAt(now.AddDate(0, 0, -1), models.OrderStatusCancelled, line(1, 100, 5000)),
		orderAt(now.AddDate(0, 0, -1), models.OrderStatusServed, line(1, 3, 5000)),
	}

	result := AnalyzeMenu(items, orders, now)

	assert.Equal(t, 3, result.Matrix[0].QtySold)
	assert.Equal(t, 15000, result.Summary.TotalRevenue)
}

func TestAnalyzeMenuEmpty(t *testing.T) {
	result := AnalyzeMenu(nil, nil, time.Now())
	assert.Empty(t, result.Matrix)
	assert.Empty(t, result.Recommendations)
	assert.Equal(t, 0, result.Summary.TotalItems)
}

func TestAnalyzeMenuTopContributorFirst(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	items := []models.MenuItem{
		menuItem(1, "Soda", 15000, 8000),
		menuItem(2, "Nyama Choma", 45000, 20000),
	}
	orders := []models.Order{
		orderAt(now.AddDate(0, 0, -1), models.OrderStatusServed,
			line(1, 5, 15000), line(2, 5, 45000)),
	}

	result := AnalyzeMenu(items, orders, now)
	assert.Equal(t, "Nyama Choma", result.Matrix[0].Name)
}

func TestItemTrend(t *testing.T) {
	trend, pct := itemTrend(0, 0)
	assert.Equal(t, "stable", trend)
	assert.Zero(t, pct)

	// 23 older at 1/day, 14 recent at 2/day: +100%
	trend, pct = itemTrend(14, 23)
	assert.Equal(t, "rising", trend)
	assert.InDelta(t, 100, pct, 0.1)

	// recent dried up entirely
	trend, _ = itemTrend(0, 46)
	assert.Equal(t, "falling", trend)

	// under the 15% band in both directions
	trend, _ = itemTrend(7, 23)
	assert.Equal(t, "stable", trend)
}

func TestMenuRecommendationsPuzzleAndDog(t *testing.T) {
	matrix := []MenuItemStats{
		{Name: "Pilau", Classification: ClassPuzzle, QtySold: 2},
		{Name: "Soda", Classification: ClassDog},
		{Name: "Ugali Beef", Classification: ClassPlowhorse, FoodCostPct: 45},
	}

	recs := menuRecommendations(matrix)

	actions := make(map[string]string)
	for _, r := range recs {
		actions[r.Item] = r.Action
	}
	assert.Equal(t, "promote", actions["Pilau"])
	assert.Equal(t, "review", actions["Soda"])
	assert.Equal(t, "reprice", actions["Ugali Beef"])
}
