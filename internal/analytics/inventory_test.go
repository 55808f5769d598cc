package analytics

import (
	"testing"
	"time"

	"github.com/jinzhu/gorm"
	"github.com/stretchr/testify/assert"

	"chakula/internal/models"
)

func invItem(id uint, name string, qty, threshold, cost float64) models.InventoryItem {
	return models.InventoryItem{
		Model:             gorm.Model{ID: id},
		ItemName:          name,
		Quantity:          qty,
		Unit:              models.UnitKilogram,
		CostPerUnit:       cost,
		LowStockThreshold: threshold,
	}
}

func outMovement(itemID uint, qty float64, at time.Time) models.StockMovement {
	m := models.StockMovement{
		InventoryItemID: itemID,
		MovementType:    models.MovementOut,
		Quantity:        qty,
	}
	m.CreatedAt = at
	return m
}

func TestPredictInventoryStatuses(t *testing.T) {
	now := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
	items := []models.InventoryItem{
		invItem(1, "Maize Flour", 0, 5, 120),  // out
		invItem(2, "Beef", 3, 5, 650),         // low
		invItem(3, "Rice", 50, 5, 180),        // ok, no usage
		invItem(4, "Cooking Oil", 10, 2, 300), // depletes within a week
	}
	movements := []models.StockMovement{
		outMovement(4, 20, now.AddDate(0, 0, -10)), // 2/day over 10 days
	}

	result := PredictInventory(items, movements, now)

	byName := make(map[string]ItemPrediction)
	for _, p := range result.Predictions {
		byName[p.Name] = p
	}

	assert.Equal(t, StockCritical, byName["Maize Flour"].Status)
	assert.Equal(t, StockLow, byName["Beef"].Status)
	assert.Equal(t, StockOK, byName["Rice"].Status)
	assert.Equal(t, StockReorder, byName["Cooking Oil"].Status)

	assert.Equal(t, 5, byName["Cooking Oil"].DaysUntilDepletion)
	assert.Equal(t, "2026-08-25", byName["Cooking Oil"].DepletionDate)
	assert.Zero(t, byName["Rice"].DaysUntilDepletion)
	assert.Empty(t, byName["Rice"].DepletionDate)

	assert.Equal(t, 1, result.Summary.CriticalItems)
	assert.Equal(t, 1, result.Summary.LowStockItems)
	assert.Equal(t, 1, result.Summary.ReorderItems)
	assert.Equal(t, 1, result.Summary.OKItems)
}

func TestPredictInventoryOutOfStockBeatsLow(t *testing.T) {
	// zero quantity under a nonzero threshold must read as out, not low
	items := []models.InventoryItem{invItem(1, "Maize Flour", 0, 5, 120)}

	result := PredictInventory(items, nil, time.Now())

	assert.Equal(t, StockCritical, result.Predictions[0].Status)
	assert.Equal(t, "reorder_now", result.Alerts[0].Action)
	assert.Equal(t, "critical", result.Alerts[0].Priority)
}

func TestPredictInventoryAlertOrdering(t *testing.T) {
	now := time.Now()
	items := []models.InventoryItem{
		invItem(1, "Cooking Oil", 10, 2, 300), // will be a plain reorder alert
		invItem(2, "Beef", 3, 5, 650),         // high
		invItem(3, "Maize Flour", 0, 5, 120),  // critical
	}
	movements := []models.StockMovement{outMovement(1, 20, now.AddDate(0, 0, -10))}

	result := PredictInventory(items, movements, now)

	assert.Equal(t, "Maize Flour", result.Alerts[0].Item)
	assert.Equal(t, "Beef", result.Alerts[1].Item)
	assert.Equal(t, "Cooking Oil", result.Alerts[2].Item)
	assert.Equal(t, 3, result.Summary.AlertsCount)
}

func TestPredictInventoryIgnoresInMovements(t *testing.T) {
	now := time.Now()
	items := []models.InventoryItem{invItem(1, "Rice", 50, 5, 180)}
	movements := []models.StockMovement{
		{InventoryItemID: 1, MovementType: models.MovementIn, Quantity: 100},
		{InventoryItemID: 1, MovementType: models.MovementAdjust, Quantity: 10},
	}
	for i := range movements {
		movements[i].CreatedAt = now.AddDate(0, 0, -5)
	}

	result := PredictInventory(items, movements, now)
	assert.Zero(t, result.Predictions[0].DailyUsage)
}
