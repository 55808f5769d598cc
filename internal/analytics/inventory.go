package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"chakula/internal/models"
)

// Stock statuses, in priority order. Critical (out of stock) always
// wins over low; low wins over reorder.
const (
	StockCritical = "critical"
	StockLow      = "low"
	StockReorder  = "reorder"
	StockOK       = "ok"
)

// ItemPrediction is the depletion forecast for one inventory item.
type ItemPrediction struct {
	ID                 uint    `json:"id"`
	Name               string  `json:"name"`
	Quantity           float64 `json:"quantity"`
	Unit               string  `json:"unit"`
	DailyUsage         float64 `json:"daily_usage"`
	DaysUntilDepletion int     `json:"days_until_depletion"`
	DepletionDate      string  `json:"depletion_date"`
	Status             string  `json:"status"`
	Value              float64 `json:"value"`
}

// InventorySummary is the header block of the predictions payload.
type InventorySummary struct {
	TotalItems    int     `json:"total_items"`
	TotalValue    float64 `json:"total_inventory_value"`
	CriticalItems int     `json:"critical_items"`
	LowStockItems int     `json:"low_stock_items"`
	ReorderItems  int     `json:"reorder_items"`
	OKItems       int     `json:"ok_items"`
	AlertsCount   int     `json:"alerts_count"`
}

// InventoryPredictions is the /ai/inventory-predictions payload.
type InventoryPredictions struct {
	Predictions []ItemPrediction `json:"predictions"`
	Alerts      []Recommendation `json:"alerts"`
	Summary     InventorySummary `json:"summary"`
}

// PredictInventory derives a daily usage rate for each item from its
// OUT movements over the last 30 days and projects when stock runs dry.
// Items with no usage history get no depletion date rather than a guess.
func PredictInventory(items []models.InventoryItem, movements []models.StockMovement, now time.Time) InventoryPredictions {
	cutoff := now.AddDate(0, 0, -30)

	usage := make(map[uint]float64)
	firstMove := make(map[uint]time.Time)
	for _, m := range movements {
		if m.MovementType != models.MovementOut || m.CreatedAt.Before(cutoff) {
			continue
		}
		usage[m.InventoryItemID] += math.Abs(m.Quantity)
		if t, ok := firstMove[m.InventoryItemID]; !ok || m.CreatedAt.Before(t) {
			firstMove[m.InventoryItemID] = m.CreatedAt
		}
	}

	predictions := make([]ItemPrediction, 0, len(items))
	alerts := []Recommendation{}
	summary := InventorySummary{TotalItems: len(items)}

	for i := range items {
		item := &items[i]

		days := 30.0
		if t, ok := firstMove[item.ID]; ok {
			if span := now.Sub(t).Hours() / 24; span >= 1 && span < 30 {
				days = span
			}
		}
		dailyUsage := round2(usage[item.ID] / days)

		p := ItemPrediction{
			ID:         item.ID,
			Name:       item.ItemName,
			Quantity:   item.Quantity,
			Unit:       string(item.Unit),
			DailyUsage: dailyUsage,
			Value:      round2(item.Quantity * item.CostPerUnit),
		}
		summary.TotalValue += p.Value

		if dailyUsage > 0 && item.Quantity > 0 {
			p.DaysUntilDepletion = int(item.Quantity / dailyUsage)
			p.DepletionDate = now.AddDate(0, 0, p.DaysUntilDepletion).Format("2006-01-02")
		}

		switch {
		case item.OutOfStock():
			p.Status = StockCritical
			summary.CriticalItems++
			alerts = append(alerts, Recommendation{
				Item:     item.ItemName,
				Message:  fmt.Sprintf("OUT OF STOCK - %s! Menu items that need it may be unavailable.", item.ItemName),
				Action:   "reorder_now",
				Priority: "critical",
			})
		case item.LowStock():
			p.Status = StockLow
			summary.LowStockItems++
			msg := fmt.Sprintf("Low stock: %.1f %s remaining (threshold %.1f).", item.Quantity, item.Unit, item.LowStockThreshold)
			if p.DepletionDate != "" {
				msg += fmt.Sprintf(" Depletes by %s.", p.DepletionDate)
			}
			alerts = append(alerts, Recommendation{
				Item:     item.ItemName,
				Message:  msg,
				Action:   "reorder_soon",
				Priority: "high",
			})
		case p.DaysUntilDepletion > 0 && p.DaysUntilDepletion <= 7:
			p.Status = StockReorder
			summary.ReorderItems++
			alerts = append(alerts, Recommendation{
				Item:     item.ItemName,
				Message:  fmt.Sprintf("%s depletes in about %d days at current usage. Plan the next order.", item.ItemName, p.DaysUntilDepletion),
				Action:   "plan_reorder",
				Priority: "info",
			})
		default:
			p.Status = StockOK
			summary.OKItems++
		}

		predictions = append(predictions, p)
	}

	sort.Slice(alerts, func(a, b int) bool {
		return severityRank(alerts[a].Priority) < severityRank(alerts[b].Priority)
	})
	summary.TotalValue = round2(summary.TotalValue)
	summary.AlertsCount = len(alerts)

	return InventoryPredictions{Predictions: predictions, Alerts: alerts, Summary: summary}
}

func severityRank(p string) int {
	switch p {
	case "critical":
		return 0
	case "high", "warning":
		return 1
	case "medium":
		return 2
	}
	return 3
}
