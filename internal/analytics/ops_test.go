package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildDashboardNeutralWhenEmpty(t *testing.T) {
	dash := BuildDashboard(MenuEngineering{}, RevenueForecast{}, KitchenStats{},
		InventoryPredictions{}, ReservationInsights{}, QuickStats{})

	// every module reports 50 with no data, so the weighted score is 50
	assert.Equal(t, 50, dash.HealthScore)
	assert.Len(t, dash.HealthBreakdown, 5)
	for _, h := range dash.HealthBreakdown {
		assert.Equal(t, 50, h.Score)
		assert.Equal(t, "No data", h.Detail)
	}
}

func TestBuildDashboardWeights(t *testing.T) {
	dash := BuildDashboard(MenuEngineering{}, RevenueForecast{}, KitchenStats{},
		InventoryPredictions{}, ReservationInsights{}, QuickStats{})

	weights := make(map[string]int)
	total := 0
	for _, h := range dash.HealthBreakdown {
		weights[h.Category] = h.Weight
		total += h.Weight
	}
	assert.Equal(t, 100, total)
	assert.Equal(t, 25, weights["Revenue Trend"])
	assert.Equal(t, 20, weights["Menu Health"])
	assert.Equal(t, 20, weights["Kitchen Efficiency"])
	assert.Equal(t, 15, weights["Inventory Status"])
	assert.Equal(t, 20, weights["Reservation Reliability"])
}

func TestBuildDashboardAlertsCapped(t *testing.T) {
	var inv InventoryPredictions
	for i := 0; i < 10; i++ {
		inv.Alerts = append(inv.Alerts, Recommendation{Message: "restock", Priority: "critical"})
	}
	var menu MenuEngineering
	for i := 0; i < 10; i++ {
		menu.Recommendations = append(menu.Recommendations, Recommendation{Message: "review", Priority: "medium"})
	}
	var kit KitchenStats
	for i := 0; i < 10; i++ {
		kit.Recommendations = append(kit.Recommendations, Recommendation{Message: "slow", Priority: "high"})
	}

	dash := BuildDashboard(menu, RevenueForecast{}, kit, inv, ReservationInsights{}, QuickStats{})

	assert.LessOrEqual(t, len(dash.Alerts), 8)
	// critical sorts ahead of everything else
	assert.Equal(t, "critical", dash.Alerts[0].Priority)
	// QuickStats reflects the pre-cap alert count
	assert.Equal(t, 11, dash.QuickStats.ActiveAlertsCount)
}

func TestBuildRisks(t *testing.T) {
	inv := InventoryPredictions{Summary: InventorySummary{CriticalItems: 2}}
	res := ReservationInsights{NoShowAnalysis: NoShowAnalysis{NoShowRate: 30}}
	menu := MenuEngineering{Summary: MenuSummary{Dogs: 5}}

	risks := buildRisks(menu, inv, res)

	assert.Len(t, risks, 3)
	assert.Equal(t, "reorder_now", risks[0].Action)
	assert.Equal(t, "require_deposit", risks[1].Action)
	assert.Equal(t, "trim_menu", risks[2].Action)
}

func TestBuildOpportunities(t *testing.T) {
	menu := MenuEngineering{Summary: MenuSummary{Puzzles: 2}}
	res := ReservationInsights{RevenueImpact: RevenueImpact{EstimatedRevenueLost: 500000}}
	rev := RevenueForecast{Trends: RevenueTrends{WeekOverWeekGrowth: 12}}

	opps := buildOpportunities(menu, rev, res)

	assert.Len(t, opps, 3)
	assert.Contains(t, opps[1].Message, "KES 5000")
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0, clamp(-5, 0, 100))
	assert.Equal(t, 100, clamp(250, 0, 100))
	assert.Equal(t, 42, clamp(42, 0, 100))
}
