package analytics

import (
	"fmt"
	"sort"
)

// HealthScore is one weighted dimension of the overall health number.
type HealthScore struct {
	Category string `json:"category"`
	Score    int    `json:"score"`
	Weight   int    `json:"weight"`
	Detail   string `json:"detail"`
}

// QuickStats is the today-versus-yesterday snapshot, loaded by the
// caller straight from the orders table.
type QuickStats struct {
	TodayOrders       int     `json:"today_orders"`
	TodayRevenue      int     `json:"today_revenue"`
	YesterdayRevenue  int     `json:"yesterday_revenue"`
	DayOverDayChange  float64 `json:"day_over_day_change"`
	PendingOrders     int     `json:"pending_orders"`
	MenuItems         int     `json:"menu_items"`
	TotalRevenue30d   int     `json:"total_revenue_30d"`
	AvgOrderValue     int     `json:"avg_order_value"`
	ActiveAlertsCount int     `json:"active_alerts"`
}

// OpsDashboard is the /ai/dashboard payload - the aggregated view the
// insights page renders.
type OpsDashboard struct {
	HealthScore     int              `json:"health_score"`
	HealthBreakdown []HealthScore    `json:"health_breakdown"`
	QuickStats      QuickStats       `json:"quick_stats"`
	Alerts          []Recommendation `json:"alerts"`
	Risks           []Recommendation `json:"risks"`
	Opportunities   []Recommendation `json:"opportunities"`
}

// BuildDashboard combines every module into the weighted health score.
// Weights: revenue 25, menu 20, kitchen 20, reservations 20, inventory 15.
// A module with no data scores a neutral 50.
func BuildDashboard(menu MenuEngineering, revenue RevenueForecast, kitchen KitchenStats,
	inventory InventoryPredictions, reservations ReservationInsights, quick QuickStats) OpsDashboard {

	scores := []HealthScore{
		menuHealth(menu),
		revenueHealth(revenue),
		kitchenHealth(kitchen),
		inventoryHealth(inventory),
		reservationHealth(reservations),
	}

	totalWeight := 0
	weighted := 0
	for _, s := range scores {
		totalWeight += s.Weight
		weighted += s.Score * s.Weight
	}

	alerts := aggregateAlerts(menu, kitchen, inventory, reservations)
	quick.ActiveAlertsCount = len(alerts)
	if len(alerts) > 8 {
		alerts = alerts[:8]
	}

	return OpsDashboard{
		HealthScore:     weighted / maxInt(totalWeight, 1),
		HealthBreakdown: scores,
		QuickStats:      quick,
		Alerts:          alerts,
		Risks:           buildRisks(menu, inventory, reservations),
		Opportunities:   buildOpportunities(menu, revenue, reservations),
	}
}

func menuHealth(menu MenuEngineering) HealthScore {
	s := menu.Summary
	if s.TotalItems == 0 {
		return HealthScore{Category: "Menu Health", Score: 50, Weight: 20, Detail: "No data"}
	}
	starsRatio := float64(s.Stars) / float64(s.TotalItems) * 100
	dogsRatio := float64(s.Dogs) / float64(s.TotalItems) * 100
	foodCostScore := 100 - clampF(s.AvgFoodCostPct-25, 0, 100)*3
	score := clamp(int(starsRatio*1.5+clampF(foodCostScore, 0, 100)*0.5-dogsRatio), 0, 100)
	return HealthScore{
		Category: "Menu Health", Score: score, Weight: 20,
		Detail: fmt.Sprintf("%d Stars, %d Dogs, %.1f%% avg food cost", s.Stars, s.Dogs, s.AvgFoodCostPct),
	}
}

func revenueHealth(revenue RevenueForecast) HealthScore {
	t := revenue.Trends
	if t.TotalOrders == 0 {
		return HealthScore{Category: "Revenue Trend", Score: 50, Weight: 25, Detail: "No data"}
	}
	score := clamp(int(50+t.WeekOverWeekGrowth*2), 0, 100)
	return HealthScore{
		Category: "Revenue Trend", Score: score, Weight: 25,
		Detail: fmt.Sprintf("%+.1f%% WoW growth, %s is peak day", t.WeekOverWeekGrowth, t.PeakDay),
	}
}

func kitchenHealth(kitchen KitchenStats) HealthScore {
	tp := kitchen.Throughput
	if tp.OrdersServed == 0 && tp.ActiveOrders == 0 {
		return HealthScore{Category: "Kitchen Efficiency", Score: 50, Weight: 20, Detail: "No data"}
	}
	score := clamp(int(tp.CompletionRate*0.6+clampF(40-(tp.AvgFulfillMinutes-8)*5, 0, 40)), 0, 100)
	return HealthScore{
		Category: "Kitchen Efficiency", Score: score, Weight: 20,
		Detail: fmt.Sprintf("%.1f min avg fulfillment, %.1f%% completion", tp.AvgFulfillMinutes, tp.CompletionRate),
	}
}

func inventoryHealth(inventory InventoryPredictions) HealthScore {
	s := inventory.Summary
	if s.TotalItems == 0 {
		return HealthScore{Category: "Inventory Status", Score: 50, Weight: 15, Detail: "No data"}
	}
	score := clamp(100-s.CriticalItems*25-s.LowStockItems*10, 0, 100)
	return HealthScore{
		Category: "Inventory Status", Score: score, Weight: 15,
		Detail: fmt.Sprintf("%d critical, %d low stock", s.CriticalItems, s.LowStockItems),
	}
}

func reservationHealth(res ReservationInsights) HealthScore {
	ns := res.NoShowAnalysis
	if ns.TotalReservations == 0 {
		return HealthScore{Category: "Reservation Reliability", Score: 50, Weight: 20, Detail: "No data"}
	}
	score := clamp(int(ns.CompletionRate-ns.NoShowRate), 0, 100)
	return HealthScore{
		Category: "Reservation Reliability", Score: score, Weight: 20,
		Detail: fmt.Sprintf("%.1f%% no-show, %.1f%% completion, ~KES %d lost", ns.NoShowRate, ns.CompletionRate, res.RevenueImpact.EstimatedRevenueLost/100),
	}
}

func aggregateAlerts(menu MenuEngineering, kitchen KitchenStats, inventory InventoryPredictions, res ReservationInsights) []Recommendation {
	alerts := []Recommendation{}
	alerts = append(alerts, takeRecs(inventory.Alerts, 5, "inventory")...)
	alerts = append(alerts, takeRecs(kitchen.Recommendations, 3, "kitchen")...)
	alerts = append(alerts, takeRecs(menu.Recommendations, 3, "menu")...)
	alerts = append(alerts, takeRecs(res.Recommendations, 3, "reservations")...)
	sort.SliceStable(alerts, func(a, b int) bool {
		return severityRank(alerts[a].Priority) < severityRank(alerts[b].Priority)
	})
	return alerts
}

func takeRecs(recs []Recommendation, n int, source string) []Recommendation {
	if len(recs) > n {
		recs = recs[:n]
	}
	out := make([]Recommendation, len(recs))
	for i, r := range recs {
		out[i] = r
		if out[i].Item == "" {
			out[i].Item = source
		}
	}
	return out
}

func buildRisks(menu MenuEngineering, inventory InventoryPredictions, res ReservationInsights) []Recommendation {
	risks := []Recommendation{}
	if n := inventory.Summary.CriticalItems; n > 0 {
		risks = append(risks, Recommendation{
			Message:  fmt.Sprintf("%d items out of stock - menu items may be unavailable.", n),
			Action:   "reorder_now",
			Priority: "critical",
		})
	}
	if res.NoShowAnalysis.NoShowRate > 20 {
		risks = append(risks, Recommendation{
			Message:  "Over 20% of reservations are no-shows - revenue leakage.",
			Action:   "require_deposit",
			Priority: "high",
		})
	}
	if menu.Summary.Dogs > 3 {
		risks = append(risks, Recommendation{
			Message:  fmt.Sprintf("%d Dog items on menu - low popularity and low profit.", menu.Summary.Dogs),
			Action:   "trim_menu",
			Priority: "medium",
		})
	}
	return risks
}

func buildOpportunities(menu MenuEngineering, revenue RevenueForecast, res ReservationInsights) []Recommendation {
	opps := []Recommendation{}
	if n := menu.Summary.Puzzles; n > 0 {
		opps = append(opps, Recommendation{
			Message:  fmt.Sprintf("%d Puzzle items carry high margins but sell slowly - promote them into Stars.", n),
			Action:   "promote",
			Priority: "high",
		})
	}
	if lost := res.RevenueImpact.EstimatedRevenueLost; lost > 0 {
		opps = append(opps, Recommendation{
			Message:  fmt.Sprintf("~KES %d lost to no-shows - deposits could recover most of it.", lost/100),
			Action:   "require_deposit",
			Priority: "high",
		})
	}
	if g := revenue.Trends.WeekOverWeekGrowth; g > 10 {
		opps = append(opps, Recommendation{
			Message:  fmt.Sprintf("%.1f%% week-over-week growth - make sure inventory and staffing scale with it.", g),
			Action:   "scale_up",
			Priority: "medium",
		})
	}
	return opps
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
