package analytics

import (
	"fmt"
	"time"

	"chakula/internal/models"
)

// KitchenThroughput summarizes how the kitchen keeps up with orders.
type KitchenThroughput struct {
	OrdersServed      int     `json:"orders_served"`
	AvgFulfillMinutes float64 `json:"avg_fulfill_minutes"`
	CompletionRate    float64 `json:"completion_rate"`
	ActiveOrders      int     `json:"active_orders"`
	PeakHour          int     `json:"peak_hour"`
}

// KitchenStats is the /ai/kds-intelligence payload.
type KitchenStats struct {
	Throughput      KitchenThroughput `json:"throughput"`
	OrdersByHour    map[int]int       `json:"orders_by_hour"`
	Recommendations []Recommendation  `json:"recommendations"`
}

// AnalyzeKitchen measures fulfillment time (created to completed) and
// completion rate over the last 30 days of orders.
func AnalyzeKitchen(orders []models.Order, now time.Time) KitchenStats {
	cutoff := now.AddDate(0, 0, -30)

	throughput := KitchenThroughput{}
	byHour := make(map[int]int)
	var fulfillMinutes float64
	var cancelled int

	for _, o := range orders {
		if o.CreatedAt.Before(cutoff) {
			continue
		}
		byHour[o.CreatedAt.Hour()]++
		switch o.Status {
		case models.OrderStatusServed:
			throughput.OrdersServed++
			if o.CompletedAt != nil {
				fulfillMinutes += o.CompletedAt.Sub(o.CreatedAt).Minutes()
			}
		case models.OrderStatusCancelled:
			cancelled++
		default:
			throughput.ActiveOrders++
		}
	}

	if throughput.OrdersServed > 0 {
		throughput.AvgFulfillMinutes = round1(fulfillMinutes / float64(throughput.OrdersServed))
	}
	if decided := throughput.OrdersServed + cancelled; decided > 0 {
		throughput.CompletionRate = round1(float64(throughput.OrdersServed) / float64(decided) * 100)
	}
	var peakCount int
	for h, n := range byHour {
		if n > peakCount {
			peakCount = n
			throughput.PeakHour = h
		}
	}

	recs := []Recommendation{}
	if throughput.AvgFulfillMinutes > 25 {
		recs = append(recs, Recommendation{
			Message:  fmt.Sprintf("Average fulfillment is %.0f minutes - over the 25 minute target. Check prep of the slowest station around %02d:00.", throughput.AvgFulfillMinutes, throughput.PeakHour),
			Action:   "review_staffing",
			Priority: "high",
		})
	}
	if throughput.ActiveOrders > 10 {
		recs = append(recs, Recommendation{
			Message:  fmt.Sprintf("%d orders are in flight right now. Consider pausing aggregator channels until the board clears.", throughput.ActiveOrders),
			Action:   "throttle_intake",
			Priority: "medium",
		})
	}

	return KitchenStats{Throughput: throughput, OrdersByHour: byHour, Recommendations: recs}
}
