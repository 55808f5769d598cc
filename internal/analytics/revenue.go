package analytics

import (
	"sort"
	"time"

	"chakula/internal/models"
)

// DailyRevenue is one point of the 30-day revenue series.
type DailyRevenue struct {
	Date     string `json:"date"`
	Revenue  int    `json:"revenue"`
	Orders   int    `json:"orders"`
	AvgCheck int    `json:"avg_check"`
}

// DayOfWeekStat averages performance per weekday across the window.
type DayOfWeekStat struct {
	Day        string  `json:"day"`
	AvgRevenue int     `json:"avg_revenue"`
	AvgOrders  float64 `json:"avg_orders"`
}

// ForecastDay is a projected day of revenue, derived from the
// day-of-week averages. It is a naive seasonal projection, not ML.
type ForecastDay struct {
	Date      string `json:"date"`
	Day       string `json:"day"`
	Projected int    `json:"projected_revenue"`
}

// RevenueTrends summarizes the window for the dashboard.
type RevenueTrends struct {
	TotalRevenue       int     `json:"total_revenue"`
	TotalOrders        int     `json:"total_orders"`
	AvgOrderValue      int     `json:"avg_order_value"`
	MedianCheck        int     `json:"median_check"`
	WeekOverWeekGrowth float64 `json:"week_over_week_growth"`
	PeakDay            string  `json:"peak_day"`
}

// RevenueForecast is the /ai/revenue-forecast payload.
type RevenueForecast struct {
	DailyRevenue []DailyRevenue  `json:"daily_revenue"`
	ByDayOfWeek  []DayOfWeekStat `json:"by_day_of_week"`
	ByOrderType  map[string]int  `json:"by_order_type"`
	Trends       RevenueTrends   `json:"trends"`
	Forecast     []ForecastDay   `json:"forecast"`
}

// ForecastRevenue builds the revenue series and a 7-day projection from
// the given orders. Cancelled orders never count toward revenue.
func ForecastRevenue(orders []models.Order, now time.Time) RevenueForecast {
	cutoff := now.AddDate(0, 0, -30)

	dailyRev := make(map[string]int)
	dailyOrders := make(map[string]int)
	dowRev := make(map[time.Weekday]int)
	dowOrders := make(map[time.Weekday]int)
	dowDays := make(map[time.Weekday]map[string]bool)
	byType := make(map[string]int)
	var checks []int

	trends := RevenueTrends{}
	var thisWeek, lastWeek int

	for _, o := range orders {
		if o.Status == models.OrderStatusCancelled || o.CreatedAt.Before(cutoff) {
			continue
		}
		day := o.CreatedAt.Format("2006-01-02")
		dailyRev[day] += o.Total
		dailyOrders[day]++

		dow := o.CreatedAt.Weekday()
		dowRev[dow] += o.Total
		dowOrders[dow]++
		if dowDays[dow] == nil {
			dowDays[dow] = make(map[string]bool)
		}
		dowDays[dow][day] = true

		byType[string(o.OrderType)] += o.Total
		checks = append(checks, o.Total)

		trends.TotalRevenue += o.Total
		trends.TotalOrders++
		switch {
		case o.CreatedAt.After(now.AddDate(0, 0, -7)):
			thisWeek += o.Total
		case o.CreatedAt.After(now.AddDate(0, 0, -14)):
			lastWeek += o.Total
		}
	}

	series := make([]DailyRevenue, 0, len(dailyRev))
	for day, rev := range dailyRev {
		n := dailyOrders[day]
		series = append(series, DailyRevenue{Date: day, Revenue: rev, Orders: n, AvgCheck: rev / maxInt(n, 1)})
	}
	sort.Slice(series, func(a, b int) bool { return series[a].Date < series[b].Date })

	byDow := make([]DayOfWeekStat, 0, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		sampled := len(dowDays[d])
		if sampled == 0 {
			continue
		}
		byDow = append(byDow, DayOfWeekStat{
			Day:        d.String(),
			AvgRevenue: dowRev[d] / sampled,
			AvgOrders:  round1(float64(dowOrders[d]) / float64(sampled)),
		})
	}

	if trends.TotalOrders > 0 {
		trends.AvgOrderValue = trends.TotalRevenue / trends.TotalOrders
		sort.Ints(checks)
		trends.MedianCheck = checks[len(checks)/2]
	}
	if lastWeek > 0 {
		trends.WeekOverWeekGrowth = round1(float64(thisWeek-lastWeek) / float64(lastWeek) * 100)
	}
	var peakRev int
	for d := time.Sunday; d <= time.Saturday; d++ {
		if sampled := len(dowDays[d]); sampled > 0 && dowRev[d]/sampled > peakRev {
			peakRev = dowRev[d] / sampled
			trends.PeakDay = d.String()
		}
	}

	forecast := make([]ForecastDay, 0, 7)
	for i := 1; i <= 7; i++ {
		date := now.AddDate(0, 0, i)
		dow := date.Weekday()
		projected := 0
		if sampled := len(dowDays[dow]); sampled > 0 {
			projected = dowRev[dow] / sampled
		} else if trends.TotalOrders > 0 && len(dailyRev) > 0 {
			projected = trends.TotalRevenue / len(dailyRev)
		}
		forecast = append(forecast, ForecastDay{
			Date:      date.Format("2006-01-02"),
			Day:       dow.String(),
			Projected: projected,
		})
	}

	return RevenueForecast{
		DailyRevenue: series,
		ByDayOfWeek:  byDow,
		ByOrderType:  byType,
		Trends:       trends,
		Forecast:     forecast,
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
