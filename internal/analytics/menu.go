package analytics

import (
	"fmt"
	"sort"
	"time"

	"chakula/internal/models"
)

// Menu engineering classifications. The dashboard rewrites these into
// friendlier language before showing them to operators.
const (
	ClassStar      = "Star"      // popular and profitable
	ClassPlowhorse = "Plowhorse" // popular, thin margin
	ClassPuzzle    = "Puzzle"    // profitable, slow seller
	ClassDog       = "Dog"       // neither
)

// MenuItemStats is one row of the menu engineering matrix.
type MenuItemStats struct {
	ID             uint    `json:"id"`
	Name           string  `json:"name"`
	Category       string  `json:"category"`
	Price          int     `json:"price"`
	Margin         int     `json:"margin"`
	QtySold        int     `json:"qty_sold"`
	Revenue        int     `json:"revenue"`
	Contribution   int     `json:"contribution"`
	FoodCostPct    float64 `json:"food_cost_pct"`
	PopularityPct  float64 `json:"popularity_pct"`
	SellPerDay     float64 `json:"sell_per_day"`
	Classification string  `json:"classification"`
	Trend          string  `json:"trend"` // rising | falling | stable
	TrendPct       float64 `json:"trend_pct"`
}

// MenuSummary aggregates the matrix for the dashboard header.
type MenuSummary struct {
	TotalItems     int     `json:"total_items"`
	Stars          int     `json:"stars"`
	Plowhorses     int     `json:"plowhorses"`
	Puzzles        int     `json:"puzzles"`
	Dogs           int     `json:"dogs"`
	AvgFoodCostPct float64 `json:"avg_food_cost_pct"`
	TotalRevenue   int     `json:"total_revenue"`
}

// Recommendation is an actionable finding produced by any analytics
// module. Severity ranks critical > high > medium > info.
type Recommendation struct {
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
	Action   string `json:"action"`
	Priority string `json:"priority"`
}

// MenuEngineering is the full menu analysis payload.
type MenuEngineering struct {
	Matrix          []MenuItemStats  `json:"matrix"`
	Summary         MenuSummary      `json:"summary"`
	Recommendations []Recommendation `json:"recommendations"`
}

// AnalyzeMenu classifies every menu item by popularity versus margin,
// relative to the menu-wide averages. Cancelled orders are excluded.
// Trend compares the last 7 days' daily sell rate against days 8-30.
func AnalyzeMenu(items []models.MenuItem, orders []models.Order, now time.Time) MenuEngineering {
	if len(items) == 0 {
		return MenuEngineering{Matrix: []MenuItemStats{}, Recommendations: []Recommendation{}}
	}

	sevenDaysAgo := now.AddDate(0, 0, -7)
	thirtyDaysAgo := now.AddDate(0, 0, -30)

	qtySold := make(map[uint]int)
	revenue := make(map[uint]int)
	recentQty := make(map[uint]int)
	olderQty := make(map[uint]int)

	firstOrder := now
	for _, o := range orders {
		if o.Status == models.OrderStatusCancelled {
			continue
		}
		if o.CreatedAt.Before(firstOrder) {
			firstOrder = o.CreatedAt
		}
		for _, it := range o.Items {
			qtySold[it.MenuItemID] += it.Quantity
			revenue[it.MenuItemID] += it.Subtotal()
			if o.CreatedAt.After(sevenDaysAgo) {
				recentQty[it.MenuItemID] += it.Quantity
			} else if o.CreatedAt.After(thirtyDaysAgo) {
				olderQty[it.MenuItemID] += it.Quantity
			}
		}
	}

	totalQty := 0
	for _, q := range qtySold {
		totalQty += q
	}
	avgPopularity := float64(totalQty) / float64(len(items))

	totalMargin := 0
	for i := range items {
		totalMargin += items[i].Margin()
	}
	avgMargin := float64(totalMargin) / float64(len(items))

	totalDays := int(now.Sub(firstOrder).Hours() / 24)
	if totalDays < 1 {
		totalDays = 1
	}

	matrix := make([]MenuItemStats, 0, len(items))
	summary := MenuSummary{TotalItems: len(items)}
	var foodCostSum float64

	for i := range items {
		item := &items[i]
		qty := qtySold[item.ID]
		rev := revenue[item.ID]
		margin := item.Margin()
		price := item.Price
		if price < 1 {
			price = 1
		}
		foodCostPct := round1(float64(item.CostPrice) / float64(price) * 100)
		foodCostSum += foodCostPct

		popular := float64(qty) >= avgPopularity
		profitable := float64(margin) >= avgMargin

		var class string
		switch {
		case popular && profitable:
			class = ClassStar
			summary.Stars++
		case popular:
			class = ClassPlowhorse
			summary.Plowhorses++
		case profitable:
			class = ClassPuzzle
			summary.Puzzles++
		default:
			class = ClassDog
			summary.Dogs++
		}

		trend, trendPct := itemTrend(recentQty[item.ID], olderQty[item.ID])

		popDivisor := totalQty
		if popDivisor < 1 {
			popDivisor = 1
		}
		matrix = append(matrix, MenuItemStats{
			ID:             item.ID,
			Name:           item.Name,
			Category:       item.Category,
			Price:          item.Price,
			Margin:         margin,
			QtySold:        qty,
			Revenue:        rev,
			Contribution:   qty * margin,
			FoodCostPct:    foodCostPct,
			PopularityPct:  round1(float64(qty) / float64(popDivisor) * 100),
			SellPerDay:     round2(float64(qty) / float64(totalDays)),
			Classification: class,
			Trend:          trend,
			TrendPct:       trendPct,
		})
		summary.TotalRevenue += rev
	}

	sort.Slice(matrix, func(a, b int) bool { return matrix[a].Contribution > matrix[b].Contribution })
	summary.AvgFoodCostPct = round1(foodCostSum / float64(len(items)))

	return MenuEngineering{
		Matrix:          matrix,
		Summary:         summary,
		Recommendations: menuRecommendations(matrix),
	}
}

// itemTrend compares the recent 7-day daily rate against the prior
// 23-day rate. Swings under 15% are reported as stable.
func itemTrend(recent, older int) (string, float64) {
	olderDaily := float64(older) / 23
	if olderDaily <= 0 {
		return "stable", 0
	}
	recentDaily := float64(recent) / 7
	pct := round1((recentDaily - olderDaily) / olderDaily * 100)
	switch {
	case pct > 15:
		return "rising", pct
	case pct < -15:
		return "falling", pct
	}
	return "stable", pct
}

func menuRecommendations(matrix []MenuItemStats) []Recommendation {
	recs := []Recommendation{}
	for _, m := range matrix {
		switch m.Classification {
		case ClassPuzzle:
			recs = append(recs, Recommendation{
				Item:     m.Name,
				Message:  fmt.Sprintf("%s is a Puzzle item: strong margin but only %d sold. Feature it on the board or train staff to suggest it.", m.Name, m.QtySold),
				Action:   "promote",
				Priority: "high",
			})
		case ClassDog:
			recs = append(recs, Recommendation{
				Item:     m.Name,
				Message:  fmt.Sprintf("%s is a Dog item: low sales and low margin. Consider removing it or reworking the recipe.", m.Name),
				Action:   "review",
				Priority: "medium",
			})
		case ClassPlowhorse:
			if m.FoodCostPct > 40 {
				recs = append(recs, Recommendation{
					Item:     m.Name,
					Message:  fmt.Sprintf("%s is a Plowhorse item with %.1f%% food cost. A small price increase would lift margin without hurting volume much.", m.Name, m.FoodCostPct),
					Action:   "reprice",
					Priority: "medium",
				})
			}
		}
		if m.Trend == "falling" && m.Classification == ClassStar {
			recs = append(recs, Recommendation{
				Item:     m.Name,
				Message:  fmt.Sprintf("%s is a Star item but sales dropped %.1f%% this week. Check quality and availability.", m.Name, -m.TrendPct),
				Action:   "investigate",
				Priority: "high",
			})
		}
	}
	return recs
}

func round1(f float64) float64 { return float64(int(f*10+0.5*sign(f))) / 10 }
func round2(f float64) float64 { return float64(int(f*100+0.5*sign(f))) / 100 }

func sign(f float64) float64 {
	if f < 0 {
		return -1
	}
	return 1
}
