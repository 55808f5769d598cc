package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"chakula/internal/analytics"
	"chakula/internal/client"
	"chakula/internal/models"
)

const (
	promptReceive         = "receive"
	promptReceiveCost     = "receive-cost"
	promptReceiveSupplier = "receive-supplier"
	promptAdjust          = "adjust"
	promptAdjustReason    = "adjust-reason"
	promptItemName        = "item-name"
	promptItemPrice       = "item-price"
	promptItemCategory    = "item-category"
	promptPhone           = "phone"
	promptNotes           = "notes"
)

// The read-mostly pages share one key handler for navigation and
// refresh. Menu and inventory additionally take row-level writes, each
// of which ends in a full re-fetch of the collection.
func (m Model) updatePages(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.promptMode != "" {
		return m.updatePrompt(msg)
	}

	switch msg.String() {
	case "esc", "q":
		m.currentView = viewMain
		return m, nil
	case "r":
		return m.openView(m.currentView)
	case "up", "k":
		if m.pageCursor > 0 {
			m.pageCursor--
		}
		return m, nil
	case "down", "j":
		m.pageCursor++
		switch m.currentView {
		case viewMenu:
			m.clampPageCursor(len(m.menu))
		case viewInventory:
			m.clampPageCursor(len(m.inventory))
		case viewOrders:
			m.clampPageCursor(len(m.orders))
		}
		return m, nil
	}

	switch m.currentView {
	case viewOrders:
		if msg.String() == "x" && m.pageCursor < len(m.orders) {
			order := m.orders[m.pageCursor]
			if !order.Active() {
				m.errMsg = "order is already settled"
				return m, nil
			}
			m.loading = true
			m.errMsg = ""
			return m, cancelOrderCmd(m.api, order)
		}
	case viewMenu:
		switch msg.String() {
		case "a":
			if m.pageCursor < len(m.menu) {
				m.loading = true
				return m, toggleMenuItemCmd(m.api, m.menu[m.pageCursor])
			}
		case "n":
			m.draft = client.MenuItemInput{}
			m.startPrompt(promptItemName, "item name")
			return m, nil
		}
	case viewInventory:
		if m.pageCursor >= len(m.inventory) {
			return m, nil
		}
		switch msg.String() {
		case "g":
			m.startPrompt(promptReceive, "quantity received")
			return m, nil
		case "a":
			m.startPrompt(promptAdjust, "adjustment, e.g. -2.5")
			return m, nil
		}
	}
	return m, nil
}

func (m *Model) clampPageCursor(rows int) {
	if m.pageCursor >= rows {
		m.pageCursor = rows - 1
	}
	if m.pageCursor < 0 {
		m.pageCursor = 0
	}
}

func (m *Model) startPrompt(mode, placeholder string) {
	m.promptMode = mode
	m.promptInput.Placeholder = placeholder
	m.promptInput.SetValue("")
	m.promptInput.Focus()
	m.errMsg = ""
	m.status = ""
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.promptMode = ""
		m.promptInput.Blur()
		return m, nil
	case "enter":
		value := strings.TrimSpace(m.promptInput.Value())
		mode := m.promptMode
		m.promptMode = ""
		m.promptInput.Blur()
		return m.submitPrompt(mode, value)
	}
	var cmd tea.Cmd
	m.promptInput, cmd = m.promptInput.Update(msg)
	return m, cmd
}

func (m Model) submitPrompt(mode, value string) (tea.Model, tea.Cmd) {
	switch mode {
	case promptReceive:
		qty, err := strconv.ParseFloat(value, 64)
		if err != nil || qty <= 0 {
			m.errMsg = "received quantity must be a positive number"
			return m, nil
		}
		m.stockQty = qty
		m.startPrompt(promptReceiveCost, "cost per unit in cents, blank to skip")
		return m, nil

	case promptReceiveCost:
		m.stockCost = 0
		if value != "" {
			cost, err := strconv.ParseFloat(value, 64)
			if err != nil || cost < 0 {
				m.errMsg = "cost must be a non-negative number"
				m.startPrompt(promptReceiveCost, "cost per unit in cents, blank to skip")
				return m, nil
			}
			m.stockCost = cost
		}
		m.startPrompt(promptReceiveSupplier, "supplier, blank to skip")
		return m, nil

	case promptReceiveSupplier:
		m.loading = true
		return m, receiveStockCmd(m.api, m.inventory[m.pageCursor].ID, m.stockQty, m.stockCost, value)

	case promptAdjust:
		qty, err := strconv.ParseFloat(value, 64)
		if err != nil || qty == 0 {
			m.errMsg = "adjustment must be a signed non-zero number"
			return m, nil
		}
		m.stockQty = qty
		m.startPrompt(promptAdjustReason, "reason, e.g. spoilage")
		return m, nil

	case promptAdjustReason:
		if value == "" {
			value = "count correction"
		}
		m.loading = true
		return m, adjustStockCmd(m.api, m.inventory[m.pageCursor].ID, m.stockQty, value)

	case promptPhone:
		m.posPhone = value
		return m, nil

	case promptNotes:
		m.posNotes = value
		return m, nil

	case promptItemName:
		if value == "" {
			m.errMsg = "item name is required"
			return m, nil
		}
		m.draft.Name = value
		m.startPrompt(promptItemPrice, "price in cents, e.g. 55000")
		return m, nil

	case promptItemPrice:
		cents, err := strconv.Atoi(value)
		if err != nil || cents <= 0 {
			m.errMsg = "price must be a positive integer in cents"
			m.startPrompt(promptItemPrice, "price in cents, e.g. 55000")
			return m, nil
		}
		m.draft.Price = cents
		m.startPrompt(promptItemCategory, "category, e.g. mains")
		return m, nil

	case promptItemCategory:
		if value == "" {
			m.errMsg = "category is required"
			m.startPrompt(promptItemCategory, "category, e.g. mains")
			return m, nil
		}
		m.draft.Category = value
		m.loading = true
		return m, createMenuItemCmd(m.api, m.draft)
	}
	return m, nil
}

// promptLine renders the active prompt under the page body.
func (m Model) promptLine() string {
	if m.promptMode == "" {
		return ""
	}
	label := map[string]string{
		promptReceive:         "Receive stock",
		promptReceiveCost:     "Unit cost",
		promptReceiveSupplier: "Supplier",
		promptAdjust:          "Adjust stock",
		promptAdjustReason:    "Reason",
		promptItemName:        "New item",
		promptItemPrice:       "Price",
		promptItemCategory:    "Category",
		promptPhone:           "Customer phone",
		promptNotes:           "Order notes",
	}[m.promptMode]
	return "\n" + laneTitleStyle.Render(label) + " " + m.promptInput.View() + "\n" +
		hintStyle.Render("enter: confirm • esc: cancel")
}

func (m Model) viewPages() string {
	switch m.currentView {
	case viewOrders:
		return m.viewOrders()
	case viewSales:
		return m.viewSales()
	case viewInventory:
		return m.viewInventory()
	case viewMenu:
		return m.viewMenuPage()
	case viewReservations:
		return m.viewReservations()
	case viewInsights:
		return m.viewInsights()
	}
	return docStyle.Render(m.banner("Chakula"))
}

func (m Model) viewOrders() string {
	var b strings.Builder
	b.WriteString(m.banner("Order History"))
	b.WriteString(fmt.Sprintf("  %-6s %-10s %-9s %-7s %10s  %s\n", "ID", "STATUS", "TYPE", "TABLE", "TOTAL", "PLACED"))
	for i, o := range m.orders {
		table := "-"
		if o.TableNumber != nil {
			table = fmt.Sprintf("T%d", *o.TableNumber)
		}
		line := fmt.Sprintf("%-6d %-10s %-9s %-7s %10s  %s",
			o.ID, o.Status, o.OrderType, table, KES(o.Total), o.CreatedAt.Format("Jan 2 15:04"))
		if o.Status == models.OrderStatusCancelled {
			line = hintStyle.Render(line)
		}
		marker := "  "
		if i == m.pageCursor {
			marker = "> "
		}
		b.WriteString(marker + line + "\n")
	}
	if len(m.orders) == 0 {
		b.WriteString(hintStyle.Render("no orders yet") + "\n")
	}
	b.WriteString("\n" + hintStyle.Render("x: cancel order • r: refresh • esc: back"))
	return docStyle.Render(b.String())
}

func (m Model) viewSales() string {
	var b strings.Builder
	b.WriteString(m.banner("Sales"))
	if m.sales == nil {
		b.WriteString(hintStyle.Render("loading revenue data...") + "\n")
		return docStyle.Render(b.String())
	}

	t := m.sales.Trends
	b.WriteString(fmt.Sprintf("Last 30 days: %s across %d orders (avg check %s)\n",
		KES(t.TotalRevenue), t.TotalOrders, KES(t.AvgOrderValue)))
	growth := fmt.Sprintf("%+.1f%% week over week", t.WeekOverWeekGrowth)
	if t.WeekOverWeekGrowth >= 0 {
		growth = goodStyle.Render(growth)
	} else {
		growth = badStyle.Render(growth)
	}
	b.WriteString(growth)
	if t.PeakDay != "" {
		b.WriteString(hintStyle.Render("  peak day " + t.PeakDay))
	}
	b.WriteString("\n\n")

	if len(m.sales.DailyRevenue) > 0 {
		b.WriteString(laneTitleStyle.Render("Recent days") + "\n")
		days := m.sales.DailyRevenue
		if len(days) > 7 {
			days = days[len(days)-7:]
		}
		for _, d := range days {
			b.WriteString(fmt.Sprintf("  %-12s %10s  %3d orders\n", d.Date, KES(d.Revenue), d.Orders))
		}
		b.WriteString("\n")
	}

	if len(m.sales.Forecast) > 0 {
		b.WriteString(laneTitleStyle.Render("Next 7 days") + "\n")
		for _, f := range m.sales.Forecast {
			b.WriteString(fmt.Sprintf("  %-12s %-10s %10s\n", f.Date, f.Day, KES(f.Projected)))
		}
	}

	b.WriteString("\n" + hintStyle.Render("r: refresh • esc: back"))
	return docStyle.Render(b.String())
}

func (m Model) viewInventory() string {
	var b strings.Builder
	b.WriteString(m.banner("Inventory"))
	b.WriteString(fmt.Sprintf("  %-24s %10s %-7s %-12s %-14s %s\n", "ITEM", "QTY", "UNIT", "STATUS", "RUNS OUT", "MENU IMPACT"))
	for i, item := range m.inventory {
		status := goodStyle.Render("ok")
		switch {
		case item.OutOfStock():
			status = badStyle.Render("out")
		case item.LowStock():
			status = warnStyle.Render("low")
		}
		marker := "  "
		name := fmt.Sprintf("%-24s", item.ItemName)
		if i == m.pageCursor {
			marker = "> "
			name = selectedStyle.Render(name)
		}
		b.WriteString(fmt.Sprintf("%s%s %10.1f %-7s %-12s %-14s %s\n",
			marker, name, item.Quantity, item.Unit, status, m.stockoutDate(item), m.menuImpact(item)))
	}
	if len(m.inventory) == 0 {
		b.WriteString(hintStyle.Render("no inventory items") + "\n")
	}
	b.WriteString(m.promptLine())
	b.WriteString("\n" + hintStyle.Render("g: receive • a: adjust • r: refresh • esc: back"))
	return docStyle.Render(b.String())
}

// stockoutDate joins the row to its prediction by case-insensitive name
// equality. A missing or unmatched prediction leaves the cell blank.
func (m Model) stockoutDate(item models.InventoryItem) string {
	if m.predictions == nil {
		return ""
	}
	for _, p := range m.predictions.Predictions {
		if !strings.EqualFold(p.Name, item.ItemName) {
			continue
		}
		if p.DepletionDate == "" {
			return ""
		}
		if p.DaysUntilDepletion <= 5 {
			return warnStyle.Render(p.DepletionDate)
		}
		return p.DepletionDate
	}
	return ""
}

// menuImpact names menu items that mention the ingredient. The join is
// by case-insensitive name since there is no recipe table.
func (m Model) menuImpact(item models.InventoryItem) string {
	if !item.OutOfStock() && !item.LowStock() {
		return ""
	}
	var hits []string
	for _, mi := range m.menu {
		if strings.Contains(strings.ToLower(mi.Name), strings.ToLower(item.ItemName)) {
			hits = append(hits, mi.Name)
		}
	}
	if len(hits) == 0 {
		return ""
	}
	return "affects " + strings.Join(hits, ", ")
}

func (m Model) viewMenuPage() string {
	var b strings.Builder
	b.WriteString(m.banner("Menu"))
	b.WriteString(fmt.Sprintf("  %-28s %-14s %10s %10s  %s\n", "ITEM", "CATEGORY", "PRICE", "MARGIN", "AVAILABLE"))
	for i, item := range m.menu {
		avail := goodStyle.Render("yes")
		if !item.IsAvailable {
			avail = badStyle.Render("no")
		}
		marker := "  "
		name := fmt.Sprintf("%-28s", item.Name)
		if i == m.pageCursor {
			marker = "> "
			name = selectedStyle.Render(name)
		}
		b.WriteString(fmt.Sprintf("%s%s %-14s %10s %10s  %s\n",
			marker, name, item.Category, KES(item.Price), KES(item.Margin()), avail))
	}
	if len(m.menu) == 0 {
		b.WriteString(hintStyle.Render("no menu items") + "\n")
	}
	b.WriteString(m.promptLine())
	b.WriteString("\n" + hintStyle.Render("a: toggle availability • n: new item • r: refresh • esc: back"))
	return docStyle.Render(b.String())
}

func (m Model) viewReservations() string {
	var b strings.Builder
	b.WriteString(m.banner("Reservations"))
	b.WriteString(fmt.Sprintf("%-20s %-12s %-6s %-6s %-10s %s\n", "NAME", "DATE", "TIME", "PARTY", "STATUS", "DEPOSIT"))
	for _, r := range m.reservations {
		deposit := "-"
		if r.DepositPaid {
			deposit = "paid"
		}
		line := fmt.Sprintf("%-20s %-12s %-6s %-6d %-10s %s",
			r.CustomerName, r.ReservationDate.Format("2006-01-02"), r.ReservationTime,
			r.PartySize, r.Status, deposit)
		if r.Status == models.ReservationNoShow {
			line = badStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	if len(m.reservations) == 0 {
		b.WriteString(hintStyle.Render("no reservations") + "\n")
	}
	b.WriteString("\n" + hintStyle.Render("r: refresh • esc: back"))
	return docStyle.Render(b.String())
}

func (m Model) viewInsights() string {
	var b strings.Builder
	b.WriteString(m.banner("Insights"))
	if m.dashboard == nil {
		b.WriteString(hintStyle.Render("loading analytics...") + "\n")
		return docStyle.Render(b.String())
	}

	d := m.dashboard
	score := fmt.Sprintf("Health score: %d/100", d.HealthScore)
	switch {
	case d.HealthScore >= 70:
		score = goodStyle.Render(score)
	case d.HealthScore >= 40:
		score = warnStyle.Render(score)
	default:
		score = badStyle.Render(score)
	}
	b.WriteString(score + "\n\n")

	for _, h := range d.HealthBreakdown {
		b.WriteString(fmt.Sprintf("  %-14s %3d  %s\n", h.Category, h.Score, hintStyle.Render(h.Detail)))
	}

	q := d.QuickStats
	b.WriteString(fmt.Sprintf("\nToday: %d orders, %s", q.TodayOrders, KES(q.TodayRevenue)))
	if q.YesterdayRevenue > 0 {
		b.WriteString(fmt.Sprintf(" (%+.1f%% vs yesterday)", q.DayOverDayChange))
	}
	b.WriteString("\n\n")

	if len(d.Alerts) > 0 {
		b.WriteString(laneTitleStyle.Render("Alerts") + "\n")
		for _, a := range d.Alerts {
			b.WriteString("  " + warnStyle.Render("!") + " " + analytics.FriendlyText(a.Message) + "\n")
		}
		b.WriteString("\n")
	}
	if len(d.Opportunities) > 0 {
		b.WriteString(laneTitleStyle.Render("Opportunities") + "\n")
		for _, o := range d.Opportunities {
			b.WriteString("  " + goodStyle.Render("+") + " " + analytics.FriendlyText(o.Message) + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(m.menuEngineeringPanel())
	b.WriteString(m.reservationsPanel())
	b.WriteString(m.kitchenPanel())

	b.WriteString("\n" + hintStyle.Render(fmt.Sprintf("as of %s • r: refresh • esc: back", time.Now().Format("15:04"))))
	return docStyle.Render(b.String())
}

// menuEngineeringPanel shows each dish's classification in plain
// language rather than the Star/Plowhorse/Puzzle/Dog jargon.
func (m Model) menuEngineeringPanel() string {
	if m.menuEng == nil || len(m.menuEng.Matrix) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(laneTitleStyle.Render("Menu breakdown") + "\n")
	for _, stat := range m.menuEng.Matrix {
		label := analytics.FriendlyLabel(stat.Classification)
		switch stat.Classification {
		case analytics.ClassStar:
			label = goodStyle.Render(label)
		case analytics.ClassDog:
			label = badStyle.Render(label)
		}
		b.WriteString(fmt.Sprintf("  %-28s %-14s %3d sold  %s margin\n",
			stat.Name, label, stat.QtySold, KES(stat.Margin)))
	}
	for _, rec := range m.menuEng.Recommendations {
		b.WriteString("  " + hintStyle.Render(analytics.FriendlyText(rec.Message)) + "\n")
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) reservationsPanel() string {
	if m.resInsights == nil || m.resInsights.NoShowAnalysis.TotalReservations == 0 {
		return ""
	}
	a := m.resInsights.NoShowAnalysis
	var b strings.Builder
	b.WriteString(laneTitleStyle.Render("Reservations, last 30 days") + "\n")
	b.WriteString(fmt.Sprintf("  %d bookings, %.0f%% completed, %.0f%% no-show\n",
		a.TotalReservations, a.CompletionRate, a.NoShowRate))
	if lost := m.resInsights.RevenueImpact.EstimatedRevenueLost; lost > 0 {
		b.WriteString("  " + warnStyle.Render(fmt.Sprintf("est. %s lost to no-shows", KES(lost))) + "\n")
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) kitchenPanel() string {
	if m.kitchenStats == nil || m.kitchenStats.Throughput.OrdersServed == 0 {
		return ""
	}
	tp := m.kitchenStats.Throughput
	var b strings.Builder
	b.WriteString(laneTitleStyle.Render("Kitchen, last 30 days") + "\n")
	b.WriteString(fmt.Sprintf("  %d orders served, %.0f min average, %.0f%% completion, peak hour %02d:00\n",
		tp.OrdersServed, tp.AvgFulfillMinutes, tp.CompletionRate, tp.PeakHour))
	b.WriteString("\n")
	return b.String()
}
