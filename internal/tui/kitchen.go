package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"chakula/internal/kitchen"
	"chakula/internal/models"
)

var laneOrder = []models.OrderStatus{
	models.OrderStatusPending,
	models.OrderStatusPrep,
	models.OrderStatusReady,
}

var laneNames = map[models.OrderStatus]string{
	models.OrderStatusPending: "NEW",
	models.OrderStatusPrep:    "PREPARING",
	models.OrderStatusReady:   "READY",
}

func (m Model) updateKitchen(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.currentView = viewMain
		return m, nil
	case "left", "h":
		if m.laneCursor > 0 {
			m.laneCursor--
			m.cardCursor = 0
		}
	case "right", "l":
		if m.laneCursor < len(laneOrder)-1 {
			m.laneCursor++
			m.cardCursor = 0
		}
	case "up", "k":
		if m.cardCursor > 0 {
			m.cardCursor--
		}
	case "down", "j":
		if m.cardCursor < len(m.selectedLane())-1 {
			m.cardCursor++
		}
	case "r":
		m.loading = true
		return m, loadActiveOrdersCmd(m.api, false)
	case "enter", "a":
		if order, ok := m.selectedOrder(); ok {
			m.loading = true
			m.errMsg = ""
			return m, advanceOrderCmd(m.api, order)
		}
	}
	return m, nil
}

func (m Model) selectedLane() []models.Order {
	return m.board.Lane(laneOrder[m.laneCursor])
}

func (m Model) selectedOrder() (models.Order, bool) {
	lane := m.selectedLane()
	if m.cardCursor >= len(lane) {
		return models.Order{}, false
	}
	return lane[m.cardCursor], true
}

// clampKitchenCursor keeps the selection valid after a refresh shrinks
// a lane.
func (m *Model) clampKitchenCursor() {
	if lane := m.selectedLane(); m.cardCursor >= len(lane) {
		m.cardCursor = len(lane) - 1
		if m.cardCursor < 0 {
			m.cardCursor = 0
		}
	}
}

func (m Model) viewKitchen() string {
	var b strings.Builder
	b.WriteString(m.banner("Kitchen Board"))

	now := time.Now()
	lanes := make([]string, 0, len(laneOrder))
	for li, status := range laneOrder {
		var lane strings.Builder
		lane.WriteString(laneTitleStyle.Render(fmt.Sprintf("%s (%d)", laneNames[status], len(m.board.Lane(status)))) + "\n")
		for ci, order := range m.board.Lane(status) {
			card := m.renderCard(order, now)
			if li == m.laneCursor && ci == m.cardCursor {
				card = selectedStyle.Render(card)
			}
			lane.WriteString(card + "\n")
		}
		lanes = append(lanes, laneStyle.Render(lane.String()))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, lanes...))
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("←/→: lane • ↑/↓: order • enter: advance • r: refresh • esc: back"))
	return docStyle.Render(b.String())
}

func (m Model) renderCard(order models.Order, now time.Time) string {
	head := fmt.Sprintf("#%d", order.ID)
	if order.TableNumber != nil {
		head += fmt.Sprintf(" T%d", *order.TableNumber)
	}
	head += " · " + kitchenAge(order, now)

	lines := []string{head}
	for _, item := range order.Items {
		lines = append(lines, fmt.Sprintf("  %dx %s", item.Quantity, item.ItemName))
	}
	return strings.Join(lines, "\n")
}

// kitchenAge colors an order's age once it has waited too long.
func kitchenAge(order models.Order, now time.Time) string {
	age := kitchen.Age(order, now)
	switch d := now.Sub(order.CreatedAt); {
	case d > 30*time.Minute:
		return badStyle.Render(age)
	case d > 15*time.Minute:
		return warnStyle.Render(age)
	default:
		return age
	}
}
