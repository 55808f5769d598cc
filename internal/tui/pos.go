package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"chakula/internal/client"
	"chakula/internal/models"
	"chakula/internal/pos"
)

func submitOrderCmd(api *client.Client, cart *pos.Cart, input client.OrderInput) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := apiCtx()
		defer cancel()
		order, err := cart.Submit(ctx, api, input)
		if err != nil {
			return apiErrorMsg{err: err}
		}
		return orderPlacedMsg{order: order}
	}
}

func (m Model) updatePOS(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.promptMode != "" {
		return m.updatePrompt(msg)
	}
	available := m.availableMenu()

	switch msg.String() {
	case "esc", "q":
		m.currentView = viewMain
		return m, nil
	case "up", "k":
		if m.posCursor > 0 {
			m.posCursor--
		}
	case "down", "j":
		if m.posCursor < len(available)-1 {
			m.posCursor++
		}
	case "enter", "+", "l", "right":
		if m.posCursor < len(available) {
			m.cart.Add(available[m.posCursor].ID)
			m.status = ""
		}
	case "-", "h", "left":
		if m.posCursor < len(available) {
			m.cart.Remove(available[m.posCursor].ID)
		}
	case "t":
		m.orderType = nextOrderType(m.orderType)
	case "p":
		m.payMethod = nextPaymentMethod(m.payMethod)
	case "d":
		if m.orderType == models.OrderTypeDelivery {
			m.channel = nextChannel(m.channel)
		}
	case "f":
		if m.orderType != models.OrderTypeDineIn {
			m.startPrompt(promptPhone, "customer phone, e.g. 0712 345678")
		}
	case "n":
		m.startPrompt(promptNotes, "kitchen notes, e.g. no onions")
	case "]":
		m.tableNum++
	case "[":
		if m.tableNum > 1 {
			m.tableNum--
		}
	case "c":
		m.cart.Clear()
		m.posPhone = ""
		m.posNotes = ""
		m.status = ""
	case "s":
		if m.loading {
			return m, nil
		}
		if m.cart.Empty() {
			m.errMsg = "cart is empty"
			return m, nil
		}
		input := client.OrderInput{
			OrderType:     string(m.orderType),
			PaymentMethod: m.payMethod,
			Notes:         m.posNotes,
		}
		switch m.orderType {
		case models.OrderTypeDineIn:
			table := m.tableNum
			input.TableNumber = &table
		case models.OrderTypeDelivery:
			input.DeliveryChannel = string(m.channel)
			input.CustomerPhone = m.posPhone
		default:
			input.CustomerPhone = m.posPhone
		}
		m.loading = true
		m.errMsg = ""
		return m, submitOrderCmd(m.api, m.cart, input)
	}
	return m, nil
}

// availableMenu filters to what can actually be sold right now.
func (m Model) availableMenu() []models.MenuItem {
	out := make([]models.MenuItem, 0, len(m.menu))
	for _, item := range m.menu {
		if item.IsAvailable {
			out = append(out, item)
		}
	}
	return out
}

func nextOrderType(t models.OrderType) models.OrderType {
	switch t {
	case models.OrderTypeDineIn:
		return models.OrderTypeTakeout
	case models.OrderTypeTakeout:
		return models.OrderTypeDelivery
	default:
		return models.OrderTypeDineIn
	}
}

func nextPaymentMethod(p string) string {
	switch p {
	case models.PaymentPending:
		return models.PaymentCash
	case models.PaymentCash:
		return models.PaymentMpesa
	case models.PaymentMpesa:
		return models.PaymentCard
	default:
		return models.PaymentPending
	}
}

func nextChannel(ch models.DeliveryChannel) models.DeliveryChannel {
	switch ch {
	case models.ChannelWalkIn:
		return models.ChannelUberEats
	case models.ChannelUberEats:
		return models.ChannelBoltFood
	case models.ChannelBoltFood:
		return models.ChannelGlovo
	case models.ChannelGlovo:
		return models.ChannelApp
	default:
		return models.ChannelWalkIn
	}
}

func (m Model) viewPOS() string {
	var b strings.Builder
	b.WriteString(m.banner("Point of Sale"))

	available := m.availableMenu()
	for i, item := range available {
		line := fmt.Sprintf("%-28s %10s", item.Name, KES(item.Price))
		if qty := m.cart.Quantity(item.ID); qty > 0 {
			line += fmt.Sprintf("  x%d", qty)
		}
		if i == m.posCursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	if len(available) == 0 {
		b.WriteString(hintStyle.Render("no items available") + "\n")
	}

	b.WriteString("\n")
	header := fmt.Sprintf("type: %s  pay: %s", m.orderType, m.payMethod)
	switch m.orderType {
	case models.OrderTypeDineIn:
		header += fmt.Sprintf("  table: %d", m.tableNum)
	case models.OrderTypeDelivery:
		header += fmt.Sprintf("  via: %s  phone: %s", m.channel, orDash(m.posPhone))
	default:
		header += fmt.Sprintf("  phone: %s", orDash(m.posPhone))
	}
	b.WriteString(header + "\n")
	if m.posNotes != "" {
		b.WriteString("notes: " + m.posNotes + "\n")
	}
	b.WriteString(fmt.Sprintf("subtotal: %s\n", KES(m.cart.Subtotal(m.menu))))
	b.WriteString(m.promptLine())
	b.WriteString("\n" + hintStyle.Render("enter/+: add • -: remove • t: type • p: payment • d: channel • f: phone • n: notes • [ ]: table • s: submit • c: clear • esc: back"))
	return docStyle.Render(b.String())
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
