package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"chakula/internal/analytics"
	"chakula/internal/client"
	"chakula/internal/kitchen"
	"chakula/internal/models"
)

// Every API call runs as a tea.Cmd and comes back as one of these
// messages. Errors carry the view that asked, so a background poll can
// fail silently while a user action shows the error banner.

type loggedInMsg struct{}

type menuLoadedMsg struct{ items []models.MenuItem }

type ordersLoadedMsg struct{ orders []models.Order }

type activeOrdersMsg struct {
	orders []models.Order
	silent bool
}

type orderPlacedMsg struct{ order *models.Order }

type inventoryLoadedMsg struct{ items []models.InventoryItem }

type reservationsLoadedMsg struct{ reservations []models.Reservation }

type dashboardLoadedMsg struct{ dash *analytics.OpsDashboard }

type salesLoadedMsg struct{ forecast *analytics.RevenueForecast }

type menuEngineeringLoadedMsg struct{ eng *analytics.MenuEngineering }

type reservationInsightsLoadedMsg struct{ insights *analytics.ReservationInsights }

type kitchenStatsLoadedMsg struct{ stats *analytics.KitchenStats }

type predictionsLoadedMsg struct{ preds *analytics.InventoryPredictions }

type pollTickMsg time.Time

type apiErrorMsg struct {
	err    error
	silent bool
}

const requestTimeout = 15 * time.Second

func apiCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}

func loginCmd(s sessioner, email, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := apiCtx()
		defer cancel()
		if err := s.Login(ctx, email, password); err != nil {
			return apiErrorMsg{err: err}
		}
		return loggedInMsg{}
	}
}

func registerCmd(s sessioner, req client.RegisterRequest) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := apiCtx()
		defer cancel()
		if err := s.Register(ctx, req); err != nil {
			return apiErrorMsg{err: err}
		}
		return loggedInMsg{}
	}
}

func loadMenuCmd(api *client.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := apiCtx()
		defer cancel()
		items, err := api.Menu(ctx)
		if err != nil {
			return apiErrorMsg{err: err}
		}
		return menuLoadedMsg{items: items}
	}
}

func loadOrdersCmd(api *client.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := apiCtx()
		defer cancel()
		orders, err := api.Orders(ctx)
		if err != nil {
			return apiErrorMsg{err: err}
		}
		return ordersLoadedMsg{orders: orders}
	}
}

// loadActiveOrdersCmd refreshes the kitchen board. silent marks the
// periodic poll, whose failures keep the last good board instead of
// interrupting the cooks.
func loadActiveOrdersCmd(api *client.Client, silent bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := apiCtx()
		defer cancel()
		orders, err := api.ActiveOrders(ctx)
		if err != nil {
			return apiErrorMsg{err: err, silent: silent}
		}
		return activeOrdersMsg{orders: orders, silent: silent}
	}
}

func pollCmd() tea.Cmd {
	return tea.Tick(kitchen.PollInterval, func(t time.Time) tea.Msg {
		return pollTickMsg(t)
	})
}

func advanceOrderCmd(api *client.Client, order models.Order) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := apiCtx()
		defer cancel()
		orders, err := kitchen.Advance(ctx, api, order)
		if err != nil {
			return apiErrorMsg{err: err}
		}
		return activeOrdersMsg{orders: orders}
	}
}

// cancelOrderCmd voids an order from the management side, then reloads
// the order history. The kitchen board only ever advances.
func cancelOrderCmd(api *client.Client, order models.Order) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := apiCtx()
		defer cancel()
		if _, err := api.UpdateOrderStatus(ctx, order.ID, models.OrderStatusCancelled); err != nil {
			return apiErrorMsg{err: err}
		}
		orders, err := api.Orders(ctx)
		if err != nil {
			return apiErrorMsg{err: err}
		}
		return ordersLoadedMsg{orders: orders}
	}
}

func loadInventoryCmd(api *client.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := apiCtx()
		defer cancel()
		items, err := api.Inventory(ctx)
		if err != nil {
			return apiErrorMsg{err: err}
		}
		return inventoryLoadedMsg{items: items}
	}
}

// toggleMenuItemCmd flips availability, then re-fetches the catalog so
// the page never trusts its own copy after a write.
func toggleMenuItemCmd(api *client.Client, item models.MenuItem) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := apiCtx()
		defer cancel()
		next := !item.IsAvailable
		if _, err := api.UpdateMenuItem(ctx, item.ID, client.MenuItemInput{IsAvailable: &next}); err != nil {
			return apiErrorMsg{err: err}
		}
		items, err := api.Menu(ctx)
		if err != nil {
			return apiErrorMsg{err: err}
		}
		return menuLoadedMsg{items: items}
	}
}

func createMenuItemCmd(api *client.Client, input client.MenuItemInput) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := apiCtx()
		defer cancel()
		if _, err := api.CreateMenuItem(ctx, input); err != nil {
			return apiErrorMsg{err: err}
		}
		items, err := api.Menu(ctx)
		if err != nil {
			return apiErrorMsg{err: err}
		}
		return menuLoadedMsg{items: items}
	}
}

func receiveStockCmd(api *client.Client, id uint, quantity, costPerUnit float64, supplier string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := apiCtx()
		defer cancel()
		if _, err := api.ReceiveStock(ctx, id, quantity, costPerUnit, supplier); err != nil {
			return apiErrorMsg{err: err}
		}
		items, err := api.Inventory(ctx)
		if err != nil {
			return apiErrorMsg{err: err}
		}
		return inventoryLoadedMsg{items: items}
	}
}

func adjustStockCmd(api *client.Client, id uint, quantity float64, reason string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := apiCtx()
		defer cancel()
		if _, err := api.AdjustStock(ctx, id, quantity, reason); err != nil {
			return apiErrorMsg{err: err}
		}
		items, err := api.Inventory(ctx)
		if err != nil {
			return apiErrorMsg{err: err}
		}
		return inventoryLoadedMsg{items: items}
	}
}

func loadReservationsCmd(api *client.Client, date string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := apiCtx()
		defer cancel()
		reservations, err := api.Reservations(ctx, date)
		if err != nil {
			return apiErrorMsg{err: err}
		}
		return reservationsLoadedMsg{reservations: reservations}
	}
}

func loadSalesCmd(api *client.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := apiCtx()
		defer cancel()
		forecast, err := api.RevenueForecast(ctx)
		if err != nil {
			return apiErrorMsg{err: err}
		}
		return salesLoadedMsg{forecast: forecast}
	}
}

// loadPredictionsCmd fetches the stockout predictions that annotate the
// inventory page. A failure leaves the rows unannotated.
func loadPredictionsCmd(api *client.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := apiCtx()
		defer cancel()
		preds, err := api.InventoryPredictions(ctx)
		if err != nil {
			return apiErrorMsg{err: err, silent: true}
		}
		return predictionsLoadedMsg{preds: preds}
	}
}

func loadDashboardCmd(api *client.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := apiCtx()
		defer cancel()
		dash, err := api.Dashboard(ctx)
		if err != nil {
			return apiErrorMsg{err: err}
		}
		return dashboardLoadedMsg{dash: dash}
	}
}

// The side panels on the insights page fail silently so a broken
// analytics endpoint degrades that panel only.

func loadMenuEngineeringCmd(api *client.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := apiCtx()
		defer cancel()
		eng, err := api.MenuEngineering(ctx)
		if err != nil {
			return apiErrorMsg{err: err, silent: true}
		}
		return menuEngineeringLoadedMsg{eng: eng}
	}
}

func loadReservationInsightsCmd(api *client.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := apiCtx()
		defer cancel()
		insights, err := api.ReservationInsights(ctx)
		if err != nil {
			return apiErrorMsg{err: err, silent: true}
		}
		return reservationInsightsLoadedMsg{insights: insights}
	}
}

func loadKitchenStatsCmd(api *client.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := apiCtx()
		defer cancel()
		stats, err := api.KitchenIntelligence(ctx)
		if err != nil {
			return apiErrorMsg{err: err, silent: true}
		}
		return kitchenStatsLoadedMsg{stats: stats}
	}
}
