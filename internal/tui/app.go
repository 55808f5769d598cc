// Package tui is the terminal dashboard: login, order entry, the
// kitchen board, and the management pages, all in one bubbletea app.
package tui

import (
	"context"
	"strconv"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"chakula/internal/analytics"
	"chakula/internal/client"
	"chakula/internal/kitchen"
	"chakula/internal/models"
	"chakula/internal/pos"
	"chakula/internal/session"
)

// sessioner is what the login flow needs from session.Session.
type sessioner interface {
	Login(ctx context.Context, email, password string) error
	Register(ctx context.Context, req client.RegisterRequest) error
	Logout()
	State() session.State
	Email() string
}

const (
	viewLogin        = "login"
	viewMain         = "main"
	viewPOS          = "pos"
	viewKitchen      = "kitchen"
	viewOrders       = "orders"
	viewSales        = "sales"
	viewInventory    = "inventory"
	viewMenu         = "menu"
	viewReservations = "reservations"
	viewInsights     = "insights"
)

// Model is the whole application state.
type Model struct {
	api     *client.Client
	session sessioner

	currentView string
	width       int
	height      int
	loading     bool
	errMsg      string
	status      string

	// login form
	emailInput    textinput.Model
	passwordInput textinput.Model
	orgInput      textinput.Model
	loginFocus    int
	registering   bool

	// main nav
	mainMenu list.Model

	// data
	menu         []models.MenuItem
	orders       []models.Order
	board        kitchen.Board
	inventory    []models.InventoryItem
	predictions  *analytics.InventoryPredictions
	reservations []models.Reservation
	sales        *analytics.RevenueForecast
	dashboard    *analytics.OpsDashboard
	menuEng      *analytics.MenuEngineering
	resInsights  *analytics.ReservationInsights
	kitchenStats *analytics.KitchenStats

	// pos
	cart      *pos.Cart
	posCursor int
	orderType models.OrderType
	tableNum  int
	payMethod string
	channel   models.DeliveryChannel
	posPhone  string
	posNotes  string

	// kitchen
	laneCursor int
	cardCursor int
	polling    bool

	// menu, inventory and orders pages
	pageCursor  int
	promptMode  string
	promptInput textinput.Model
	draft       client.MenuItemInput
	stockQty    float64
	stockCost   float64
}

type navItem struct {
	title, desc, view string
}

func (i navItem) FilterValue() string { return i.title }
func (i navItem) Title() string       { return i.title }
func (i navItem) Description() string { return i.desc }

// NewModel builds the app. If the session restored a token the login
// screen is skipped.
func NewModel(api *client.Client, sess sessioner) Model {
	email := textinput.New()
	email.Placeholder = "email"
	email.Focus()
	email.CharLimit = 128
	email.Width = 32

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 128
	password.Width = 32

	org := textinput.New()
	org.Placeholder = "restaurant name"
	org.CharLimit = 128
	org.Width = 32

	prompt := textinput.New()
	prompt.CharLimit = 64
	prompt.Width = 24

	items := []list.Item{
		navItem{title: "Point of Sale", desc: "Take a new order", view: viewPOS},
		navItem{title: "Kitchen Board", desc: "Active orders by station", view: viewKitchen},
		navItem{title: "Order History", desc: "Recent orders and totals", view: viewOrders},
		navItem{title: "Sales", desc: "Revenue trends and forecast", view: viewSales},
		navItem{title: "Inventory", desc: "Stock levels and alerts", view: viewInventory},
		navItem{title: "Menu", desc: "Items, prices, availability", view: viewMenu},
		navItem{title: "Reservations", desc: "Today's bookings", view: viewReservations},
		navItem{title: "Insights", desc: "Health score and recommendations", view: viewInsights},
	}
	mainMenu := list.New(items, list.NewDefaultDelegate(), 0, 0)
	mainMenu.Title = "Chakula"
	mainMenu.SetShowStatusBar(false)

	view := viewLogin
	if sess.State() == session.Authenticated {
		view = viewMain
	}

	return Model{
		api:           api,
		session:       sess,
		currentView:   view,
		emailInput:    email,
		passwordInput: password,
		orgInput:      org,
		promptInput:   prompt,
		mainMenu:      mainMenu,
		cart:          pos.NewCart(),
		orderType:     models.OrderTypeDineIn,
		tableNum:      1,
		payMethod:     models.PaymentPending,
		channel:       models.ChannelWalkIn,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.EnterAltScreen
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		h, v := docStyle.GetFrameSize()
		m.mainMenu.SetSize(msg.Width-h, msg.Height-v)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m.updateKeys(msg)

	case loggedInMsg:
		m.loading = false
		m.errMsg = ""
		m.currentView = viewMain
		return m, nil

	case menuLoadedMsg:
		m.loading = false
		m.menu = msg.items
		if m.currentView == viewMenu {
			m.clampPageCursor(len(m.menu))
		}
		return m, nil

	case ordersLoadedMsg:
		m.loading = false
		m.orders = msg.orders
		if m.currentView == viewOrders {
			m.clampPageCursor(len(m.orders))
		}
		return m, nil

	case activeOrdersMsg:
		m.loading = false
		m.board = kitchen.Build(msg.orders)
		m.clampKitchenCursor()
		return m, nil

	case orderPlacedMsg:
		m.loading = false
		m.status = "Order #" + strconv.Itoa(int(msg.order.ID)) + " placed, " + KES(msg.order.Total)
		m.posPhone = ""
		m.posNotes = ""
		return m, nil

	case inventoryLoadedMsg:
		m.loading = false
		m.inventory = msg.items
		m.clampPageCursor(len(m.inventory))
		return m, nil

	case predictionsLoadedMsg:
		m.predictions = msg.preds
		return m, nil

	case salesLoadedMsg:
		m.loading = false
		m.sales = msg.forecast
		return m, nil

	case reservationsLoadedMsg:
		m.loading = false
		m.reservations = msg.reservations
		return m, nil

	case dashboardLoadedMsg:
		m.loading = false
		m.dashboard = msg.dash
		return m, nil

	case menuEngineeringLoadedMsg:
		m.menuEng = msg.eng
		return m, nil

	case reservationInsightsLoadedMsg:
		m.resInsights = msg.insights
		return m, nil

	case kitchenStatsLoadedMsg:
		m.kitchenStats = msg.stats
		return m, nil

	case pollTickMsg:
		if m.currentView != viewKitchen {
			m.polling = false
			return m, nil
		}
		return m, tea.Batch(loadActiveOrdersCmd(m.api, true), pollCmd())

	case apiErrorMsg:
		m.loading = false
		if !msg.silent {
			m.errMsg = msg.err.Error()
		}
		return m, nil

	case spinner.TickMsg:
		return m, nil
	}
	return m, nil
}

// updateKeys routes keys to the active view.
func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.currentView {
	case viewLogin:
		return m.updateLogin(msg)
	case viewMain:
		return m.updateMain(msg)
	case viewPOS:
		return m.updatePOS(msg)
	case viewKitchen:
		return m.updateKitchen(msg)
	default:
		return m.updatePages(msg)
	}
}

func (m Model) updateMain(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "ctrl+l":
		m.session.Logout()
		m.emailInput.SetValue("")
		m.passwordInput.SetValue("")
		m.orgInput.SetValue("")
		m.registering = false
		m.loginFocus = 0
		m.focusLoginField()
		m.currentView = viewLogin
		return m, nil
	case "enter":
		if item, ok := m.mainMenu.SelectedItem().(navItem); ok {
			return m.openView(item.view)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.mainMenu, cmd = m.mainMenu.Update(msg)
	return m, cmd
}

// openView switches views and kicks off the data load each one needs.
func (m Model) openView(view string) (tea.Model, tea.Cmd) {
	m.currentView = view
	m.errMsg = ""
	m.status = ""
	m.loading = true

	switch view {
	case viewPOS:
		m.posCursor = 0
		return m, loadMenuCmd(m.api)
	case viewKitchen:
		cmds := []tea.Cmd{loadActiveOrdersCmd(m.api, false)}
		if !m.polling {
			m.polling = true
			cmds = append(cmds, pollCmd())
		}
		return m, tea.Batch(cmds...)
	case viewOrders:
		m.pageCursor = 0
		m.promptMode = ""
		return m, loadOrdersCmd(m.api)
	case viewSales:
		return m, loadSalesCmd(m.api)
	case viewInventory:
		m.pageCursor = 0
		m.promptMode = ""
		// menu and predictions ride along for the row annotations
		return m, tea.Batch(loadInventoryCmd(m.api), loadMenuCmd(m.api), loadPredictionsCmd(m.api))
	case viewMenu:
		m.pageCursor = 0
		m.promptMode = ""
		return m, loadMenuCmd(m.api)
	case viewReservations:
		return m, loadReservationsCmd(m.api, "")
	case viewInsights:
		// each panel degrades independently if its fetch fails
		return m, tea.Batch(
			loadDashboardCmd(m.api),
			loadMenuEngineeringCmd(m.api),
			loadReservationInsightsCmd(m.api),
			loadKitchenStatsCmd(m.api),
		)
	}
	m.loading = false
	return m, nil
}

func (m Model) View() string {
	switch m.currentView {
	case viewLogin:
		return m.viewLogin()
	case viewMain:
		footer := hintStyle.Render("signed in as " + m.session.Email() + " • ctrl+l: sign out")
		return docStyle.Render(m.mainMenu.View() + "\n" + footer)
	case viewPOS:
		return m.viewPOS()
	case viewKitchen:
		return m.viewKitchen()
	default:
		return m.viewPages()
	}
}

// banner renders the title plus any status or error line.
func (m Model) banner(title string) string {
	out := titleStyle.Render(title)
	if m.errMsg != "" {
		out += "  " + errorStyle.Render(m.errMsg)
	} else if m.status != "" {
		out += "  " + successStyle.Render(m.status)
	}
	if m.loading {
		out += "  " + hintStyle.Render("loading...")
	}
	return out + "\n\n"
}

