package tui

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jinzhu/gorm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chakula/internal/analytics"
	"chakula/internal/client"
	"chakula/internal/kitchen"
	"chakula/internal/models"
	"chakula/internal/session"
)

type stubSession struct{}

func (stubSession) Login(context.Context, string, string) error            { return nil }
func (stubSession) Register(context.Context, client.RegisterRequest) error { return nil }
func (stubSession) Logout()                                                {}
func (stubSession) State() session.State                                   { return session.Authenticated }
func (stubSession) Email() string                                          { return "mama@oliech.co.ke" }

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPOSSubmitCarriesOrderDetails(t *testing.T) {
	var captured map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{"id": 9, "total": 5000})
	}))
	defer srv.Close()

	m := NewModel(client.New(srv.URL), stubSession{})
	m.menu = []models.MenuItem{{Model: gorm.Model{ID: 1}, Name: "Ugali Beef", Price: 5000, IsAvailable: true}}
	m.orderType = models.OrderTypeDelivery
	m.channel = models.ChannelGlovo
	m.payMethod = models.PaymentMpesa
	m.posPhone = "0712345678"
	m.posNotes = "no onions"
	m.cart.Add(1)

	_, cmd := m.updatePOS(key("s"))
	require.NotNil(t, cmd)
	cmd()

	assert.Equal(t, "delivery", captured["order_type"])
	assert.Equal(t, "glovo", captured["delivery_channel"])
	assert.Equal(t, "0712345678", captured["customer_phone"])
	assert.Equal(t, "mpesa", captured["payment_method"])
	assert.Equal(t, "no onions", captured["notes"])

	items, ok := captured["items"].([]interface{})
	require.True(t, ok)
	require.Len(t, items, 1)
	line, ok := items[0].(map[string]interface{})
	require.True(t, ok)
	assert.NotContains(t, line, "unit_price")
}

func TestPOSSubmitIgnoredWhileLoading(t *testing.T) {
	m := NewModel(client.New("http://localhost:0"), stubSession{})
	m.cart.Add(1)
	m.loading = true

	_, cmd := m.updatePOS(key("s"))
	assert.Nil(t, cmd)
}

func TestKitchenBoardOnlyAdvances(t *testing.T) {
	m := NewModel(client.New("http://localhost:0"), stubSession{})
	m.board = kitchen.Build([]models.Order{
		{Model: gorm.Model{ID: 3}, Status: models.OrderStatusPending},
	})

	// cancel is a management action, not a kitchen one
	_, cmd := m.updateKitchen(key("x"))
	assert.Nil(t, cmd)

	_, cmd = m.updateKitchen(key("a"))
	assert.NotNil(t, cmd)
}

func TestOrdersPageCancelsActiveOrder(t *testing.T) {
	var patched string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPatch {
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			patched = body["status"]
			json.NewEncoder(w).Encode(map[string]interface{}{"id": 3})
			return
		}
		json.NewEncoder(w).Encode([]interface{}{})
	}))
	defer srv.Close()

	m := NewModel(client.New(srv.URL), stubSession{})
	m.currentView = viewOrders
	m.orders = []models.Order{{Model: gorm.Model{ID: 3}, Status: models.OrderStatusPending}}

	_, cmd := m.updatePages(key("x"))
	require.NotNil(t, cmd)
	cmd()
	assert.Equal(t, "cancelled", patched)
}

func TestOrdersPageRefusesSettledCancel(t *testing.T) {
	m := NewModel(client.New("http://localhost:0"), stubSession{})
	m.currentView = viewOrders
	m.orders = []models.Order{{Model: gorm.Model{ID: 3}, Status: models.OrderStatusServed}}

	next, cmd := m.updatePages(key("x"))
	assert.Nil(t, cmd)
	assert.NotEmpty(t, next.(Model).errMsg)
}

func TestAdjustPromptSendsReason(t *testing.T) {
	var captured map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/adjust") {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		}
		json.NewEncoder(w).Encode(map[string]interface{}{})
	}))
	defer srv.Close()

	m := NewModel(client.New(srv.URL), stubSession{})
	m.currentView = viewInventory
	m.inventory = []models.InventoryItem{{Model: gorm.Model{ID: 4}, ItemName: "Cooking Oil", Quantity: 10}}

	next, cmd := m.submitPrompt(promptAdjust, "-2.5")
	require.Nil(t, cmd)
	m = next.(Model)
	assert.Equal(t, promptAdjustReason, m.promptMode)

	m.promptMode = ""
	next, cmd = m.submitPrompt(promptAdjustReason, "spoilage")
	require.NotNil(t, cmd)
	cmd()

	assert.Equal(t, -2.5, captured["quantity"])
	assert.Equal(t, "spoilage", captured["reason"])
}

func TestReceivePromptSendsCostAndSupplier(t *testing.T) {
	var captured map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/receive") {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		}
		json.NewEncoder(w).Encode(map[string]interface{}{})
	}))
	defer srv.Close()

	m := NewModel(client.New(srv.URL), stubSession{})
	m.currentView = viewInventory
	m.inventory = []models.InventoryItem{{Model: gorm.Model{ID: 4}, ItemName: "Cooking Oil"}}

	next, _ := m.submitPrompt(promptReceive, "10")
	m = next.(Model)
	next, _ = m.submitPrompt(promptReceiveCost, "250")
	m = next.(Model)
	_, cmd := m.submitPrompt(promptReceiveSupplier, "Kariakoo Traders")
	require.NotNil(t, cmd)
	cmd()

	assert.Equal(t, 10.0, captured["quantity"])
	assert.Equal(t, 250.0, captured["cost_per_unit"])
	assert.Equal(t, "Kariakoo Traders", captured["supplier"])
}

func TestInsightsUsesFriendlyLabels(t *testing.T) {
	m := NewModel(client.New("http://localhost:0"), stubSession{})
	m.currentView = viewInsights
	m.dashboard = &analytics.OpsDashboard{HealthScore: 80}
	m.menuEng = &analytics.MenuEngineering{
		Matrix: []analytics.MenuItemStats{
			{Name: "Ugali Beef", Classification: analytics.ClassStar, QtySold: 40, Margin: 3000},
			{Name: "Matumbo", Classification: analytics.ClassDog, QtySold: 1, Margin: 500},
		},
	}

	out := m.viewInsights()
	assert.Contains(t, out, "top seller")
	assert.Contains(t, out, "slow mover")
	assert.NotContains(t, out, "Plowhorse")
}
