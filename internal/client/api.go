package client

import (
	"context"
	"fmt"
	"net/url"

	"chakula/internal/analytics"
	"chakula/internal/models"
)

// Typed wrappers over the raw verbs, one per API surface the terminal
// app uses.

// TokenResponse is the /auth/login payload.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login exchanges credentials for a bearer token. The endpoint takes
// form-encoded fields, not JSON.
func (c *Client) Login(ctx context.Context, email, password string) (*TokenResponse, error) {
	var token TokenResponse
	err := c.PostForm(ctx, "/auth/login", url.Values{
		"username": {email},
		"password": {password},
	}, &token)
	if err != nil {
		return nil, err
	}
	return &token, nil
}

// RegisterRequest creates a tenant and its admin user. Registration
// signs the new admin in immediately, so it returns a token.
type RegisterRequest struct {
	TenantName string `json:"tenant_name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (*TokenResponse, error) {
	var token TokenResponse
	if err := c.Post(ctx, "/auth/register", req, &token); err != nil {
		return nil, err
	}
	return &token, nil
}

func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.Get(ctx, "/auth/me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ActiveOrders returns pending, prep and ready orders, oldest first.
func (c *Client) ActiveOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := c.Get(ctx, "/orders/active", &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) Orders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := c.Get(ctx, "/orders/", &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// OrderItemInput names an item only by id and quantity; the server
// snapshots the price.
type OrderItemInput struct {
	MenuItemID uint `json:"menu_item_id"`
	Quantity   int  `json:"quantity"`
}

type OrderInput struct {
	OrderType       string           `json:"order_type"`
	DeliveryChannel string           `json:"delivery_channel,omitempty"`
	TableNumber     *int             `json:"table_number,omitempty"`
	CustomerName    string           `json:"customer_name,omitempty"`
	CustomerPhone   string           `json:"customer_phone,omitempty"`
	PaymentMethod   string           `json:"payment_method,omitempty"`
	Notes           string           `json:"notes,omitempty"`
	Items           []OrderItemInput `json:"items"`
}

func (c *Client) CreateOrder(ctx context.Context, input OrderInput) (*models.Order, error) {
	var order models.Order
	if err := c.Post(ctx, "/orders/", input, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, id uint, status models.OrderStatus) (*models.Order, error) {
	var order models.Order
	body := map[string]string{"status": string(status)}
	if err := c.Patch(ctx, fmt.Sprintf("/orders/%d/status", id), body, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) Menu(ctx context.Context) ([]models.MenuItem, error) {
	var items []models.MenuItem
	if err := c.Get(ctx, "/menu/", &items); err != nil {
		return nil, err
	}
	return items, nil
}

type MenuItemInput struct {
	Name           string `json:"name"`
	Description    string `json:"description,omitempty"`
	Price          int    `json:"price"`
	CostPrice      int    `json:"cost_price"`
	Category       string `json:"category"`
	IsAvailable    *bool  `json:"is_available,omitempty"`
	PrepStation    string `json:"prep_station,omitempty"`
	AvgPrepMinutes int    `json:"avg_prep_minutes,omitempty"`
}

func (c *Client) CreateMenuItem(ctx context.Context, input MenuItemInput) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := c.Post(ctx, "/menu/", input, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) UpdateMenuItem(ctx context.Context, id uint, input MenuItemInput) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := c.Put(ctx, fmt.Sprintf("/menu/%d", id), input, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) Inventory(ctx context.Context) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	if err := c.Get(ctx, "/inventory/", &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) ReceiveStock(ctx context.Context, id uint, quantity, costPerUnit float64, supplier string) (*models.InventoryItem, error) {
	var item models.InventoryItem
	body := map[string]interface{}{"quantity": quantity, "cost_per_unit": costPerUnit, "supplier": supplier}
	if err := c.Post(ctx, fmt.Sprintf("/inventory/%d/receive", id), body, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) AdjustStock(ctx context.Context, id uint, quantity float64, reason string) (*models.InventoryItem, error) {
	var item models.InventoryItem
	body := map[string]interface{}{"quantity": quantity, "reason": reason}
	if err := c.Post(ctx, fmt.Sprintf("/inventory/%d/adjust", id), body, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Reservations lists bookings, optionally for one date (YYYY-MM-DD).
func (c *Client) Reservations(ctx context.Context, date string) ([]models.Reservation, error) {
	path := "/reservations/"
	if date != "" {
		path += "?date=" + url.QueryEscape(date)
	}
	var reservations []models.Reservation
	if err := c.Get(ctx, path, &reservations); err != nil {
		return nil, err
	}
	return reservations, nil
}

type ReservationInput struct {
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone,omitempty"`
	PartySize     int    `json:"party_size"`
	Date          string `json:"reservation_date"`
	Time          string `json:"reservation_time"`
	TableNumber   *int   `json:"table_number,omitempty"`
	DepositPaid   bool   `json:"deposit_paid,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

func (c *Client) CreateReservation(ctx context.Context, input ReservationInput) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := c.Post(ctx, "/reservations/", input, &reservation); err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (c *Client) UpdateReservationStatus(ctx context.Context, id uint, status models.ReservationStatus) (*models.Reservation, error) {
	var reservation models.Reservation
	body := map[string]string{"status": string(status)}
	if err := c.Patch(ctx, fmt.Sprintf("/reservations/%d/status", id), body, &reservation); err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (c *Client) Dashboard(ctx context.Context) (*analytics.OpsDashboard, error) {
	var dash analytics.OpsDashboard
	if err := c.Get(ctx, "/ai/dashboard", &dash); err != nil {
		return nil, err
	}
	return &dash, nil
}

func (c *Client) MenuEngineering(ctx context.Context) (*analytics.MenuEngineering, error) {
	var result analytics.MenuEngineering
	if err := c.Get(ctx, "/ai/menu-engineering", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) RevenueForecast(ctx context.Context) (*analytics.RevenueForecast, error) {
	var result analytics.RevenueForecast
	if err := c.Get(ctx, "/ai/revenue-forecast", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) InventoryPredictions(ctx context.Context) (*analytics.InventoryPredictions, error) {
	var result analytics.InventoryPredictions
	if err := c.Get(ctx, "/ai/inventory-predictions", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) ReservationInsights(ctx context.Context) (*analytics.ReservationInsights, error) {
	var result analytics.ReservationInsights
	if err := c.Get(ctx, "/ai/reservation-insights", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) KitchenIntelligence(ctx context.Context) (*analytics.KitchenStats, error) {
	var result analytics.KitchenStats
	if err := c.Get(ctx, "/ai/kds-intelligence", &result); err != nil {
		return nil, err
	}
	return &result, nil
}
