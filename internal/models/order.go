package models

import (
	"time"

	"github.com/jinzhu/gorm"
)

// OrderStatus represents the possible states of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPrep      OrderStatus = "prep"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusServed    OrderStatus = "served"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// NextStatus maps each in-flight status to the single legal next one.
// Served and cancelled are terminal.
var NextStatus = map[OrderStatus]OrderStatus{
	OrderStatusPending: OrderStatusPrep,
	OrderStatusReady:   OrderStatusServed,
	OrderStatusPrep:    OrderStatusReady,
}

// ValidStatus reports whether s is a known order status.
func ValidStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusPrep, OrderStatusReady, OrderStatusServed, OrderStatusCancelled:
		return true
	}
	return false
}

// OrderType distinguishes how the order reaches the customer.
type OrderType string

const (
	OrderTypeDineIn   OrderType = "dine_in"
	OrderTypeTakeout  OrderType = "takeout"
	OrderTypeDelivery OrderType = "delivery"
)

// DeliveryChannel records which aggregator (if any) placed the order.
type DeliveryChannel string

const (
	ChannelUberEats DeliveryChannel = "uber_eats"
	ChannelBoltFood DeliveryChannel = "bolt_food"
	ChannelGlovo    DeliveryChannel = "glovo"
	ChannelWalkIn   DeliveryChannel = "walk_in"
	ChannelApp      DeliveryChannel = "app"
)

// Payment methods accepted at the till. Orders start with
// PaymentPending until a provider callback or cashier settles them.
const (
	PaymentCash    = "cash"
	PaymentMpesa   = "mpesa"
	PaymentCard    = "card"
	PaymentPending = "pending"
)

// Order is a customer order. Total is the sum of item subtotals in
// cents, computed server-side at creation.
type Order struct {
	gorm.Model
	RestaurantID    uint            `json:"restaurant_id"`
	Status          OrderStatus     `json:"status" gorm:"default:'pending'"`
	OrderType       OrderType       `json:"order_type" gorm:"default:'dine_in'"`
	DeliveryChannel DeliveryChannel `json:"delivery_channel" gorm:"default:'walk_in'"`
	TableNumber     *int            `json:"table_number"`
	CustomerName    string          `json:"customer_name"`
	CustomerPhone   string          `json:"customer_phone"`
	PaymentMethod   string          `json:"payment_method" gorm:"default:'pending'"`
	Total           int             `json:"total"`
	Notes           string          `json:"notes"`
	CompletedAt     *time.Time      `json:"completed_at"`
	Items           []OrderItem     `json:"items" gorm:"foreignkey:OrderID"`
}

// Active reports whether the order should appear on the kitchen board.
func (o *Order) Active() bool {
	switch o.Status {
	case OrderStatusPending, OrderStatusPrep, OrderStatusReady:
		return true
	}
	return false
}

// OrderItem links an order to a menu item. UnitPrice is a snapshot of
// the menu price at order time so later menu edits don't rewrite
// history; ItemName is resolved at creation for display.
type OrderItem struct {
	gorm.Model
	OrderID    uint   `json:"order_id"`
	MenuItemID uint   `json:"menu_item_id"`
	Quantity   int    `json:"quantity" gorm:"default:1"`
	UnitPrice  int    `json:"unit_price"`
	ItemName   string `json:"item_name"`
}

// Subtotal returns quantity × unit price in cents.
func (oi *OrderItem) Subtotal() int {
	return oi.Quantity * oi.UnitPrice
}
