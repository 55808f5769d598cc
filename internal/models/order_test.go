package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextStatusSingleSteps(t *testing.T) {
	assert.Equal(t, OrderStatusPrep, NextStatus[OrderStatusPending])
	assert.Equal(t, OrderStatusReady, NextStatus[OrderStatusPrep])
	assert.Equal(t, OrderStatusServed, NextStatus[OrderStatusReady])

	_, ok := NextStatus[OrderStatusServed]
	assert.False(t, ok)
	_, ok = NextStatus[OrderStatusCancelled]
	assert.False(t, ok)
}

func TestValidStatus(t *testing.T) {
	for _, s := range []OrderStatus{OrderStatusPending, OrderStatusPrep, OrderStatusReady, OrderStatusServed, OrderStatusCancelled} {
		assert.True(t, ValidStatus(s))
	}
	assert.False(t, ValidStatus("delivered"))
}

func TestOrderActive(t *testing.T) {
	for status, want := range map[OrderStatus]bool{
		OrderStatusPending:   true,
		OrderStatusPrep:      true,
		OrderStatusReady:     true,
		OrderStatusServed:    false,
		OrderStatusCancelled: false,
	} {
		o := Order{Status: status}
		assert.Equal(t, want, o.Active(), "status %s", status)
	}
}

func TestOrderItemSubtotal(t *testing.T) {
	item := OrderItem{Quantity: 3, UnitPrice: 5000}
	assert.Equal(t, 15000, item.Subtotal())
}

func TestMenuItemMargin(t *testing.T) {
	item := MenuItem{Price: 45000, CostPrice: 20000}
	assert.Equal(t, 25000, item.Margin())
}

func TestValidateMenuItem(t *testing.T) {
	assert.Error(t, ValidateMenuItem(&MenuItem{Price: 5000}))           // no name
	assert.Error(t, ValidateMenuItem(&MenuItem{Name: "Ugali"}))         // no price
	assert.Error(t, ValidateMenuItem(&MenuItem{Name: "U", Price: -10})) // negative
	assert.NoError(t, ValidateMenuItem(&MenuItem{Name: "Ugali", Price: 5000, Category: "mains"}))
}

func TestStockPrecedence(t *testing.T) {
	out := InventoryItem{Quantity: 0, LowStockThreshold: 5}
	assert.True(t, out.OutOfStock())
	assert.False(t, out.LowStock(), "out of stock takes precedence over low")

	low := InventoryItem{Quantity: 3, LowStockThreshold: 5}
	assert.False(t, low.OutOfStock())
	assert.True(t, low.LowStock())

	ok := InventoryItem{Quantity: 50, LowStockThreshold: 5}
	assert.False(t, ok.OutOfStock())
	assert.False(t, ok.LowStock())
}
