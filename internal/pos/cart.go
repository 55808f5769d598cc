// Package pos holds the order-entry cart. Quantities live client-side
// only; prices are always resolved by the server at submit time.
package pos

import (
	"context"
	"errors"
	"sort"
	"sync"

	"chakula/internal/client"
	"chakula/internal/models"
)

var (
	// ErrEmptyCart rejects a submit with nothing in it.
	ErrEmptyCart = errors.New("pos: cart is empty")
	// ErrSubmitInFlight guards against double-submitting the same cart.
	ErrSubmitInFlight = errors.New("pos: submit already in flight")
)

// Cart accumulates item quantities for one order. Submits run on
// background goroutines, so every method takes the lock.
type Cart struct {
	mu         sync.Mutex
	quantities map[uint]int
	submitting bool
}

func NewCart() *Cart {
	return &Cart{quantities: make(map[uint]int)}
}

// Add increments an item's quantity.
func (c *Cart) Add(itemID uint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.quantities[itemID]++
}

// Remove decrements an item's quantity; hitting zero drops the line.
func (c *Cart) Remove(itemID uint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.quantities[itemID] <= 1 {
		delete(c.quantities, itemID)
		return
	}
	c.quantities[itemID]--
}

// SetQuantity pins a line to an exact quantity. Zero or less clears it.
func (c *Cart) SetQuantity(itemID uint, qty int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if qty <= 0 {
		delete(c.quantities, itemID)
		return
	}
	c.quantities[itemID] = qty
}

func (c *Cart) Quantity(itemID uint) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.quantities[itemID]
}

func (c *Cart) Empty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.quantities) == 0
}

// Lines returns the cart sorted by item id so the display is stable.
func (c *Cart) Lines() []client.OrderItemInput {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lines()
}

func (c *Cart) lines() []client.OrderItemInput {
	lines := make([]client.OrderItemInput, 0, len(c.quantities))
	for id, qty := range c.quantities {
		lines = append(lines, client.OrderItemInput{MenuItemID: id, Quantity: qty})
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].MenuItemID < lines[j].MenuItemID })
	return lines
}

// Subtotal prices the cart in cents from the given menu. Items missing
// from the menu contribute nothing; the server is the authority anyway.
func (c *Cart) Subtotal(menu []models.MenuItem) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0
	for _, item := range menu {
		if qty := c.quantities[item.ID]; qty > 0 {
			total += item.Price * qty
		}
	}
	return total
}

// Clear empties the cart, for after a successful submit.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.quantities = make(map[uint]int)
	c.submitting = false
}

// Submit sends the cart as an order. A second call while one is in
// flight fails rather than creating a duplicate order. On success the
// cart is cleared; on failure it stays intact for a retry.
func (c *Cart) Submit(ctx context.Context, api *client.Client, input client.OrderInput) (*models.Order, error) {
	c.mu.Lock()
	if len(c.quantities) == 0 {
		c.mu.Unlock()
		return nil, ErrEmptyCart
	}
	if c.submitting {
		c.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	c.submitting = true
	input.Items = c.lines()
	c.mu.Unlock()

	order, err := api.CreateOrder(ctx, input)

	c.mu.Lock()
	c.submitting = false
	if err == nil {
		c.quantities = make(map[uint]int)
	}
	c.mu.Unlock()

	if err != nil {
		return nil, err
	}
	return order, nil
}
