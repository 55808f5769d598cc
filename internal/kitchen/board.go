// Package kitchen models the order board: three lanes of active
// orders, advanced one status at a time.
package kitchen

import (
	"context"
	"fmt"
	"sort"
	"time"

	"chakula/internal/client"
	"chakula/internal/models"
)

// PollInterval is how often the board refetches active orders.
const PollInterval = 10 * time.Second

// Board partitions active orders into the three kitchen lanes.
type Board struct {
	Pending []models.Order
	Prep    []models.Order
	Ready   []models.Order
}

// Build lanes the orders. Anything not in an active status is dropped;
// within a lane, oldest first so the kitchen works in order.
func Build(orders []models.Order) Board {
	var b Board
	for _, o := range orders {
		switch o.Status {
		case models.OrderStatusPending:
			b.Pending = append(b.Pending, o)
		case models.OrderStatusPrep:
			b.Prep = append(b.Prep, o)
		case models.OrderStatusReady:
			b.Ready = append(b.Ready, o)
		}
	}
	byAge := func(lane []models.Order) {
		sort.Slice(lane, func(i, j int) bool { return lane[i].CreatedAt.Before(lane[j].CreatedAt) })
	}
	byAge(b.Pending)
	byAge(b.Prep)
	byAge(b.Ready)
	return b
}

// Size is the total number of active orders on the board.
func (b Board) Size() int {
	return len(b.Pending) + len(b.Prep) + len(b.Ready)
}

// Lane returns the named lane for display code that iterates them.
func (b Board) Lane(status models.OrderStatus) []models.Order {
	switch status {
	case models.OrderStatusPending:
		return b.Pending
	case models.OrderStatusPrep:
		return b.Prep
	case models.OrderStatusReady:
		return b.Ready
	}
	return nil
}

// Next returns the single legal next status for an order, or an error
// if the order can't advance.
func Next(status models.OrderStatus) (models.OrderStatus, error) {
	next, ok := models.NextStatus[status]
	if !ok {
		return "", fmt.Errorf("kitchen: order in status %q cannot advance", status)
	}
	return next, nil
}

// Advance moves one order a single step forward and returns the fresh
// board state. The server enforces legality too; the local check just
// avoids a round trip for a button that should have been disabled.
func Advance(ctx context.Context, api *client.Client, order models.Order) ([]models.Order, error) {
	next, err := Next(order.Status)
	if err != nil {
		return nil, err
	}
	if _, err := api.UpdateOrderStatus(ctx, order.ID, next); err != nil {
		return nil, err
	}
	return api.ActiveOrders(ctx)
}

// Age formats how long an order has been open, for the lane cards.
func Age(o models.Order, now time.Time) string {
	d := now.Sub(o.CreatedAt)
	if d < time.Minute {
		return "just now"
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	return fmt.Sprintf("%dh%02dm", int(d.Hours()), int(d.Minutes())%60)
}
