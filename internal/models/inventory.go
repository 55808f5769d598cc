package models

import "github.com/jinzhu/gorm"

// InventoryUnit represents the unit of measurement for an inventory item.
type InventoryUnit string

const (
	UnitKilogram InventoryUnit = "kg"
	UnitGram     InventoryUnit = "g"
	UnitLiter    InventoryUnit = "l"
	UnitPiece    InventoryUnit = "pc"
	UnitCrate    InventoryUnit = "crate"
	UnitPacket   InventoryUnit = "packet"
)

// InventoryItem is a stock-keeping unit. Quantity is only ever changed
// through stock movements; handlers re-read rather than compute.
type InventoryItem struct {
	gorm.Model
	RestaurantID      uint          `json:"restaurant_id"`
	ItemName          string        `json:"item_name"`
	Quantity          float64       `json:"quantity"`
	Unit              InventoryUnit `json:"unit"`
	CostPerUnit       float64       `json:"cost_per_unit"`
	LowStockThreshold float64       `json:"low_stock_threshold"`
	ExpiryDays        int           `json:"expiry_days" gorm:"default:30"`
}

// OutOfStock takes precedence over LowStock when both would apply.
func (i *InventoryItem) OutOfStock() bool { return i.Quantity <= 0 }

// LowStock reports whether quantity has fallen to the reorder threshold.
func (i *InventoryItem) LowStock() bool {
	return !i.OutOfStock() && i.Quantity <= i.LowStockThreshold
}

// MovementType classifies a stock movement.
type MovementType string

const (
	MovementIn     MovementType = "in"     // purchase / restock
	MovementOut    MovementType = "out"    // usage / waste
	MovementAdjust MovementType = "adjust" // manual correction
)

// StockMovement is the audit trail behind every inventory change and
// the raw material for depletion prediction.
type StockMovement struct {
	gorm.Model
	InventoryItemID uint         `json:"inventory_item_id"`
	MovementType    MovementType `json:"movement_type"`
	Quantity        float64      `json:"quantity"`
	Reason          string       `json:"reason"`
	Supplier        string       `json:"supplier"`
	CostPerUnit     float64      `json:"cost_per_unit"`
}
