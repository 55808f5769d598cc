package models

import (
	"fmt"

	"github.com/jinzhu/gorm"
)

// MenuItem represents a dish on the menu. Prices are integers in minor
// currency units (cents); CostPrice feeds margin analysis.
type MenuItem struct {
	gorm.Model
	RestaurantID   uint    `json:"restaurant_id"`
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	Price          int     `json:"price"`
	CostPrice      int     `json:"cost_price"`
	Category       string  `json:"category"`
	ImageURL       string  `json:"image_url"`
	IsAvailable    bool    `json:"is_available" gorm:"default:true"`
	PrepStation    string  `json:"prep_station" gorm:"default:'main'"`
	AvgPrepMinutes float64 `json:"avg_prep_minutes" gorm:"default:10"`
}

// Margin returns the contribution margin per unit sold, in cents.
func (mi *MenuItem) Margin() int {
	return mi.Price - mi.CostPrice
}

// ValidateMenuItem validates a menu item before it is persisted.
func ValidateMenuItem(item *MenuItem) error {
	if item.Name == "" {
		return fmt.Errorf("menu item name is required")
	}
	if item.Price <= 0 {
		return fmt.Errorf("menu item price must be greater than 0")
	}
	if item.Category == "" {
		return fmt.Errorf("menu item category is required")
	}
	return nil
}
