package database

import (
	"github.com/jinzhu/gorm"

	"chakula/internal/models"
)

// SeedDefaultData ensures a demo restaurant exists with a starter menu
// and inventory so a fresh install renders something useful.
func SeedDefaultData(d *gorm.DB) {
	var restaurantCount int64
	d.Model(&models.Restaurant{}).Count(&restaurantCount)
	if restaurantCount > 0 {
		return
	}

	tenant := models.Tenant{Name: "Mama Oliech", Plan: "free"}
	d.Create(&tenant)

	restaurant := models.Restaurant{
		TenantID: tenant.ID,
		Name:     "Mama Oliech Restaurant",
		Address:  "Marcus Garvey Rd, Nairobi",
	}
	d.Create(&restaurant)

	for n := 1; n <= 8; n++ {
		d.Create(&models.Table{RestaurantID: restaurant.ID, TableNumber: n, Capacity: 4})
	}

	defaultMenu := []models.MenuItem{
		{Name: "Ugali & Tilapia", Price: 65000, CostPrice: 28000, Category: "Mains", PrepStation: "grill", AvgPrepMinutes: 18},
		{Name: "Nyama Choma (1/2 kg)", Price: 80000, CostPrice: 42000, Category: "Mains", PrepStation: "grill", AvgPrepMinutes: 25},
		{Name: "Ugali", Price: 5000, CostPrice: 1500, Category: "Sides", AvgPrepMinutes: 8},
		{Name: "Sukuma Wiki", Price: 8000, CostPrice: 2500, Category: "Sides", AvgPrepMinutes: 6},
		{Name: "Kachumbari", Price: 6000, CostPrice: 2000, Category: "Sides", PrepStation: "salad", AvgPrepMinutes: 4},
		{Name: "Chapati", Price: 4000, CostPrice: 1200, Category: "Sides", AvgPrepMinutes: 5},
		{Name: "Soda", Price: 15000, CostPrice: 9000, Category: "Drinks", PrepStation: "drinks", AvgPrepMinutes: 1},
		{Name: "Fresh Passion Juice", Price: 20000, CostPrice: 8000, Category: "Drinks", PrepStation: "drinks", AvgPrepMinutes: 3},
	}
	for i := range defaultMenu {
		defaultMenu[i].RestaurantID = restaurant.ID
		defaultMenu[i].IsAvailable = true
		d.Create(&defaultMenu[i])
	}

	defaultInventory := []models.InventoryItem{
		{ItemName: "Maize Flour", Quantity: 50, Unit: models.UnitKilogram, CostPerUnit: 120, LowStockThreshold: 10},
		{ItemName: "Tilapia", Quantity: 30, Unit: models.UnitPiece, CostPerUnit: 350, LowStockThreshold: 8, ExpiryDays: 3},
		{ItemName: "Goat Meat", Quantity: 25, Unit: models.UnitKilogram, CostPerUnit: 650, LowStockThreshold: 5, ExpiryDays: 4},
		{ItemName: "Sukuma Wiki", Quantity: 15, Unit: models.UnitKilogram, CostPerUnit: 60, LowStockThreshold: 4, ExpiryDays: 2},
		{ItemName: "Tomatoes", Quantity: 20, Unit: models.UnitKilogram, CostPerUnit: 90, LowStockThreshold: 5, ExpiryDays: 5},
		{ItemName: "Soda Crates", Quantity: 6, Unit: models.UnitCrate, CostPerUnit: 2100, LowStockThreshold: 2},
		{ItemName: "Cooking Oil", Quantity: 18, Unit: models.UnitLiter, CostPerUnit: 280, LowStockThreshold: 5},
	}
	for i := range defaultInventory {
		defaultInventory[i].RestaurantID = restaurant.ID
		d.Create(&defaultInventory[i])
	}
}
