package models

import "github.com/jinzhu/gorm"

// Tenant is the account boundary. Every restaurant, user and record
// hangs off exactly one tenant.
type Tenant struct {
	gorm.Model
	Name string `json:"name"`
	Plan string `json:"plan" gorm:"default:'free'"`
}

// Role controls what a user may do inside their tenant.
type Role string

const (
	RoleSuperadmin Role = "superadmin"
	RoleAdmin      Role = "admin"
	RoleStaff      Role = "staff"
)

// User is a staff login scoped to a tenant.
type User struct {
	gorm.Model
	TenantID       uint   `json:"tenant_id"`
	Email          string `json:"email" gorm:"unique_index"`
	HashedPassword string `json:"-"`
	Role           Role   `json:"role" gorm:"default:'staff'"`
}

// Restaurant is a physical location belonging to a tenant. The MVP
// operates with one restaurant per tenant, auto-created on first use.
type Restaurant struct {
	gorm.Model
	TenantID uint   `json:"tenant_id"`
	Name     string `json:"name"`
	Address  string `json:"address"`
}

// TableStatus represents the occupancy state of a dining table.
type TableStatus string

const (
	TableAvailable TableStatus = "available"
	TableOccupied  TableStatus = "occupied"
	TableReserved  TableStatus = "reserved"
	TableCleaning  TableStatus = "cleaning"
)

// Table is a physical dining table, referenced by reservations.
type Table struct {
	gorm.Model
	RestaurantID uint        `json:"restaurant_id"`
	TableNumber  int         `json:"table_number"`
	Capacity     int         `json:"capacity" gorm:"default:4"`
	Status       TableStatus `json:"status" gorm:"default:'available'"`
}
