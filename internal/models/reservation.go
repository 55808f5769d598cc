package models

import (
	"time"

	"github.com/jinzhu/gorm"
)

// ReservationStatus represents the lifecycle of a booking.
type ReservationStatus string

const (
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCancelled ReservationStatus = "cancelled"
	ReservationCompleted ReservationStatus = "completed"
	ReservationNoShow    ReservationStatus = "no_show"
)

// ValidReservationStatus reports whether s is a known reservation status.
func ValidReservationStatus(s ReservationStatus) bool {
	switch s {
	case ReservationConfirmed, ReservationCancelled, ReservationCompleted, ReservationNoShow:
		return true
	}
	return false
}

// Reservation is a table booking. Date and Time are kept separate to
// match the wire format ("2026-08-29", "19:30").
type Reservation struct {
	gorm.Model
	RestaurantID    uint              `json:"restaurant_id"`
	TableID         *uint             `json:"table_id"`
	TableNumber     *int              `json:"table_number"`
	CustomerName    string            `json:"customer_name"`
	CustomerPhone   string            `json:"customer_phone"`
	CustomerEmail   string            `json:"customer_email"`
	PartySize       int               `json:"party_size" gorm:"default:2"`
	ReservationDate time.Time         `json:"reservation_date"`
	ReservationTime string            `json:"reservation_time"`
	DurationMinutes int               `json:"duration_minutes" gorm:"default:90"`
	Status          ReservationStatus `json:"status" gorm:"default:'confirmed'"`
	DepositPaid     bool              `json:"deposit_paid"`
	Notes           string            `json:"notes"`
}
