package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"chakula/internal/models"
)

type reservationRequest struct {
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerPhone string `json:"customer_phone"`
	PartySize     int    `json:"party_size" binding:"required"`
	Date          string `json:"reservation_date" binding:"required"`
	Time          string `json:"reservation_time" binding:"required"`
	TableNumber   *int   `json:"table_number"`
	DepositPaid   bool   `json:"deposit_paid"`
	Notes         string `json:"notes"`
}

type reservationStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ListReservations returns bookings, optionally filtered to a single
// date (?date=2026-08-29).
func (s *Server) ListReservations(c *gin.Context) {
	restaurant, err := s.currentRestaurant(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	query := s.db.Where("restaurant_id = ?", restaurant.ID)
	if date := c.Query("date"); date != "" {
		day, err := time.Parse("2006-01-02", date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		query = query.Where("reservation_date >= ? AND reservation_date < ?", day, day.AddDate(0, 0, 1))
	}

	var reservations []models.Reservation
	if err := query.Order("reservation_date, reservation_time").Find(&reservations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, reservations)
}

// CreateReservation books a table. New bookings always start confirmed.
func (s *Server) CreateReservation(c *gin.Context) {
	restaurant, err := s.currentRestaurant(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var req reservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.PartySize < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "party size must be at least 1"})
		return
	}
	day, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "reservation_date must be YYYY-MM-DD"})
		return
	}
	if _, err := time.Parse("15:04", req.Time); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "reservation_time must be HH:MM"})
		return
	}

	reservation := models.Reservation{
		RestaurantID:    restaurant.ID,
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		PartySize:       req.PartySize,
		ReservationDate: day,
		ReservationTime: req.Time,
		TableNumber:     req.TableNumber,
		Status:          models.ReservationConfirmed,
		DepositPaid:     req.DepositPaid,
		Notes:           req.Notes,
	}
	if err := s.db.Create(&reservation).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, reservation)
}

// UpdateReservationStatus moves a booking to cancelled, completed or
// no_show. Any decided state is terminal.
func (s *Server) UpdateReservationStatus(c *gin.Context) {
	restaurant, err := s.currentRestaurant(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var req reservationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	next := models.ReservationStatus(req.Status)
	if !models.ValidReservationStatus(next) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown reservation status"})
		return
	}

	var reservation models.Reservation
	if err := s.db.Where("id = ? AND restaurant_id = ?", c.Param("id"), restaurant.ID).First(&reservation).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found"})
		return
	}
	if reservation.Status != models.ReservationConfirmed && reservation.Status != next {
		c.JSON(http.StatusConflict, gin.H{"error": "reservation already settled"})
		return
	}

	reservation.Status = next
	if err := s.db.Save(&reservation).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, reservation)
}
