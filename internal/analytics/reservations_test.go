package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"chakula/internal/models"
)

func reservation(status models.ReservationStatus, party int, date time.Time) models.Reservation {
	return models.Reservation{
		Status:          status,
		PartySize:       party,
		ReservationDate: date,
	}
}

func TestAnalyzeReservationsRates(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	day := now.AddDate(0, 0, -5)
	reservations := []models.Reservation{
		reservation(models.ReservationCompleted, 2, day),
		reservation(models.ReservationCompleted, 4, day),
		reservation(models.ReservationNoShow, 4, day),
		reservation(models.ReservationCancelled, 2, day),
		reservation(models.ReservationConfirmed, 6, now.AddDate(0, 0, 1)),
	}

	result := AnalyzeReservations(reservations, 50000, now)

	a := result.NoShowAnalysis
	assert.Equal(t, 5, a.TotalReservations)
	assert.Equal(t, 2, a.Completed)
	assert.Equal(t, 1, a.NoShows)
	assert.Equal(t, 1, a.Cancellations)
	assert.Equal(t, 1, a.Upcoming)

	// rates are over decided bookings only; the upcoming one is excluded
	assert.InDelta(t, 25.0, a.NoShowRate, 0.01)
	assert.InDelta(t, 50.0, a.CompletionRate, 0.01)

	assert.Equal(t, 4, result.RevenueImpact.SeatsLost)
	assert.Equal(t, 4*50000, result.RevenueImpact.EstimatedRevenueLost)
}

func TestAnalyzeReservationsDepositRecommendation(t *testing.T) {
	now := time.Now()
	day := now.AddDate(0, 0, -2)
	reservations := []models.Reservation{
		reservation(models.ReservationNoShow, 2, day),
		reservation(models.ReservationCompleted, 2, day),
	}

	result := AnalyzeReservations(reservations, 30000, now)

	var actions []string
	for _, r := range result.Recommendations {
		actions = append(actions, r.Action)
	}
	assert.Contains(t, actions, "require_deposit")
	assert.Contains(t, actions, "send_reminders")
}

func TestAnalyzeReservationsIgnoresOldBookings(t *testing.T) {
	now := time.Now()
	reservations := []models.Reservation{
		reservation(models.ReservationNoShow, 2, now.AddDate(0, 0, -45)),
	}

	result := AnalyzeReservations(reservations, 30000, now)
	assert.Zero(t, result.NoShowAnalysis.TotalReservations)
	assert.Empty(t, result.Recommendations)
}

func TestAnalyzeReservationsEmpty(t *testing.T) {
	result := AnalyzeReservations(nil, 0, time.Now())
	assert.Zero(t, result.NoShowAnalysis.NoShowRate)
	assert.Zero(t, result.RevenueImpact.EstimatedRevenueLost)
	assert.Empty(t, result.Recommendations)
}
