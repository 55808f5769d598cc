package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chakula/internal/models"
)

func (ts *testServer) createInventoryItem(t *testing.T, name string, qty float64) models.InventoryItem {
	t.Helper()
	resp := ts.request(t, "POST", "/inventory/", map[string]interface{}{
		"item_name":           name,
		"quantity":            qty,
		"unit":                "kg",
		"cost_per_unit":       120.0,
		"low_stock_threshold": 5.0,
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	var item models.InventoryItem
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &item))
	return item
}

func TestReceiveStockRecordsMovement(t *testing.T) {
	ts := newTestServer(t)
	item := ts.createInventoryItem(t, "Maize Flour", 10)

	resp := ts.request(t, "POST", fmt.Sprintf("/inventory/%d/receive", item.ID), map[string]interface{}{
		"quantity":      25.0,
		"cost_per_unit": 130.0,
		"supplier":      "Unga Wholesalers",
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var updated models.InventoryItem
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &updated))
	assert.Equal(t, 35.0, updated.Quantity)
	assert.Equal(t, 130.0, updated.CostPerUnit)

	var movement models.StockMovement
	require.NoError(t, ts.db.Where("inventory_item_id = ?", item.ID).First(&movement).Error)
	assert.Equal(t, models.MovementIn, movement.MovementType)
	assert.Equal(t, 25.0, movement.Quantity)
	assert.Equal(t, "Unga Wholesalers", movement.Supplier)
}

func TestReceiveStockRejectsNonPositive(t *testing.T) {
	ts := newTestServer(t)
	item := ts.createInventoryItem(t, "Maize Flour", 10)

	resp := ts.request(t, "POST", fmt.Sprintf("/inventory/%d/receive", item.ID),
		map[string]interface{}{"quantity": -3.0})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestAdjustStockNegativeIsOutMovement(t *testing.T) {
	ts := newTestServer(t)
	item := ts.createInventoryItem(t, "Beef", 20)

	resp := ts.request(t, "POST", fmt.Sprintf("/inventory/%d/adjust", item.ID), map[string]interface{}{
		"quantity": -4.0,
		"reason":   "kitchen usage",
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var updated models.InventoryItem
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &updated))
	assert.Equal(t, 16.0, updated.Quantity)

	var movement models.StockMovement
	require.NoError(t, ts.db.Where("inventory_item_id = ?", item.ID).First(&movement).Error)
	assert.Equal(t, models.MovementOut, movement.MovementType)
	assert.Equal(t, 4.0, movement.Quantity)
	assert.Equal(t, "kitchen usage", movement.Reason)
}

func TestAdjustStockCannotGoNegative(t *testing.T) {
	ts := newTestServer(t)
	item := ts.createInventoryItem(t, "Beef", 2)

	resp := ts.request(t, "POST", fmt.Sprintf("/inventory/%d/adjust", item.ID), map[string]interface{}{
		"quantity": -5.0,
		"reason":   "waste",
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var unchanged models.InventoryItem
	require.NoError(t, ts.db.First(&unchanged, item.ID).Error)
	assert.Equal(t, 2.0, unchanged.Quantity)
}

func TestReservationLifecycle(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.request(t, "POST", "/reservations/", map[string]interface{}{
		"customer_name":    "Wanjiku",
		"party_size":       4,
		"reservation_date": "2026-09-01",
		"reservation_time": "19:30",
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	var reservation models.Reservation
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &reservation))
	assert.Equal(t, models.ReservationConfirmed, reservation.Status)

	// settle it, then further changes conflict
	resp = ts.request(t, "PATCH", fmt.Sprintf("/reservations/%d/status", reservation.ID),
		map[string]string{"status": "no_show"})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.request(t, "PATCH", fmt.Sprintf("/reservations/%d/status", reservation.ID),
		map[string]string{"status": "completed"})
	assert.Equal(t, http.StatusConflict, resp.Code)
}

func TestReservationKeepsTableNumber(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.request(t, "POST", "/reservations/", map[string]interface{}{
		"customer_name":    "Otieno",
		"party_size":       6,
		"reservation_date": "2026-09-02",
		"reservation_time": "20:00",
		"table_number":     12,
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	var reservation models.Reservation
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &reservation))
	require.NotNil(t, reservation.TableNumber)
	assert.Equal(t, 12, *reservation.TableNumber)

	resp = ts.request(t, "GET", "/reservations/?date=2026-09-02", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	var listed []models.Reservation
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	require.NotNil(t, listed[0].TableNumber)
	assert.Equal(t, 12, *listed[0].TableNumber)
}

func TestReservationRejectsBadDate(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.request(t, "POST", "/reservations/", map[string]interface{}{
		"customer_name":    "Wanjiku",
		"party_size":       2,
		"reservation_date": "01/09/2026",
		"reservation_time": "19:30",
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestAIDashboardEndpoint(t *testing.T) {
	ts := newTestServer(t)
	order := ts.createOrder(t, line(ts.menuID(t, "Ugali Beef"), 2))
	for _, status := range []string{"prep", "ready", "served"} {
		require.Equal(t, http.StatusOK, patchStatus(ts, t, order.ID, status).Code)
	}

	resp := ts.request(t, "GET", "/ai/dashboard", nil)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var dash map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &dash))
	assert.Contains(t, dash, "health_score")
	assert.Contains(t, dash, "quick_stats")
	breakdown, ok := dash["health_breakdown"].([]interface{})
	require.True(t, ok)
	assert.Len(t, breakdown, 5)
}
