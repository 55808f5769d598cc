package server

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"chakula/internal/models"
)

// Payment providers call these endpoints directly, so they sit outside
// the auth group. Both handlers ack immediately; reconciliation against
// the order happens when the callback carries an order reference.

type mpesaCallback struct {
	TransactionID string `json:"transaction_id"`
	OrderID       uint   `json:"order_id"`
	Amount        int    `json:"amount"`
	Phone         string `json:"phone"`
	ResultCode    int    `json:"result_code"`
}

// MpesaWebhook confirms an M-Pesa payment against its order.
func (s *Server) MpesaWebhook(c *gin.Context) {
	var cb mpesaCallback
	if err := c.ShouldBindJSON(&cb); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	log.Printf("mpesa callback: txn=%s order=%d result=%d", cb.TransactionID, cb.OrderID, cb.ResultCode)
	if cb.ResultCode == 0 && cb.OrderID != 0 {
		var order models.Order
		if err := s.db.First(&order, cb.OrderID).Error; err == nil {
			order.PaymentMethod = models.PaymentMpesa
			if err := s.db.Save(&order).Error; err != nil {
				log.Printf("mpesa callback: order %d update failed: %v", cb.OrderID, err)
			}
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "received"})
}

type stripeEvent struct {
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID       string `json:"id"`
			Metadata struct {
				OrderID uint `json:"order_id,string"`
			} `json:"metadata"`
		} `json:"object"`
	} `json:"data"`
}

// StripeWebhook marks an order card-paid on payment_intent.succeeded.
func (s *Server) StripeWebhook(c *gin.Context) {
	var ev stripeEvent
	if err := c.ShouldBindJSON(&ev); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	log.Printf("stripe event: type=%s id=%s", ev.Type, ev.Data.Object.ID)
	if ev.Type == "payment_intent.succeeded" && ev.Data.Object.Metadata.OrderID != 0 {
		var order models.Order
		if err := s.db.First(&order, ev.Data.Object.Metadata.OrderID).Error; err == nil {
			order.PaymentMethod = models.PaymentCard
			if err := s.db.Save(&order).Error; err != nil {
				log.Printf("stripe event: order %d update failed: %v", ev.Data.Object.Metadata.OrderID, err)
			}
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "received"})
}
