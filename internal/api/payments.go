package api

import (
	"encoding/json"
	"log"
	"net/http"

	"comanda/internal/apperr"
	"comanda/internal/auth"
	"comanda/internal/models"
	"comanda/internal/realtime"

	"github.com/gin-gonic/gin"
)

type createPaymentRequest struct {
	OrderID     uint   `json:"order_id"`
	AmountCents int64  `json:"amount_cents"`
	Method      string `json:"method"`
}

// CreatePayment handles POST /payments: records a charge and marks the
// order PAID. Only the first payment flips the payment status; retries
// add rows but never move paid_at.
func (s *Server) CreatePayment(c *gin.Context) {
	id, err := s.identity(c)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := auth.Require(id, auth.RoleAdmin); err != nil {
		respondError(c, err)
		return
	}

	var req createPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.OrderID == 0 {
		respondError(c, apperr.Validation("Order id is required"))
		return
	}
	if req.AmountCents <= 0 {
		respondError(c, apperr.Validation("Amount is required"))
		return
	}
	method := req.Method
	if method == "" {
		method = "cash"
	}

	order, err := s.store.ApplyPayment(&models.Payment{
		OrderID:     req.OrderID,
		AmountCents: req.AmountCents,
		Method:      method,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	s.hub.Broadcast(realtime.Event{Table: "orders", Action: "UPDATE", OrderID: order.ID})

	c.JSON(http.StatusOK, gin.H{
		"ok": true,
		"order": gin.H{
			"id":             order.ID,
			"payment_status": order.PaymentStatus,
			"paid_at":        order.PaidAt,
		},
	})
}

type webhookPayload struct {
	OrderID     *uint  `json:"order_id"`
	AmountCents *int64 `json:"amount_cents"`
	Provider    string `json:"provider"`
	Status      string `json:"status"`
	ExternalID  string `json:"external_id"`
	Currency    string `json:"currency"`
}

// PaymentWebhook handles POST /payments/webhook. The provider contract
// is fire-and-forget: the endpoint always acknowledges receipt, whatever
// happens internally. Recognizable payloads are recorded with the raw
// body kept verbatim.
func (s *Server) PaymentWebhook(c *gin.Context) {
	var raw json.RawMessage
	payload := webhookPayload{}
	rawBody := ""
	if err := c.ShouldBindJSON(&raw); err == nil {
		if err := json.Unmarshal(raw, &payload); err == nil {
			rawBody = string(raw)
		}
	}

	if payload.OrderID != nil && payload.AmountCents != nil {
		provider := payload.Provider
		if provider == "" {
			provider = "unknown"
		}
		status := payload.Status
		if status == "" {
			status = "PENDIENTE"
		}
		currency := payload.Currency
		if currency == "" {
			currency = "MXN"
		}

		if err := s.store.RecordPayment(&models.Payment{
			OrderID:     *payload.OrderID,
			AmountCents: *payload.AmountCents,
			Provider:    provider,
			Status:      status,
			ExternalID:  payload.ExternalID,
			Currency:    currency,
			RawJSON:     rawBody,
		}); err != nil {
			log.Printf("Failed to record webhook payment: %v", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
