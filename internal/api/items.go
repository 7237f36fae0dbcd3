package api

import (
	"net/http"

	"comanda/internal/apperr"
	"comanda/internal/models"
	"comanda/internal/monitoring"
	"comanda/internal/realtime"
	"comanda/internal/workflow"

	"github.com/gin-gonic/gin"
)

type setItemStatusRequest struct {
	Status string `json:"status"`
}

// SetItemStatus handles PATCH /order-items/:id. The item is addressed by
// its numeric row id. Only kitchen roles may call, a station role only
// for its own station's items; a mismatch is Forbidden, never Not-Found.
// Reaching LISTO runs the completion cascade inside the same
// transaction as the item write.
func (s *Server) SetItemStatus(c *gin.Context) {
	id, err := s.identity(c)
	if err != nil {
		respondError(c, err)
		return
	}

	itemID, err := parseID(c.Param("id"))
	if err != nil {
		respondError(c, apperr.Validation("Invalid item id"))
		return
	}

	var req setItemStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	next := models.ItemStatus(req.Status)
	if !workflow.ValidItemStatus(next) {
		respondError(c, apperr.Validation("Invalid status"))
		return
	}

	item, err := s.store.GetItem(itemID)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := workflow.CheckItemAccess(id, item.Station); err != nil {
		respondError(c, err)
		return
	}
	if err := s.rules.CheckItemTransition(item.Status, next); err != nil {
		respondError(c, err)
		return
	}

	updated, promoted, err := s.store.SetItemStatus(itemID, next)
	if err != nil {
		respondError(c, err)
		return
	}

	monitoring.RecordItemTransition(string(updated.Station), string(updated.Status))
	s.hub.Broadcast(realtime.Event{Table: "order_items", Action: "UPDATE", OrderID: updated.OrderID, ItemID: updated.ID})
	if promoted {
		monitoring.RecordCascadePromotion()
		s.hub.Broadcast(realtime.Event{Table: "orders", Action: "UPDATE", OrderID: updated.OrderID})
	}

	c.JSON(http.StatusOK, gin.H{"item": updated})
}
