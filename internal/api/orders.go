package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"comanda/internal/apperr"
	"comanda/internal/auth"
	"comanda/internal/models"
	"comanda/internal/monitoring"
	"comanda/internal/realtime"
	"comanda/internal/repository"
	"comanda/internal/ticket"
	"comanda/internal/workflow"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type createOrderItemRequest struct {
	ProductID          json.RawMessage `json:"product_id"`
	NameSnapshot       string          `json:"name_snapshot"`
	Name               string          `json:"name"`
	PriceCentsSnapshot *int64          `json:"price_cents_snapshot"`
	PriceCents         *int64          `json:"price_cents"`
	Qty                *int            `json:"qty"`
	Station            string          `json:"station"`
	Status             string          `json:"status"`
	Notes              string          `json:"notes"`
	GroupID            string          `json:"group_id"`
}

type createOrderRequest struct {
	Type             string                   `json:"type"`
	CustomerName     string                   `json:"customer_name"`
	CustomerPhone    string                   `json:"customer_phone"`
	AddressJSON      json.RawMessage          `json:"address_json"`
	Notes            string                   `json:"notes"`
	DeliveryFeeCents json.RawMessage          `json:"delivery_fee_cents"`
	Items            []createOrderItemRequest `json:"items"`
}

// normalizeProductID accepts the three shapes kiosk clients have sent
// over time: a bare integer, an object with a numeric id, or a numeric
// string. Anything else resolves to nil, a weak back-reference being
// optional anyway.
func normalizeProductID(raw json.RawMessage) *uint {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var asInt int64
	if err := json.Unmarshal(raw, &asInt); err == nil {
		if asInt > 0 {
			id := uint(asInt)
			return &id
		}
		return nil
	}

	var asObject struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(raw, &asObject); err == nil && asObject.ID > 0 {
		id := uint(asObject.ID)
		return &id
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		parsed, err := strconv.ParseInt(strings.TrimSpace(asString), 10, 64)
		if err == nil && parsed > 0 {
			id := uint(parsed)
			return &id
		}
	}
	return nil
}

// parseCents accepts an integer or nothing; everything else coerces to 0.
func parseCents(raw json.RawMessage) int64 {
	if len(raw) == 0 || string(raw) == "null" {
		return 0
	}
	var value int64
	if err := json.Unmarshal(raw, &value); err != nil {
		return 0
	}
	return value
}

// CreateOrder handles POST /orders. Requests without identity headers
// are kiosk orders and are limited to DINEIN/TAKEOUT; DELIVERY requires
// ADMIN. Items are normalized and snapshotted; totals are computed
// server-side.
func (s *Server) CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	orderType := models.OrderType(req.Type)
	if !workflow.ValidOrderType(orderType) {
		respondError(c, apperr.Validation("Invalid order type"))
		return
	}

	id, err := s.identity(c)
	isKiosk := false
	if err != nil {
		if !auth.IsMissing(err) {
			respondError(c, err)
			return
		}
		isKiosk = true
	}

	if isKiosk {
		if orderType == models.OrderTypeDelivery {
			respondError(c, apperr.Authentication("Delivery orders require admin role"))
			return
		}
		if orderType != models.OrderTypeDineIn && orderType != models.OrderTypeTakeout {
			respondError(c, apperr.Authentication("Invalid order type for kiosk"))
			return
		}
	} else if orderType == models.OrderTypeDelivery {
		if err := auth.Require(id, auth.RoleAdmin); err != nil {
			respondError(c, err)
			return
		}
	}

	if len(req.Items) == 0 {
		respondError(c, apperr.Validation("Items are required"))
		return
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	// items submitted together without an explicit group share one tag
	sharedGroup := ""
	if len(req.Items) > 1 {
		sharedGroup = uuid.New().String()
	}
	for _, in := range req.Items {
		name := strings.TrimSpace(in.NameSnapshot)
		if name == "" {
			name = strings.TrimSpace(in.Name)
		}
		if name == "" {
			respondError(c, apperr.Validation("Item name is required"))
			return
		}

		price := in.PriceCentsSnapshot
		if price == nil {
			price = in.PriceCents
		}
		if price == nil || *price < 0 {
			respondError(c, apperr.Validation("Invalid item price"))
			return
		}

		qty := 1
		if in.Qty != nil {
			qty = *in.Qty
		}
		if qty <= 0 {
			respondError(c, apperr.Validation("Invalid item qty"))
			return
		}

		station := models.Station(in.Station)
		if station != models.StationGrill && station != models.StationFryer {
			respondError(c, apperr.Validation("Invalid item station"))
			return
		}

		status := models.ItemStatusQueued
		if in.Status != "" {
			status = models.ItemStatus(in.Status)
			if !workflow.ValidItemStatus(status) {
				respondError(c, apperr.Validation("Invalid item status"))
				return
			}
		}

		groupID := in.GroupID
		if groupID == "" {
			groupID = sharedGroup
		}

		items = append(items, models.OrderItem{
			ProductID:          normalizeProductID(in.ProductID),
			NameSnapshot:       name,
			PriceCentsSnapshot: *price,
			Qty:                qty,
			Station:            station,
			Status:             status,
			Notes:              in.Notes,
			GroupID:            groupID,
		})
	}

	order, err := s.store.CreateOrder(repository.NewOrder{
		Type:             orderType,
		CustomerName:     req.CustomerName,
		CustomerPhone:    req.CustomerPhone,
		AddressJSON:      string(req.AddressJSON),
		Notes:            req.Notes,
		DeliveryFeeCents: parseCents(req.DeliveryFeeCents),
		Items:            items,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	monitoring.RecordOrderCreated(string(order.Type))
	s.hub.Broadcast(realtime.Event{Table: "orders", Action: "INSERT", OrderID: order.ID})

	c.JSON(http.StatusCreated, gin.H{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"order":        order,
	})
}

// ListOrders handles GET /orders. Station roles see only orders with at
// least one item at their station, and only those items attached.
func (s *Server) ListOrders(c *gin.Context) {
	id, err := s.identity(c)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := auth.Require(id, auth.RoleAdmin, auth.RoleGrill, auth.RoleFryer, auth.RolePackaging); err != nil {
		respondError(c, err)
		return
	}

	filters := repository.ListFilters{
		Status: models.OrderStatus(c.Query("status")),
		Type:   models.OrderType(c.Query("type")),
		Date:   c.Query("date"),
	}
	if filters.Status != "" && !workflow.ValidOrderStatus(filters.Status) {
		respondError(c, apperr.Validation("Invalid status filter"))
		return
	}
	if filters.Type != "" && !workflow.ValidOrderType(filters.Type) {
		respondError(c, apperr.Validation("Invalid type filter"))
		return
	}

	orders, err := s.store.ListOrders(stationOf(id), filters)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GetOrder handles GET /orders/:id with the same role scoping as the
// listing; invisibility is a 404, not a 403.
func (s *Server) GetOrder(c *gin.Context) {
	id, err := s.identity(c)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := auth.Require(id, auth.RoleAdmin, auth.RoleGrill, auth.RoleFryer, auth.RolePackaging); err != nil {
		respondError(c, err)
		return
	}

	orderID, err := parseID(c.Param("id"))
	if err != nil {
		respondError(c, apperr.Validation("Invalid order id"))
		return
	}

	order, err := s.store.GetOrder(orderID, stationOf(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

type setOrderStatusRequest struct {
	Status string `json:"status"`
}

// SetOrderStatus handles PATCH /orders/:id. ADMIN may set anything in
// the enum; EMPAQUETADO only its packing-onward subset. The returned
// projection is scoped to the caller's role.
func (s *Server) SetOrderStatus(c *gin.Context) {
	id, err := s.identity(c)
	if err != nil {
		respondError(c, err)
		return
	}

	orderID, err := parseID(c.Param("id"))
	if err != nil {
		respondError(c, apperr.Validation("Invalid order id"))
		return
	}

	var req setOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	next := models.OrderStatus(req.Status)
	if !workflow.ValidOrderStatus(next) {
		respondError(c, apperr.Validation("Invalid status"))
		return
	}

	if err := workflow.CheckOrderAccess(id, next); err != nil {
		respondError(c, err)
		return
	}

	current, err := s.store.GetOrder(orderID, nil)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := s.rules.CheckOrderTransition(current.Status, next, current.Type); err != nil {
		respondError(c, err)
		return
	}

	if err := s.store.SetOrderStatus(orderID, next); err != nil {
		respondError(c, err)
		return
	}
	s.hub.Broadcast(realtime.Event{Table: "orders", Action: "UPDATE", OrderID: orderID})

	order, err := s.store.GetOrder(orderID, stationOf(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

type markPrintedRequest struct {
	Type string `json:"type"`
}

// MarkPrinted handles PATCH /orders/:id/printed. First print wins; a
// kiosk caller may only set the customer copy.
func (s *Server) MarkPrinted(c *gin.Context) {
	isKiosk := false
	if id, err := s.identity(c); err != nil {
		if !auth.IsMissing(err) {
			respondError(c, err)
			return
		}
		isKiosk = true
	} else if err := auth.Require(id, auth.RoleAdmin, auth.RolePackaging); err != nil {
		respondError(c, err)
		return
	}

	orderID, err := parseID(c.Param("id"))
	if err != nil {
		respondError(c, apperr.Validation("Invalid order id"))
		return
	}

	var req markPrintedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	printType := repository.PrintType(req.Type)
	if printType != repository.PrintCustomer && printType != repository.PrintPackaging {
		respondError(c, apperr.Validation("Invalid print type"))
		return
	}
	if isKiosk && printType != repository.PrintCustomer {
		respondError(c, apperr.Authorization("Forbidden"))
		return
	}

	order, err := s.store.MarkPrinted(orderID, printType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"printed_customer_at":  order.PrintedCustomerAt,
		"printed_packaging_at": order.PrintedPackagingAt,
	})
}

// GetTicket handles GET /orders/:id/ticket, returning the receipt text
// and its print deep link. The ticket always carries the full item set.
func (s *Server) GetTicket(c *gin.Context) {
	id, err := s.identity(c)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := auth.Require(id, auth.RoleAdmin, auth.RoleGrill, auth.RoleFryer, auth.RolePackaging); err != nil {
		respondError(c, err)
		return
	}

	orderID, err := parseID(c.Param("id"))
	if err != nil {
		respondError(c, apperr.Validation("Invalid order id"))
		return
	}

	order, err := s.store.GetOrder(orderID, nil)
	if err != nil {
		respondError(c, err)
		return
	}

	text := ticket.Build(order)
	deepLink, err := ticket.RawBTURL(text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ticket_text": text, "rawbt_url": deepLink})
}

// stationOf returns the station scope for station-bound roles, nil for
// ADMIN and EMPAQUETADO.
func stationOf(id auth.Identity) *models.Station {
	if station, bound := id.Role.Station(); bound {
		return &station
	}
	return nil
}

func parseID(raw string) (uint, error) {
	parsed, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || parsed == 0 {
		return 0, apperr.Validation("Invalid id")
	}
	return uint(parsed), nil
}
