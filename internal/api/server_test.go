package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"comanda/internal/database"
	"comanda/internal/models"
	"comanda/internal/realtime"
	"comanda/internal/repository"
	"comanda/internal/workflow"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testCleanupSecret = "test-secret"

func newTestServer(t *testing.T) *Server {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "api.db") + "?_busy_timeout=5000"
	db, err := database.Open("sqlite3", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.Seed(db))

	hub := realtime.NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	return NewServer(repository.NewStore(db), hub, workflow.Rules{}, testCleanupSecret, time.Hour)
}

// do performs one request against the router. Headers come in pairs.
func do(t *testing.T, s *Server, method, path string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	require.Zero(t, len(headers)%2, "headers must come in pairs")
	for i := 0; i < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func asAdmin() []string     { return []string{"x-role", "ADMIN", "x-user-id", "1"} }
func asGrill() []string     { return []string{"x-role", "PLANCHA", "x-user-id", "2"} }
func asFryer() []string     { return []string{"x-role", "FREIDORA", "x-user-id", "3"} }
func asPackaging() []string { return []string{"x-role", "EMPAQUETADO", "x-user-id", "4"} }

type orderResponse struct {
	OrderID     uint         `json:"order_id"`
	OrderNumber int          `json:"order_number"`
	Order       models.Order `json:"order"`
}

func kioskOrderBody() map[string]interface{} {
	return map[string]interface{}{
		"type": "TAKEOUT",
		"items": []map[string]interface{}{
			{"product_id": 1, "name": "Hamburguesa clásica", "price_cents": 9900, "qty": 1, "station": "PLANCHA"},
			{"product_id": "4", "name_snapshot": "Papas", "price_cents_snapshot": 4500, "qty": 2, "station": "FREIDORA"},
		},
	}
}

func createKioskOrder(t *testing.T, s *Server) orderResponse {
	t.Helper()
	w := do(t, s, http.MethodPost, "/orders", kioskOrderBody())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp orderResponse
	decode(t, w, &resp)
	return resp
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w := do(t, s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestKioskOrderLifecycle(t *testing.T) {
	s := newTestServer(t)

	resp := createKioskOrder(t, s)
	assert.Equal(t, 1, resp.OrderNumber)
	assert.Equal(t, models.OrderStatusReceived, resp.Order.Status)
	assert.Equal(t, models.PaymentStatusAwaiting, resp.Order.PaymentStatus)
	assert.Equal(t, int64(18900), resp.Order.TotalCents)
	require.Len(t, resp.Order.Items, 2)

	// both product_id shapes resolved to a back-reference
	for _, item := range resp.Order.Items {
		require.NotNil(t, item.ProductID)
	}
	// items submitted together share one group tag
	assert.NotEmpty(t, resp.Order.Items[0].GroupID)
	assert.Equal(t, resp.Order.Items[0].GroupID, resp.Order.Items[1].GroupID)

	var grillItem, fryerItem models.OrderItem
	for _, item := range resp.Order.Items {
		if item.Station == models.StationGrill {
			grillItem = item
		} else {
			fryerItem = item
		}
	}

	// grill works its item
	w := do(t, s, http.MethodPatch, fmt.Sprintf("/order-items/%d", grillItem.ID),
		gin.H{"status": "EN_PREPARACION"}, asGrill()...)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = do(t, s, http.MethodPatch, fmt.Sprintf("/order-items/%d", grillItem.ID),
		gin.H{"status": "LISTO"}, asGrill()...)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// the fryer item is still open, so the order has not advanced
	var getResp struct {
		Order models.Order `json:"order"`
	}
	w = do(t, s, http.MethodGet, fmt.Sprintf("/orders/%d", resp.OrderID), nil, asAdmin()...)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &getResp)
	assert.Equal(t, models.OrderStatusReceived, getResp.Order.Status)

	// last item done promotes the order
	w = do(t, s, http.MethodPatch, fmt.Sprintf("/order-items/%d", fryerItem.ID),
		gin.H{"status": "LISTO"}, asFryer()...)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, s, http.MethodGet, fmt.Sprintf("/orders/%d", resp.OrderID), nil, asAdmin()...)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &getResp)
	assert.Equal(t, models.OrderStatusReadyToPack, getResp.Order.Status)

	// packaging walks the order to the end; TAKEOUT skips EN_REPARTO
	for _, next := range []string{"EMPACANDO", "LISTO_PARA_ENTREGAR", "ENTREGADO"} {
		w = do(t, s, http.MethodPatch, fmt.Sprintf("/orders/%d", resp.OrderID),
			gin.H{"status": next}, asPackaging()...)
		require.Equal(t, http.StatusOK, w.Code, "status %s: %s", next, w.Body.String())
	}

	w = do(t, s, http.MethodGet, fmt.Sprintf("/orders/%d", resp.OrderID), nil, asAdmin()...)
	decode(t, w, &getResp)
	assert.Equal(t, models.OrderStatusDelivered, getResp.Order.Status)
}

func TestCreateOrderKioskDeliveryRejected(t *testing.T) {
	s := newTestServer(t)

	body := kioskOrderBody()
	body["type"] = "DELIVERY"
	w := do(t, s, http.MethodPost, "/orders", body)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// same payload is fine for ADMIN
	body["customer_name"] = "Ana"
	body["delivery_fee_cents"] = 3500
	w = do(t, s, http.MethodPost, "/orders", body, asAdmin()...)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp orderResponse
	decode(t, w, &resp)
	assert.Equal(t, models.OrderTypeDelivery, resp.Order.Type)
	assert.Equal(t, int64(22400), resp.Order.TotalCents)
}

func TestCreateOrderNonAdminDeliveryForbidden(t *testing.T) {
	s := newTestServer(t)
	body := kioskOrderBody()
	body["type"] = "DELIVERY"
	w := do(t, s, http.MethodPost, "/orders", body, asGrill()...)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCreateOrderValidation(t *testing.T) {
	s := newTestServer(t)

	cases := []struct {
		name string
		body map[string]interface{}
	}{
		{"invalid type", map[string]interface{}{"type": "DRIVE_THRU", "items": kioskOrderBody()["items"]}},
		{"no items", map[string]interface{}{"type": "TAKEOUT", "items": []map[string]interface{}{}}},
		{"missing name", map[string]interface{}{"type": "TAKEOUT", "items": []map[string]interface{}{
			{"price_cents": 9900, "station": "PLANCHA"},
		}}},
		{"missing price", map[string]interface{}{"type": "TAKEOUT", "items": []map[string]interface{}{
			{"name": "Hamburguesa", "station": "PLANCHA"},
		}}},
		{"negative price", map[string]interface{}{"type": "TAKEOUT", "items": []map[string]interface{}{
			{"name": "Hamburguesa", "price_cents": -100, "station": "PLANCHA"},
		}}},
		{"zero qty", map[string]interface{}{"type": "TAKEOUT", "items": []map[string]interface{}{
			{"name": "Hamburguesa", "price_cents": 9900, "qty": 0, "station": "PLANCHA"},
		}}},
		{"bad station", map[string]interface{}{"type": "TAKEOUT", "items": []map[string]interface{}{
			{"name": "Hamburguesa", "price_cents": 9900, "station": "HORNO"},
		}}},
		{"bad item status", map[string]interface{}{"type": "TAKEOUT", "items": []map[string]interface{}{
			{"name": "Hamburguesa", "price_cents": 9900, "station": "PLANCHA", "status": "COCINANDO"},
		}}},
	}

	for _, tc := range cases {
		w := do(t, s, http.MethodPost, "/orders", tc.body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "%s: %s", tc.name, w.Body.String())

		var errResp struct {
			Error string `json:"error"`
		}
		decode(t, w, &errResp)
		assert.NotEmpty(t, errResp.Error, tc.name)
	}
}

func TestCreateOrderDefaultQty(t *testing.T) {
	s := newTestServer(t)
	w := do(t, s, http.MethodPost, "/orders", map[string]interface{}{
		"type": "DINEIN",
		"items": []map[string]interface{}{
			{"name": "Torta", "price_cents": 10500, "station": "PLANCHA"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp orderResponse
	decode(t, w, &resp)
	require.Len(t, resp.Order.Items, 1)
	assert.Equal(t, 1, resp.Order.Items[0].Qty)
	// a single item gets no synthetic group tag
	assert.Empty(t, resp.Order.Items[0].GroupID)
}

func TestSetItemStatusCrossStationForbidden(t *testing.T) {
	s := newTestServer(t)
	resp := createKioskOrder(t, s)

	var fryerItem models.OrderItem
	for _, item := range resp.Order.Items {
		if item.Station == models.StationFryer {
			fryerItem = item
		}
	}

	w := do(t, s, http.MethodPatch, fmt.Sprintf("/order-items/%d", fryerItem.ID),
		gin.H{"status": "LISTO"}, asGrill()...)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// packaging never touches items
	w = do(t, s, http.MethodPatch, fmt.Sprintf("/order-items/%d", fryerItem.ID),
		gin.H{"status": "LISTO"}, asPackaging()...)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// kiosk callers neither
	w = do(t, s, http.MethodPatch, fmt.Sprintf("/order-items/%d", fryerItem.ID),
		gin.H{"status": "LISTO"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSetItemStatusNotFound(t *testing.T) {
	s := newTestServer(t)
	w := do(t, s, http.MethodPatch, "/order-items/999", gin.H{"status": "LISTO"}, asAdmin()...)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, s, http.MethodPatch, "/order-items/abc", gin.H{"status": "LISTO"}, asAdmin()...)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListOrdersAuth(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodGet, "/orders", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(t, s, http.MethodGet, "/orders", nil, "x-role", "CAJERO", "x-user-id", "9")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(t, s, http.MethodGet, "/orders", nil, asGrill()...)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListOrdersStationScoped(t *testing.T) {
	s := newTestServer(t)
	createKioskOrder(t, s)

	// an order with only a fryer item is invisible to the grill
	w := do(t, s, http.MethodPost, "/orders", map[string]interface{}{
		"type": "DINEIN",
		"items": []map[string]interface{}{
			{"name": "Alitas", "price_cents": 8900, "station": "FREIDORA"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var listResp struct {
		Orders []models.Order `json:"orders"`
	}
	w = do(t, s, http.MethodGet, "/orders", nil, asGrill()...)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &listResp)
	require.Len(t, listResp.Orders, 1)
	for _, item := range listResp.Orders[0].Items {
		assert.Equal(t, models.StationGrill, item.Station)
	}

	w = do(t, s, http.MethodGet, "/orders", nil, asAdmin()...)
	decode(t, w, &listResp)
	assert.Len(t, listResp.Orders, 2)
}

func TestListOrdersFilterValidation(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodGet, "/orders?status=BOGUS", nil, asAdmin()...)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, s, http.MethodGet, "/orders?type=BOGUS", nil, asAdmin()...)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, s, http.MethodGet, "/orders?status=RECIBIDO&type=TAKEOUT", nil, asAdmin()...)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSetOrderStatusAccess(t *testing.T) {
	s := newTestServer(t)
	resp := createKioskOrder(t, s)
	path := fmt.Sprintf("/orders/%d", resp.OrderID)

	// packaging cannot reach into the kitchen part of the pipeline
	w := do(t, s, http.MethodPatch, path, gin.H{"status": "EN_PROCESO"}, asPackaging()...)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// station roles cannot set order statuses at all
	w = do(t, s, http.MethodPatch, path, gin.H{"status": "EMPACANDO"}, asGrill()...)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// out-of-enum is rejected before anything else
	w = do(t, s, http.MethodPatch, path, gin.H{"status": "PERDIDO"}, asAdmin()...)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// admin may move the order anywhere in the enum
	w = do(t, s, http.MethodPatch, path, gin.H{"status": "EN_PROCESO"}, asAdmin()...)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, s, http.MethodPatch, "/orders/999", gin.H{"status": "EMPACANDO"}, asAdmin()...)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMarkPrinted(t *testing.T) {
	s := newTestServer(t)
	resp := createKioskOrder(t, s)
	path := fmt.Sprintf("/orders/%d/printed", resp.OrderID)

	// kiosk may print the customer copy
	w := do(t, s, http.MethodPatch, path, gin.H{"type": "customer"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var printResp struct {
		PrintedCustomerAt  *time.Time `json:"printed_customer_at"`
		PrintedPackagingAt *time.Time `json:"printed_packaging_at"`
	}
	decode(t, w, &printResp)
	require.NotNil(t, printResp.PrintedCustomerAt)
	assert.Nil(t, printResp.PrintedPackagingAt)
	first := *printResp.PrintedCustomerAt

	// but not the packaging copy
	w = do(t, s, http.MethodPatch, path, gin.H{"type": "packaging"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// packaging may; first print still wins for the customer copy
	w = do(t, s, http.MethodPatch, path, gin.H{"type": "packaging"}, asPackaging()...)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, s, http.MethodPatch, path, gin.H{"type": "customer"}, asPackaging()...)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &printResp)
	assert.True(t, first.Equal(*printResp.PrintedCustomerAt))

	w = do(t, s, http.MethodPatch, path, gin.H{"type": "kitchen"}, asPackaging()...)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// station roles cannot print
	w = do(t, s, http.MethodPatch, path, gin.H{"type": "customer"}, asGrill()...)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGetTicket(t *testing.T) {
	s := newTestServer(t)
	resp := createKioskOrder(t, s)
	path := fmt.Sprintf("/orders/%d/ticket", resp.OrderID)

	w := do(t, s, http.MethodGet, path, nil, asAdmin()...)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var ticketResp struct {
		TicketText string `json:"ticket_text"`
		RawBTURL   string `json:"rawbt_url"`
	}
	decode(t, w, &ticketResp)
	assert.Contains(t, ticketResp.TicketText, "Ticket de pedido")
	assert.Contains(t, ticketResp.TicketText, "Pedido #001")
	assert.Contains(t, ticketResp.TicketText, "Para llevar")
	assert.True(t, strings.HasPrefix(ticketResp.RawBTURL, "rawbt:base64,"))

	// the ticket carries every item regardless of the caller's station
	w = do(t, s, http.MethodGet, path, nil, asGrill()...)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &ticketResp)
	assert.Contains(t, ticketResp.TicketText, "Hamburguesa clásica")
	assert.Contains(t, ticketResp.TicketText, "Papas")

	w = do(t, s, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreatePayment(t *testing.T) {
	s := newTestServer(t)
	resp := createKioskOrder(t, s)

	w := do(t, s, http.MethodPost, "/payments",
		gin.H{"order_id": resp.OrderID, "amount_cents": resp.Order.TotalCents}, asAdmin()...)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var payResp struct {
		OK    bool `json:"ok"`
		Order struct {
			ID            uint                 `json:"id"`
			PaymentStatus models.PaymentStatus `json:"payment_status"`
			PaidAt        *time.Time           `json:"paid_at"`
		} `json:"order"`
	}
	decode(t, w, &payResp)
	assert.True(t, payResp.OK)
	assert.Equal(t, models.PaymentStatusPaid, payResp.Order.PaymentStatus)
	require.NotNil(t, payResp.Order.PaidAt)

	// only admin charges
	w = do(t, s, http.MethodPost, "/payments",
		gin.H{"order_id": resp.OrderID, "amount_cents": 100}, asPackaging()...)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(t, s, http.MethodPost, "/payments", gin.H{"amount_cents": 100}, asAdmin()...)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, s, http.MethodPost, "/payments", gin.H{"order_id": resp.OrderID}, asAdmin()...)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, s, http.MethodPost, "/payments",
		gin.H{"order_id": 999, "amount_cents": 100}, asAdmin()...)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// the failed charge aborted as a whole: no payment row was left behind
	var count int64
	require.NoError(t, s.store.DB().Model(&models.Payment{}).Where("order_id = ?", 999).Count(&count).Error)
	assert.Zero(t, count)
}

func TestPaymentWebhookAlwaysAcknowledges(t *testing.T) {
	s := newTestServer(t)
	resp := createKioskOrder(t, s)

	// a recognizable payload is recorded
	w := do(t, s, http.MethodPost, "/payments/webhook",
		gin.H{"order_id": resp.OrderID, "amount_cents": resp.Order.TotalCents, "external_id": "ch_123"})
	require.Equal(t, http.StatusOK, w.Code)
	var ack struct {
		Received bool `json:"received"`
	}
	decode(t, w, &ack)
	assert.True(t, ack.Received)

	// garbage is acknowledged too; the provider must never retry forever
	req := httptest.NewRequest(http.MethodPost, "/payments/webhook", strings.NewReader("not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// so is a payload about an order we do not know
	w = do(t, s, http.MethodPost, "/payments/webhook", gin.H{"order_id": 424242, "amount_cents": 100})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListProducts(t *testing.T) {
	s := newTestServer(t)

	// no identity headers needed: the kiosk renders the menu from this
	w := do(t, s, http.MethodGet, "/products", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []models.Product `json:"data"`
	}
	decode(t, w, &resp)
	require.NotEmpty(t, resp.Data)
	assert.Equal(t, "Hamburguesa clásica", resp.Data[0].Name)
}

func TestRunCleanup(t *testing.T) {
	s := newTestServer(t)
	resp := createKioskOrder(t, s)

	w := do(t, s, http.MethodGet, "/cleanup", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(t, s, http.MethodGet, "/cleanup?secret=wrong", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// fresh orders survive the purge
	w = do(t, s, http.MethodGet, "/cleanup?secret="+testCleanupSecret, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var report repository.CleanupReport
	decode(t, w, &report)
	assert.Zero(t, report.DeletedOrders)

	// age the order past retention; the header form works too
	stale := time.Now().Add(-2 * time.Hour)
	require.NoError(t, s.store.DB().Exec("UPDATE orders SET created_at = ? WHERE id = ?", stale, resp.OrderID).Error)

	w = do(t, s, http.MethodGet, "/cleanup", nil, "x-cron-secret", testCleanupSecret)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &report)
	assert.Equal(t, int64(1), report.DeletedOrders)
	assert.Equal(t, int64(2), report.DeletedItems)
}

func TestRunCleanupDisabledWithoutSecret(t *testing.T) {
	s := newTestServer(t)
	s.cleanupSecret = ""

	w := do(t, s, http.MethodGet, "/cleanup?secret=", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestNormalizeProductID(t *testing.T) {
	cases := []struct {
		raw  string
		want *uint
	}{
		{`7`, uintPtr(7)},
		{`{"id": 7}`, uintPtr(7)},
		{`"7"`, uintPtr(7)},
		{`" 7 "`, uintPtr(7)},
		{`null`, nil},
		{``, nil},
		{`0`, nil},
		{`-3`, nil},
		{`"abc"`, nil},
		{`{"sku": "x"}`, nil},
		{`[7]`, nil},
	}
	for _, tc := range cases {
		got := normalizeProductID(json.RawMessage(tc.raw))
		if tc.want == nil {
			assert.Nil(t, got, "raw=%q", tc.raw)
		} else {
			require.NotNil(t, got, "raw=%q", tc.raw)
			assert.Equal(t, *tc.want, *got, "raw=%q", tc.raw)
		}
	}
}

func uintPtr(v uint) *uint { return &v }
