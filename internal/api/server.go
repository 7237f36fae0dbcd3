// Package api wires the HTTP surface: order and item workflow endpoints,
// payments, the catalog, tickets, cleanup and the change-event socket.
package api

import (
	"net/http"
	"time"

	"comanda/internal/apperr"
	"comanda/internal/auth"
	"comanda/internal/monitoring"
	"comanda/internal/realtime"
	"comanda/internal/repository"
	"comanda/internal/workflow"

	"github.com/gin-gonic/gin"
)

// Server holds the handler dependencies, injected at startup.
type Server struct {
	Router *gin.Engine

	store         *repository.Store
	hub           *realtime.Hub
	rules         workflow.Rules
	cleanupSecret string
	retention     time.Duration
}

// NewServer builds the router. The store and hub are owned by the caller;
// the server only uses them.
func NewServer(store *repository.Store, hub *realtime.Hub, rules workflow.Rules, cleanupSecret string, retention time.Duration) *Server {
	s := &Server{
		Router:        gin.Default(),
		store:         store,
		hub:           hub,
		rules:         rules,
		cleanupSecret: cleanupSecret,
		retention:     retention,
	}
	s.Router.Use(monitoring.Middleware())
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.Router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	s.Router.POST("/orders", s.CreateOrder)
	s.Router.GET("/orders", s.ListOrders)
	s.Router.GET("/orders/:id", s.GetOrder)
	s.Router.PATCH("/orders/:id", s.SetOrderStatus)
	s.Router.PATCH("/orders/:id/printed", s.MarkPrinted)
	s.Router.GET("/orders/:id/ticket", s.GetTicket)

	s.Router.PATCH("/order-items/:id", s.SetItemStatus)

	s.Router.POST("/payments", s.CreatePayment)
	s.Router.POST("/payments/webhook", s.PaymentWebhook)

	s.Router.GET("/products", s.ListProducts)
	s.Router.GET("/cleanup", s.RunCleanup)

	s.Router.GET("/ws", s.hub.ServeWS)
}

// identity resolves the caller from the two asserted-identity headers.
func (s *Server) identity(c *gin.Context) (auth.Identity, error) {
	return auth.FromHeaders(c.GetHeader(auth.HeaderRole), c.GetHeader(auth.HeaderUserID))
}

// respondError maps a classified error onto the JSON error shape.
func respondError(c *gin.Context, err error) {
	c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
}
