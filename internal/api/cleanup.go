package api

import (
	"crypto/subtle"
	"net/http"
	"time"

	"comanda/internal/apperr"
	"comanda/internal/monitoring"

	"github.com/gin-gonic/gin"
)

// RunCleanup handles GET /cleanup: purges orders older than the
// retention window together with their items and payments. Authorized by
// a shared secret in the query string or the x-cron-secret header; an
// unset secret disables the endpoint entirely.
func (s *Server) RunCleanup(c *gin.Context) {
	if !s.cleanupAuthorized(c) {
		respondError(c, apperr.Authentication("Unauthorized"))
		return
	}

	report, err := s.store.PurgeOlderThan(time.Now().Add(-s.retention))
	if err != nil {
		respondError(c, err)
		return
	}
	monitoring.RecordCleanup(report.DeletedOrders, report.DeletedItems, report.DeletedPayments)

	c.JSON(http.StatusOK, report)
}

func (s *Server) cleanupAuthorized(c *gin.Context) bool {
	if s.cleanupSecret == "" {
		return false
	}
	query := c.Query("secret")
	header := c.GetHeader("x-cron-secret")
	return subtle.ConstantTimeCompare([]byte(query), []byte(s.cleanupSecret)) == 1 ||
		subtle.ConstantTimeCompare([]byte(header), []byte(s.cleanupSecret)) == 1
}
