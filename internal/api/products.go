package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListProducts handles GET /products: the read-only catalog, open to any
// caller so the kiosk can render its menu without identity headers.
func (s *Server) ListProducts(c *gin.Context) {
	products, err := s.store.ListProducts()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": products})
}
