package repository

import (
	"comanda/internal/apperr"
	"comanda/internal/models"
)

// ListProducts returns the full catalog ordered by id.
func (s *Store) ListProducts() ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Order("id asc").Find(&products).Error; err != nil {
		return nil, apperr.Store(err, "Failed to list products")
	}
	return products, nil
}
