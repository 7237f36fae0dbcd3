package repository

import (
	"time"

	"comanda/internal/apperr"
	"comanda/internal/models"

	"github.com/jinzhu/gorm"
)

// RecordPayment inserts a payment row outside any order check. Used by
// the webhook path, which records whatever the provider sent verbatim.
func (s *Store) RecordPayment(payment *models.Payment) error {
	if err := s.db.Create(payment).Error; err != nil {
		return apperr.Store(err, "Failed to record payment")
	}
	return nil
}

// ApplyPayment records a charge and marks the order PAID in one
// transaction. An unknown order aborts the whole operation, so no
// payment row ever survives the failure. The paid_at stamp is
// conditional on still being null: only the first successful charge
// wins, retries add rows but never move it.
func (s *Store) ApplyPayment(payment *models.Payment) (*models.Order, error) {
	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, apperr.Store(tx.Error, "Failed to start transaction")
	}

	var order models.Order
	if err := tx.Where("id = ?", payment.OrderID).First(&order).Error; err != nil {
		tx.Rollback()
		if gorm.IsRecordNotFoundError(err) {
			return nil, apperr.NotFound("Order not found")
		}
		return nil, apperr.Store(err, "Failed to load order")
	}

	if err := tx.Create(payment).Error; err != nil {
		tx.Rollback()
		return nil, apperr.Store(err, "Failed to record payment")
	}

	if err := tx.Exec(
		"UPDATE orders SET payment_status = ?, paid_at = ? WHERE id = ? AND paid_at IS NULL",
		models.PaymentStatusPaid, time.Now(), payment.OrderID,
	).Error; err != nil {
		tx.Rollback()
		return nil, apperr.Store(err, "Failed to mark order paid")
	}

	if err := tx.Where("id = ?", payment.OrderID).First(&order).Error; err != nil {
		tx.Rollback()
		return nil, apperr.Store(err, "Failed to reload order")
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperr.Store(err, "Failed to commit payment")
	}
	return &order, nil
}
