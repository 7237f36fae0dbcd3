package repository

import (
	"time"

	"comanda/internal/apperr"
	"comanda/internal/models"
)

// CleanupReport summarizes one retention purge.
type CleanupReport struct {
	DeletedOrders   int64 `json:"deleted_orders"`
	DeletedItems    int64 `json:"deleted_items"`
	DeletedPayments int64 `json:"deleted_payments"`
	DurationMs      int64 `json:"duration_ms"`
}

// PurgeOlderThan deletes every order created before the cutoff together
// with its items and payments, in one transaction so a failure never
// leaves half an aggregate behind.
func (s *Store) PurgeOlderThan(cutoff time.Time) (CleanupReport, error) {
	start := time.Now()
	report := CleanupReport{}

	var ids []uint
	rows, err := s.db.Model(&models.Order{}).
		Where("created_at < ?", cutoff).
		Select("id").Rows()
	if err != nil {
		return report, apperr.Store(err, "Failed to find expired orders")
	}
	for rows.Next() {
		var id uint
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return report, apperr.Store(err, "Failed to scan expired order id")
		}
		ids = append(ids, id)
	}
	rows.Close()

	if len(ids) == 0 {
		report.DurationMs = time.Since(start).Milliseconds()
		return report, nil
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return report, apperr.Store(tx.Error, "Failed to start cleanup transaction")
	}

	result := tx.Where("order_id IN (?)", ids).Delete(&models.Payment{})
	if result.Error != nil {
		tx.Rollback()
		return report, apperr.Store(result.Error, "Failed to delete payments")
	}
	report.DeletedPayments = result.RowsAffected

	result = tx.Where("order_id IN (?)", ids).Delete(&models.OrderItem{})
	if result.Error != nil {
		tx.Rollback()
		return report, apperr.Store(result.Error, "Failed to delete order items")
	}
	report.DeletedItems = result.RowsAffected

	result = tx.Where("id IN (?)", ids).Delete(&models.Order{})
	if result.Error != nil {
		tx.Rollback()
		return report, apperr.Store(result.Error, "Failed to delete orders")
	}
	report.DeletedOrders = result.RowsAffected

	if err := tx.Commit().Error; err != nil {
		return report, apperr.Store(err, "Failed to commit cleanup")
	}

	report.DurationMs = time.Since(start).Milliseconds()
	return report, nil
}
