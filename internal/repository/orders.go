package repository

import (
	"time"

	"comanda/internal/apperr"
	"comanda/internal/models"
	"comanda/internal/workflow"

	"github.com/jinzhu/gorm"
)

// orderNumberAttempts bounds the retry loop when two creations on the
// same day race for the same order number.
const orderNumberAttempts = 8

// NewOrder is the validated input for order creation. Items carry their
// snapshots already normalized; totals are computed here, never trusted
// from the caller.
type NewOrder struct {
	Type             models.OrderType
	CustomerName     string
	CustomerPhone    string
	AddressJSON      string
	Notes            string
	DeliveryFeeCents int64
	Items            []models.OrderItem
}

// ListFilters narrows an order listing. Zero values mean "no filter".
type ListFilters struct {
	Status models.OrderStatus
	Type   models.OrderType
	Date   string
}

// CreateOrder persists the order and all its items in one transaction.
// The per-day order number is allocated inside the same transaction and
// backed by a unique index on (order_date, order_number); a lost race
// rolls back and retries with a fresh number.
func (s *Store) CreateOrder(n NewOrder) (*models.Order, error) {
	var subtotal int64
	for _, item := range n.Items {
		subtotal += item.PriceCentsSnapshot * int64(item.Qty)
	}

	now := time.Now()
	order := models.Order{
		OrderDate:        now.Format("2006-01-02"),
		Type:             n.Type,
		Status:           models.OrderStatusReceived,
		PaymentStatus:    models.PaymentStatusAwaiting,
		CustomerName:     n.CustomerName,
		CustomerPhone:    n.CustomerPhone,
		AddressJSON:      n.AddressJSON,
		Notes:            n.Notes,
		SubtotalCents:    subtotal,
		DeliveryFeeCents: n.DeliveryFeeCents,
		TotalCents:       subtotal + n.DeliveryFeeCents,
	}

	var lastErr error
	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		created, err := s.createOrderOnce(order, n.Items)
		if err == nil {
			return created, nil
		}
		if !isRetryableWrite(err) {
			return nil, apperr.Store(err, "Failed to create order")
		}
		lastErr = err
		time.Sleep(time.Duration(attempt+1) * 10 * time.Millisecond)
	}
	return nil, apperr.Conflict("Could not allocate order number: %v", lastErr)
}

func (s *Store) createOrderOnce(order models.Order, items []models.OrderItem) (*models.Order, error) {
	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	var maxNumber int
	row := tx.Raw(
		"SELECT COALESCE(MAX(order_number), 0) FROM orders WHERE order_date = ?",
		order.OrderDate,
	).Row()
	if err := row.Scan(&maxNumber); err != nil {
		tx.Rollback()
		return nil, err
	}
	order.OrderNumber = maxNumber + 1
	order.Items = nil

	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	for i := range items {
		items[i].ID = 0
		items[i].OrderID = order.ID
		if items[i].Status == "" {
			items[i].Status = models.ItemStatusQueued
		}
		if err := tx.Create(&items[i]).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	order.Items = items
	return &order, nil
}

// ListOrders returns orders newest first with items attached. When a
// station is given, only that station's items are attached and orders
// with none of them are dropped entirely.
func (s *Store) ListOrders(station *models.Station, filters ListFilters) ([]models.Order, error) {
	query := s.db.Order("created_at desc")
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.Type != "" {
		query = query.Where("type = ?", filters.Type)
	}
	if filters.Date != "" {
		query = query.Where("order_date = ?", filters.Date)
	}
	if station != nil {
		query = query.Preload("Items", "station = ?", *station)
	} else {
		query = query.Preload("Items")
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, apperr.Store(err, "Failed to list orders")
	}

	result := make([]models.Order, 0, len(orders))
	for _, order := range orders {
		if station != nil && len(order.Items) == 0 {
			continue
		}
		if order.Items == nil {
			order.Items = []models.OrderItem{}
		}
		result = append(result, order)
	}
	return result, nil
}

// GetOrder fetches one order with role-scoped items. A station that has
// no items in the order gets Not-Found, not Forbidden: station screens
// cannot learn whether the order exists at all.
func (s *Store) GetOrder(orderID uint, station *models.Station) (*models.Order, error) {
	query := s.db
	if station != nil {
		query = query.Preload("Items", "station = ?", *station)
	} else {
		query = query.Preload("Items")
	}

	var order models.Order
	if err := query.Where("id = ?", orderID).First(&order).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, apperr.NotFound("Not found")
		}
		return nil, apperr.Store(err, "Failed to load order")
	}
	if station != nil && len(order.Items) == 0 {
		return nil, apperr.NotFound("Not found")
	}
	if order.Items == nil {
		order.Items = []models.OrderItem{}
	}
	return &order, nil
}

// GetItem fetches one order item by its numeric row id.
func (s *Store) GetItem(itemID uint) (*models.OrderItem, error) {
	var item models.OrderItem
	if err := s.db.Where("id = ?", itemID).First(&item).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, apperr.NotFound("Order item not found")
		}
		return nil, apperr.Store(err, "Failed to load order item")
	}
	return &item, nil
}

// SetItemStatus writes the item status and, when the item reaches LISTO,
// runs the completion cascade. Both writes share one transaction: the
// promotion is a single conditional UPDATE that fires only if no sibling
// remains unfinished and the order is still in a promotable status, so
// two racing last items promote exactly once.
func (s *Store) SetItemStatus(itemID uint, next models.ItemStatus) (*models.OrderItem, bool, error) {
	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, false, apperr.Store(tx.Error, "Failed to start transaction")
	}

	var item models.OrderItem
	if err := tx.Where("id = ?", itemID).First(&item).Error; err != nil {
		tx.Rollback()
		if gorm.IsRecordNotFoundError(err) {
			return nil, false, apperr.NotFound("Order item not found")
		}
		return nil, false, apperr.Store(err, "Failed to load order item")
	}

	// Under read-committed isolation two sibling items racing to LISTO
	// could both miss the other's uncommitted write and skip the
	// promotion. Locking the parent row serializes the cascades; SQLite
	// already serializes writers at the database level.
	if s.db.Dialect().GetName() == "postgres" {
		if err := tx.Exec("SELECT 1 FROM orders WHERE id = ? FOR UPDATE", item.OrderID).Error; err != nil {
			tx.Rollback()
			return nil, false, apperr.Store(err, "Failed to lock order")
		}
	}

	now := time.Now()
	if err := tx.Model(&item).Updates(map[string]interface{}{
		"status":     next,
		"updated_at": now,
	}).Error; err != nil {
		tx.Rollback()
		return nil, false, apperr.Store(err, "Failed to update order item")
	}

	promoted := false
	if next == models.ItemStatusReady {
		result := tx.Exec(
			`UPDATE orders SET status = ?, updated_at = ?
			 WHERE id = ? AND status IN (?, ?)
			 AND NOT EXISTS (
			   SELECT 1 FROM order_items
			   WHERE order_items.order_id = orders.id AND order_items.status <> ?
			 )`,
			models.OrderStatusReadyToPack, now,
			item.OrderID,
			workflow.PromotableStatuses[0], workflow.PromotableStatuses[1],
			models.ItemStatusReady,
		)
		if result.Error != nil {
			tx.Rollback()
			return nil, false, apperr.Store(result.Error, "Failed to promote order")
		}
		promoted = result.RowsAffected > 0
	}

	if err := tx.Commit().Error; err != nil {
		return nil, false, apperr.Store(err, "Failed to commit item update")
	}

	item.Status = next
	item.UpdatedAt = now
	return &item, promoted, nil
}

// SetOrderStatus writes the order status. Legality of the transition is
// the caller's concern; this only requires the order to exist.
func (s *Store) SetOrderStatus(orderID uint, next models.OrderStatus) error {
	result := s.db.Model(&models.Order{}).
		Where("id = ?", orderID).
		Updates(map[string]interface{}{"status": next, "updated_at": time.Now()})
	if result.Error != nil {
		return apperr.Store(result.Error, "Failed to update order")
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("Not found")
	}
	return nil
}

// PrintType selects which print timestamp MarkPrinted sets.
type PrintType string

const (
	PrintCustomer  PrintType = "customer"
	PrintPackaging PrintType = "packaging"
)

// MarkPrinted sets the requested print timestamp if it is still null.
// First print wins; repeated or concurrent calls never overwrite an
// earlier timestamp. The refreshed order is returned either way.
func (s *Store) MarkPrinted(orderID uint, printType PrintType) (*models.Order, error) {
	var column string
	switch printType {
	case PrintCustomer:
		column = "printed_customer_at"
	case PrintPackaging:
		column = "printed_packaging_at"
	default:
		return nil, apperr.Validation("Invalid print type")
	}

	var order models.Order
	if err := s.db.Where("id = ?", orderID).First(&order).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, apperr.NotFound("Not found")
		}
		return nil, apperr.Store(err, "Failed to load order")
	}

	result := s.db.Exec(
		"UPDATE orders SET "+column+" = ? WHERE id = ? AND "+column+" IS NULL",
		time.Now(), orderID,
	)
	if result.Error != nil {
		return nil, apperr.Store(result.Error, "Failed to mark order printed")
	}

	if err := s.db.Where("id = ?", orderID).First(&order).Error; err != nil {
		return nil, apperr.Store(err, "Failed to reload order")
	}
	return &order, nil
}
