// Package realtime keeps station screens consistent with server state:
// a websocket hub broadcasting change events on every write, a polling
// watcher with subscription fallback on the consuming side, and the
// content signature that makes repeated applies idempotent.
package realtime

import (
	"fmt"
	"sort"
	"strings"

	"comanda/internal/models"
)

// Signature derives a stable string from the mutable fields of a polled
// order set: id, status and updated_at per order and per item, sorted by
// id. Two fetches with the same signature carry the same visible state,
// so consumers can skip re-rendering. Pure function, independent of the
// transport that produced the data.
func Signature(orders []models.Order) string {
	sorted := make([]models.Order, len(orders))
	copy(sorted, orders)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	var b strings.Builder
	for _, order := range sorted {
		fmt.Fprintf(&b, "%d:%s:%s:%d;", order.ID, order.Status, order.PaymentStatus, order.UpdatedAt.UnixNano())

		items := make([]models.OrderItem, len(order.Items))
		copy(items, order.Items)
		sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
		for _, item := range items {
			fmt.Fprintf(&b, "%d:%s:%d,", item.ID, item.Status, item.UpdatedAt.UnixNano())
		}
		b.WriteByte('|')
	}
	return b.String()
}
