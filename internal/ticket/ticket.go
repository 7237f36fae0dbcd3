// Package ticket formats an order into the printable receipt text and
// builds the deep-link payload the Android print transport consumes.
package ticket

import (
	"fmt"
	"strings"
	"time"

	"comanda/internal/models"
)

var typeLabels = map[models.OrderType]string{
	models.OrderTypeDineIn:   "Comer aquí",
	models.OrderTypeTakeout:  "Para llevar",
	models.OrderTypeDelivery: "Delivery",
}

// OrderTypeLabel returns the customer-facing label for an order type.
func OrderTypeLabel(t models.OrderType) string {
	if label, ok := typeLabels[t]; ok {
		return label
	}
	return string(t)
}

// OrderStatusLabel returns the customer-facing label for an order status.
func OrderStatusLabel(s models.OrderStatus) string {
	switch s {
	case models.OrderStatusReceived:
		return "Recibido"
	case models.OrderStatusInProgress:
		return "En proceso"
	case models.OrderStatusReadyToPack:
		return "Listo para empacar"
	case models.OrderStatusPacking:
		return "Empacando"
	case models.OrderStatusReadyToDeliver:
		return "Listo para entregar"
	case models.OrderStatusOutForDelivery:
		return "En reparto"
	case models.OrderStatusDelivered:
		return "Entregado"
	default:
		return string(s)
	}
}

// ItemStatusLabel returns the station-facing label for an item status.
func ItemStatusLabel(s models.ItemStatus) string {
	switch s {
	case models.ItemStatusQueued:
		return "En cola"
	case models.ItemStatusPending:
		return "Pendiente"
	case models.ItemStatusPreparing:
		return "En preparación"
	case models.ItemStatusReady:
		return "Listo"
	default:
		return string(s)
	}
}

// FormatCurrency renders integer cents as whole Mexican pesos with
// thousands separators, e.g. 129900 -> "$1,299".
func FormatCurrency(cents int64) string {
	pesos := cents / 100
	if cents%100 >= 50 {
		pesos++
	}
	negative := pesos < 0
	if negative {
		pesos = -pesos
	}

	digits := fmt.Sprintf("%d", pesos)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	if negative {
		return "-$" + b.String()
	}
	return "$" + b.String()
}

// FormatElapsed renders how long ago an order was created, for station
// screens and tickets.
func FormatElapsed(createdAt time.Time, now time.Time) string {
	minutes := int(now.Sub(createdAt).Minutes())
	if minutes <= 0 {
		return "Hace instantes"
	}
	if minutes < 60 {
		return fmt.Sprintf("Hace %d min", minutes)
	}
	hours := minutes / 60
	if hours < 24 {
		return fmt.Sprintf("Hace %d h %d min", hours, minutes%60)
	}
	return fmt.Sprintf("Hace %d d", hours/24)
}

// Build renders the receipt text for an order: header, per-item lines
// with station, quantity and line total, then subtotal, delivery fee and
// total, and finally the order notes. Always ends with a newline.
func Build(order *models.Order) string {
	var subtotal int64
	for _, item := range order.Items {
		subtotal += item.PriceCentsSnapshot * int64(item.Qty)
	}
	deliveryFee := order.DeliveryFeeCents
	total := order.TotalCents
	if total == 0 {
		total = subtotal + deliveryFee
	}

	lines := []string{
		"Ticket de pedido",
		fmt.Sprintf("Pedido #%03d", order.OrderNumber),
		fmt.Sprintf("Tipo: %s", OrderTypeLabel(order.Type)),
		fmt.Sprintf("Estado: %s", order.Status),
		fmt.Sprintf("Creado: %s", order.CreatedAt.Format("02/01/2006 15:04")),
		"",
		"Items",
	}

	for _, item := range order.Items {
		lines = append(lines, fmt.Sprintf("- %s", item.NameSnapshot))
		lines = append(lines, fmt.Sprintf("  %s · x%d · %s",
			item.Station, item.Qty, FormatCurrency(item.PriceCentsSnapshot*int64(item.Qty))))
		if item.Notes != "" {
			lines = append(lines, fmt.Sprintf("  Nota: %s", item.Notes))
		}
	}

	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("Subtotal: %s", FormatCurrency(subtotal)))
	if deliveryFee > 0 {
		lines = append(lines, fmt.Sprintf("Envío: %s", FormatCurrency(deliveryFee)))
	}
	lines = append(lines, fmt.Sprintf("Total: %s", FormatCurrency(total)))

	if order.Notes != "" {
		lines = append(lines, "", "Notas del pedido", order.Notes)
	}

	return strings.Join(lines, "\n") + "\n"
}
