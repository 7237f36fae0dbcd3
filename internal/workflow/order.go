package workflow

import (
	"comanda/internal/apperr"
	"comanda/internal/auth"
	"comanda/internal/models"
)

var orderStatuses = map[models.OrderStatus]bool{
	models.OrderStatusReceived:       true,
	models.OrderStatusInProgress:     true,
	models.OrderStatusReadyToPack:    true,
	models.OrderStatusPacking:        true,
	models.OrderStatusReadyToDeliver: true,
	models.OrderStatusOutForDelivery: true,
	models.OrderStatusDelivered:      true,
}

var orderTypes = map[models.OrderType]bool{
	models.OrderTypeDineIn:   true,
	models.OrderTypeTakeout:  true,
	models.OrderTypeDelivery: true,
}

// packagingTargets are the only statuses EMPAQUETADO may set. The earlier
// statuses are system- or kitchen-driven.
var packagingTargets = map[models.OrderStatus]bool{
	models.OrderStatusPacking:        true,
	models.OrderStatusReadyToDeliver: true,
	models.OrderStatusOutForDelivery: true,
	models.OrderStatusDelivered:      true,
}

// PromotableStatuses are the order statuses from which the completion
// cascade may advance an order to LISTO_PARA_EMPACAR.
var PromotableStatuses = []models.OrderStatus{
	models.OrderStatusReceived,
	models.OrderStatusInProgress,
}

// ValidOrderStatus reports whether s is one of the seven order statuses.
func ValidOrderStatus(s models.OrderStatus) bool {
	return orderStatuses[s]
}

// ValidOrderType reports whether t is one of the three order types.
func ValidOrderType(t models.OrderType) bool {
	return orderTypes[t]
}

// CheckOrderAccess enforces who may set an order status: ADMIN anywhere,
// EMPAQUETADO only within its target subset.
func CheckOrderAccess(id auth.Identity, next models.OrderStatus) error {
	if err := auth.Require(id, auth.RoleAdmin, auth.RolePackaging); err != nil {
		return err
	}
	if id.Role == auth.RolePackaging && !packagingTargets[next] {
		return apperr.Authorization("Forbidden")
	}
	return nil
}

// CheckOrderTransition validates a requested order transition. Out-of-enum
// values are always rejected; adjacency only under strict rules, against
// the same policy table NextActions exposes.
func (r Rules) CheckOrderTransition(current, next models.OrderStatus, orderType models.OrderType) error {
	if !ValidOrderStatus(next) {
		return apperr.Validation("Invalid status")
	}
	if !r.StrictTransitions {
		return nil
	}
	for _, allowed := range NextActions(current, orderType) {
		if allowed == next {
			return nil
		}
	}
	return apperr.Validation("Illegal transition from %s to %s", current, next)
}

// NextActions is the authoritative legal-next-action table offered to the
// packaging screen. LISTO_PARA_EMPACAR is reached only through the item
// completion cascade, never listed as a target here.
func NextActions(current models.OrderStatus, orderType models.OrderType) []models.OrderStatus {
	switch current {
	case models.OrderStatusReadyToPack:
		return []models.OrderStatus{models.OrderStatusPacking}
	case models.OrderStatusPacking:
		return []models.OrderStatus{models.OrderStatusReadyToDeliver}
	case models.OrderStatusReadyToDeliver:
		if orderType == models.OrderTypeDelivery {
			return []models.OrderStatus{models.OrderStatusOutForDelivery}
		}
		return []models.OrderStatus{models.OrderStatusDelivered}
	case models.OrderStatusOutForDelivery:
		return []models.OrderStatus{models.OrderStatusDelivered}
	default:
		return nil
	}
}
