// Package workflow implements the item and order status engines: which
// status values exist, which roles may request which transitions, and the
// completion rule that promotes an order once every item is done.
package workflow

import (
	"comanda/internal/apperr"
	"comanda/internal/auth"
	"comanda/internal/models"
)

// Rules configures transition checking. With StrictTransitions off the
// engines accept any in-enum status and leave adjacency to the station
// screens, which only ever offer the forward-adjacent action.
type Rules struct {
	StrictTransitions bool
}

var itemStatuses = map[models.ItemStatus]bool{
	models.ItemStatusQueued:    true,
	models.ItemStatusPending:   true,
	models.ItemStatusPreparing: true,
	models.ItemStatusReady:     true,
}

// forward adjacency for items; EN_COLA and PENDIENTE are interchangeable
// queued predecessors.
var itemNext = map[models.ItemStatus][]models.ItemStatus{
	models.ItemStatusQueued:    {models.ItemStatusPending, models.ItemStatusPreparing},
	models.ItemStatusPending:   {models.ItemStatusPreparing},
	models.ItemStatusPreparing: {models.ItemStatusReady},
	models.ItemStatusReady:     {},
}

// ValidItemStatus reports whether s is one of the four recognized item
// statuses.
func ValidItemStatus(s models.ItemStatus) bool {
	return itemStatuses[s]
}

// CheckItemTransition validates a requested item transition. Out-of-enum
// values are always rejected; non-adjacent jumps only under strict rules.
func (r Rules) CheckItemTransition(current, next models.ItemStatus) error {
	if !ValidItemStatus(next) {
		return apperr.Validation("Invalid status")
	}
	if !r.StrictTransitions {
		return nil
	}
	for _, allowed := range itemNext[current] {
		if allowed == next {
			return nil
		}
	}
	return apperr.Validation("Illegal transition from %s to %s", current, next)
}

// CheckItemAccess enforces the item mutation allow-list: only kitchen
// roles may touch items, and a station role only items of its own
// station. A mismatch is Forbidden, never Not-Found.
func CheckItemAccess(id auth.Identity, station models.Station) error {
	if err := auth.Require(id, auth.RoleAdmin, auth.RoleGrill, auth.RoleFryer); err != nil {
		return err
	}
	if own, bound := id.Role.Station(); bound && own != station {
		return apperr.Authorization("Forbidden")
	}
	return nil
}

// ItemsComplete reports whether every item in the slice has reached the
// terminal status.
func ItemsComplete(items []models.OrderItem) bool {
	for _, item := range items {
		if item.Status != models.ItemStatusReady {
			return false
		}
	}
	return len(items) > 0
}
