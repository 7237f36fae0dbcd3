// Package auth resolves the caller identity asserted through plain headers.
// This is a coarse capability check, not a security boundary: the headers
// carry no cryptographic proof and are only trustworthy behind an
// operator-controlled network.
package auth

import (
	"strconv"
	"strings"

	"comanda/internal/apperr"
	"comanda/internal/models"
)

// Role is a caller-asserted capability.
type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleGrill     Role = "PLANCHA"
	RoleFryer     Role = "FREIDORA"
	RolePackaging Role = "EMPAQUETADO"
)

// HeaderRole and HeaderUserID carry the asserted identity on every request.
const (
	HeaderRole   = "x-role"
	HeaderUserID = "x-user-id"
)

var allowedRoles = map[Role]bool{
	RoleAdmin:     true,
	RoleGrill:     true,
	RoleFryer:     true,
	RolePackaging: true,
}

// Identity is the resolved caller identity. A zero Identity never passes
// Require; kiosk callers carry no Identity at all.
type Identity struct {
	Role   Role
	UserID int
}

// FromHeaders parses the two identity headers. Both empty means a kiosk
// caller and yields an Authentication error the handlers can recognize
// via IsMissing.
func FromHeaders(roleHeader, userHeader string) (Identity, error) {
	role := Role(strings.ToUpper(strings.TrimSpace(roleHeader)))
	user := strings.TrimSpace(userHeader)

	if role == "" || user == "" {
		return Identity{}, apperr.Authentication("Missing authentication headers")
	}
	if !allowedRoles[role] {
		return Identity{}, apperr.Authentication("Invalid role")
	}

	userID, err := strconv.Atoi(user)
	if err != nil || userID <= 0 {
		return Identity{}, apperr.Validation("Invalid user id")
	}

	return Identity{Role: role, UserID: userID}, nil
}

// IsMissing reports whether err came from a request with no identity
// headers at all, i.e. a kiosk caller.
func IsMissing(err error) bool {
	return err != nil && err.Error() == "Missing authentication headers"
}

// Require fails with Forbidden unless the identity's role is in the
// allow-list.
func Require(id Identity, allowed ...Role) error {
	for _, role := range allowed {
		if id.Role == role {
			return nil
		}
	}
	return apperr.Authorization("Forbidden")
}

// Station returns the kitchen station a role is bound to, if any.
// ADMIN and EMPAQUETADO are not station-bound.
func (r Role) Station() (models.Station, bool) {
	switch r {
	case RoleGrill:
		return models.StationGrill, true
	case RoleFryer:
		return models.StationFryer, true
	default:
		return "", false
	}
}
