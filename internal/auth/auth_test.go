package auth

import (
	"testing"

	"comanda/internal/apperr"
	"comanda/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromHeaders(t *testing.T) {
	id, err := FromHeaders("ADMIN", "1")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, id.Role)
	assert.Equal(t, 1, id.UserID)

	// role matching is case-insensitive, surrounding space tolerated
	id, err = FromHeaders(" plancha ", " 7 ")
	require.NoError(t, err)
	assert.Equal(t, RoleGrill, id.Role)
	assert.Equal(t, 7, id.UserID)
}

func TestFromHeadersMissing(t *testing.T) {
	_, err := FromHeaders("", "")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindAuthentication))
	assert.True(t, IsMissing(err))

	// a half-present identity is missing too, not a kiosk special case
	_, err = FromHeaders("ADMIN", "")
	assert.True(t, IsMissing(err))
	_, err = FromHeaders("", "3")
	assert.True(t, IsMissing(err))
}

func TestFromHeadersInvalid(t *testing.T) {
	_, err := FromHeaders("CAJERO", "1")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindAuthentication))
	assert.False(t, IsMissing(err))

	for _, user := range []string{"abc", "0", "-2", "1.5"} {
		_, err = FromHeaders("ADMIN", user)
		assert.True(t, apperr.IsKind(err, apperr.KindValidation), "user=%q", user)
	}
}

func TestRequire(t *testing.T) {
	grill := Identity{Role: RoleGrill, UserID: 2}

	assert.NoError(t, Require(grill, RoleAdmin, RoleGrill))
	err := Require(grill, RoleAdmin, RolePackaging)
	assert.True(t, apperr.IsKind(err, apperr.KindAuthorization))

	// a zero identity never passes
	err = Require(Identity{}, RoleAdmin, RoleGrill, RoleFryer, RolePackaging)
	assert.True(t, apperr.IsKind(err, apperr.KindAuthorization))
}

func TestRoleStation(t *testing.T) {
	station, bound := RoleGrill.Station()
	assert.True(t, bound)
	assert.Equal(t, models.StationGrill, station)

	station, bound = RoleFryer.Station()
	assert.True(t, bound)
	assert.Equal(t, models.StationFryer, station)

	_, bound = RoleAdmin.Station()
	assert.False(t, bound)
	_, bound = RolePackaging.Station()
	assert.False(t, bound)
}
