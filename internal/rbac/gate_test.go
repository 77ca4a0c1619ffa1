package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dukahub/dukapos-backend/pkg/enums"
)

func TestCanAccessTierMatrix(t *testing.T) {
	t.Parallel()

	cases := []struct {
		required enums.Role
		actual   enums.Role
		want     bool
	}{
		{enums.RoleCashier, enums.RoleCashier, true},
		{enums.RoleCashier, enums.RoleManager, true},
		{enums.RoleCashier, enums.RoleAdmin, true},
		{enums.RoleManager, enums.RoleCashier, false},
		{enums.RoleManager, enums.RoleManager, true},
		{enums.RoleManager, enums.RoleAdmin, true},
		{enums.RoleAdmin, enums.RoleCashier, false},
		{enums.RoleAdmin, enums.RoleManager, false},
		{enums.RoleAdmin, enums.RoleAdmin, true},
	}

	for _, tc := range cases {
		got := CanAccess(tc.required, tc.actual)
		assert.Equalf(t, tc.want, got, "required=%s actual=%s", tc.required, tc.actual)
	}
}

func TestCanAccessRejectsUnknownRoles(t *testing.T) {
	t.Parallel()

	assert.False(t, CanAccess(enums.RoleCashier, enums.Role("intern")))
	assert.False(t, CanAccess(enums.Role("owner"), enums.RoleAdmin))
	assert.False(t, CanAccess(enums.Role(""), enums.Role("")))
}

func TestDashboardPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/admin/dashboard", DashboardPath(enums.RoleAdmin))
	assert.Equal(t, "/store/dashboard", DashboardPath(enums.RoleManager))
	assert.Equal(t, "/pos/dashboard", DashboardPath(enums.RoleCashier))
}
