package authz

import (
	"testing"

	"bizportal/internal/data/entity"

	"github.com/stretchr/testify/assert"
)

var allRoles = []entity.UserRole{
	entity.RoleSales,
	entity.RoleFinance,
	entity.RoleDeveloper,
	entity.RoleInvestor,
	entity.RolePartner,
	entity.RoleOther,
}

func TestDefaultPolicy_Dashboards(t *testing.T) {
	p := DefaultPolicy()

	allowed := map[Operation][]entity.UserRole{
		OpDashboardSales:     {entity.RoleSales},
		OpDashboardIncome:    {entity.RoleFinance, entity.RoleInvestor},
		OpDashboardDeveloper: {entity.RoleDeveloper},
		OpDashboardPartner:   {entity.RolePartner},
	}

	for op, roles := range allowed {
		for _, role := range allRoles {
			err := p.Authorize(role, op)
			if contains(roles, role) {
				assert.NoError(t, err, "%s should reach %s", role, op)
			} else {
				assert.ErrorIs(t, err, ErrUnauthorized, "%s should not reach %s", role, op)
			}
		}
	}
}

func TestDefaultPolicy_OpenToAnyRole(t *testing.T) {
	p := DefaultPolicy()
	for _, op := range []Operation{OpProductsList, OpSalesBuy, OpQueriesView, OpQueriesSubmit, OpQueriesRespond} {
		for _, role := range allRoles {
			assert.NoError(t, p.Authorize(role, op))
		}
	}
}

func TestPolicy_UnknownOperationDenied(t *testing.T) {
	assert.ErrorIs(t, DefaultPolicy().Authorize(entity.RoleSales, "admin.delete"), ErrUnauthorized)
}

func TestLandingFor(t *testing.T) {
	tests := map[entity.UserRole]string{
		entity.RoleSales:     "/sales",
		entity.RoleFinance:   "/income",
		entity.RoleDeveloper: "/developer",
		entity.RoleInvestor:  "/income",
		entity.RolePartner:   "/partner",
		entity.RoleOther:     "/",
		"":                   "/",
	}
	for role, want := range tests {
		assert.Equal(t, want, LandingFor(role), "role %q", role)
	}
}

func contains(roles []entity.UserRole, role entity.UserRole) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
