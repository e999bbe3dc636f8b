// Package authz decides which roles may perform which operations and where
// each role lands after login.
package authz

import (
	"errors"

	"bizportal/internal/data/entity"
)

var ErrUnauthorized = errors.New("unauthorized access")

type Operation string

const (
	OpProductsList       Operation = "products.list"
	OpSalesBuy           Operation = "sales.buy"
	OpQueriesView        Operation = "queries.view"
	OpQueriesSubmit      Operation = "queries.submit"
	OpQueriesRespond     Operation = "queries.respond"
	OpDashboardSales     Operation = "dashboard.sales"
	OpDashboardIncome    Operation = "dashboard.income"
	OpDashboardDeveloper Operation = "dashboard.developer"
	OpDashboardPartner   Operation = "dashboard.partner"
)

// Policy maps an operation to the roles allowed to perform it. An empty
// role set admits any authenticated role; an operation missing from the
// policy admits nobody.
type Policy map[Operation]map[entity.UserRole]struct{}

func NewPolicy(rules map[Operation][]entity.UserRole) Policy {
	p := make(Policy, len(rules))
	for op, roles := range rules {
		set := make(map[entity.UserRole]struct{}, len(roles))
		for _, r := range roles {
			set[r] = struct{}{}
		}
		p[op] = set
	}
	return p
}

func DefaultPolicy() Policy {
	return NewPolicy(map[Operation][]entity.UserRole{
		OpProductsList:       nil,
		OpSalesBuy:           nil,
		OpQueriesView:        nil,
		OpQueriesSubmit:      nil,
		OpQueriesRespond:     nil,
		OpDashboardSales:     {entity.RoleSales},
		OpDashboardIncome:    {entity.RoleFinance, entity.RoleInvestor},
		OpDashboardDeveloper: {entity.RoleDeveloper},
		OpDashboardPartner:   {entity.RolePartner},
	})
}

// Authorize returns ErrUnauthorized unless role may perform op.
func (p Policy) Authorize(role entity.UserRole, op Operation) error {
	allowed, ok := p[op]
	if !ok {
		return ErrUnauthorized
	}
	if len(allowed) == 0 {
		return nil
	}
	if _, ok := allowed[role]; !ok {
		return ErrUnauthorized
	}
	return nil
}

var landing = map[entity.UserRole]string{
	entity.RoleSales:     "/sales",
	entity.RoleFinance:   "/income",
	entity.RoleDeveloper: "/developer",
	entity.RoleInvestor:  "/income",
	entity.RolePartner:   "/partner",
}

// LandingFor returns the dashboard path a role is sent to after login.
func LandingFor(role entity.UserRole) string {
	if path, ok := landing[role]; ok {
		return path
	}
	return "/"
}
