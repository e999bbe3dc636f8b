package entity

import "time"

type UserRole string

const (
	RoleSales     UserRole = "sales"
	RoleFinance   UserRole = "finance"
	RoleDeveloper UserRole = "developer"
	RoleInvestor  UserRole = "investor"
	RolePartner   UserRole = "partner"
	RoleOther     UserRole = "other"
)

// RoleQuota is the maximum number of accounts allowed for a limited role.
const RoleQuota = 3

// Quota reports how many accounts may hold the role; zero means unlimited.
func (r UserRole) Quota() int {
	switch r {
	case RoleSales, RoleFinance, RoleDeveloper:
		return RoleQuota
	default:
		return 0
	}
}

type User struct {
	ID           int64     `db:"id"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Phone        string    `db:"phone"`
	Role         UserRole  `db:"role"`
	MFACode      *string   `db:"mfa_code"` // single outstanding code, nil once used
	CreatedAt    time.Time `db:"created_at"`
}
