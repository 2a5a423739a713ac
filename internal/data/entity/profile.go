package entity

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleVendor   Role = "vendor"
	RoleAdmin    Role = "admin"
)

// ValidRole reports whether the claimed role is one the portal knows.
func ValidRole(r string) bool {
	switch Role(r) {
	case RoleCustomer, RoleVendor, RoleAdmin:
		return true
	}
	return false
}

// Profile is the permanent identity record, created only when a pending
// registration is promoted.
type Profile struct {
	BaseNoDelete
	Name  string `db:"name"`
	Email string `db:"email"`
	Phone string `db:"phone"`
}

// UserRole maps a profile to its role. Written once at promotion time.
type UserRole struct {
	UserID    uuid.UUID `db:"user_id"`
	Role      Role      `db:"role"`
	CreatedAt time.Time `db:"created_at"`
}
