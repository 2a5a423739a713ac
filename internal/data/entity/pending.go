package entity

import "time"

// ManpowerEntry is one installer record submitted with a vendor
// registration, held as JSON until promotion.
type ManpowerEntry struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// PendingRegistration holds submitted registration data until OTP
// confirmation promotes it, or until it expires.
type PendingRegistration struct {
	BaseSimple
	Name  string `db:"name"`
	Email string `db:"email"`
	Phone string `db:"phone"`
	Role  Role   `db:"role"`

	// Vendor-only fields
	StoreName *string         `db:"store_name"`
	Address   *string         `db:"address"`
	State     *string         `db:"state"`
	City      *string         `db:"city"`
	Pincode   *string         `db:"pincode"`
	Manpower  []ManpowerEntry `db:"manpower"`

	ExpiresAt time.Time `db:"expires_at"`
}
