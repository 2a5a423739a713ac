package entity

import (
	"time"

	"github.com/google/uuid"
)

// VendorDetails carries the store attributes of a vendor profile.
type VendorDetails struct {
	BaseNoDelete
	UserID    uuid.UUID `db:"user_id"`
	StoreName string    `db:"store_name"`
	Address   string    `db:"address"`
	State     string    `db:"state"`
	City      string    `db:"city"`
	Pincode   string    `db:"pincode"`
}

// VendorVerification gates a vendor's ability to receive a credential.
// Created unverified alongside the vendor profile, flipped by an admin.
type VendorVerification struct {
	UserID     uuid.UUID  `db:"user_id"`
	IsVerified bool       `db:"is_verified"`
	Token      *string    `db:"token"`
	VerifiedAt *time.Time `db:"verified_at"`
	CreatedAt  time.Time  `db:"created_at"`
}

// Manpower is one installer employed by a vendor.
type Manpower struct {
	BaseSimple
	VendorID uuid.UUID `db:"vendor_id"`
	Name     string    `db:"name"`
	Phone    string    `db:"phone"`
}
