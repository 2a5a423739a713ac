package entity

import (
	"time"

	"github.com/google/uuid"
)

type WarrantyStatus string

const (
	WarrantyPending  WarrantyStatus = "pending"
	WarrantyApproved WarrantyStatus = "approved"
	WarrantyRejected WarrantyStatus = "rejected"
)

// WarrantyRegistration is a product-warranty record submitted by a customer
// or a vendor. ProductDetails is free-form and stored as JSON; FileRef
// points at an externally stored attachment.
type WarrantyRegistration struct {
	BaseNoDelete
	UserID        uuid.UUID      `db:"user_id"`
	ProductType   string         `db:"product_type"`
	CustomerName  string         `db:"customer_name"`
	CustomerPhone string         `db:"customer_phone"`
	VehicleMake   string         `db:"vehicle_make"`
	VehicleModel  string         `db:"vehicle_model"`
	VehicleNumber string         `db:"vehicle_number"`
	PurchaseDate  time.Time      `db:"purchase_date"`
	DurationYears int            `db:"duration_years"`
	InstallerName *string        `db:"installer_name"`
	ProductDetail map[string]any `db:"product_detail"`
	FileRef       *string        `db:"file_ref"`
	Status        WarrantyStatus `db:"status"`
}
