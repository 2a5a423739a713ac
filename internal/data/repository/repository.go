package repository

import (
	"warranty-portal/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Profile       ProfileRepository
	Role          RoleRepository
	Pending       PendingRepository
	OTP           OTPRepository
	VendorDetails VendorDetailsRepository
	Verification  VerificationRepository
	Manpower      ManpowerRepository
	Warranty      WarrantyRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Profile:       NewProfileRepository(db, log),
		Role:          NewRoleRepository(db, log),
		Pending:       NewPendingRepository(db, log),
		OTP:           NewOTPRepository(db, log),
		VendorDetails: NewVendorDetailsRepository(db, log),
		Verification:  NewVerificationRepository(db, log),
		Manpower:      NewManpowerRepository(db, log),
		Warranty:      NewWarrantyRepository(db, log),
	}
}
