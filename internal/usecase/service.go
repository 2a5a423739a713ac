package usecase

import (
	"warranty-portal/internal/data/repository"
	"warranty-portal/pkg/mailer"
	"warranty-portal/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth     AuthService
	Profile  ProfileService
	Vendor   VendorService
	Warranty WarrantyService
	Cleanup  CleanupService
}

func NewService(repo *repository.Repository, config *utils.Config, mail mailer.Mailer, log *zap.Logger) *Service {
	return &Service{
		Auth:     NewAuthService(repo, config, mail, log),
		Profile:  NewProfileService(repo, log),
		Vendor:   NewVendorService(repo, mail, log),
		Warranty: NewWarrantyService(repo, log),
		Cleanup:  NewCleanupService(repo, log),
	}
}
