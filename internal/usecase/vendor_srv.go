package usecase

import (
	"context"
	"fmt"
	"time"

	"warranty-portal/internal/data/repository"
	"warranty-portal/internal/dto/response"
	"warranty-portal/pkg/mailer"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type VendorService interface {
	ListPending(ctx context.Context) ([]response.PendingVendorResponse, error)
	Approve(ctx context.Context, userID uuid.UUID) error
}

type vendorService struct {
	repo *repository.Repository
	mail mailer.Mailer
	log  *zap.Logger
}

func NewVendorService(repo *repository.Repository, mail mailer.Mailer, log *zap.Logger) VendorService {
	return &vendorService{
		repo: repo,
		mail: mail,
		log:  log,
	}
}

// ListPending returns the admin approval queue.
func (s *vendorService) ListPending(ctx context.Context) ([]response.PendingVendorResponse, error) {
	unverified, err := s.repo.Verification.ListUnverified(ctx)
	if err != nil {
		s.log.Error("Failed to list unverified vendors", zap.Error(err))
		return nil, fmt.Errorf("failed to list pending vendors")
	}

	result := make([]response.PendingVendorResponse, 0, len(unverified))
	for _, v := range unverified {
		profile, err := s.repo.Profile.FindByID(ctx, v.UserID)
		if err != nil || profile == nil {
			s.log.Warn("Unverified vendor has no profile",
				zap.Error(err), zap.String("user_id", v.UserID.String()))
			continue
		}

		row := response.PendingVendorResponse{
			UserID:       profile.ID.String(),
			Name:         profile.Name,
			Email:        profile.Email,
			Phone:        profile.Phone,
			RegisteredAt: v.CreatedAt,
		}

		if details, err := s.repo.VendorDetails.FindByUserID(ctx, v.UserID); err == nil && details != nil {
			row.StoreName = details.StoreName
			row.City = details.City
			row.State = details.State
		}

		result = append(result, row)
	}

	return result, nil
}

// Approve flips the verification flag and tells the vendor.
func (s *vendorService) Approve(ctx context.Context, userID uuid.UUID) error {
	verification, err := s.repo.Verification.FindByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to find verification", zap.Error(err), zap.String("user_id", userID.String()))
		return fmt.Errorf("failed to approve vendor")
	}
	if verification == nil {
		return fmt.Errorf("vendor not found")
	}
	if verification.IsVerified {
		return fmt.Errorf("vendor already verified")
	}

	if err := s.repo.Verification.Approve(ctx, userID); err != nil {
		s.log.Error("Failed to approve vendor", zap.Error(err), zap.String("user_id", userID.String()))
		return fmt.Errorf("failed to approve vendor")
	}

	s.log.Info("Vendor approved", zap.String("user_id", userID.String()))

	// Notify the vendor (async, best effort)
	if profile, err := s.repo.Profile.FindByID(ctx, userID); err == nil && profile != nil {
		go s.notifyApproved(profile.Name, profile.Email)
	}

	return nil
}

func (s *vendorService) notifyApproved(name, email string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.mail.SendVendorApproved(ctx, name, email); err != nil {
		s.log.Error("Failed to send vendor approval email", zap.Error(err), zap.String("email", email))
	}
}
