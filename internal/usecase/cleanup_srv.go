package usecase

import (
	"context"

	"warranty-portal/internal/data/repository"

	"go.uber.org/zap"
)

// CleanupService sweeps expired pending registrations and stale OTP codes.
// It runs on a cron schedule from main.
type CleanupService interface {
	Run(ctx context.Context) error
}

type cleanupService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCleanupService(repo *repository.Repository, log *zap.Logger) CleanupService {
	return &cleanupService{
		repo: repo,
		log:  log,
	}
}

func (s *cleanupService) Run(ctx context.Context) error {
	pendingPurged, err := s.repo.Pending.DeleteExpired(ctx)
	if err != nil {
		s.log.Error("Failed to purge expired pending registrations", zap.Error(err))
		return err
	}

	otpPurged, err := s.repo.OTP.DeleteStale(ctx)
	if err != nil {
		s.log.Error("Failed to purge stale OTP codes", zap.Error(err))
		return err
	}

	if pendingPurged > 0 || otpPurged > 0 {
		s.log.Info("Cleanup sweep completed",
			zap.Int64("pending_purged", pendingPurged),
			zap.Int64("otp_purged", otpPurged))
	}

	return nil
}
