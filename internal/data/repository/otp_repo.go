package repository

import (
	"context"
	"fmt"

	"warranty-portal/internal/data/entity"
	"warranty-portal/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type OTPRepository interface {
	Create(ctx context.Context, otp *entity.OTPCode) error
	FindActiveByOwner(ctx context.Context, ownerID uuid.UUID) (*entity.OTPCode, error)
	MarkAsUsed(ctx context.Context, otpID uuid.UUID) error
	InvalidateForOwner(ctx context.Context, ownerID uuid.UUID) error
	DeleteStale(ctx context.Context) (int64, error)
}

type otpRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewOTPRepository(db database.PgxIface, log *zap.Logger) OTPRepository {
	return &otpRepository{
		db:  db,
		log: log.With(zap.String("repository", "otp")),
	}
}

func (r *otpRepository) Create(ctx context.Context, otp *entity.OTPCode) error {
	query := `
		INSERT INTO otp_codes (id, owner_id, code_hash, expires_at, is_used, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		otp.ID,
		otp.OwnerID,
		otp.CodeHash,
		otp.ExpiresAt,
		otp.IsUsed,
		otp.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create OTP",
			zap.Error(err),
			zap.String("owner_id", otp.OwnerID.String()),
		)
		return fmt.Errorf("create OTP for %s: %w", otp.OwnerID.String(), err)
	}

	return nil
}

// FindActiveByOwner returns the newest unused, unexpired code for the owner.
func (r *otpRepository) FindActiveByOwner(ctx context.Context, ownerID uuid.UUID) (*entity.OTPCode, error) {
	query := `
		SELECT id, owner_id, code_hash, expires_at, is_used, created_at
		FROM otp_codes
		WHERE owner_id = $1
		  AND is_used = false
		  AND expires_at > NOW()
		ORDER BY created_at DESC
		LIMIT 1
	`

	var otp entity.OTPCode
	err := r.db.QueryRow(ctx, query, ownerID).Scan(
		&otp.ID,
		&otp.OwnerID,
		&otp.CodeHash,
		&otp.ExpiresAt,
		&otp.IsUsed,
		&otp.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find active OTP",
			zap.Error(err),
			zap.String("owner_id", ownerID.String()),
		)
		return nil, fmt.Errorf("find active OTP for %s: %w", ownerID.String(), err)
	}

	return &otp, nil
}

func (r *otpRepository) MarkAsUsed(ctx context.Context, otpID uuid.UUID) error {
	query := `
		UPDATE otp_codes
		SET is_used = true
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, otpID)
	if err != nil {
		r.log.Error("Failed to mark OTP as used",
			zap.Error(err),
			zap.String("otp_id", otpID.String()),
		)
		return fmt.Errorf("mark OTP %s as used: %w", otpID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("OTP %s not found", otpID.String())
	}

	return nil
}

// InvalidateForOwner marks every unused code for the owner as used, so a
// fresh issuance leaves exactly one live code.
func (r *otpRepository) InvalidateForOwner(ctx context.Context, ownerID uuid.UUID) error {
	query := `
		UPDATE otp_codes
		SET is_used = true
		WHERE owner_id = $1 AND is_used = false
	`

	_, err := r.db.Exec(ctx, query, ownerID)
	if err != nil {
		r.log.Error("Failed to invalidate OTPs",
			zap.Error(err),
			zap.String("owner_id", ownerID.String()),
		)
		return fmt.Errorf("invalidate OTPs for %s: %w", ownerID.String(), err)
	}

	return nil
}

// DeleteStale removes used codes and codes expired for more than a day.
func (r *otpRepository) DeleteStale(ctx context.Context) (int64, error) {
	query := `
		DELETE FROM otp_codes
		WHERE is_used = true
		   OR expires_at < NOW() - INTERVAL '1 day'
	`

	result, err := r.db.Exec(ctx, query)
	if err != nil {
		r.log.Error("Failed to delete stale OTPs", zap.Error(err))
		return 0, fmt.Errorf("delete stale OTPs: %w", err)
	}

	return result.RowsAffected(), nil
}
