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

type VerificationRepository interface {
	Create(ctx context.Context, verification *entity.VendorVerification) error
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.VendorVerification, error)
	Approve(ctx context.Context, userID uuid.UUID) error
	ListUnverified(ctx context.Context) ([]*entity.VendorVerification, error)
}

type verificationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewVerificationRepository(db database.PgxIface, log *zap.Logger) VerificationRepository {
	return &verificationRepository{
		db:  db,
		log: log.With(zap.String("repository", "verification")),
	}
}

func (r *verificationRepository) Create(ctx context.Context, verification *entity.VendorVerification) error {
	query := `
		INSERT INTO vendor_verification (user_id, is_verified, token, verified_at, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		verification.UserID,
		verification.IsVerified,
		verification.Token,
		verification.VerifiedAt,
		verification.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create vendor verification",
			zap.Error(err),
			zap.String("user_id", verification.UserID.String()),
		)
		return fmt.Errorf("create verification for %s: %w", verification.UserID.String(), err)
	}

	return nil
}

func (r *verificationRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.VendorVerification, error) {
	query := `
		SELECT user_id, is_verified, token, verified_at, created_at
		FROM vendor_verification
		WHERE user_id = $1
	`

	var verification entity.VendorVerification
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&verification.UserID,
		&verification.IsVerified,
		&verification.Token,
		&verification.VerifiedAt,
		&verification.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find vendor verification",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find verification for %s: %w", userID.String(), err)
	}

	return &verification, nil
}

func (r *verificationRepository) Approve(ctx context.Context, userID uuid.UUID) error {
	query := `
		UPDATE vendor_verification
		SET is_verified = true, verified_at = NOW()
		WHERE user_id = $1 AND is_verified = false
	`

	result, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to approve vendor",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return fmt.Errorf("approve vendor %s: %w", userID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("vendor %s not found or already verified", userID.String())
	}

	return nil
}

func (r *verificationRepository) ListUnverified(ctx context.Context) ([]*entity.VendorVerification, error) {
	query := `
		SELECT user_id, is_verified, token, verified_at, created_at
		FROM vendor_verification
		WHERE is_verified = false
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list unverified vendors", zap.Error(err))
		return nil, fmt.Errorf("list unverified vendors: %w", err)
	}
	defer rows.Close()

	var records []*entity.VendorVerification
	for rows.Next() {
		var v entity.VendorVerification
		err := rows.Scan(&v.UserID, &v.IsVerified, &v.Token, &v.VerifiedAt, &v.CreatedAt)
		if err != nil {
			r.log.Error("Failed to scan verification row", zap.Error(err))
			return nil, fmt.Errorf("scan verification row: %w", err)
		}
		records = append(records, &v)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate verification rows: %w", err)
	}

	return records, nil
}
