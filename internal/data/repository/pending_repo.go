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

type PendingRepository interface {
	Create(ctx context.Context, pending *entity.PendingRegistration) error
	FindValidByID(ctx context.Context, id uuid.UUID) (*entity.PendingRegistration, error)
	DeleteByEmail(ctx context.Context, email string) error
	DeleteByID(ctx context.Context, id uuid.UUID) error
	DeleteExpired(ctx context.Context) (int64, error)
}

type pendingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPendingRepository(db database.PgxIface, log *zap.Logger) PendingRepository {
	return &pendingRepository{
		db:  db,
		log: log.With(zap.String("repository", "pending")),
	}
}

func (r *pendingRepository) Create(ctx context.Context, pending *entity.PendingRegistration) error {
	query := `
		INSERT INTO pending_registrations (id, name, email, phone, role,
		                  store_name, address, state, city, pincode, manpower,
		                  expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.Exec(ctx, query,
		pending.ID,
		pending.Name,
		pending.Email,
		pending.Phone,
		pending.Role,
		pending.StoreName,
		pending.Address,
		pending.State,
		pending.City,
		pending.Pincode,
		pending.Manpower,
		pending.ExpiresAt,
		pending.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create pending registration",
			zap.Error(err),
			zap.String("email", pending.Email),
		)
		return fmt.Errorf("create pending registration for %s: %w", pending.Email, err)
	}

	return nil
}

// FindValidByID returns the pending row only while it is unexpired.
func (r *pendingRepository) FindValidByID(ctx context.Context, id uuid.UUID) (*entity.PendingRegistration, error) {
	query := `
		SELECT id, name, email, phone, role,
		       store_name, address, state, city, pincode, manpower,
		       expires_at, created_at
		FROM pending_registrations
		WHERE id = $1 AND expires_at > NOW()
	`

	var pending entity.PendingRegistration
	err := r.db.QueryRow(ctx, query, id).Scan(
		&pending.ID,
		&pending.Name,
		&pending.Email,
		&pending.Phone,
		&pending.Role,
		&pending.StoreName,
		&pending.Address,
		&pending.State,
		&pending.City,
		&pending.Pincode,
		&pending.Manpower,
		&pending.ExpiresAt,
		&pending.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find pending registration",
			zap.Error(err),
			zap.String("pending_id", id.String()),
		)
		return nil, fmt.Errorf("find pending registration %s: %w", id.String(), err)
	}

	return &pending, nil
}

// DeleteByEmail removes any stale pending row for the email so at most one
// exists at a time.
func (r *pendingRepository) DeleteByEmail(ctx context.Context, email string) error {
	query := `DELETE FROM pending_registrations WHERE email = $1`

	_, err := r.db.Exec(ctx, query, email)
	if err != nil {
		r.log.Error("Failed to delete pending registration by email",
			zap.Error(err),
			zap.String("email", email),
		)
		return fmt.Errorf("delete pending registration for %s: %w", email, err)
	}

	return nil
}

func (r *pendingRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM pending_registrations WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete pending registration",
			zap.Error(err),
			zap.String("pending_id", id.String()),
		)
		return fmt.Errorf("delete pending registration %s: %w", id.String(), err)
	}

	return nil
}

func (r *pendingRepository) DeleteExpired(ctx context.Context) (int64, error) {
	query := `DELETE FROM pending_registrations WHERE expires_at <= NOW()`

	result, err := r.db.Exec(ctx, query)
	if err != nil {
		r.log.Error("Failed to purge expired pending registrations", zap.Error(err))
		return 0, fmt.Errorf("purge expired pending registrations: %w", err)
	}

	return result.RowsAffected(), nil
}
