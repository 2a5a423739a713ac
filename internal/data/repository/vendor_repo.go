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

type VendorDetailsRepository interface {
	Create(ctx context.Context, details *entity.VendorDetails) error
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.VendorDetails, error)
}

type vendorDetailsRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewVendorDetailsRepository(db database.PgxIface, log *zap.Logger) VendorDetailsRepository {
	return &vendorDetailsRepository{
		db:  db,
		log: log.With(zap.String("repository", "vendor_details")),
	}
}

func (r *vendorDetailsRepository) Create(ctx context.Context, details *entity.VendorDetails) error {
	query := `
		INSERT INTO vendor_details (id, user_id, store_name, address, state,
		                  city, pincode, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		details.ID,
		details.UserID,
		details.StoreName,
		details.Address,
		details.State,
		details.City,
		details.Pincode,
		details.CreatedAt,
		details.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create vendor details",
			zap.Error(err),
			zap.String("user_id", details.UserID.String()),
		)
		return fmt.Errorf("create vendor details for %s: %w", details.UserID.String(), err)
	}

	return nil
}

func (r *vendorDetailsRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.VendorDetails, error) {
	query := `
		SELECT id, user_id, store_name, address, state, city, pincode,
		       created_at, updated_at
		FROM vendor_details
		WHERE user_id = $1
	`

	var details entity.VendorDetails
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&details.ID,
		&details.UserID,
		&details.StoreName,
		&details.Address,
		&details.State,
		&details.City,
		&details.Pincode,
		&details.CreatedAt,
		&details.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find vendor details",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find vendor details for %s: %w", userID.String(), err)
	}

	return &details, nil
}

type ManpowerRepository interface {
	Create(ctx context.Context, manpower *entity.Manpower) error
	FindByVendorID(ctx context.Context, vendorID uuid.UUID) ([]*entity.Manpower, error)
}

type manpowerRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewManpowerRepository(db database.PgxIface, log *zap.Logger) ManpowerRepository {
	return &manpowerRepository{
		db:  db,
		log: log.With(zap.String("repository", "manpower")),
	}
}

func (r *manpowerRepository) Create(ctx context.Context, manpower *entity.Manpower) error {
	query := `
		INSERT INTO manpower (id, vendor_id, name, phone, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		manpower.ID,
		manpower.VendorID,
		manpower.Name,
		manpower.Phone,
		manpower.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create manpower record",
			zap.Error(err),
			zap.String("vendor_id", manpower.VendorID.String()),
		)
		return fmt.Errorf("create manpower for %s: %w", manpower.VendorID.String(), err)
	}

	return nil
}

func (r *manpowerRepository) FindByVendorID(ctx context.Context, vendorID uuid.UUID) ([]*entity.Manpower, error) {
	query := `
		SELECT id, vendor_id, name, phone, created_at
		FROM manpower
		WHERE vendor_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, vendorID)
	if err != nil {
		r.log.Error("Failed to list manpower",
			zap.Error(err),
			zap.String("vendor_id", vendorID.String()),
		)
		return nil, fmt.Errorf("list manpower for %s: %w", vendorID.String(), err)
	}
	defer rows.Close()

	var records []*entity.Manpower
	for rows.Next() {
		var m entity.Manpower
		err := rows.Scan(&m.ID, &m.VendorID, &m.Name, &m.Phone, &m.CreatedAt)
		if err != nil {
			r.log.Error("Failed to scan manpower row", zap.Error(err))
			return nil, fmt.Errorf("scan manpower row: %w", err)
		}
		records = append(records, &m)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate manpower rows: %w", err)
	}

	return records, nil
}
