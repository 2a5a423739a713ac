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

type WarrantyRepository interface {
	Create(ctx context.Context, warranty *entity.WarrantyRegistration) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.WarrantyRegistration, error)
	FindByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.WarrantyRegistration, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.WarrantyRegistration, error)
	CountAll(ctx context.Context) (int64, error)
	Update(ctx context.Context, warranty *entity.WarrantyRegistration) error
}

type warrantyRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewWarrantyRepository(db database.PgxIface, log *zap.Logger) WarrantyRepository {
	return &warrantyRepository{
		db:  db,
		log: log.With(zap.String("repository", "warranty")),
	}
}

const warrantyColumns = `id, user_id, product_type, customer_name, customer_phone,
	       vehicle_make, vehicle_model, vehicle_number, purchase_date,
	       duration_years, installer_name, product_detail, file_ref, status,
	       created_at, updated_at`

func (r *warrantyRepository) Create(ctx context.Context, warranty *entity.WarrantyRegistration) error {
	query := `
		INSERT INTO warranty_registrations (id, user_id, product_type,
		                  customer_name, customer_phone, vehicle_make,
		                  vehicle_model, vehicle_number, purchase_date,
		                  duration_years, installer_name, product_detail,
		                  file_ref, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := r.db.Exec(ctx, query,
		warranty.ID,
		warranty.UserID,
		warranty.ProductType,
		warranty.CustomerName,
		warranty.CustomerPhone,
		warranty.VehicleMake,
		warranty.VehicleModel,
		warranty.VehicleNumber,
		warranty.PurchaseDate,
		warranty.DurationYears,
		warranty.InstallerName,
		warranty.ProductDetail,
		warranty.FileRef,
		warranty.Status,
		warranty.CreatedAt,
		warranty.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create warranty registration",
			zap.Error(err),
			zap.String("user_id", warranty.UserID.String()),
		)
		return fmt.Errorf("create warranty for %s: %w", warranty.UserID.String(), err)
	}

	return nil
}

func (r *warrantyRepository) scanRow(row pgx.Row) (*entity.WarrantyRegistration, error) {
	var w entity.WarrantyRegistration
	err := row.Scan(
		&w.ID,
		&w.UserID,
		&w.ProductType,
		&w.CustomerName,
		&w.CustomerPhone,
		&w.VehicleMake,
		&w.VehicleModel,
		&w.VehicleNumber,
		&w.PurchaseDate,
		&w.DurationYears,
		&w.InstallerName,
		&w.ProductDetail,
		&w.FileRef,
		&w.Status,
		&w.CreatedAt,
		&w.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *warrantyRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.WarrantyRegistration, error) {
	query := `SELECT ` + warrantyColumns + ` FROM warranty_registrations WHERE id = $1`

	warranty, err := r.scanRow(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find warranty by ID",
			zap.Error(err),
			zap.String("warranty_id", id.String()),
		)
		return nil, fmt.Errorf("find warranty %s: %w", id.String(), err)
	}

	return warranty, nil
}

func (r *warrantyRepository) collect(rows pgx.Rows) ([]*entity.WarrantyRegistration, error) {
	defer rows.Close()

	var warranties []*entity.WarrantyRegistration
	for rows.Next() {
		w, err := r.scanRow(rows)
		if err != nil {
			r.log.Error("Failed to scan warranty row", zap.Error(err))
			return nil, fmt.Errorf("scan warranty row: %w", err)
		}
		warranties = append(warranties, w)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate warranty rows: %w", err)
	}

	return warranties, nil
}

func (r *warrantyRepository) FindByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.WarrantyRegistration, error) {
	query := `
		SELECT ` + warrantyColumns + `
		FROM warranty_registrations
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to list warranties for user",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("list warranties for %s: %w", userID.String(), err)
	}

	return r.collect(rows)
}

func (r *warrantyRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM warranty_registrations WHERE user_id = $1`

	var count int64
	err := r.db.QueryRow(ctx, query, userID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count warranties for user",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count warranties for %s: %w", userID.String(), err)
	}

	return count, nil
}

func (r *warrantyRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.WarrantyRegistration, error) {
	query := `
		SELECT ` + warrantyColumns + `
		FROM warranty_registrations
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to list warranties",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("list warranties limit %d offset %d: %w", limit, offset, err)
	}

	return r.collect(rows)
}

func (r *warrantyRepository) CountAll(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM warranty_registrations`

	var count int64
	err := r.db.QueryRow(ctx, query).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count warranties", zap.Error(err))
		return 0, fmt.Errorf("count warranties: %w", err)
	}

	return count, nil
}

func (r *warrantyRepository) Update(ctx context.Context, warranty *entity.WarrantyRegistration) error {
	query := `
		UPDATE warranty_registrations
		SET product_type = $2, customer_name = $3, customer_phone = $4,
		    vehicle_make = $5, vehicle_model = $6, vehicle_number = $7,
		    purchase_date = $8, duration_years = $9, installer_name = $10,
		    product_detail = $11, file_ref = $12, status = $13, updated_at = $14
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		warranty.ID,
		warranty.ProductType,
		warranty.CustomerName,
		warranty.CustomerPhone,
		warranty.VehicleMake,
		warranty.VehicleModel,
		warranty.VehicleNumber,
		warranty.PurchaseDate,
		warranty.DurationYears,
		warranty.InstallerName,
		warranty.ProductDetail,
		warranty.FileRef,
		warranty.Status,
		warranty.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update warranty",
			zap.Error(err),
			zap.String("warranty_id", warranty.ID.String()),
		)
		return fmt.Errorf("update warranty %s: %w", warranty.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("warranty %s not found", warranty.ID.String())
	}

	return nil
}
