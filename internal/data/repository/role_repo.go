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

type RoleRepository interface {
	Create(ctx context.Context, role *entity.UserRole) error
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.UserRole, error)
}

type roleRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewRoleRepository(db database.PgxIface, log *zap.Logger) RoleRepository {
	return &roleRepository{
		db:  db,
		log: log.With(zap.String("repository", "role")),
	}
}

func (r *roleRepository) Create(ctx context.Context, role *entity.UserRole) error {
	query := `
		INSERT INTO user_roles (user_id, role, created_at)
		VALUES ($1, $2, $3)
	`

	_, err := r.db.Exec(ctx, query, role.UserID, role.Role, role.CreatedAt)
	if err != nil {
		r.log.Error("Failed to create user role",
			zap.Error(err),
			zap.String("user_id", role.UserID.String()),
			zap.String("role", string(role.Role)),
		)
		return fmt.Errorf("create role for %s: %w", role.UserID.String(), err)
	}

	return nil
}

func (r *roleRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.UserRole, error) {
	query := `
		SELECT user_id, role, created_at
		FROM user_roles
		WHERE user_id = $1
	`

	var role entity.UserRole
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&role.UserID,
		&role.Role,
		&role.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find role",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find role for %s: %w", userID.String(), err)
	}

	return &role, nil
}
