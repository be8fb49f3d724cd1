package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Kanyapat-samee/Bakeria/internal/domain"
	"github.com/Kanyapat-samee/Bakeria/internal/domain/entity"
	"github.com/Kanyapat-samee/Bakeria/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
// Las cuentas de ambos pools viven en la misma tabla, con email único por pool.
type UserRepo struct {
	pool *pgxpool.Pool
}

// NewUserRepository construye el adaptador de cuentas de los pools.
func NewUserRepository(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// Create persiste una cuenta nueva.
func (r *UserRepo) Create(ctx context.Context, user *entity.PoolUser) error {
	query := `
		INSERT INTO pool_users (id, pool, email, password_hash, name, groups, status, must_change_password, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.pool.Exec(ctx, query,
		user.ID, user.Pool, user.Email, user.PasswordHash, user.Name, user.Groups,
		user.Status, user.MustChangePassword, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert pool user: %w", err)
	}
	return nil
}

// GetByEmail busca una cuenta dentro de un pool; nil si no existe.
func (r *UserRepo) GetByEmail(ctx context.Context, pool, email string) (*entity.PoolUser, error) {
	query := `
		SELECT id, pool, email, password_hash, name, groups, status, must_change_password, created_at, updated_at
		FROM pool_users WHERE pool = $1 AND email = $2`
	var u entity.PoolUser
	err := r.pool.QueryRow(ctx, query, pool, email).Scan(
		&u.ID, &u.Pool, &u.Email, &u.PasswordHash, &u.Name, &u.Groups,
		&u.Status, &u.MustChangePassword, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pool user by email: %w", err)
	}
	return &u, nil
}

// Update actualiza una cuenta.
func (r *UserRepo) Update(ctx context.Context, user *entity.PoolUser) error {
	query := `
		UPDATE pool_users
		SET email = $2, password_hash = $3, name = $4, groups = $5, status = $6, must_change_password = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.pool.Exec(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.Name, user.Groups,
		user.Status, user.MustChangePassword, user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update pool user: %w", err)
	}
	return nil
}
