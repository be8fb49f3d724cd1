package repository

import (
	"context"

	"github.com/Kanyapat-samee/Bakeria/internal/domain/entity"
)

// UserRepository puerto de las cuentas de los pools de identidades.
type UserRepository interface {
	Create(ctx context.Context, user *entity.PoolUser) error
	// GetByEmail busca dentro de un pool; devuelve nil si no existe.
	GetByEmail(ctx context.Context, pool, email string) (*entity.PoolUser, error)
	Update(ctx context.Context, user *entity.PoolUser) error
}
