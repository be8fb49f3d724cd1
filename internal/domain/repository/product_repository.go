package repository

import (
	"context"

	"github.com/Kanyapat-samee/Bakeria/internal/domain/entity"
)

// ProductRepository puerto del catálogo de productos.
type ProductRepository interface {
	List(ctx context.Context) ([]*entity.Product, error)
	// GetByID devuelve nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.Product, error)
}
