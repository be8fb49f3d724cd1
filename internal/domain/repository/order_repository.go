package repository

import (
	"context"

	"github.com/Kanyapat-samee/Bakeria/internal/domain/entity"
)

// OrderRepository puerto del store de órdenes, clave compuesta (userID, orderID).
type OrderRepository interface {
	// Create escribe el registro completo una sola vez.
	Create(ctx context.Context, order *entity.Order) error
	// GetByID devuelve nil si no existe.
	GetByID(ctx context.Context, userID, orderID string) (*entity.Order, error)
	// ListByUser órdenes de un usuario.
	ListByUser(ctx context.Context, userID string) ([]*entity.Order, error)
	// ListAll scan completo del store; el orden de los resultados lo define el
	// store, no está garantizado ordenado.
	ListAll(ctx context.Context) ([]*entity.Order, error)
	// UpdateStatus actualiza únicamente el campo status del registro
	// (userID, orderID); no toca ningún otro campo. ErrOrderNotFound si la
	// clave no existe.
	UpdateStatus(ctx context.Context, userID, orderID string, status entity.OrderStatus) error
}
