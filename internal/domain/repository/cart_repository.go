package repository

import (
	"context"

	"github.com/Kanyapat-samee/Bakeria/internal/domain/entity"
)

// CartRepository puerto del store clave-valor de carritos: un blob por
// identidad. El motor de sincronización es el único consumidor; el core nunca
// habla con el store remoto directamente.
type CartRepository interface {
	// Get devuelve el carrito persistido del usuario, o un carrito vacío si
	// no hay nada guardado.
	Get(ctx context.Context, userID string) (entity.Cart, error)
	// Put reemplaza el carrito persistido del usuario.
	Put(ctx context.Context, userID string, cart entity.Cart) error
}
