package dto

import (
	"github.com/shopspring/decimal"

	"github.com/Kanyapat-samee/Bakeria/internal/domain/entity"
)

// AddItemRequest agrega un producto al carrito. La cantidad no se envía: el
// primer agregado crea la línea con cantidad 1 y los siguientes incrementan.
type AddItemRequest struct {
	ID       string          `json:"id" validate:"required"`
	Name     string          `json:"name" validate:"required"`
	Price    decimal.Decimal `json:"price" validate:"required"`
	ImageURL string          `json:"imageUrl"`
}

// SetQuantityRequest fija la cantidad de una línea; <= 0 la elimina.
type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CartResponse estado del carrito de la sesión. Ready indica si la carga del
// carrito persistido de la identidad actual ya terminó.
type CartResponse struct {
	Items entity.Cart     `json:"items"`
	Total decimal.Decimal `json:"total"`
	Ready bool            `json:"ready"`
}
