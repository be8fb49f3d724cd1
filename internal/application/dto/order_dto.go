package dto

import "github.com/Kanyapat-samee/Bakeria/internal/domain/entity"

// CheckoutRequest datos de entrega del checkout. Las líneas y el total salen
// del carrito de la sesión, no del cliente.
type CheckoutRequest struct {
	Shipping entity.ShippingInfo `json:"shipping"`
}

// UpdateStatusRequest nueva etiqueta de estado para una orden.
type UpdateStatusRequest struct {
	Status entity.OrderStatus `json:"status" validate:"required"`
}

// OrdersResponse listado de órdenes.
type OrdersResponse struct {
	Orders []*entity.Order `json:"orders"`
}
