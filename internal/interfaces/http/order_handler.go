package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Kanyapat-samee/Bakeria/internal/application/dto"
	"github.com/Kanyapat-samee/Bakeria/internal/application/order"
	"github.com/Kanyapat-samee/Bakeria/internal/application/session"
	"github.com/Kanyapat-samee/Bakeria/internal/domain"
	"github.com/Kanyapat-samee/Bakeria/internal/domain/entity"
)

// OrderHandler checkout e historial de órdenes del storefront.
type OrderHandler struct {
	orders   *order.UseCase
	sessions *session.Manager
}

// NewOrderHandler construye el handler de órdenes.
func NewOrderHandler(orders *order.UseCase, sessions *session.Manager) *OrderHandler {
	return &OrderHandler{orders: orders, sessions: sessions}
}

// Checkout crea la orden con las líneas y el total del carrito de la sesión.
// Los invitados pueden comprar (userId "guest"); un fallo del store sube al
// caller tal cual, sin reintento. Si la orden se creó, el carrito se vacía.
func (h *OrderHandler) Checkout(c *fiber.Ctx) error {
	var in dto.CheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	sess := h.sessions.Session(GetSessionKey(c), GetIdentity(c))
	cart := sess.Cart.Items()

	items := make([]entity.OrderItem, 0, len(cart))
	for _, it := range cart {
		items = append(items, entity.OrderItem{
			ID:       it.ID,
			Name:     it.Name,
			Price:    it.Price,
			Quantity: it.Quantity,
		})
	}

	created, err := h.orders.Checkout(c.Context(), GetIdentity(c), items, in.Shipping, cart.Total())
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "carrito vacío o datos de entrega incompletos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "ORDER_FAILED", Message: "no se pudo guardar la orden"})
	}

	sess.Cart.Clear()
	return c.Status(fiber.StatusCreated).JSON(created)
}

// List órdenes del usuario autenticado.
func (h *OrderHandler) List(c *fiber.Ctx) error {
	ident := GetIdentity(c)
	orders, err := h.orders.ListUserOrders(c.Context(), ident.Username)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudieron cargar las órdenes"})
	}
	return c.JSON(dto.OrdersResponse{Orders: orders})
}

// GetByID una orden del usuario autenticado.
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	ident := GetIdentity(c)
	o, err := h.orders.GetOrder(c.Context(), ident.Username, c.Params("orderId"))
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "orden no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(o)
}
