package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Kanyapat-samee/Bakeria/internal/application/dto"
	"github.com/Kanyapat-samee/Bakeria/internal/application/session"
	"github.com/Kanyapat-samee/Bakeria/internal/domain/entity"
)

// CartHandler expone el carrito de la sesión. Toda la lógica vive en el motor
// de sincronización; el handler solo traduce HTTP.
type CartHandler struct {
	sessions *session.Manager
}

// NewCartHandler construye el handler del carrito.
func NewCartHandler(sessions *session.Manager) *CartHandler {
	return &CartHandler{sessions: sessions}
}

func (h *CartHandler) engine(c *fiber.Ctx) *session.Session {
	return h.sessions.Session(GetSessionKey(c), GetIdentity(c))
}

// Get devuelve el estado del carrito de la sesión.
func (h *CartHandler) Get(c *fiber.Ctx) error {
	return c.JSON(cartDTO(h.engine(c)))
}

// AddItem agrega una línea (o incrementa la existente con ese id).
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	var in dto.AddItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ID == "" || in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id y name son requeridos"})
	}
	sess := h.engine(c)
	sess.Cart.AddItem(entity.CartItem{
		ID:       in.ID,
		Name:     in.Name,
		Price:    in.Price,
		ImageURL: in.ImageURL,
	})
	return c.Status(fiber.StatusCreated).JSON(cartDTO(sess))
}

// SetQuantity fija la cantidad de una línea; <= 0 la elimina.
func (h *CartHandler) SetQuantity(c *fiber.Ctx) error {
	var in dto.SetQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	sess := h.engine(c)
	sess.Cart.SetQuantity(c.Params("id"), in.Quantity)
	return c.JSON(cartDTO(sess))
}

// RemoveItem elimina una línea; no-op si no existe.
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	sess := h.engine(c)
	sess.Cart.RemoveItem(c.Params("id"))
	return c.JSON(cartDTO(sess))
}

// Clear vacía el carrito.
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	sess := h.engine(c)
	sess.Cart.Clear()
	return c.JSON(cartDTO(sess))
}

func cartDTO(sess *session.Session) dto.CartResponse {
	items := sess.Cart.Items()
	return dto.CartResponse{
		Items: items,
		Total: items.Total(),
		Ready: sess.Cart.Ready(),
	}
}
