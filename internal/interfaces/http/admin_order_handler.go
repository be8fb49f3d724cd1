package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Kanyapat-samee/Bakeria/internal/application/auth"
	"github.com/Kanyapat-samee/Bakeria/internal/application/dto"
	"github.com/Kanyapat-samee/Bakeria/internal/application/order"
	"github.com/Kanyapat-samee/Bakeria/internal/domain"
	"github.com/Kanyapat-samee/Bakeria/internal/domain/entity"
)

// receiptGenerator contrato mínimo del generador de recibos; lo implementa
// pdf.ReceiptGenerator. El uso de interfaz permite sustituirlo en tests.
type receiptGenerator interface {
	GenerateOrderReceipt(ctx context.Context, order *entity.Order) ([]byte, error)
}

// AdminOrderHandler el tablero de órdenes de la consola admin.
type AdminOrderHandler struct {
	board    *order.Board
	orders   *order.UseCase
	receipts receiptGenerator
	resolver *auth.Resolver
}

// NewAdminOrderHandler construye el handler admin de órdenes.
func NewAdminOrderHandler(board *order.Board, orders *order.UseCase, receipts receiptGenerator, resolver *auth.Resolver) *AdminOrderHandler {
	return &AdminOrderHandler{board: board, orders: orders, receipts: receipts, resolver: resolver}
}

// requireToken verifica que la sesión tenga un access token utilizable antes
// de tocar el store. Token en blanco equivale a no autenticado: la operación
// privilegiada se aborta.
func (h *AdminOrderHandler) requireToken(c *fiber.Ctx) error {
	if _, err := h.resolver.AccessToken(c.Context(), GetToken(c)); err != nil {
		return err
	}
	return nil
}

// List recarga el tablero con el scan completo del store y devuelve las filas.
// El orden no está garantizado: la vista ordena y filtra por su cuenta.
func (h *AdminOrderHandler) List(c *fiber.Ctx) error {
	if err := h.requireToken(c); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "NO_VALID_TOKEN", Message: "sesión sin token de acceso válido"})
	}
	if err := h.board.Refresh(c.Context()); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudieron cargar las órdenes"})
	}
	return c.JSON(h.board.Rows())
}

// SetStatus cambia la etiqueta de estado de una orden. El tablero aplica el
// reflejo optimista y lo revierte si el store rechaza la escritura; en ese
// caso el error sí llega al caller (decide reintentar o reportar).
func (h *AdminOrderHandler) SetStatus(c *fiber.Ctx) error {
	if err := h.requireToken(c); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "NO_VALID_TOKEN", Message: "sesión sin token de acceso válido"})
	}
	var in dto.UpdateStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	err := h.board.SetStatus(c.Context(), c.Params("userId"), c.Params("orderId"), in.Status)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidStatus):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_STATUS", Message: "estado fuera del conjunto permitido"})
		case errors.Is(err, domain.ErrOrderNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "orden no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "STATUS_FAILED", Message: "el store rechazó la actualización"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Receipt genera el PDF del recibo de una orden.
func (h *AdminOrderHandler) Receipt(c *fiber.Ctx) error {
	o, err := h.orders.GetOrder(c.Context(), c.Params("userId"), c.Params("orderId"))
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "orden no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	bytes, err := h.receipts.GenerateOrderReceipt(c.Context(), o)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "RECEIPT_FAILED", Message: "no se pudo generar el recibo"})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(bytes)
}
