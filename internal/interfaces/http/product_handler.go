package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Kanyapat-samee/Bakeria/internal/application/dto"
	"github.com/Kanyapat-samee/Bakeria/internal/domain/repository"
)

// ProductHandler expone el catálogo.
type ProductHandler struct {
	repo repository.ProductRepository
}

// NewProductHandler construye el handler del catálogo.
func NewProductHandler(repo repository.ProductRepository) *ProductHandler {
	return &ProductHandler{repo: repo}
}

// List devuelve el catálogo completo.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	products, err := h.repo.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo cargar el catálogo"})
	}
	return c.JSON(products)
}

// GetByID devuelve un producto del catálogo; 404 si no existe.
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	product, err := h.repo.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo cargar el producto"})
	}
	if product == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	}
	return c.JSON(product)
}
