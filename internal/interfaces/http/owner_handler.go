package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/petshop-pro/internal/application/catalog"
	"github.com/tu-usuario/petshop-pro/internal/application/dto"
)

// OwnerHandler maneja proveedores en consignación (protegido).
type OwnerHandler struct {
	uc *catalog.OwnerUseCase
}

// NewOwnerHandler construye el handler de proveedores.
func NewOwnerHandler(uc *catalog.OwnerUseCase) *OwnerHandler {
	return &OwnerHandler{uc: uc}
}

// Create registra un proveedor.
func (h *OwnerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOwnerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID devuelve un proveedor.
func (h *OwnerHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "proveedor no encontrado"})
	}
	return c.JSON(out)
}

// List devuelve los proveedores.
func (h *OwnerHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paginación inválida"})
	}
	page.DefaultPage()
	list, err := h.uc.List(page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "owners": list})
}
