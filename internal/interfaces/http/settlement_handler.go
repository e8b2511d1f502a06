package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/petshop-pro/internal/application/dto"
	"github.com/tu-usuario/petshop-pro/internal/application/settlement"
)

// SettlementHandler maneja liquidaciones a proveedores, saldos y ajustes
// (protegido; las escrituras exigen rol admin vía RequireRole en el router).
type SettlementHandler struct {
	uc *settlement.UseCase
}

// NewSettlementHandler construye el handler de liquidaciones.
func NewSettlementHandler(uc *settlement.UseCase) *SettlementHandler {
	return &SettlementHandler{uc: uc}
}

// Settle godoc
// @Summary      Liquidar a un proveedor
// @Description  Paga en un lote porciones de líneas de venta pagadas más ajustes
//
//	pendientes. Valida propiedad, estado de pago y cantidades dentro
//	de la misma transacción que el commit.
//
// @Tags         settlements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        owner_id  path  string  true  "ID del proveedor"
// @Param        body  body  dto.SettleRequest  true  "items y adjustments a pagar"
// @Success      201   {object}  dto.SettlementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/owners/{owner_id}/settlements [post]
func (h *SettlementHandler) Settle(c *fiber.Ctx) error {
	actorID := GetUserID(c)
	if actorID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.SettleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	cmd, err := settlement.CommandFromRequest(c.Params("owner_id"), in)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Settle(c.Context(), actorID, cmd)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID devuelve una liquidación con sus líneas.
func (h *SettlementHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListByOwner devuelve el historial de liquidaciones de un proveedor.
func (h *SettlementHandler) ListByOwner(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paginación inválida"})
	}
	page.DefaultPage()
	list, err := h.uc.ListByOwner(c.Context(), c.Params("owner_id"), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "settlements": list})
}

// Receipt godoc
// @Summary      Comprobante PDF de una liquidación
// @Tags         settlements
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la liquidación"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/settlements/{id}/receipt [get]
func (h *SettlementHandler) Receipt(c *fiber.Ctx) error {
	pdfBytes, err := h.uc.Receipt(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="liquidacion.pdf"`)
	return c.Send(pdfBytes)
}

// Balance devuelve el saldo neto derivado del proveedor.
func (h *SettlementHandler) Balance(c *fiber.Ctx) error {
	out, err := h.uc.OwnerBalance(c.Context(), c.Params("owner_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// PendingItems devuelve las líneas liquidables y los ajustes pendientes del proveedor.
func (h *SettlementHandler) PendingItems(c *fiber.Ctx) error {
	items, adjustments, err := h.uc.PendingItems(c.Context(), c.Params("owner_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"items": items, "adjustments": adjustments})
}

// CreateAdjustment registra un ajuste manual de saldo para el proveedor.
func (h *SettlementHandler) CreateAdjustment(c *fiber.Ctx) error {
	actorID := GetUserID(c)
	if actorID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateAdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateAdjustment(c.Context(), actorID, c.Params("owner_id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
