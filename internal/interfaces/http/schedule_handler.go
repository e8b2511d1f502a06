package http

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/petshop-pro/internal/application/dto"
	"github.com/tu-usuario/petshop-pro/internal/application/schedule"
)

// ScheduleHandler maneja la agenda de citas de peluquería (protegido).
type ScheduleHandler struct {
	uc *schedule.UseCase
}

// NewScheduleHandler construye el handler de agenda.
func NewScheduleHandler(uc *schedule.UseCase) *ScheduleHandler {
	return &ScheduleHandler{uc: uc}
}

// Book godoc
// @Summary      Agendar una cita
// @Description  Rechaza con 409 si el horario se cruza con una cita existente;
//
//	la respuesta identifica la cita que bloquea.
//
// @Tags         appointments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BookAppointmentRequest  true  "pet_id, date, time, duration_minutes"
// @Success      201   {object}  dto.AppointmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ScheduleConflictResponse
// @Router       /api/appointments [post]
func (h *ScheduleHandler) Book(c *fiber.Ctx) error {
	actorID := GetUserID(c)
	if actorID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.BookAppointmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	input, err := schedule.BookInputFromRequest(in)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Book(c.Context(), actorID, input)
	if err != nil {
		var conflict *schedule.ConflictError
		if errors.As(err, &conflict) {
			return c.Status(fiber.StatusConflict).JSON(dto.ScheduleConflictResponse{
				Code:         "SCHEDULE_CONFLICT",
				Message:      conflict.Error(),
				PetName:      conflict.PetName,
				CustomerName: conflict.CustomerName,
				StartTime:    conflict.Start,
				EndTime:      conflict.End,
			})
		}
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Confirm pasa la cita de PENDING a CONFIRMED.
func (h *ScheduleHandler) Confirm(c *fiber.Ctx) error {
	return h.transition(c, h.uc.Confirm)
}

// Complete pasa la cita de CONFIRMED a COMPLETED (lista para facturar).
func (h *ScheduleHandler) Complete(c *fiber.Ctx) error {
	return h.transition(c, h.uc.Complete)
}

// Cancel cancela una cita PENDING o CONFIRMED y libera el horario.
func (h *ScheduleHandler) Cancel(c *fiber.Ctx) error {
	return h.transition(c, h.uc.Cancel)
}

func (h *ScheduleHandler) transition(c *fiber.Ctx, fn func(ctx context.Context, actorID, id string) error) error {
	actorID := GetUserID(c)
	if actorID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	if err := fn(c.Context(), actorID, c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "estado actualizado"})
}

// GetByID devuelve una cita.
func (h *ScheduleHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List devuelve las citas de un rango de fechas (por defecto, el día de hoy).
func (h *ScheduleHandler) List(c *fiber.Ctx) error {
	from, to, err := parseDateRange(c.Query("from"), c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "fechas inválidas, formato YYYY-MM-DD"})
	}
	list, err := h.uc.ListBetween(c.Context(), from, to)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "appointments": list})
}

// parseDateRange interpreta from/to como días locales; to es inclusivo.
func parseDateRange(fromStr, toStr string) (time.Time, time.Time, error) {
	today := time.Now().In(time.Local)
	startOfDay := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.Local)

	from := startOfDay
	if fromStr != "" {
		parsed, err := time.ParseInLocation("2006-01-02", fromStr, time.Local)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		from = parsed
	}
	to := from.AddDate(0, 0, 1)
	if toStr != "" {
		parsed, err := time.ParseInLocation("2006-01-02", toStr, time.Local)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		to = parsed.AddDate(0, 0, 1)
	}
	return from, to, nil
}
