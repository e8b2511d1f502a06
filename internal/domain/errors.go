package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound              = errors.New("recurso no encontrado")
	ErrUserNotFound          = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists    = errors.New("el email ya está registrado")
	ErrInvalidInput          = errors.New("entrada inválida")
	ErrDuplicate             = errors.New("recurso duplicado")
	ErrUnauthorized          = errors.New("no autorizado")
	ErrForbidden             = errors.New("acceso denegado")
	ErrConflict              = errors.New("conflicto con el estado actual")
	ErrInsufficientStock     = errors.New("stock insuficiente")
	ErrAlreadyCancelled      = errors.New("la venta ya está anulada")
	ErrScheduleConflict      = errors.New("el horario se cruza con otra cita")
	ErrOverSettlement        = errors.New("cantidad a liquidar mayor que la pendiente")
	ErrNonPositiveSettlement = errors.New("el total de la liquidación debe ser positivo")
)
