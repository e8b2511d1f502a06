package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Settlement es un pago por lote a un proveedor: cubre porciones de líneas de venta
// ya pagadas y ajustes manuales pendientes.
type Settlement struct {
	ID          string
	OwnerID     string
	TotalAmount decimal.Decimal
	CreatedBy   string
	CreatedAt   time.Time
}

// SettlementLine porción de una línea de venta pagada en un lote.
// Fila inmutable de auditoría: nunca se actualiza ni se borra.
type SettlementLine struct {
	ID           string
	SettlementID string
	SaleItemID   string
	Quantity     int64
	Amount       decimal.Decimal
}

// BalanceAdjustment corrección manual con signo al saldo de un proveedor.
// La crea una anulación (clawback) o un operador; la consume exactamente
// una liquidación.
type BalanceAdjustment struct {
	ID           string
	OwnerID      string
	Amount       decimal.Decimal // positivo a favor del proveedor, negativo en contra
	Description  string
	IsApplied    bool
	SettlementID *string
	CreatedAt    time.Time
}
