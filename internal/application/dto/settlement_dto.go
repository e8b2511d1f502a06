package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SettleItemRequest selección de una línea de venta a liquidar (parcial o total).
type SettleItemRequest struct {
	SaleItemID string `json:"sale_item_id"`
	Quantity   int64  `json:"quantity"`
}

// SettleRequest selección de líneas y ajustes a pagar en un lote a un proveedor.
type SettleRequest struct {
	Items       []SettleItemRequest `json:"items"`
	Adjustments []string            `json:"adjustments"`
}

// SettlementLineResponse porción pagada de una línea de venta.
type SettlementLineResponse struct {
	ID          string          `json:"id"`
	SaleItemID  string          `json:"sale_item_id"`
	Description string          `json:"description,omitempty"`
	Quantity    int64           `json:"quantity"`
	Amount      decimal.Decimal `json:"amount"`
}

// SettlementResponse liquidación con sus líneas.
type SettlementResponse struct {
	ID          string                   `json:"id"`
	OwnerID     string                   `json:"owner_id"`
	TotalAmount decimal.Decimal          `json:"total_amount"`
	CreatedAt   time.Time                `json:"created_at"`
	Lines       []SettlementLineResponse `json:"lines,omitempty"`
}

// PendingItemResponse línea de venta con cantidad pendiente de liquidar.
type PendingItemResponse struct {
	SaleItemID      string          `json:"sale_item_id"`
	SaleID          string          `json:"sale_id"`
	Description     string          `json:"description"`
	CostAtSale      decimal.Decimal `json:"cost_at_sale"`
	Quantity        int64           `json:"quantity"`
	SettledQuantity int64           `json:"settled_quantity"`
	PendingQuantity int64           `json:"pending_quantity"`
	PendingAmount   decimal.Decimal `json:"pending_amount"`
}

// AdjustmentResponse ajuste manual de saldo.
type AdjustmentResponse struct {
	ID          string          `json:"id"`
	OwnerID     string          `json:"owner_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	IsApplied   bool            `json:"is_applied"`
	CreatedAt   time.Time       `json:"created_at"`
}

// CreateAdjustmentRequest alta manual de un ajuste de saldo.
type CreateAdjustmentRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// OwnerBalanceResponse saldo neto derivado de un proveedor.
// Positivo: la tienda le debe al proveedor. Negativo: el proveedor debe a la tienda.
type OwnerBalanceResponse struct {
	OwnerID string          `json:"owner_id"`
	Balance decimal.Decimal `json:"balance"`
}
