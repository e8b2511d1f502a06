package dto

import "time"

// RegisterMovementRequest movimiento manual de stock.
// Type: ENTRY (quantity > 0), OWNER_WITHDRAWAL (quantity < 0) o ADJUSTMENT (±).
// SALE y SALE_CANCELLED solo se generan vía checkout/anulación.
type RegisterMovementRequest struct {
	VariantID string `json:"variant_id"`
	Quantity  int64  `json:"quantity"`
	Type      string `json:"type"`
	Reason    string `json:"reason,omitempty"`
}

// StockMovementResponse fila del libro de stock.
type StockMovementResponse struct {
	ID        string    `json:"id"`
	VariantID string    `json:"variant_id"`
	Quantity  int64     `json:"quantity"`
	Type      string    `json:"type"`
	Reason    string    `json:"reason,omitempty"`
	CreatedBy string    `json:"created_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// StockAuditResponse resultado de recomputar el contador desde el libro.
type StockAuditResponse struct {
	VariantID    string `json:"variant_id"`
	Stock        int64  `json:"stock"`
	MovementsSum int64  `json:"movements_sum"`
	Consistent   bool   `json:"consistent"`
}
