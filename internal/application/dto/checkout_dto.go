package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckoutItemRequest línea del carrito. Type: PRODUCT o SERVICE.
// PRODUCT usa variant_id + quantity; SERVICE usa appointment_id + price (+ quantity).
type CheckoutItemRequest struct {
	Type          string          `json:"type"`
	VariantID     string          `json:"variant_id,omitempty"`
	AppointmentID string          `json:"appointment_id,omitempty"`
	Quantity      int64           `json:"quantity"`
	Price         decimal.Decimal `json:"price,omitempty"`
	Description   string          `json:"description,omitempty"`
}

// CheckoutRequest carrito de una venta.
type CheckoutRequest struct {
	Items         []CheckoutItemRequest `json:"items"`
	PaymentMethod string                `json:"payment_method"`
	CustomerID    string                `json:"customer_id,omitempty"`
}

// CheckoutResponse resultado de un checkout exitoso.
type CheckoutResponse struct {
	SaleID        string          `json:"sale_id"`
	Total         decimal.Decimal `json:"total"`
	PaymentStatus string          `json:"payment_status"`
	CreatedAt     time.Time       `json:"created_at"`
}

// SaleItemResponse línea de una venta.
type SaleItemResponse struct {
	ID              string          `json:"id"`
	Kind            string          `json:"kind"`
	VariantID       *string         `json:"variant_id,omitempty"`
	AppointmentID   *string         `json:"appointment_id,omitempty"`
	Description     string          `json:"description"`
	PriceAtSale     decimal.Decimal `json:"price_at_sale"`
	Quantity        int64           `json:"quantity"`
	SettledQuantity int64           `json:"settled_quantity"`
}

// SaleResponse venta con sus líneas.
type SaleResponse struct {
	ID            string             `json:"id"`
	Total         decimal.Decimal    `json:"total"`
	PaymentMethod string             `json:"payment_method"`
	Status        string             `json:"status"`
	PaymentStatus string             `json:"payment_status"`
	PaidAt        *time.Time         `json:"paid_at,omitempty"`
	CustomerID    *string            `json:"customer_id,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	Items         []SaleItemResponse `json:"items,omitempty"`
}
