package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago.
const (
	PaymentMethodCash            = "CASH"
	PaymentMethodTransfer        = "TRANSFER"
	PaymentMethodCheckingAccount = "CHECKING_ACCOUNT" // venta a crédito (cuenta corriente)
)

// Estados de la venta.
const (
	SaleStatusCompleted = "COMPLETED"
	SaleStatusCancelled = "CANCELLED"
)

// Estados de pago.
const (
	PaymentStatusPaid    = "PAID"
	PaymentStatusPending = "PENDING"
)

// Sale cabecera de una venta. Se crea una vez; solo muta por anulación
// o por marcarse como pagada.
type Sale struct {
	ID            string
	Total         decimal.Decimal
	PaymentMethod string
	Status        string
	PaymentStatus string
	PaidAt        *time.Time
	CustomerID    *string // obligatorio en ventas a cuenta corriente
	CreatedBy     string  // UserID del vendedor
	CreatedAt     time.Time
}

// Tipos de línea de venta.
const (
	SaleItemKindProduct = "PRODUCT"
	SaleItemKindService = "SERVICE"
)

// SaleItem línea de una venta: producto (VariantID) o servicio (AppointmentID).
// Kind discrimina la variante; la combinación válida de punteros se garantiza
// en el comando de checkout antes de llegar aquí.
// SettledQuantity crece monótonamente y nunca supera Quantity.
type SaleItem struct {
	ID              string
	SaleID          string
	Kind            string
	VariantID       *string // solo PRODUCT
	AppointmentID   *string // solo SERVICE
	Description     string
	CostAtSale      decimal.Decimal // costo consignado al momento de vender (0 en servicios)
	PriceAtSale     decimal.Decimal
	Quantity        int64
	SettledQuantity int64
}

// PendingQuantity unidades vendidas aún no liquidadas al proveedor.
func (it *SaleItem) PendingQuantity() int64 {
	return it.Quantity - it.SettledQuantity
}
