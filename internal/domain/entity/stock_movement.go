package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeEntry           = "ENTRY"            // entrada de mercancía
	MovementTypeSale            = "SALE"             // salida por venta
	MovementTypeSaleCancelled   = "SALE_CANCELLED"   // restauración por anulación de venta
	MovementTypeOwnerWithdrawal = "OWNER_WITHDRAWAL" // el proveedor retira su mercancía
	MovementTypeAdjustment      = "ADJUSTMENT"       // ajuste manual de inventario
)

// StockMovement es una fila inmutable del libro de stock: cantidad con signo,
// tipo y actor. Nunca se actualiza ni se borra. Invariante: para cada variante,
// stock == Σ Quantity sobre sus movimientos.
type StockMovement struct {
	ID        string
	VariantID string
	Quantity  int64 // positivo entrada, negativo salida
	Type      string
	Reason    string // referencia: venta, nota de ajuste, etc.
	CreatedBy string // UserID
	CreatedAt time.Time
}
