package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto en consignación. Pertenece a exactamente un Owner.
// El stock y los precios viven en sus variantes (ProductVariant).
type Product struct {
	ID          string
	OwnerID     string
	CategoryID  string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductVariant es la unidad stockeable de un producto (talla, color, presentación).
// Stock es un contador materializado: siempre igual a la suma de sus movimientos.
type ProductVariant struct {
	ID        string
	ProductID string
	Name      string
	CostPrice decimal.Decimal // lo que se paga al proveedor por unidad vendida
	SalePrice decimal.Decimal
	Stock     int64 // nunca negativo
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Category categoría de producto. InsertOrGet evita duplicados en importaciones masivas.
type Category struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
