package repository

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/petshop-pro/internal/domain/entity"
)

// VariantRepository puerto de persistencia para variantes stockeables.
// DecrementStock es el único mecanismo de seguridad ante concurrencia del
// libro de stock: descuenta solo si el stock actual alcanza (compare-and-decrement
// atómico); devuelve false sin escribir nada cuando no alcanza.
type VariantRepository interface {
	Create(v *entity.ProductVariant) error
	GetByID(id string) (*entity.ProductVariant, error)
	ListByProduct(productID string) ([]*entity.ProductVariant, error)
	UpdatePrices(id string, costPrice, salePrice decimal.Decimal) error
	// DecrementStock descuenta qty (positivo) solo si stock >= qty.
	DecrementStock(id string, qty int64) (bool, error)
	// IncrementStock suma qty (positivo) incondicionalmente.
	IncrementStock(id string, qty int64) error
}
