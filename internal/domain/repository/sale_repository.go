package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/petshop-pro/internal/domain/entity"
)

// SaleRepository puerto de persistencia para ventas y sus líneas.
// Los métodos Mark* e IncrementSettled son updates condicionales: devuelven
// false (cero filas) cuando el estado ya no permite la transición, lo que
// serializa carreras dentro de la transacción.
type SaleRepository interface {
	Create(s *entity.Sale) error
	CreateItem(it *entity.SaleItem) error
	GetByID(id string) (*entity.Sale, error)
	GetItems(saleID string) ([]*entity.SaleItem, error)
	GetItemByID(id string) (*entity.SaleItem, error)
	ListRecent(limit, offset int) ([]*entity.Sale, error)
	// MarkCancelled pasa COMPLETED→CANCELLED; false si ya estaba anulada.
	MarkCancelled(id string) (bool, error)
	// MarkPaid pasa PENDING→PAID con paidAt; false si ya estaba pagada.
	MarkPaid(id string, paidAt time.Time) (bool, error)
	// IncrementSettled suma qty a settled_quantity solo si no supera quantity.
	IncrementSettled(itemID string, qty int64) (bool, error)
	// ListSettleableByOwner líneas PRODUCT con cantidad pendiente > 0 de ventas
	// pagadas cuyos productos pertenecen al proveedor.
	ListSettleableByOwner(ownerID string) ([]*entity.SaleItem, error)
	// SumPendingByOwner Σ (quantity − settled_quantity) × cost_at_sale sobre
	// líneas liquidables del proveedor.
	SumPendingByOwner(ownerID string) (decimal.Decimal, error)
}
