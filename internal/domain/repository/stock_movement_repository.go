package repository

import "github.com/tu-usuario/petshop-pro/internal/domain/entity"

// StockMovementRepository puerto de persistencia del libro de stock (append-only).
// SumByVariant existe solo para auditoría fuera de línea: el camino caliente
// confía en el contador materializado.
type StockMovementRepository interface {
	Create(m *entity.StockMovement) error
	ListByVariant(variantID string, limit, offset int) ([]*entity.StockMovement, error)
	SumByVariant(variantID string) (int64, error)
}
