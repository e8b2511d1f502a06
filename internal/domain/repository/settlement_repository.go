package repository

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/petshop-pro/internal/domain/entity"
)

// SettlementRepository puerto de persistencia para liquidaciones a proveedores.
type SettlementRepository interface {
	Create(st *entity.Settlement) error
	CreateLine(l *entity.SettlementLine) error
	GetByID(id string) (*entity.Settlement, error)
	GetLines(settlementID string) ([]*entity.SettlementLine, error)
	ListByOwner(ownerID string, limit, offset int) ([]*entity.Settlement, error)
}

// AdjustmentRepository puerto para ajustes manuales de saldo.
// MarkApplied es condicional: false si el ajuste ya fue consumido por otra
// liquidación.
type AdjustmentRepository interface {
	Create(a *entity.BalanceAdjustment) error
	GetByID(id string) (*entity.BalanceAdjustment, error)
	ListUnappliedByOwner(ownerID string) ([]*entity.BalanceAdjustment, error)
	MarkApplied(id, settlementID string) (bool, error)
	SumUnappliedByOwner(ownerID string) (decimal.Decimal, error)
}
