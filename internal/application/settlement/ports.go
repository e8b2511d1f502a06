package settlement

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/petshop-pro/internal/domain/entity"
	"github.com/tu-usuario/petshop-pro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción que incluye los repos
// necesarios para liquidar: validación y commit ocurren en la misma tx, así dos
// liquidaciones concurrentes sobre cantidades pendientes solapadas quedan
// serializadas y no pueden sobrepagar.
type TxRunner interface {
	RunSettlement(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		adjRepo repository.AdjustmentRepository,
		settlementRepo repository.SettlementRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// BalanceCache cachea el saldo derivado por proveedor (TTL corto). Las operaciones
// que cambian el saldo deben invalidar. Una implementación nula es válida.
type BalanceCache interface {
	Get(ctx context.Context, ownerID string) (decimal.Decimal, bool, error)
	Set(ctx context.Context, ownerID string, balance decimal.Decimal, ttl time.Duration) error
	Delete(ctx context.Context, ownerID string) error
}

// NoopBalanceCache implementación sin caché (modo memoria / tests).
type NoopBalanceCache struct{}

func (NoopBalanceCache) Get(_ context.Context, _ string) (decimal.Decimal, bool, error) {
	return decimal.Zero, false, nil
}

func (NoopBalanceCache) Set(_ context.Context, _ string, _ decimal.Decimal, _ time.Duration) error {
	return nil
}

func (NoopBalanceCache) Delete(_ context.Context, _ string) error { return nil }

// ReceiptGenerator genera el comprobante PDF de una liquidación.
type ReceiptGenerator interface {
	GenerateSettlementPDF(
		ctx context.Context,
		settlement *entity.Settlement,
		owner *entity.Owner,
		lines []ReceiptLine,
	) ([]byte, error)
}

// ReceiptLine línea del comprobante con la descripción resuelta.
type ReceiptLine struct {
	Description string
	Quantity    int64
	Amount      decimal.Decimal
}
