package checkout

import (
	"context"
	"time"

	"github.com/tu-usuario/petshop-pro/internal/domain/entity"
	"github.com/tu-usuario/petshop-pro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción que incluye todos los
// repos que toca un checkout o una anulación. Cualquier error hace rollback:
// stock, dinero y auditoría quedan consistentes o no queda nada.
type TxRunner interface {
	RunCheckout(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		movRepo repository.StockMovementRepository,
		variantRepo repository.VariantRepository,
		apptRepo repository.AppointmentRepository,
		adjRepo repository.AdjustmentRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// Ledger integra checkout con el libro de stock. Ambos métodos usan los
// repositorios del caller (misma transacción): el descuento condicional y la
// fila del libro se escriben juntos. Si WithdrawInTx retorna
// ErrInsufficientStock el caller debe hacer rollback.
type Ledger interface {
	WithdrawInTx(
		movRepo repository.StockMovementRepository,
		variantRepo repository.VariantRepository,
		variant *entity.ProductVariant,
		qty int64,
		movType, reason, actorID string,
		now time.Time,
	) error
	RestockInTx(
		movRepo repository.StockMovementRepository,
		variantRepo repository.VariantRepository,
		variantID string,
		qty int64,
		movType, reason, actorID string,
		now time.Time,
	) error
}
