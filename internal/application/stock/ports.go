package stock

import (
	"context"

	"github.com/tu-usuario/petshop-pro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza que el contador de stock y la fila del libro se
// escriben juntos o no se escribe nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		variantRepo repository.VariantRepository,
	) error) error
}
