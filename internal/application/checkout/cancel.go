package checkout

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/petshop-pro/internal/domain"
	"github.com/tu-usuario/petshop-pro/internal/domain/entity"
	"github.com/tu-usuario/petshop-pro/internal/domain/repository"
)

// CancelSale anula una venta: marca CANCELLED, restaura el stock de cada línea
// de producto (incremento incondicional, tipo SALE_CANCELLED) y, por cada línea
// ya liquidada parcial o totalmente al proveedor, crea un ajuste de saldo
// negativo sin aplicar — la liquidación histórica nunca se reabre.
//
// Re-anular no es idempotente a propósito: la segunda llamada falla con
// ErrAlreadyCancelled para que el stock no se restaure dos veces. El flip de
// estado es un update condicional dentro de la tx, así dos anulaciones en
// carrera no generan clawbacks duplicados.
func (uc *UseCase) CancelSale(ctx context.Context, actorID, saleID string) error {
	if actorID == "" {
		return domain.ErrUnauthorized
	}
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return err
	}
	if sale == nil {
		return domain.ErrNotFound
	}
	if sale.Status == entity.SaleStatusCancelled {
		return domain.ErrAlreadyCancelled
	}

	now := time.Now()
	owners := make(map[string]bool)

	err = uc.txRunner.RunCheckout(ctx, func(
		saleRepo repository.SaleRepository,
		movRepo repository.StockMovementRepository,
		variantRepo repository.VariantRepository,
		_ repository.AppointmentRepository,
		adjRepo repository.AdjustmentRepository,
		productRepo repository.ProductRepository,
	) error {
		ok, err := saleRepo.MarkCancelled(saleID)
		if err != nil {
			return err
		}
		if !ok {
			// Otra anulación ganó la carrera entre la lectura de arriba y esta tx.
			return domain.ErrAlreadyCancelled
		}

		items, err := saleRepo.GetItems(saleID)
		if err != nil {
			return err
		}
		for _, it := range items {
			if it.Kind != entity.SaleItemKindProduct || it.VariantID == nil {
				continue
			}
			if err := uc.ledger.RestockInTx(
				movRepo, variantRepo, *it.VariantID, it.Quantity,
				entity.MovementTypeSaleCancelled, "anulación venta "+saleID, actorID, now,
			); err != nil {
				return err
			}
			if it.SettledQuantity > 0 {
				// Ya se le pagó al proveedor por estas unidades: se le cobra de
				// vuelta en la próxima liquidación, no se toca la histórica.
				ownerID, err := productRepo.OwnerOfVariant(*it.VariantID)
				if err != nil {
					return err
				}
				if ownerID == "" {
					return domain.ErrNotFound
				}
				clawback := entity.LineAmount(it.CostAtSale, it.SettledQuantity).Neg()
				adj := &entity.BalanceAdjustment{
					ID:          uuid.New().String(),
					OwnerID:     ownerID,
					Amount:      clawback,
					Description: "anulación venta " + saleID + ": " + it.Description,
					IsApplied:   false,
					CreatedAt:   now,
				}
				if err := adjRepo.Create(adj); err != nil {
					return err
				}
			}
			if ownerID, err := productRepo.OwnerOfVariant(*it.VariantID); err == nil && ownerID != "" {
				owners[ownerID] = true
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	for ownerID := range owners {
		_ = uc.cache.Delete(ctx, ownerID)
	}
	return nil
}
