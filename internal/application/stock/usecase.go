package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/petshop-pro/internal/application/dto"
	"github.com/tu-usuario/petshop-pro/internal/domain"
	"github.com/tu-usuario/petshop-pro/internal/domain/entity"
	"github.com/tu-usuario/petshop-pro/internal/domain/repository"
)

// LedgerUseCase registra movimientos de stock de forma transaccional.
// El contador materializado y la fila inmutable del libro siempre mutan en la
// misma transacción; para salidas, el descuento es un update condicional
// (stock >= |delta|) que falla con ErrInsufficientStock sin escribir nada.
type LedgerUseCase struct {
	txRunner    TxRunner
	variantRepo repository.VariantRepository
	movRepo     repository.StockMovementRepository
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(txRunner TxRunner, variantRepo repository.VariantRepository, movRepo repository.StockMovementRepository) *LedgerUseCase {
	return &LedgerUseCase{txRunner: txRunner, variantRepo: variantRepo, movRepo: movRepo}
}

// MovementInput entrada para registrar un movimiento manual.
// Quantity lleva signo: positivo entrada, negativo salida.
type MovementInput struct {
	ActorID   string
	VariantID string
	Quantity  int64
	Type      string
	Reason    string
}

// RegisterMovement valida y registra un movimiento manual (ENTRY, OWNER_WITHDRAWAL
// o ADJUSTMENT). SALE y SALE_CANCELLED solo se generan desde checkout/anulación.
func (uc *LedgerUseCase) RegisterMovement(ctx context.Context, in MovementInput) error {
	if in.ActorID == "" {
		return domain.ErrUnauthorized
	}
	if in.VariantID == "" || in.Quantity == 0 {
		return domain.ErrInvalidInput
	}
	switch in.Type {
	case entity.MovementTypeEntry:
		if in.Quantity < 0 {
			return domain.ErrInvalidInput
		}
	case entity.MovementTypeOwnerWithdrawal:
		if in.Quantity > 0 {
			return domain.ErrInvalidInput
		}
	case entity.MovementTypeAdjustment:
		// cualquier signo
	default:
		return domain.ErrInvalidInput
	}

	variant, err := uc.variantRepo.GetByID(in.VariantID)
	if err != nil {
		return err
	}
	if variant == nil {
		return domain.ErrNotFound
	}

	now := time.Now()
	return uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		variantRepo repository.VariantRepository,
	) error {
		if in.Quantity < 0 {
			return uc.WithdrawInTx(movRepo, variantRepo, variant, -in.Quantity, in.Type, in.Reason, in.ActorID, now)
		}
		return uc.RestockInTx(movRepo, variantRepo, in.VariantID, in.Quantity, in.Type, in.Reason, in.ActorID, now)
	})
}

// WithdrawInTx descuenta qty (positivo) con el update condicional y escribe la fila
// del libro, usando los repositorios del caller (misma transacción). Implementa la
// interfaz checkout.Ledger. Si el stock no alcanza retorna ErrInsufficientStock
// envuelto con el nombre de la variante y el caller debe hacer rollback.
func (uc *LedgerUseCase) WithdrawInTx(
	movRepo repository.StockMovementRepository,
	variantRepo repository.VariantRepository,
	variant *entity.ProductVariant,
	qty int64,
	movType, reason, actorID string,
	now time.Time,
) error {
	ok, err := variantRepo.DecrementStock(variant.ID, qty)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%q: %w", variant.Name, domain.ErrInsufficientStock)
	}
	mov := &entity.StockMovement{
		ID:        uuid.New().String(),
		VariantID: variant.ID,
		Quantity:  -qty,
		Type:      movType,
		Reason:    reason,
		CreatedBy: actorID,
		CreatedAt: now,
	}
	return movRepo.Create(mov)
}

// RestockInTx suma qty (positivo) incondicionalmente y escribe la fila del libro,
// usando los repositorios del caller (misma transacción).
func (uc *LedgerUseCase) RestockInTx(
	movRepo repository.StockMovementRepository,
	variantRepo repository.VariantRepository,
	variantID string,
	qty int64,
	movType, reason, actorID string,
	now time.Time,
) error {
	if err := variantRepo.IncrementStock(variantID, qty); err != nil {
		return err
	}
	mov := &entity.StockMovement{
		ID:        uuid.New().String(),
		VariantID: variantID,
		Quantity:  qty,
		Type:      movType,
		Reason:    reason,
		CreatedBy: actorID,
		CreatedAt: now,
	}
	return movRepo.Create(mov)
}

// History lista el libro de una variante. Nunca recomputa el contador: el camino
// caliente confía en él.
func (uc *LedgerUseCase) History(ctx context.Context, variantID string, limit, offset int) ([]dto.StockMovementResponse, error) {
	movs, err := uc.movRepo.ListByVariant(variantID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockMovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, dto.StockMovementResponse{
			ID:        m.ID,
			VariantID: m.VariantID,
			Quantity:  m.Quantity,
			Type:      m.Type,
			Reason:    m.Reason,
			CreatedBy: m.CreatedBy,
			CreatedAt: m.CreatedAt,
		})
	}
	return out, nil
}

// Audit recomputa el contador desde el libro (auditoría fuera de línea) y
// reporta si coincide con el contador materializado.
func (uc *LedgerUseCase) Audit(ctx context.Context, variantID string) (*dto.StockAuditResponse, error) {
	variant, err := uc.variantRepo.GetByID(variantID)
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, domain.ErrNotFound
	}
	sum, err := uc.movRepo.SumByVariant(variantID)
	if err != nil {
		return nil, err
	}
	return &dto.StockAuditResponse{
		VariantID:    variantID,
		Stock:        variant.Stock,
		MovementsSum: sum,
		Consistent:   variant.Stock == sum,
	}, nil
}
