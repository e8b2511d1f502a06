package settlement

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/petshop-pro/internal/application/dto"
	"github.com/tu-usuario/petshop-pro/internal/domain"
	"github.com/tu-usuario/petshop-pro/internal/domain/entity"
)

// TTL corto: el saldo se recalcula barato y las invalidaciones cubren las
// mutaciones propias; el TTL solo acota el desfase ante escrituras externas.
const balanceTTL = 30 * time.Second

// OwnerBalance saldo neto derivado de un proveedor: Σ(pendiente × costo) sobre
// líneas de ventas pagadas + Σ ajustes sin aplicar. Solo lectura, sin efectos.
func (uc *UseCase) OwnerBalance(ctx context.Context, ownerID string) (*dto.OwnerBalanceResponse, error) {
	owner, err := uc.ownerRepo.GetByID(ownerID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, domain.ErrNotFound
	}

	if cached, hit, err := uc.cache.Get(ctx, ownerID); err == nil && hit {
		return &dto.OwnerBalanceResponse{OwnerID: ownerID, Balance: cached}, nil
	}

	pending, err := uc.saleRepo.SumPendingByOwner(ownerID)
	if err != nil {
		return nil, err
	}
	adjustments, err := uc.adjRepo.SumUnappliedByOwner(ownerID)
	if err != nil {
		return nil, err
	}
	balance := entity.RoundMoney(pending.Add(adjustments))

	_ = uc.cache.Set(ctx, ownerID, balance, balanceTTL)
	return &dto.OwnerBalanceResponse{OwnerID: ownerID, Balance: balance}, nil
}

// PendingItems líneas liquidables y ajustes sin aplicar de un proveedor,
// para armar la selección de un lote.
func (uc *UseCase) PendingItems(ctx context.Context, ownerID string) ([]dto.PendingItemResponse, []dto.AdjustmentResponse, error) {
	owner, err := uc.ownerRepo.GetByID(ownerID)
	if err != nil {
		return nil, nil, err
	}
	if owner == nil {
		return nil, nil, domain.ErrNotFound
	}
	items, err := uc.saleRepo.ListSettleableByOwner(ownerID)
	if err != nil {
		return nil, nil, err
	}
	outItems := make([]dto.PendingItemResponse, 0, len(items))
	for _, it := range items {
		pending := it.PendingQuantity()
		outItems = append(outItems, dto.PendingItemResponse{
			SaleItemID:      it.ID,
			SaleID:          it.SaleID,
			Description:     it.Description,
			CostAtSale:      it.CostAtSale,
			Quantity:        it.Quantity,
			SettledQuantity: it.SettledQuantity,
			PendingQuantity: pending,
			PendingAmount:   entity.LineAmount(it.CostAtSale, pending),
		})
	}
	adjs, err := uc.adjRepo.ListUnappliedByOwner(ownerID)
	if err != nil {
		return nil, nil, err
	}
	outAdjs := make([]dto.AdjustmentResponse, 0, len(adjs))
	for _, a := range adjs {
		outAdjs = append(outAdjs, dto.AdjustmentResponse{
			ID:          a.ID,
			OwnerID:     a.OwnerID,
			Amount:      a.Amount,
			Description: a.Description,
			IsApplied:   a.IsApplied,
			CreatedAt:   a.CreatedAt,
		})
	}
	return outItems, outAdjs, nil
}

// CreateAdjustment alta manual de un ajuste de saldo (corrección independiente
// de una venta). Lo consume exactamente una liquidación futura.
func (uc *UseCase) CreateAdjustment(ctx context.Context, actorID, ownerID string, in dto.CreateAdjustmentRequest) (*dto.AdjustmentResponse, error) {
	if actorID == "" {
		return nil, domain.ErrUnauthorized
	}
	if in.Amount.IsZero() || in.Description == "" {
		return nil, domain.ErrInvalidInput
	}
	owner, err := uc.ownerRepo.GetByID(ownerID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, domain.ErrNotFound
	}
	adj := &entity.BalanceAdjustment{
		ID:          uuid.New().String(),
		OwnerID:     ownerID,
		Amount:      entity.RoundMoney(in.Amount),
		Description: in.Description,
		IsApplied:   false,
		CreatedAt:   time.Now(),
	}
	if err := uc.adjRepo.Create(adj); err != nil {
		return nil, err
	}
	_ = uc.cache.Delete(ctx, ownerID)
	return &dto.AdjustmentResponse{
		ID:          adj.ID,
		OwnerID:     adj.OwnerID,
		Amount:      adj.Amount,
		Description: adj.Description,
		IsApplied:   adj.IsApplied,
		CreatedAt:   adj.CreatedAt,
	}, nil
}
