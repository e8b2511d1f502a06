package settlement

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/petshop-pro/internal/application/dto"
	"github.com/tu-usuario/petshop-pro/internal/domain"
	"github.com/tu-usuario/petshop-pro/internal/domain/entity"
	"github.com/tu-usuario/petshop-pro/internal/domain/repository"
)

// UseCase motor de liquidaciones en consignación: paga a un proveedor las
// unidades vendidas (y ya cobradas) aún no liquidadas, con contabilidad de
// cantidades parciales, más ajustes manuales pendientes.
type UseCase struct {
	txRunner       TxRunner
	ownerRepo      repository.OwnerRepository
	saleRepo       repository.SaleRepository
	adjRepo        repository.AdjustmentRepository
	settlementRepo repository.SettlementRepository
	productRepo    repository.ProductRepository
	cache          BalanceCache
	receipts       ReceiptGenerator
}

// NewUseCase construye el caso de uso. cache y receipts admiten implementaciones nulas.
func NewUseCase(
	txRunner TxRunner,
	ownerRepo repository.OwnerRepository,
	saleRepo repository.SaleRepository,
	adjRepo repository.AdjustmentRepository,
	settlementRepo repository.SettlementRepository,
	productRepo repository.ProductRepository,
	cache BalanceCache,
	receipts ReceiptGenerator,
) *UseCase {
	if cache == nil {
		cache = NoopBalanceCache{}
	}
	return &UseCase{
		txRunner:       txRunner,
		ownerRepo:      ownerRepo,
		saleRepo:       saleRepo,
		adjRepo:        adjRepo,
		settlementRepo: settlementRepo,
		productRepo:    productRepo,
		cache:          cache,
		receipts:       receipts,
	}
}

// ItemSelection porción de una línea de venta a liquidar.
type ItemSelection struct {
	SaleItemID string
	Quantity   int64
}

// Command selección validada en la frontera: líneas y/o ajustes de un proveedor.
type Command struct {
	OwnerID     string
	Items       []ItemSelection
	Adjustments []string
}

// CommandFromRequest decodifica y valida la forma del payload una sola vez,
// antes de que corra cualquier regla de negocio.
func CommandFromRequest(ownerID string, in dto.SettleRequest) (*Command, error) {
	if ownerID == "" {
		return nil, domain.ErrInvalidInput
	}
	if len(in.Items) == 0 && len(in.Adjustments) == 0 {
		return nil, domain.ErrInvalidInput
	}
	cmd := &Command{OwnerID: ownerID}
	seen := make(map[string]bool, len(in.Items))
	for _, it := range in.Items {
		if it.SaleItemID == "" || it.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		if seen[it.SaleItemID] {
			return nil, domain.ErrInvalidInput // misma línea dos veces en el lote
		}
		seen[it.SaleItemID] = true
		cmd.Items = append(cmd.Items, ItemSelection{SaleItemID: it.SaleItemID, Quantity: it.Quantity})
	}
	seenAdj := make(map[string]bool, len(in.Adjustments))
	for _, id := range in.Adjustments {
		if id == "" || seenAdj[id] {
			return nil, domain.ErrInvalidInput
		}
		seenAdj[id] = true
		cmd.Adjustments = append(cmd.Adjustments, id)
	}
	return cmd, nil
}

// Settle valida toda la selección y registra la liquidación en una sola
// transacción: cualquier violación aborta el lote completo sin liquidación
// parcial. Total ≤ 0 se rechaza con ErrNonPositiveSettlement.
func (uc *UseCase) Settle(ctx context.Context, actorID string, cmd *Command) (*dto.SettlementResponse, error) {
	if actorID == "" {
		return nil, domain.ErrUnauthorized
	}
	owner, err := uc.ownerRepo.GetByID(cmd.OwnerID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	settlementID := uuid.New().String()
	var resp *dto.SettlementResponse

	err = uc.txRunner.RunSettlement(ctx, func(
		saleRepo repository.SaleRepository,
		adjRepo repository.AdjustmentRepository,
		settlementRepo repository.SettlementRepository,
		productRepo repository.ProductRepository,
	) error {
		total := decimal.Zero
		type lineCalc struct {
			item   *entity.SaleItem
			qty    int64
			amount decimal.Decimal
		}
		lines := make([]lineCalc, 0, len(cmd.Items))

		// Validación por línea, dentro de la misma tx que el commit: la cantidad
		// pendiente se relee aquí, así dos lotes concurrentes no sobrepagan.
		for _, sel := range cmd.Items {
			item, err := saleRepo.GetItemByID(sel.SaleItemID)
			if err != nil {
				return err
			}
			if item == nil {
				return domain.ErrNotFound
			}
			if item.Kind != entity.SaleItemKindProduct || item.VariantID == nil {
				return domain.ErrInvalidInput // los servicios no se liquidan a proveedores
			}
			itemOwner, err := productRepo.OwnerOfVariant(*item.VariantID)
			if err != nil {
				return err
			}
			if itemOwner != cmd.OwnerID {
				return domain.ErrForbidden
			}
			sale, err := saleRepo.GetByID(item.SaleID)
			if err != nil {
				return err
			}
			if sale == nil {
				return domain.ErrNotFound
			}
			if sale.Status != entity.SaleStatusCompleted || sale.PaymentStatus != entity.PaymentStatusPaid {
				return domain.ErrConflict // ventas a crédito sin cobrar o anuladas no se liquidan
			}
			if sel.Quantity > item.PendingQuantity() {
				return domain.ErrOverSettlement
			}
			amount := entity.LineAmount(item.CostAtSale, sel.Quantity)
			total = entity.RoundMoney(total.Add(amount))
			lines = append(lines, lineCalc{item: item, qty: sel.Quantity, amount: amount})
		}

		adjs := make([]*entity.BalanceAdjustment, 0, len(cmd.Adjustments))
		for _, adjID := range cmd.Adjustments {
			adj, err := adjRepo.GetByID(adjID)
			if err != nil {
				return err
			}
			if adj == nil {
				return domain.ErrNotFound
			}
			if adj.OwnerID != cmd.OwnerID {
				return domain.ErrForbidden
			}
			if adj.IsApplied {
				return domain.ErrConflict
			}
			total = entity.RoundMoney(total.Add(adj.Amount))
			adjs = append(adjs, adj)
		}

		if !total.GreaterThan(decimal.Zero) {
			return domain.ErrNonPositiveSettlement
		}

		st := &entity.Settlement{
			ID:          settlementID,
			OwnerID:     cmd.OwnerID,
			TotalAmount: total,
			CreatedBy:   actorID,
			CreatedAt:   now,
		}
		if err := settlementRepo.Create(st); err != nil {
			return err
		}

		out := &dto.SettlementResponse{
			ID:          st.ID,
			OwnerID:     st.OwnerID,
			TotalAmount: st.TotalAmount,
			CreatedAt:   st.CreatedAt,
		}
		for _, lc := range lines {
			line := &entity.SettlementLine{
				ID:           uuid.New().String(),
				SettlementID: settlementID,
				SaleItemID:   lc.item.ID,
				Quantity:     lc.qty,
				Amount:       lc.amount,
			}
			if err := settlementRepo.CreateLine(line); err != nil {
				return err
			}
			// Update condicional: cero filas significa que otro lote ganó la carrera.
			ok, err := saleRepo.IncrementSettled(lc.item.ID, lc.qty)
			if err != nil {
				return err
			}
			if !ok {
				return domain.ErrOverSettlement
			}
			out.Lines = append(out.Lines, dto.SettlementLineResponse{
				ID:          line.ID,
				SaleItemID:  line.SaleItemID,
				Description: lc.item.Description,
				Quantity:    line.Quantity,
				Amount:      line.Amount,
			})
		}
		for _, adj := range adjs {
			ok, err := adjRepo.MarkApplied(adj.ID, settlementID)
			if err != nil {
				return err
			}
			if !ok {
				return domain.ErrConflict
			}
		}
		resp = out
		return nil
	})
	if err != nil {
		return nil, err
	}

	_ = uc.cache.Delete(ctx, cmd.OwnerID)
	return resp, nil
}

// Get obtiene una liquidación con sus líneas.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.SettlementResponse, error) {
	st, err := uc.settlementRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.settlementRepo.GetLines(id)
	if err != nil {
		return nil, err
	}
	out := &dto.SettlementResponse{
		ID:          st.ID,
		OwnerID:     st.OwnerID,
		TotalAmount: st.TotalAmount,
		CreatedAt:   st.CreatedAt,
	}
	for _, l := range lines {
		desc := ""
		if item, err := uc.saleRepo.GetItemByID(l.SaleItemID); err == nil && item != nil {
			desc = item.Description
		}
		out.Lines = append(out.Lines, dto.SettlementLineResponse{
			ID:          l.ID,
			SaleItemID:  l.SaleItemID,
			Description: desc,
			Quantity:    l.Quantity,
			Amount:      l.Amount,
		})
	}
	return out, nil
}

// ListByOwner lista las liquidaciones de un proveedor.
func (uc *UseCase) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]dto.SettlementResponse, error) {
	sts, err := uc.settlementRepo.ListByOwner(ownerID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SettlementResponse, 0, len(sts))
	for _, st := range sts {
		out = append(out, dto.SettlementResponse{
			ID:          st.ID,
			OwnerID:     st.OwnerID,
			TotalAmount: st.TotalAmount,
			CreatedAt:   st.CreatedAt,
		})
	}
	return out, nil
}

// Receipt genera el comprobante PDF de una liquidación.
func (uc *UseCase) Receipt(ctx context.Context, id string) ([]byte, error) {
	if uc.receipts == nil {
		return nil, domain.ErrNotFound
	}
	st, err := uc.settlementRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, domain.ErrNotFound
	}
	owner, err := uc.ownerRepo.GetByID(st.OwnerID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, domain.ErrNotFound
	}
	rawLines, err := uc.settlementRepo.GetLines(id)
	if err != nil {
		return nil, err
	}
	lines := make([]ReceiptLine, 0, len(rawLines))
	for _, l := range rawLines {
		desc := l.SaleItemID
		if item, err := uc.saleRepo.GetItemByID(l.SaleItemID); err == nil && item != nil {
			desc = item.Description
		}
		lines = append(lines, ReceiptLine{Description: desc, Quantity: l.Quantity, Amount: l.Amount})
	}
	return uc.receipts.GenerateSettlementPDF(ctx, st, owner, lines)
}
