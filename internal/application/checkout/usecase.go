package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/petshop-pro/internal/application/dto"
	"github.com/tu-usuario/petshop-pro/internal/application/settlement"
	"github.com/tu-usuario/petshop-pro/internal/domain"
	"github.com/tu-usuario/petshop-pro/internal/domain/entity"
	"github.com/tu-usuario/petshop-pro/internal/domain/repository"
)

// UseCase procesador de ventas: valida el carrito y, en una sola transacción,
// descuenta stock, factura servicios de citas y persiste la venta con sus líneas.
type UseCase struct {
	txRunner     TxRunner
	ledger       Ledger
	variantRepo  repository.VariantRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	apptRepo     repository.AppointmentRepository
	saleRepo     repository.SaleRepository
	cache        settlement.BalanceCache
}

// NewUseCase construye el caso de uso. cache admite una implementación nula.
func NewUseCase(
	txRunner TxRunner,
	ledger Ledger,
	variantRepo repository.VariantRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	apptRepo repository.AppointmentRepository,
	saleRepo repository.SaleRepository,
	cache settlement.BalanceCache,
) *UseCase {
	if cache == nil {
		cache = settlement.NoopBalanceCache{}
	}
	return &UseCase{
		txRunner:     txRunner,
		ledger:       ledger,
		variantRepo:  variantRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		apptRepo:     apptRepo,
		saleRepo:     saleRepo,
		cache:        cache,
	}
}

// Checkout procesa el carrito. Validación de referencias fuera de la tx (solo
// lectura); mutaciones dentro de una tx única: descuento condicional por línea
// de producto (la carrera por la última unidad la gana exactamente uno),
// redondeo por línea en el total, y citas referenciadas pasan a BILLED.
func (uc *UseCase) Checkout(ctx context.Context, actorID string, cmd *Command) (*dto.CheckoutResponse, error) {
	if actorID == "" {
		return nil, domain.ErrUnauthorized
	}

	if cmd.CustomerID != nil {
		customer, err := uc.customerRepo.GetByID(*cmd.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, domain.ErrNotFound
		}
	}

	// Referencias de variantes y citas (lectura, fuera de la tx).
	variantsByID := make(map[string]*entity.ProductVariant)
	for _, line := range cmd.Lines {
		if line.Product != nil {
			v, err := uc.variantRepo.GetByID(line.Product.VariantID)
			if err != nil {
				return nil, err
			}
			if v == nil {
				return nil, domain.ErrNotFound
			}
			variantsByID[v.ID] = v
			continue
		}
		appt, err := uc.apptRepo.GetByID(line.Service.AppointmentID)
		if err != nil {
			return nil, err
		}
		if appt == nil {
			return nil, domain.ErrNotFound
		}
		switch appt.Status {
		case entity.AppointmentStatusBilled, entity.AppointmentStatusCancelled:
			return nil, domain.ErrConflict
		}
	}

	now := time.Now()
	saleID := uuid.New().String()

	paymentStatus := entity.PaymentStatusPaid
	var paidAt *time.Time
	if cmd.PaymentMethod == entity.PaymentMethodCheckingAccount {
		paymentStatus = entity.PaymentStatusPending
	} else {
		paidAt = &now
	}

	err := uc.txRunner.RunCheckout(ctx, func(
		saleRepo repository.SaleRepository,
		movRepo repository.StockMovementRepository,
		variantRepo repository.VariantRepository,
		apptRepo repository.AppointmentRepository,
		_ repository.AdjustmentRepository,
		_ repository.ProductRepository,
	) error {
		total := decimal.Zero
		items := make([]*entity.SaleItem, 0, len(cmd.Lines))
		var billedAppointments []string

		for _, line := range cmd.Lines {
			if line.Product != nil {
				v := variantsByID[line.Product.VariantID]
				// Descuento condicional + fila del libro; sin stock aborta todo
				// el checkout nombrando la variante.
				if err := uc.ledger.WithdrawInTx(
					movRepo, variantRepo, v, line.Product.Quantity,
					entity.MovementTypeSale, "venta "+saleID, actorID, now,
				); err != nil {
					return err
				}
				variantID := v.ID
				items = append(items, &entity.SaleItem{
					ID:          uuid.New().String(),
					SaleID:      saleID,
					Kind:        entity.SaleItemKindProduct,
					VariantID:   &variantID,
					Description: v.Name,
					CostAtSale:  v.CostPrice,
					PriceAtSale: v.SalePrice,
					Quantity:    line.Product.Quantity,
				})
				total = entity.RoundMoney(total.Add(entity.LineAmount(v.SalePrice, line.Product.Quantity)))
				continue
			}

			svc := line.Service
			apptID := svc.AppointmentID
			desc := svc.Description
			if desc == "" {
				desc = "servicio de peluquería"
			}
			items = append(items, &entity.SaleItem{
				ID:            uuid.New().String(),
				SaleID:        saleID,
				Kind:          entity.SaleItemKindService,
				AppointmentID: &apptID,
				Description:   desc,
				CostAtSale:    decimal.Zero,
				PriceAtSale:   svc.Price,
				Quantity:      svc.Quantity,
			})
			total = entity.RoundMoney(total.Add(entity.LineAmount(svc.Price, svc.Quantity)))
			billedAppointments = append(billedAppointments, apptID)
		}

		sale := &entity.Sale{
			ID:            saleID,
			Total:         total,
			PaymentMethod: cmd.PaymentMethod,
			Status:        entity.SaleStatusCompleted,
			PaymentStatus: paymentStatus,
			PaidAt:        paidAt,
			CustomerID:    cmd.CustomerID,
			CreatedBy:     actorID,
			CreatedAt:     now,
		}
		if err := saleRepo.Create(sale); err != nil {
			return err
		}
		for _, item := range items {
			if err := saleRepo.CreateItem(item); err != nil {
				return err
			}
		}
		for _, apptID := range billedAppointments {
			if err := apptRepo.UpdateStatus(apptID, entity.AppointmentStatusBilled); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// El saldo de los proveedores afectados cambió si la venta quedó pagada.
	if paymentStatus == entity.PaymentStatusPaid {
		uc.invalidateOwnersOf(ctx, variantsByID)
	}

	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil || sale == nil {
		return nil, fmt.Errorf("leer venta creada: %w", err)
	}
	return &dto.CheckoutResponse{
		SaleID:        sale.ID,
		Total:         sale.Total,
		PaymentStatus: sale.PaymentStatus,
		CreatedAt:     sale.CreatedAt,
	}, nil
}

func (uc *UseCase) invalidateOwnersOf(ctx context.Context, variants map[string]*entity.ProductVariant) {
	seen := make(map[string]bool)
	for id := range variants {
		ownerID, err := uc.productRepo.OwnerOfVariant(id)
		if err != nil || ownerID == "" || seen[ownerID] {
			continue
		}
		seen[ownerID] = true
		_ = uc.cache.Delete(ctx, ownerID)
	}
}

// MarkPaid marca una venta a crédito como pagada. Idempotente: una venta ya
// pagada retorna éxito sin efecto. Las anuladas no se pueden pagar.
func (uc *UseCase) MarkPaid(ctx context.Context, actorID, saleID string) (*dto.SaleResponse, error) {
	if actorID == "" {
		return nil, domain.ErrUnauthorized
	}
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	if sale.Status == entity.SaleStatusCancelled {
		return nil, domain.ErrConflict
	}
	if sale.PaymentStatus != entity.PaymentStatusPaid {
		if _, err := uc.saleRepo.MarkPaid(saleID, time.Now()); err != nil {
			return nil, err
		}
		// Al quedar pagada, sus líneas entran al saldo liquidable de los dueños.
		items, err := uc.saleRepo.GetItems(saleID)
		if err == nil {
			seen := make(map[string]bool)
			for _, it := range items {
				if it.VariantID == nil {
					continue
				}
				ownerID, err := uc.productRepo.OwnerOfVariant(*it.VariantID)
				if err != nil || ownerID == "" || seen[ownerID] {
					continue
				}
				seen[ownerID] = true
				_ = uc.cache.Delete(ctx, ownerID)
			}
		}
	}
	return uc.GetSale(ctx, saleID)
}

// GetSale obtiene una venta con sus líneas.
func (uc *UseCase) GetSale(ctx context.Context, saleID string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.saleRepo.GetItems(saleID)
	if err != nil {
		return nil, err
	}
	out := &dto.SaleResponse{
		ID:            sale.ID,
		Total:         sale.Total,
		PaymentMethod: sale.PaymentMethod,
		Status:        sale.Status,
		PaymentStatus: sale.PaymentStatus,
		PaidAt:        sale.PaidAt,
		CustomerID:    sale.CustomerID,
		CreatedAt:     sale.CreatedAt,
	}
	for _, it := range items {
		out.Items = append(out.Items, dto.SaleItemResponse{
			ID:              it.ID,
			Kind:            it.Kind,
			VariantID:       it.VariantID,
			AppointmentID:   it.AppointmentID,
			Description:     it.Description,
			PriceAtSale:     it.PriceAtSale,
			Quantity:        it.Quantity,
			SettledQuantity: it.SettledQuantity,
		})
	}
	return out, nil
}

// ListSales lista ventas recientes.
func (uc *UseCase) ListSales(ctx context.Context, limit, offset int) ([]dto.SaleResponse, error) {
	sales, err := uc.saleRepo.ListRecent(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleResponse, 0, len(sales))
	for _, s := range sales {
		out = append(out, dto.SaleResponse{
			ID:            s.ID,
			Total:         s.Total,
			PaymentMethod: s.PaymentMethod,
			Status:        s.Status,
			PaymentStatus: s.PaymentStatus,
			PaidAt:        s.PaidAt,
			CustomerID:    s.CustomerID,
			CreatedAt:     s.CreatedAt,
		})
	}
	return out, nil
}
