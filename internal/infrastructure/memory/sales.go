package memory

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/petshop-pro/internal/domain/entity"
	"github.com/tu-usuario/petshop-pro/internal/domain/repository"
)

var _ repository.SaleRepository = (*saleRepo)(nil)

type saleRepo struct{ s *Store }

func (r *saleRepo) Create(sa *entity.Sale) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if sa.ID == "" {
		sa.ID = uuid.New().String()
	}
	r.s.sales[sa.ID] = *sa
	return nil
}

func (r *saleRepo) CreateItem(it *entity.SaleItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if it.ID == "" {
		it.ID = uuid.New().String()
	}
	r.s.saleItems[it.ID] = *it
	return nil
}

func (r *saleRepo) GetByID(id string) (*entity.Sale, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sa, ok := r.s.sales[id]
	if !ok {
		return nil, nil
	}
	return &sa, nil
}

func (r *saleRepo) GetItems(saleID string) ([]*entity.SaleItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.SaleItem
	for _, it := range r.s.saleItems {
		if it.SaleID == saleID {
			it := it
			list = append(list, &it)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *saleRepo) GetItemByID(id string) (*entity.SaleItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	it, ok := r.s.saleItems[id]
	if !ok {
		return nil, nil
	}
	return &it, nil
}

func (r *saleRepo) ListRecent(limit, offset int) ([]*entity.Sale, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.Sale
	for _, sa := range r.s.sales {
		sa := sa
		list = append(list, &sa)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return paginate(list, limit, offset), nil
}

func (r *saleRepo) MarkCancelled(id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sa, ok := r.s.sales[id]
	if !ok || sa.Status != entity.SaleStatusCompleted {
		return false, nil
	}
	sa.Status = entity.SaleStatusCancelled
	r.s.sales[id] = sa
	return true, nil
}

func (r *saleRepo) MarkPaid(id string, paidAt time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sa, ok := r.s.sales[id]
	if !ok || sa.PaymentStatus != entity.PaymentStatusPending {
		return false, nil
	}
	sa.PaymentStatus = entity.PaymentStatusPaid
	sa.PaidAt = &paidAt
	r.s.sales[id] = sa
	return true, nil
}

func (r *saleRepo) IncrementSettled(itemID string, qty int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it, ok := r.s.saleItems[itemID]
	if !ok || it.SettledQuantity+qty > it.Quantity {
		return false, nil
	}
	it.SettledQuantity += qty
	r.s.saleItems[itemID] = it
	return true, nil
}

func (r *saleRepo) ListSettleableByOwner(ownerID string) ([]*entity.SaleItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.SaleItem
	for _, it := range r.s.saleItems {
		if r.s.settleable(it, ownerID) && it.SettledQuantity < it.Quantity {
			it := it
			list = append(list, &it)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		return r.s.sales[list[i].SaleID].CreatedAt.Before(r.s.sales[list[j].SaleID].CreatedAt)
	})
	return list, nil
}

func (r *saleRepo) SumPendingByOwner(ownerID string) (decimal.Decimal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sum := decimal.Zero
	for _, it := range r.s.saleItems {
		if !r.s.settleable(it, ownerID) {
			continue
		}
		pending := decimal.NewFromInt(it.Quantity - it.SettledQuantity)
		sum = sum.Add(pending.Mul(it.CostAtSale))
	}
	return sum, nil
}

// settleable: línea PRODUCT de una venta pagada no anulada cuyo producto
// pertenece al proveedor. Llamar con mu tomado.
func (s *Store) settleable(it entity.SaleItem, ownerID string) bool {
	if it.Kind != entity.SaleItemKindProduct || it.VariantID == nil {
		return false
	}
	sa, ok := s.sales[it.SaleID]
	if !ok || sa.Status != entity.SaleStatusCompleted || sa.PaymentStatus != entity.PaymentStatusPaid {
		return false
	}
	v, ok := s.variants[*it.VariantID]
	if !ok {
		return false
	}
	p, ok := s.products[v.ProductID]
	return ok && p.OwnerID == ownerID
}
