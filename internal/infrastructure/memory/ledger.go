package memory

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/petshop-pro/internal/domain/entity"
	"github.com/tu-usuario/petshop-pro/internal/domain/repository"
)

var _ repository.VariantRepository = (*variantRepo)(nil)
var _ repository.StockMovementRepository = (*movementRepo)(nil)

type variantRepo struct{ s *Store }

func (r *variantRepo) Create(v *entity.ProductVariant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	r.s.variants[v.ID] = *v
	return nil
}

func (r *variantRepo) GetByID(id string) (*entity.ProductVariant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	v, ok := r.s.variants[id]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (r *variantRepo) ListByProduct(productID string) ([]*entity.ProductVariant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.ProductVariant
	for _, v := range r.s.variants {
		if v.ProductID == productID {
			v := v
			list = append(list, &v)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *variantRepo) UpdatePrices(id string, costPrice, salePrice decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.variants[id]
	if !ok {
		return fmt.Errorf("update prices: variante %s no existe", id)
	}
	v.CostPrice = costPrice
	v.SalePrice = salePrice
	r.s.variants[id] = v
	return nil
}

func (r *variantRepo) DecrementStock(id string, qty int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.variants[id]
	if !ok || v.Stock < qty {
		return false, nil
	}
	v.Stock -= qty
	r.s.variants[id] = v
	return true, nil
}

func (r *variantRepo) IncrementStock(id string, qty int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.variants[id]
	if !ok {
		return fmt.Errorf("increment stock: variante %s no existe", id)
	}
	v.Stock += qty
	r.s.variants[id] = v
	return nil
}

type movementRepo struct{ s *Store }

func (r *movementRepo) Create(m *entity.StockMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	r.s.movements = append(r.s.movements, *m)
	return nil
}

func (r *movementRepo) ListByVariant(variantID string, limit, offset int) ([]*entity.StockMovement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var all []*entity.StockMovement
	for i := range r.s.movements {
		if r.s.movements[i].VariantID == variantID {
			m := r.s.movements[i]
			all = append(all, &m)
		}
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return paginate(all, limit, offset), nil
}

func (r *movementRepo) SumByVariant(variantID string) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var sum int64
	for i := range r.s.movements {
		if r.s.movements[i].VariantID == variantID {
			sum += r.s.movements[i].Quantity
		}
	}
	return sum, nil
}

func paginate[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
