package memory

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/petshop-pro/internal/domain/entity"
	"github.com/tu-usuario/petshop-pro/internal/domain/repository"
)

var _ repository.SettlementRepository = (*settlementRepo)(nil)
var _ repository.AdjustmentRepository = (*adjustmentRepo)(nil)

type settlementRepo struct{ s *Store }

func (r *settlementRepo) Create(st *entity.Settlement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if st.ID == "" {
		st.ID = uuid.New().String()
	}
	r.s.settlements[st.ID] = *st
	return nil
}

func (r *settlementRepo) CreateLine(l *entity.SettlementLine) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	r.s.settleLines = append(r.s.settleLines, *l)
	return nil
}

func (r *settlementRepo) GetByID(id string) (*entity.Settlement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	st, ok := r.s.settlements[id]
	if !ok {
		return nil, nil
	}
	return &st, nil
}

func (r *settlementRepo) GetLines(settlementID string) ([]*entity.SettlementLine, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.SettlementLine
	for i := range r.s.settleLines {
		if r.s.settleLines[i].SettlementID == settlementID {
			l := r.s.settleLines[i]
			list = append(list, &l)
		}
	}
	return list, nil
}

func (r *settlementRepo) ListByOwner(ownerID string, limit, offset int) ([]*entity.Settlement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.Settlement
	for _, st := range r.s.settlements {
		if st.OwnerID == ownerID {
			st := st
			list = append(list, &st)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return paginate(list, limit, offset), nil
}

type adjustmentRepo struct{ s *Store }

func (r *adjustmentRepo) Create(a *entity.BalanceAdjustment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	r.s.adjustments[a.ID] = *a
	return nil
}

func (r *adjustmentRepo) GetByID(id string) (*entity.BalanceAdjustment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.adjustments[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r *adjustmentRepo) ListUnappliedByOwner(ownerID string) ([]*entity.BalanceAdjustment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.BalanceAdjustment
	for _, a := range r.s.adjustments {
		if a.OwnerID == ownerID && !a.IsApplied {
			a := a
			list = append(list, &a)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) })
	return list, nil
}

func (r *adjustmentRepo) MarkApplied(id, settlementID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.adjustments[id]
	if !ok || a.IsApplied {
		return false, nil
	}
	a.IsApplied = true
	a.SettlementID = &settlementID
	r.s.adjustments[id] = a
	return true, nil
}

func (r *adjustmentRepo) SumUnappliedByOwner(ownerID string) (decimal.Decimal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sum := decimal.Zero
	for _, a := range r.s.adjustments {
		if a.OwnerID == ownerID && !a.IsApplied {
			sum = sum.Add(a.Amount)
		}
	}
	return sum, nil
}
