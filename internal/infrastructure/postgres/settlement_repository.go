package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/petshop-pro/internal/domain/entity"
	"github.com/tu-usuario/petshop-pro/internal/domain/repository"
)

var _ repository.SettlementRepository = (*SettlementRepo)(nil)
var _ repository.AdjustmentRepository = (*AdjustmentRepo)(nil)

// SettlementRepo implementación de SettlementRepository sobre PostgreSQL (usable con pool o tx).
// Cabeceras y líneas son inmutables: solo INSERT y SELECT.
type SettlementRepo struct {
	q Querier
}

// NewSettlementRepository construye el adaptador de liquidaciones. Pasar pool o tx (Querier).
func NewSettlementRepository(q Querier) *SettlementRepo {
	return &SettlementRepo{q: q}
}

// Create persiste la cabecera de una liquidación.
func (r *SettlementRepo) Create(st *entity.Settlement) error {
	if st.ID == "" {
		st.ID = uuid.New().String()
	}
	query := `
		INSERT INTO settlements (id, owner_id, total_amount, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		st.ID, st.OwnerID, st.TotalAmount, st.CreatedBy, st.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create settlement: %w", err)
	}
	return nil
}

// CreateLine persiste una línea de liquidación.
func (r *SettlementRepo) CreateLine(l *entity.SettlementLine) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	query := `
		INSERT INTO settlement_lines (id, settlement_id, sale_item_id, quantity, amount)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		l.ID, l.SettlementID, l.SaleItemID, l.Quantity, l.Amount,
	)
	if err != nil {
		return fmt.Errorf("create settlement line: %w", err)
	}
	return nil
}

// GetByID obtiene una liquidación por ID. Devuelve nil, nil si no existe.
func (r *SettlementRepo) GetByID(id string) (*entity.Settlement, error) {
	query := `SELECT id, owner_id, total_amount, created_by, created_at FROM settlements WHERE id = $1`
	var st entity.Settlement
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&st.ID, &st.OwnerID, &st.TotalAmount, &st.CreatedBy, &st.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get settlement: %w", err)
	}
	return &st, nil
}

// GetLines lista las líneas de una liquidación.
func (r *SettlementRepo) GetLines(settlementID string) ([]*entity.SettlementLine, error) {
	query := `
		SELECT id, settlement_id, sale_item_id, quantity, amount
		FROM settlement_lines WHERE settlement_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, settlementID)
	if err != nil {
		return nil, fmt.Errorf("get settlement lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.SettlementLine
	for rows.Next() {
		var l entity.SettlementLine
		if err := rows.Scan(&l.ID, &l.SettlementID, &l.SaleItemID, &l.Quantity, &l.Amount); err != nil {
			return nil, fmt.Errorf("scan settlement line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// ListByOwner lista las liquidaciones de un proveedor, más recientes primero.
func (r *SettlementRepo) ListByOwner(ownerID string, limit, offset int) ([]*entity.Settlement, error) {
	query := `
		SELECT id, owner_id, total_amount, created_by, created_at
		FROM settlements WHERE owner_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, ownerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list settlements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Settlement
	for rows.Next() {
		var st entity.Settlement
		if err := rows.Scan(&st.ID, &st.OwnerID, &st.TotalAmount, &st.CreatedBy, &st.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan settlement: %w", err)
		}
		list = append(list, &st)
	}
	return list, rows.Err()
}

// AdjustmentRepo implementación de AdjustmentRepository sobre PostgreSQL (usable con pool o tx).
type AdjustmentRepo struct {
	q Querier
}

// NewAdjustmentRepository construye el adaptador de ajustes de saldo. Pasar pool o tx (Querier).
func NewAdjustmentRepository(q Querier) *AdjustmentRepo {
	return &AdjustmentRepo{q: q}
}

// Create persiste un ajuste de saldo.
func (r *AdjustmentRepo) Create(a *entity.BalanceAdjustment) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	query := `
		INSERT INTO balance_adjustments (id, owner_id, amount, description, is_applied, settlement_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.OwnerID, a.Amount, a.Description, a.IsApplied, a.SettlementID, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create adjustment: %w", err)
	}
	return nil
}

// GetByID obtiene un ajuste por ID. Devuelve nil, nil si no existe.
func (r *AdjustmentRepo) GetByID(id string) (*entity.BalanceAdjustment, error) {
	query := `
		SELECT id, owner_id, amount, description, is_applied, settlement_id, created_at
		FROM balance_adjustments WHERE id = $1`
	var a entity.BalanceAdjustment
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&a.ID, &a.OwnerID, &a.Amount, &a.Description, &a.IsApplied, &a.SettlementID, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get adjustment: %w", err)
	}
	return &a, nil
}

// ListUnappliedByOwner lista los ajustes no consumidos de un proveedor.
func (r *AdjustmentRepo) ListUnappliedByOwner(ownerID string) ([]*entity.BalanceAdjustment, error) {
	query := `
		SELECT id, owner_id, amount, description, is_applied, settlement_id, created_at
		FROM balance_adjustments WHERE owner_id = $1 AND NOT is_applied
		ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list unapplied adjustments: %w", err)
	}
	defer rows.Close()
	var list []*entity.BalanceAdjustment
	for rows.Next() {
		var a entity.BalanceAdjustment
		if err := rows.Scan(&a.ID, &a.OwnerID, &a.Amount, &a.Description, &a.IsApplied,
			&a.SettlementID, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan adjustment: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// MarkApplied consume el ajuste asociándolo a una liquidación. El WHERE sobre
// is_applied garantiza que cada ajuste se consume exactamente una vez.
func (r *AdjustmentRepo) MarkApplied(id, settlementID string) (bool, error) {
	query := `UPDATE balance_adjustments SET is_applied = true, settlement_id = $2 WHERE id = $1 AND NOT is_applied`
	tag, err := r.q.Exec(context.Background(), query, id, settlementID)
	if err != nil {
		return false, fmt.Errorf("mark adjustment applied: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// SumUnappliedByOwner suma los importes con signo de los ajustes no consumidos.
func (r *AdjustmentRepo) SumUnappliedByOwner(ownerID string) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM balance_adjustments WHERE owner_id = $1 AND NOT is_applied`
	var sum decimal.Decimal
	if err := r.q.QueryRow(context.Background(), query, ownerID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("sum unapplied adjustments: %w", err)
	}
	return sum, nil
}
