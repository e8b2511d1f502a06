package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/petshop-pro/internal/domain/entity"
	"github.com/tu-usuario/petshop-pro/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de ventas. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la cabecera de una venta.
func (r *SaleRepo) Create(s *entity.Sale) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	query := `
		INSERT INTO sales (id, total, payment_method, status, payment_status, paid_at, customer_id, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.Total, s.PaymentMethod, s.Status, s.PaymentStatus, s.PaidAt, s.CustomerID, s.CreatedBy, s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create sale: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de venta.
func (r *SaleRepo) CreateItem(it *entity.SaleItem) error {
	if it.ID == "" {
		it.ID = uuid.New().String()
	}
	query := `
		INSERT INTO sale_items (id, sale_id, kind, variant_id, appointment_id, description, cost_at_sale, price_at_sale, quantity, settled_quantity)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		it.ID, it.SaleID, it.Kind, it.VariantID, it.AppointmentID, it.Description,
		it.CostAtSale, it.PriceAtSale, it.Quantity, it.SettledQuantity,
	)
	if err != nil {
		return fmt.Errorf("create sale item: %w", err)
	}
	return nil
}

// GetByID obtiene una venta por ID. Devuelve nil, nil si no existe.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `
		SELECT id, total, payment_method, status, payment_status, paid_at, customer_id, created_by, created_at
		FROM sales WHERE id = $1`
	var s entity.Sale
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.Total, &s.PaymentMethod, &s.Status, &s.PaymentStatus, &s.PaidAt,
		&s.CustomerID, &s.CreatedBy, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return &s, nil
}

// GetItems lista las líneas de una venta.
func (r *SaleRepo) GetItems(saleID string) ([]*entity.SaleItem, error) {
	query := `
		SELECT id, sale_id, kind, variant_id, appointment_id, description, cost_at_sale, price_at_sale, quantity, settled_quantity
		FROM sale_items WHERE sale_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("get sale items: %w", err)
	}
	defer rows.Close()
	return scanSaleItems(rows)
}

// GetItemByID obtiene una línea por ID. Devuelve nil, nil si no existe.
func (r *SaleRepo) GetItemByID(id string) (*entity.SaleItem, error) {
	query := `
		SELECT id, sale_id, kind, variant_id, appointment_id, description, cost_at_sale, price_at_sale, quantity, settled_quantity
		FROM sale_items WHERE id = $1`
	var it entity.SaleItem
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&it.ID, &it.SaleID, &it.Kind, &it.VariantID, &it.AppointmentID, &it.Description,
		&it.CostAtSale, &it.PriceAtSale, &it.Quantity, &it.SettledQuantity,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale item: %w", err)
	}
	return &it, nil
}

// ListRecent lista ventas ordenadas por fecha descendente.
func (r *SaleRepo) ListRecent(limit, offset int) ([]*entity.Sale, error) {
	query := `
		SELECT id, total, payment_method, status, payment_status, paid_at, customer_id, created_by, created_at
		FROM sales ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.Total, &s.PaymentMethod, &s.Status, &s.PaymentStatus,
			&s.PaidAt, &s.CustomerID, &s.CreatedBy, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// MarkCancelled pasa la venta de COMPLETED a CANCELLED. El WHERE sobre status
// serializa anulaciones concurrentes: solo una ve filas afectadas.
func (r *SaleRepo) MarkCancelled(id string) (bool, error) {
	query := `UPDATE sales SET status = $2 WHERE id = $1 AND status = $3`
	tag, err := r.q.Exec(context.Background(), query, id, entity.SaleStatusCancelled, entity.SaleStatusCompleted)
	if err != nil {
		return false, fmt.Errorf("mark cancelled: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// MarkPaid pasa el estado de pago de PENDING a PAID registrando la fecha.
func (r *SaleRepo) MarkPaid(id string, paidAt time.Time) (bool, error) {
	query := `UPDATE sales SET payment_status = $2, paid_at = $3 WHERE id = $1 AND payment_status = $4`
	tag, err := r.q.Exec(context.Background(), query, id, entity.PaymentStatusPaid, paidAt, entity.PaymentStatusPending)
	if err != nil {
		return false, fmt.Errorf("mark paid: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// IncrementSettled suma qty a settled_quantity solo si el resultado no supera
// quantity. Cero filas afectadas significa sobreliquidación.
func (r *SaleRepo) IncrementSettled(itemID string, qty int64) (bool, error) {
	query := `
		UPDATE sale_items SET settled_quantity = settled_quantity + $2
		WHERE id = $1 AND settled_quantity + $2 <= quantity`
	tag, err := r.q.Exec(context.Background(), query, itemID, qty)
	if err != nil {
		return false, fmt.Errorf("increment settled: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListSettleableByOwner lista líneas PRODUCT con cantidad pendiente de ventas
// pagadas y no anuladas cuyos productos pertenecen al proveedor.
func (r *SaleRepo) ListSettleableByOwner(ownerID string) ([]*entity.SaleItem, error) {
	query := `
		SELECT si.id, si.sale_id, si.kind, si.variant_id, si.appointment_id, si.description,
		       si.cost_at_sale, si.price_at_sale, si.quantity, si.settled_quantity
		FROM sale_items si
		JOIN sales s ON s.id = si.sale_id
		JOIN product_variants pv ON pv.id = si.variant_id
		JOIN products p ON p.id = pv.product_id
		WHERE p.owner_id = $1
		  AND si.kind = $2
		  AND si.settled_quantity < si.quantity
		  AND s.status = $3
		  AND s.payment_status = $4
		ORDER BY s.created_at`
	rows, err := r.q.Query(context.Background(), query,
		ownerID, entity.SaleItemKindProduct, entity.SaleStatusCompleted, entity.PaymentStatusPaid)
	if err != nil {
		return nil, fmt.Errorf("list settleable items: %w", err)
	}
	defer rows.Close()
	return scanSaleItems(rows)
}

// SumPendingByOwner suma (quantity - settled_quantity) * cost_at_sale sobre las
// líneas liquidables del proveedor.
func (r *SaleRepo) SumPendingByOwner(ownerID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM((si.quantity - si.settled_quantity) * si.cost_at_sale), 0)
		FROM sale_items si
		JOIN sales s ON s.id = si.sale_id
		JOIN product_variants pv ON pv.id = si.variant_id
		JOIN products p ON p.id = pv.product_id
		WHERE p.owner_id = $1
		  AND si.kind = $2
		  AND s.status = $3
		  AND s.payment_status = $4`
	var sum decimal.Decimal
	err := r.q.QueryRow(context.Background(), query,
		ownerID, entity.SaleItemKindProduct, entity.SaleStatusCompleted, entity.PaymentStatusPaid,
	).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum pending by owner: %w", err)
	}
	return sum, nil
}

func scanSaleItems(rows pgx.Rows) ([]*entity.SaleItem, error) {
	var list []*entity.SaleItem
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.Kind, &it.VariantID, &it.AppointmentID,
			&it.Description, &it.CostAtSale, &it.PriceAtSale, &it.Quantity, &it.SettledQuantity); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}
