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

var _ repository.VariantRepository = (*VariantRepo)(nil)

// VariantRepo implementación de VariantRepository sobre PostgreSQL (usable con pool o tx).
type VariantRepo struct {
	q Querier
}

// NewVariantRepository construye el adaptador de variantes. Pasar pool o tx (Querier).
func NewVariantRepository(q Querier) *VariantRepo {
	return &VariantRepo{q: q}
}

// Create persiste una variante. El stock inicial siempre es 0: la mercancía
// entra por movimientos.
func (r *VariantRepo) Create(v *entity.ProductVariant) error {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	query := `
		INSERT INTO product_variants (id, product_id, name, cost_price, sale_price, stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		v.ID, v.ProductID, v.Name, v.CostPrice, v.SalePrice, v.Stock, v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create variant: %w", err)
	}
	return nil
}

// GetByID obtiene una variante por ID. Devuelve nil, nil si no existe.
func (r *VariantRepo) GetByID(id string) (*entity.ProductVariant, error) {
	query := `
		SELECT id, product_id, name, cost_price, sale_price, stock, created_at, updated_at
		FROM product_variants WHERE id = $1`
	var v entity.ProductVariant
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&v.ID, &v.ProductID, &v.Name, &v.CostPrice, &v.SalePrice, &v.Stock, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get variant: %w", err)
	}
	return &v, nil
}

// ListByProduct lista las variantes de un producto.
func (r *VariantRepo) ListByProduct(productID string) ([]*entity.ProductVariant, error) {
	query := `
		SELECT id, product_id, name, cost_price, sale_price, stock, created_at, updated_at
		FROM product_variants WHERE product_id = $1 ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list variants: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductVariant
	for rows.Next() {
		var v entity.ProductVariant
		if err := rows.Scan(&v.ID, &v.ProductID, &v.Name, &v.CostPrice, &v.SalePrice,
			&v.Stock, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan variant: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}

// UpdatePrices actualiza costo y precio de venta de la variante.
func (r *VariantRepo) UpdatePrices(id string, costPrice, salePrice decimal.Decimal) error {
	query := `UPDATE product_variants SET cost_price = $2, sale_price = $3, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, costPrice, salePrice)
	if err != nil {
		return fmt.Errorf("update prices: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update prices: variante %s no existe", id)
	}
	return nil
}

// DecrementStock descuenta qty solo si el stock actual alcanza. El WHERE con
// stock >= qty hace el compare-and-decrement en una sola sentencia: cero filas
// afectadas significa stock insuficiente y nada se escribió.
func (r *VariantRepo) DecrementStock(id string, qty int64) (bool, error) {
	query := `UPDATE product_variants SET stock = stock - $2, updated_at = now() WHERE id = $1 AND stock >= $2`
	tag, err := r.q.Exec(context.Background(), query, id, qty)
	if err != nil {
		return false, fmt.Errorf("decrement stock: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// IncrementStock suma qty incondicionalmente (entradas y restauraciones).
func (r *VariantRepo) IncrementStock(id string, qty int64) error {
	query := `UPDATE product_variants SET stock = stock + $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, qty)
	if err != nil {
		return fmt.Errorf("increment stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("increment stock: variante %s no existe", id)
	}
	return nil
}
