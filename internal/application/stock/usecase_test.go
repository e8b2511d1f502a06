package stock_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/petshop-pro/internal/application/stock"
	"github.com/tu-usuario/petshop-pro/internal/domain"
	"github.com/tu-usuario/petshop-pro/internal/domain/entity"
	"github.com/tu-usuario/petshop-pro/internal/infrastructure/memory"
)

const testActorID = "vendedor-1"

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

func buildLedger(t *testing.T) (*memory.Store, *stock.LedgerUseCase, *entity.ProductVariant) {
	t.Helper()
	store := memory.New()
	uc := stock.NewLedgerUseCase(store, store.Variants(), store.Movements())

	variant := &entity.ProductVariant{
		ID:        "var-1",
		ProductID: "prod-1",
		Name:      "Alimento premium 1kg",
		CostPrice: decimal.RequireFromString("10.00"),
		SalePrice: decimal.RequireFromString("15.50"),
		Stock:     0,
		CreatedAt: time.Now(),
	}
	require.NoError(t, store.Variants().Create(variant))
	return store, uc, variant
}

func registrar(t *testing.T, uc *stock.LedgerUseCase, variantID string, qty int64, movType string) error {
	t.Helper()
	return uc.RegisterMovement(context.Background(), stock.MovementInput{
		ActorID:   testActorID,
		VariantID: variantID,
		Quantity:  qty,
		Type:      movType,
		Reason:    "test",
	})
}

func stockActual(t *testing.T, store *memory.Store, variantID string) int64 {
	t.Helper()
	v, err := store.Variants().GetByID(variantID)
	require.NoError(t, err)
	require.NotNil(t, v)
	return v.Stock
}

// ─────────────────────────────────────────────
// Registro de movimientos
// ─────────────────────────────────────────────

func TestRegistrarEntrada_ActualizaContadorYLibro(t *testing.T) {
	store, uc, variant := buildLedger(t)

	err := registrar(t, uc, variant.ID, 10, entity.MovementTypeEntry)
	require.NoError(t, err)

	assert.EqualValues(t, 10, stockActual(t, store, variant.ID))

	movs, err := store.Movements().ListByVariant(variant.ID, 50, 0)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.EqualValues(t, 10, movs[0].Quantity)
	assert.Equal(t, entity.MovementTypeEntry, movs[0].Type)
	assert.Equal(t, testActorID, movs[0].CreatedBy)
}

func TestInvariante_StockIgualSumaDelLibro(t *testing.T) {
	store, uc, variant := buildLedger(t)

	require.NoError(t, registrar(t, uc, variant.ID, 10, entity.MovementTypeEntry))
	require.NoError(t, registrar(t, uc, variant.ID, -3, entity.MovementTypeOwnerWithdrawal))
	require.NoError(t, registrar(t, uc, variant.ID, 2, entity.MovementTypeAdjustment))
	require.NoError(t, registrar(t, uc, variant.ID, -1, entity.MovementTypeAdjustment))

	sum, err := store.Movements().SumByVariant(variant.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 8, sum)
	assert.EqualValues(t, 8, stockActual(t, store, variant.ID))

	audit, err := uc.Audit(context.Background(), variant.ID)
	require.NoError(t, err)
	assert.True(t, audit.Consistent, "el contador debe coincidir con el libro")
}

func TestSalidaSinStock_NoEscribeNada(t *testing.T) {
	store, uc, variant := buildLedger(t)
	require.NoError(t, registrar(t, uc, variant.ID, 2, entity.MovementTypeEntry))

	err := registrar(t, uc, variant.ID, -5, entity.MovementTypeOwnerWithdrawal)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	assert.Contains(t, err.Error(), variant.Name, "el error debe nombrar la variante")

	// ni contador ni libro cambiaron
	assert.EqualValues(t, 2, stockActual(t, store, variant.ID))
	movs, err := store.Movements().ListByVariant(variant.ID, 50, 0)
	require.NoError(t, err)
	assert.Len(t, movs, 1)
}

func TestRegistrarMovimiento_Validaciones(t *testing.T) {
	_, uc, variant := buildLedger(t)

	casos := []struct {
		nombre   string
		input    stock.MovementInput
		esperado error
	}{
		{
			nombre:   "sin actor",
			input:    stock.MovementInput{VariantID: variant.ID, Quantity: 1, Type: entity.MovementTypeEntry},
			esperado: domain.ErrUnauthorized,
		},
		{
			nombre:   "cantidad cero",
			input:    stock.MovementInput{ActorID: testActorID, VariantID: variant.ID, Quantity: 0, Type: entity.MovementTypeEntry},
			esperado: domain.ErrInvalidInput,
		},
		{
			nombre:   "entrada negativa",
			input:    stock.MovementInput{ActorID: testActorID, VariantID: variant.ID, Quantity: -5, Type: entity.MovementTypeEntry},
			esperado: domain.ErrInvalidInput,
		},
		{
			nombre:   "retiro positivo",
			input:    stock.MovementInput{ActorID: testActorID, VariantID: variant.ID, Quantity: 5, Type: entity.MovementTypeOwnerWithdrawal},
			esperado: domain.ErrInvalidInput,
		},
		{
			nombre:   "tipo reservado a checkout",
			input:    stock.MovementInput{ActorID: testActorID, VariantID: variant.ID, Quantity: -1, Type: entity.MovementTypeSale},
			esperado: domain.ErrInvalidInput,
		},
		{
			nombre:   "variante inexistente",
			input:    stock.MovementInput{ActorID: testActorID, VariantID: "no-existe", Quantity: 1, Type: entity.MovementTypeEntry},
			esperado: domain.ErrNotFound,
		},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			err := uc.RegisterMovement(context.Background(), c.input)
			assert.True(t, errors.Is(err, c.esperado), "esperaba %v, obtuve %v", c.esperado, err)
		})
	}
}

func TestAudit_DetectaContadorInconsistente(t *testing.T) {
	store, uc, variant := buildLedger(t)
	require.NoError(t, registrar(t, uc, variant.ID, 5, entity.MovementTypeEntry))

	// fila escrita por fuera del caso de uso, sin tocar el contador
	err := store.Movements().Create(&entity.StockMovement{
		ID:        "mov-huerfano",
		VariantID: variant.ID,
		Quantity:  3,
		Type:      entity.MovementTypeAdjustment,
		CreatedBy: testActorID,
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)

	audit, err := uc.Audit(context.Background(), variant.ID)
	require.NoError(t, err)
	assert.False(t, audit.Consistent)
	assert.EqualValues(t, 5, audit.Stock)
	assert.EqualValues(t, 8, audit.MovementsSum)
}
