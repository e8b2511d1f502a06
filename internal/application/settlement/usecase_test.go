package settlement_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/petshop-pro/internal/application/checkout"
	"github.com/tu-usuario/petshop-pro/internal/application/dto"
	"github.com/tu-usuario/petshop-pro/internal/application/settlement"
	"github.com/tu-usuario/petshop-pro/internal/application/stock"
	"github.com/tu-usuario/petshop-pro/internal/domain"
	"github.com/tu-usuario/petshop-pro/internal/domain/entity"
	"github.com/tu-usuario/petshop-pro/internal/infrastructure/memory"
	infrapdf "github.com/tu-usuario/petshop-pro/internal/infrastructure/pdf"
)

const testActorID = "admin-1"

// ─────────────────────────────────────────────
// Fixture
// ─────────────────────────────────────────────

type fixture struct {
	store      *memory.Store
	uc         *settlement.UseCase
	checkoutUC *checkout.UseCase
	owner      *entity.Owner
	otro       *entity.Owner
}

func buildFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.New()
	ledger := stock.NewLedgerUseCase(store, store.Variants(), store.Movements())
	checkoutUC := checkout.NewUseCase(
		store, ledger,
		store.Variants(), store.Products(), store.Customers(),
		store.Appointments(), store.Sales(), nil,
	)
	uc := settlement.NewUseCase(
		store,
		store.Owners(), store.Sales(), store.Adjustments(),
		store.Settlements(), store.Products(),
		nil, infrapdf.NewMarotoReceiptGenerator("Tienda de prueba"),
	)

	owner := &entity.Owner{ID: "owner-1", Name: "Consignaciones El Bosque", Document: "900123456", CreatedAt: time.Now()}
	otro := &entity.Owner{ID: "owner-2", Name: "Mascotas del Sur", Document: "900654321", CreatedAt: time.Now()}
	require.NoError(t, store.Owners().Create(owner))
	require.NoError(t, store.Owners().Create(otro))

	f := &fixture{store: store, uc: uc, checkoutUC: checkoutUC, owner: owner, otro: otro}
	f.seedVariant(t, ledger, "prod-1", owner.ID, "var-1", "10.00")
	f.seedVariant(t, ledger, "prod-2", otro.ID, "var-2", "7.50")
	return f
}

func (f *fixture) seedVariant(t *testing.T, ledger *stock.LedgerUseCase, productID, ownerID, variantID, cost string) {
	t.Helper()
	require.NoError(t, f.store.Products().Create(&entity.Product{
		ID: productID, OwnerID: ownerID, CategoryID: "cat-1", Name: "Producto " + productID,
	}))
	require.NoError(t, f.store.Variants().Create(&entity.ProductVariant{
		ID:        variantID,
		ProductID: productID,
		Name:      "Variante " + variantID,
		CostPrice: decimal.RequireFromString(cost),
		SalePrice: decimal.RequireFromString("19.99"),
		CreatedAt: time.Now(),
	}))
	require.NoError(t, ledger.RegisterMovement(context.Background(), stock.MovementInput{
		ActorID:   testActorID,
		VariantID: variantID,
		Quantity:  100,
		Type:      entity.MovementTypeEntry,
		Reason:    "stock inicial",
	}))
}

// vender hace un checkout de contado y devuelve el ID de la línea de venta.
func (f *fixture) vender(t *testing.T, variantID string, qty int64) string {
	t.Helper()
	cmd, err := checkout.CommandFromRequest(dto.CheckoutRequest{
		PaymentMethod: entity.PaymentMethodCash,
		Items: []dto.CheckoutItemRequest{
			{Type: entity.SaleItemKindProduct, VariantID: variantID, Quantity: qty},
		},
	})
	require.NoError(t, err)
	resp, err := f.checkoutUC.Checkout(context.Background(), testActorID, cmd)
	require.NoError(t, err)

	sale, err := f.checkoutUC.GetSale(context.Background(), resp.SaleID)
	require.NoError(t, err)
	require.Len(t, sale.Items, 1)
	return sale.Items[0].ID
}

// venderACredito hace un checkout a cuenta corriente (queda sin cobrar).
func (f *fixture) venderACredito(t *testing.T, variantID string, qty int64) string {
	t.Helper()
	customer := &entity.Customer{ID: "cust-credito", Name: "Cliente Crédito", CreatedAt: time.Now()}
	_ = f.store.Customers().Create(customer)
	cmd, err := checkout.CommandFromRequest(dto.CheckoutRequest{
		PaymentMethod: entity.PaymentMethodCheckingAccount,
		CustomerID:    customer.ID,
		Items: []dto.CheckoutItemRequest{
			{Type: entity.SaleItemKindProduct, VariantID: variantID, Quantity: qty},
		},
	})
	require.NoError(t, err)
	resp, err := f.checkoutUC.Checkout(context.Background(), testActorID, cmd)
	require.NoError(t, err)
	sale, err := f.checkoutUC.GetSale(context.Background(), resp.SaleID)
	require.NoError(t, err)
	return sale.Items[0].ID
}

func (f *fixture) settle(t *testing.T, ownerID string, req dto.SettleRequest) (*dto.SettlementResponse, error) {
	t.Helper()
	cmd, err := settlement.CommandFromRequest(ownerID, req)
	require.NoError(t, err)
	return f.uc.Settle(context.Background(), testActorID, cmd)
}

// ─────────────────────────────────────────────
// Liquidación de líneas
// ─────────────────────────────────────────────

func TestSettle_PendienteExacto(t *testing.T) {
	f := buildFixture(t)
	itemID := f.vender(t, "var-1", 3)

	resp, err := f.settle(t, f.owner.ID, dto.SettleRequest{
		Items: []dto.SettleItemRequest{{SaleItemID: itemID, Quantity: 3}},
	})
	require.NoError(t, err)

	// 3 × costo 10.00
	assert.True(t, resp.TotalAmount.Equal(decimal.RequireFromString("30.00")),
		"total esperado 30.00, obtuve %s", resp.TotalAmount)
	require.Len(t, resp.Lines, 1)

	// ya no queda nada liquidable
	pendientes, _, err := f.uc.PendingItems(context.Background(), f.owner.ID)
	require.NoError(t, err)
	assert.Empty(t, pendientes)
}

func TestSettle_ParcialYLuegoResto(t *testing.T) {
	f := buildFixture(t)
	itemID := f.vender(t, "var-1", 5)

	_, err := f.settle(t, f.owner.ID, dto.SettleRequest{
		Items: []dto.SettleItemRequest{{SaleItemID: itemID, Quantity: 2}},
	})
	require.NoError(t, err)

	pendientes, _, err := f.uc.PendingItems(context.Background(), f.owner.ID)
	require.NoError(t, err)
	require.Len(t, pendientes, 1)
	assert.EqualValues(t, 3, pendientes[0].PendingQuantity)

	_, err = f.settle(t, f.owner.ID, dto.SettleRequest{
		Items: []dto.SettleItemRequest{{SaleItemID: itemID, Quantity: 3}},
	})
	require.NoError(t, err)

	// una unidad más sería sobrepago
	_, err = f.settle(t, f.owner.ID, dto.SettleRequest{
		Items: []dto.SettleItemRequest{{SaleItemID: itemID, Quantity: 1}},
	})
	assert.True(t, errors.Is(err, domain.ErrOverSettlement))
}

func TestSettle_SobreLiquidacion_AbortaElLote(t *testing.T) {
	f := buildFixture(t)
	itemID := f.vender(t, "var-1", 3)

	_, err := f.settle(t, f.owner.ID, dto.SettleRequest{
		Items: []dto.SettleItemRequest{{SaleItemID: itemID, Quantity: 4}},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrOverSettlement))

	// sin liquidación parcial: nada quedó registrado
	liquidaciones, err := f.uc.ListByOwner(context.Background(), f.owner.ID, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, liquidaciones)

	pendientes, _, err := f.uc.PendingItems(context.Background(), f.owner.ID)
	require.NoError(t, err)
	require.Len(t, pendientes, 1)
	assert.EqualValues(t, 0, pendientes[0].SettledQuantity)
}

func TestSettle_VentaSinCobrar_NoEsLiquidable(t *testing.T) {
	f := buildFixture(t)
	itemID := f.venderACredito(t, "var-1", 2)

	// no aparece entre los pendientes
	pendientes, _, err := f.uc.PendingItems(context.Background(), f.owner.ID)
	require.NoError(t, err)
	assert.Empty(t, pendientes)

	// y referenciarla directamente tampoco pasa
	_, err = f.settle(t, f.owner.ID, dto.SettleRequest{
		Items: []dto.SettleItemRequest{{SaleItemID: itemID, Quantity: 1}},
	})
	assert.True(t, errors.Is(err, domain.ErrConflict))
}

func TestSettle_LineaDeOtroProveedor_Forbidden(t *testing.T) {
	f := buildFixture(t)
	itemAjeno := f.vender(t, "var-2", 1) // var-2 pertenece a owner-2

	_, err := f.settle(t, f.owner.ID, dto.SettleRequest{
		Items: []dto.SettleItemRequest{{SaleItemID: itemAjeno, Quantity: 1}},
	})
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

// ─────────────────────────────────────────────
// Ajustes de saldo
// ─────────────────────────────────────────────

func TestSettle_AjusteSeConsumeUnaSolaVez(t *testing.T) {
	f := buildFixture(t)
	itemID := f.vender(t, "var-1", 2)

	adj, err := f.uc.CreateAdjustment(context.Background(), testActorID, f.owner.ID, dto.CreateAdjustmentRequest{
		Amount:      decimal.RequireFromString("5.50"),
		Description: "bonificación acordada",
	})
	require.NoError(t, err)

	resp, err := f.settle(t, f.owner.ID, dto.SettleRequest{
		Items:       []dto.SettleItemRequest{{SaleItemID: itemID, Quantity: 1}},
		Adjustments: []string{adj.ID},
	})
	require.NoError(t, err)
	// 1 × 10.00 + 5.50
	assert.True(t, resp.TotalAmount.Equal(decimal.RequireFromString("15.50")))

	// reusar el ajuste en otro lote falla
	_, err = f.settle(t, f.owner.ID, dto.SettleRequest{
		Items:       []dto.SettleItemRequest{{SaleItemID: itemID, Quantity: 1}},
		Adjustments: []string{adj.ID},
	})
	assert.True(t, errors.Is(err, domain.ErrConflict))
}

func TestSettle_TotalNoPositivo_Rechazado(t *testing.T) {
	f := buildFixture(t)

	adj, err := f.uc.CreateAdjustment(context.Background(), testActorID, f.owner.ID, dto.CreateAdjustmentRequest{
		Amount:      decimal.RequireFromString("-12.00"),
		Description: "cobro por anulación",
	})
	require.NoError(t, err)

	_, err = f.settle(t, f.owner.ID, dto.SettleRequest{Adjustments: []string{adj.ID}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNonPositiveSettlement))

	// el ajuste sigue disponible para un lote futuro que sí sume positivo
	sinAplicar, err := f.store.Adjustments().ListUnappliedByOwner(f.owner.ID)
	require.NoError(t, err)
	assert.Len(t, sinAplicar, 1)
}

// ─────────────────────────────────────────────
// Saldo derivado y comprobante
// ─────────────────────────────────────────────

func TestOwnerBalance_PendientesMasAjustes(t *testing.T) {
	f := buildFixture(t)
	itemID := f.vender(t, "var-1", 3)

	_, err := f.uc.CreateAdjustment(context.Background(), testActorID, f.owner.ID, dto.CreateAdjustmentRequest{
		Amount:      decimal.RequireFromString("5.50"),
		Description: "bonificación",
	})
	require.NoError(t, err)

	// 3 × 10.00 pendientes + 5.50 de ajuste
	saldo, err := f.uc.OwnerBalance(context.Background(), f.owner.ID)
	require.NoError(t, err)
	assert.True(t, saldo.Balance.Equal(decimal.RequireFromString("35.50")),
		"saldo esperado 35.50, obtuve %s", saldo.Balance)

	// liquidar solo las líneas deja el ajuste en el saldo
	_, err = f.settle(t, f.owner.ID, dto.SettleRequest{
		Items: []dto.SettleItemRequest{{SaleItemID: itemID, Quantity: 3}},
	})
	require.NoError(t, err)

	saldo, err = f.uc.OwnerBalance(context.Background(), f.owner.ID)
	require.NoError(t, err)
	assert.True(t, saldo.Balance.Equal(decimal.RequireFromString("5.50")),
		"saldo esperado 5.50, obtuve %s", saldo.Balance)
}

func TestReceipt_GeneraPDF(t *testing.T) {
	f := buildFixture(t)
	itemID := f.vender(t, "var-1", 2)

	resp, err := f.settle(t, f.owner.ID, dto.SettleRequest{
		Items: []dto.SettleItemRequest{{SaleItemID: itemID, Quantity: 2}},
	})
	require.NoError(t, err)

	pdfBytes, err := f.uc.Receipt(context.Background(), resp.ID)
	require.NoError(t, err)
	require.NotEmpty(t, pdfBytes)
	assert.Equal(t, "%PDF", string(pdfBytes[:4]))
}

func TestSettle_ProveedorInexistente(t *testing.T) {
	f := buildFixture(t)
	_, err := f.settle(t, "no-existe", dto.SettleRequest{
		Items: []dto.SettleItemRequest{{SaleItemID: "x", Quantity: 1}},
	})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
