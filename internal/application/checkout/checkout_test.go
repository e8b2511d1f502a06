package checkout_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/petshop-pro/internal/application/checkout"
	"github.com/tu-usuario/petshop-pro/internal/application/dto"
	"github.com/tu-usuario/petshop-pro/internal/application/stock"
	"github.com/tu-usuario/petshop-pro/internal/domain"
	"github.com/tu-usuario/petshop-pro/internal/domain/entity"
	"github.com/tu-usuario/petshop-pro/internal/infrastructure/memory"
)

const testActorID = "vendedor-1"

// ─────────────────────────────────────────────
// Fixture
// ─────────────────────────────────────────────

type fixture struct {
	store  *memory.Store
	ledger *stock.LedgerUseCase
	uc     *checkout.UseCase
	owner  *entity.Owner
}

func buildFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.New()
	ledger := stock.NewLedgerUseCase(store, store.Variants(), store.Movements())
	uc := checkout.NewUseCase(
		store, ledger,
		store.Variants(), store.Products(), store.Customers(),
		store.Appointments(), store.Sales(), nil,
	)

	owner := &entity.Owner{ID: "owner-1", Name: "Consignaciones El Bosque", Document: "900123456", CreatedAt: time.Now()}
	require.NoError(t, store.Owners().Create(owner))
	require.NoError(t, store.Products().Create(&entity.Product{
		ID: "prod-1", OwnerID: owner.ID, CategoryID: "cat-1", Name: "Alimento premium",
	}))
	return &fixture{store: store, ledger: ledger, uc: uc, owner: owner}
}

// seedVariant crea una variante con stock inicial respaldado por una entrada del libro.
func (f *fixture) seedVariant(t *testing.T, id, cost, price string, initialStock int64) *entity.ProductVariant {
	t.Helper()
	v := &entity.ProductVariant{
		ID:        id,
		ProductID: "prod-1",
		Name:      "Variante " + id,
		CostPrice: decimal.RequireFromString(cost),
		SalePrice: decimal.RequireFromString(price),
		CreatedAt: time.Now(),
	}
	require.NoError(t, f.store.Variants().Create(v))
	if initialStock > 0 {
		require.NoError(t, f.ledger.RegisterMovement(context.Background(), stock.MovementInput{
			ActorID:   testActorID,
			VariantID: id,
			Quantity:  initialStock,
			Type:      entity.MovementTypeEntry,
			Reason:    "stock inicial",
		}))
	}
	return v
}

func (f *fixture) seedCustomerWithPet(t *testing.T) (*entity.Customer, *entity.Pet) {
	t.Helper()
	customer := &entity.Customer{ID: "cust-1", Name: "Laura Gómez", CreatedAt: time.Now()}
	require.NoError(t, f.store.Customers().Create(customer))
	pet := &entity.Pet{ID: "pet-1", CustomerID: customer.ID, Name: "Rocky", Species: "perro", CreatedAt: time.Now()}
	require.NoError(t, f.store.Pets().Create(pet))
	return customer, pet
}

func productCart(variantID string, qty int64) dto.CheckoutRequest {
	return dto.CheckoutRequest{
		PaymentMethod: entity.PaymentMethodCash,
		Items: []dto.CheckoutItemRequest{
			{Type: entity.SaleItemKindProduct, VariantID: variantID, Quantity: qty},
		},
	}
}

func (f *fixture) checkout(t *testing.T, req dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	t.Helper()
	cmd, err := checkout.CommandFromRequest(req)
	require.NoError(t, err)
	return f.uc.Checkout(context.Background(), testActorID, cmd)
}

// ─────────────────────────────────────────────
// Totales y redondeo
// ─────────────────────────────────────────────

func TestCheckout_RedondeoPorLinea(t *testing.T) {
	f := buildFixture(t)
	f.seedVariant(t, "var-1", "20.00", "33.33", 10)

	resp, err := f.checkout(t, productCart("var-1", 3))
	require.NoError(t, err)

	// 3 × 33.33 redondeado por línea: exactamente 99.99
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("99.99")),
		"total esperado 99.99, obtuve %s", resp.Total)
}

func TestCheckout_CarritoMixto_ProductoYServicio(t *testing.T) {
	f := buildFixture(t)
	f.seedVariant(t, "var-1", "10.00", "15.50", 5)
	_, pet := f.seedCustomerWithPet(t)

	appt := &entity.Appointment{
		ID:        "appt-1",
		PetID:     pet.ID,
		StartTime: time.Now().Add(time.Hour),
		EndTime:   time.Now().Add(2 * time.Hour),
		Status:    entity.AppointmentStatusCompleted,
	}
	require.NoError(t, f.store.Appointments().Create(appt))

	resp, err := f.checkout(t, dto.CheckoutRequest{
		PaymentMethod: entity.PaymentMethodCash,
		Items: []dto.CheckoutItemRequest{
			{Type: entity.SaleItemKindProduct, VariantID: "var-1", Quantity: 2},
			{Type: entity.SaleItemKindService, AppointmentID: appt.ID, Quantity: 1, Price: decimal.RequireFromString("25.00"), Description: "baño y corte"},
		},
	})
	require.NoError(t, err)

	// 2 × 15.50 + 25.00 = 56.00
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("56.00")),
		"total esperado 56.00, obtuve %s", resp.Total)

	// la cita facturada queda BILLED
	got, err := f.store.Appointments().GetByID(appt.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.AppointmentStatusBilled, got.Status)

	// el stock bajó por la línea de producto y la venta de contado quedó pagada
	v, err := f.store.Variants().GetByID("var-1")
	require.NoError(t, err)
	assert.EqualValues(t, 3, v.Stock)

	sale, err := f.uc.GetSale(context.Background(), resp.SaleID)
	require.NoError(t, err)
	require.Len(t, sale.Items, 2)
	assert.Equal(t, entity.PaymentStatusPaid, sale.PaymentStatus)
}

// ─────────────────────────────────────────────
// Atomicidad y concurrencia
// ─────────────────────────────────────────────

func TestCheckout_SinStock_NoDejaEfectos(t *testing.T) {
	f := buildFixture(t)
	f.seedVariant(t, "var-1", "10.00", "15.50", 5)
	f.seedVariant(t, "var-2", "8.00", "12.00", 1)

	// la primera línea alcanza, la segunda no: debe abortar todo
	_, err := f.checkout(t, dto.CheckoutRequest{
		PaymentMethod: entity.PaymentMethodCash,
		Items: []dto.CheckoutItemRequest{
			{Type: entity.SaleItemKindProduct, VariantID: "var-1", Quantity: 2},
			{Type: entity.SaleItemKindProduct, VariantID: "var-2", Quantity: 3},
		},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	// stock intacto en ambas variantes
	v1, _ := f.store.Variants().GetByID("var-1")
	v2, _ := f.store.Variants().GetByID("var-2")
	assert.EqualValues(t, 5, v1.Stock)
	assert.EqualValues(t, 1, v2.Stock)

	// sin venta ni movimientos de tipo SALE
	sales, err := f.store.Sales().ListRecent(10, 0)
	require.NoError(t, err)
	assert.Empty(t, sales)
	movs, err := f.store.Movements().ListByVariant("var-1", 50, 0)
	require.NoError(t, err)
	assert.Len(t, movs, 1, "solo la entrada inicial")
}

func TestCheckout_CarreraPorUltimasUnidades(t *testing.T) {
	f := buildFixture(t)
	f.seedVariant(t, "var-1", "10.00", "15.50", 5)

	const compradores = 8
	var wg sync.WaitGroup
	resultados := make(chan error, compradores)

	for i := 0; i < compradores; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cmd, err := checkout.CommandFromRequest(productCart("var-1", 1))
			if err != nil {
				resultados <- err
				return
			}
			_, err = f.uc.Checkout(context.Background(), testActorID, cmd)
			resultados <- err
		}()
	}
	wg.Wait()
	close(resultados)

	exitos, sinStock := 0, 0
	for err := range resultados {
		switch {
		case err == nil:
			exitos++
		case errors.Is(err, domain.ErrInsufficientStock):
			sinStock++
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, 5, exitos, "exactamente una venta por unidad disponible")
	assert.Equal(t, 3, sinStock)

	v, _ := f.store.Variants().GetByID("var-1")
	assert.EqualValues(t, 0, v.Stock)

	sum, err := f.store.Movements().SumByVariant("var-1")
	require.NoError(t, err)
	assert.EqualValues(t, 0, sum, "el libro debe cuadrar con el contador")
}

// ─────────────────────────────────────────────
// Cuenta corriente y pago
// ─────────────────────────────────────────────

func TestCheckout_CuentaCorriente_RequiereCliente(t *testing.T) {
	_, err := checkout.CommandFromRequest(dto.CheckoutRequest{
		PaymentMethod: entity.PaymentMethodCheckingAccount,
		Items: []dto.CheckoutItemRequest{
			{Type: entity.SaleItemKindProduct, VariantID: "var-1", Quantity: 1},
		},
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestCheckout_CuentaCorriente_QuedaPendienteDePago(t *testing.T) {
	f := buildFixture(t)
	f.seedVariant(t, "var-1", "10.00", "15.50", 5)
	customer, _ := f.seedCustomerWithPet(t)

	req := productCart("var-1", 1)
	req.PaymentMethod = entity.PaymentMethodCheckingAccount
	req.CustomerID = customer.ID

	resp, err := f.checkout(t, req)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPending, resp.PaymentStatus)

	sale, err := f.store.Sales().GetByID(resp.SaleID)
	require.NoError(t, err)
	assert.Nil(t, sale.PaidAt)
}

func TestMarkPaid_Idempotente(t *testing.T) {
	f := buildFixture(t)
	f.seedVariant(t, "var-1", "10.00", "15.50", 5)
	customer, _ := f.seedCustomerWithPet(t)

	req := productCart("var-1", 1)
	req.PaymentMethod = entity.PaymentMethodCheckingAccount
	req.CustomerID = customer.ID
	resp, err := f.checkout(t, req)
	require.NoError(t, err)

	primero, err := f.uc.MarkPaid(context.Background(), testActorID, resp.SaleID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPaid, primero.PaymentStatus)
	require.NotNil(t, primero.PaidAt)

	segundo, err := f.uc.MarkPaid(context.Background(), testActorID, resp.SaleID)
	require.NoError(t, err, "repetir el pago no debe fallar")
	assert.Equal(t, entity.PaymentStatusPaid, segundo.PaymentStatus)
	assert.True(t, primero.PaidAt.Equal(*segundo.PaidAt), "el PaidAt original no debe moverse")
}

// ─────────────────────────────────────────────
// Anulación
// ─────────────────────────────────────────────

func TestCancel_RestauraStockYNoEsIdempotente(t *testing.T) {
	f := buildFixture(t)
	f.seedVariant(t, "var-1", "10.00", "15.50", 5)

	resp, err := f.checkout(t, productCart("var-1", 2))
	require.NoError(t, err)

	v, _ := f.store.Variants().GetByID("var-1")
	require.EqualValues(t, 3, v.Stock)

	require.NoError(t, f.uc.CancelSale(context.Background(), testActorID, resp.SaleID))

	v, _ = f.store.Variants().GetByID("var-1")
	assert.EqualValues(t, 5, v.Stock)

	sale, _ := f.store.Sales().GetByID(resp.SaleID)
	assert.Equal(t, entity.SaleStatusCancelled, sale.Status)

	// la restauración queda en el libro como SALE_CANCELLED
	movs, err := f.store.Movements().ListByVariant("var-1", 50, 0)
	require.NoError(t, err)
	var restauracion *entity.StockMovement
	for _, m := range movs {
		if m.Type == entity.MovementTypeSaleCancelled {
			restauracion = m
		}
	}
	require.NotNil(t, restauracion)
	assert.EqualValues(t, 2, restauracion.Quantity)

	// re-anular falla para no restaurar dos veces
	err = f.uc.CancelSale(context.Background(), testActorID, resp.SaleID)
	assert.True(t, errors.Is(err, domain.ErrAlreadyCancelled))
	v, _ = f.store.Variants().GetByID("var-1")
	assert.EqualValues(t, 5, v.Stock)
}

func TestCancel_ConLineaYaLiquidada_CreaAjusteNegativo(t *testing.T) {
	f := buildFixture(t)
	f.seedVariant(t, "var-1", "10.00", "15.50", 5)

	resp, err := f.checkout(t, productCart("var-1", 3))
	require.NoError(t, err)

	sale, err := f.uc.GetSale(context.Background(), resp.SaleID)
	require.NoError(t, err)
	require.Len(t, sale.Items, 1)

	// dos unidades ya pagadas al proveedor
	ok, err := f.store.Sales().IncrementSettled(sale.Items[0].ID, 2)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, f.uc.CancelSale(context.Background(), testActorID, resp.SaleID))

	adjs, err := f.store.Adjustments().ListUnappliedByOwner(f.owner.ID)
	require.NoError(t, err)
	require.Len(t, adjs, 1, "la anulación debe dejar un ajuste de cobro al proveedor")

	// clawback = −(2 × costo 10.00)
	assert.True(t, adjs[0].Amount.Equal(decimal.RequireFromString("-20.00")),
		"ajuste esperado -20.00, obtuve %s", adjs[0].Amount)
	assert.False(t, adjs[0].IsApplied)
}

func TestCancel_VentaInexistente(t *testing.T) {
	f := buildFixture(t)
	err := f.uc.CancelSale(context.Background(), testActorID, "no-existe")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
