// Package memory implementa todos los puertos de persistencia sobre mapas en
// memoria. Se usa cuando no hay base de datos configurada (demos, desarrollo)
// y en los tests de casos de uso.
package memory

import (
	"context"
	"sync"

	"github.com/tu-usuario/petshop-pro/internal/application/checkout"
	"github.com/tu-usuario/petshop-pro/internal/application/settlement"
	"github.com/tu-usuario/petshop-pro/internal/application/stock"
	"github.com/tu-usuario/petshop-pro/internal/domain/entity"
	"github.com/tu-usuario/petshop-pro/internal/domain/repository"
)

var _ stock.TxRunner = (*Store)(nil)
var _ checkout.TxRunner = (*Store)(nil)
var _ settlement.TxRunner = (*Store)(nil)

// Store guarda las entidades por valor; mutar exige reemplazar la entrada del
// mapa, así el snapshot de rollback solo necesita copiar los mapas.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex // serializa transacciones entre sí

	owners       map[string]entity.Owner
	products     map[string]entity.Product
	categories   map[string]entity.Category
	variants     map[string]entity.ProductVariant
	movements    []entity.StockMovement
	sales        map[string]entity.Sale
	saleItems    map[string]entity.SaleItem
	settlements  map[string]entity.Settlement
	settleLines  []entity.SettlementLine
	adjustments  map[string]entity.BalanceAdjustment
	appointments map[string]entity.Appointment
	customers    map[string]entity.Customer
	pets         map[string]entity.Pet
	users        map[string]entity.User
}

// New crea un Store vacío.
func New() *Store {
	return &Store{
		owners:       make(map[string]entity.Owner),
		products:     make(map[string]entity.Product),
		categories:   make(map[string]entity.Category),
		variants:     make(map[string]entity.ProductVariant),
		sales:        make(map[string]entity.Sale),
		saleItems:    make(map[string]entity.SaleItem),
		settlements:  make(map[string]entity.Settlement),
		adjustments:  make(map[string]entity.BalanceAdjustment),
		appointments: make(map[string]entity.Appointment),
		customers:    make(map[string]entity.Customer),
		pets:         make(map[string]entity.Pet),
		users:        make(map[string]entity.User),
	}
}

// Repositorios atados al store. Cada puerto tiene su adaptador porque las
// firmas de Create chocan entre interfaces.
func (s *Store) Owners() repository.OwnerRepository             { return &ownerRepo{s} }
func (s *Store) Products() repository.ProductRepository         { return &productRepo{s} }
func (s *Store) Categories() repository.CategoryRepository      { return &categoryRepo{s} }
func (s *Store) Variants() repository.VariantRepository         { return &variantRepo{s} }
func (s *Store) Movements() repository.StockMovementRepository  { return &movementRepo{s} }
func (s *Store) Sales() repository.SaleRepository               { return &saleRepo{s} }
func (s *Store) Settlements() repository.SettlementRepository   { return &settlementRepo{s} }
func (s *Store) Adjustments() repository.AdjustmentRepository   { return &adjustmentRepo{s} }
func (s *Store) Appointments() repository.AppointmentRepository { return &appointmentRepo{s} }
func (s *Store) Customers() repository.CustomerRepository       { return &customerRepo{s} }
func (s *Store) Pets() repository.PetRepository                 { return &petRepo{s} }
func (s *Store) Users() repository.UserRepository               { return &userRepo{s} }

// snapshot copia el estado completo para poder restaurarlo en rollback.
// Las entidades viven por valor dentro de los mapas, copia superficial alcanza.
type snapshot struct {
	owners       map[string]entity.Owner
	products     map[string]entity.Product
	categories   map[string]entity.Category
	variants     map[string]entity.ProductVariant
	movements    []entity.StockMovement
	sales        map[string]entity.Sale
	saleItems    map[string]entity.SaleItem
	settlements  map[string]entity.Settlement
	settleLines  []entity.SettlementLine
	adjustments  map[string]entity.BalanceAdjustment
	appointments map[string]entity.Appointment
	customers    map[string]entity.Customer
	pets         map[string]entity.Pet
	users        map[string]entity.User
}

func copyMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *Store) takeSnapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot{
		owners:       copyMap(s.owners),
		products:     copyMap(s.products),
		categories:   copyMap(s.categories),
		variants:     copyMap(s.variants),
		movements:    append([]entity.StockMovement(nil), s.movements...),
		sales:        copyMap(s.sales),
		saleItems:    copyMap(s.saleItems),
		settlements:  copyMap(s.settlements),
		settleLines:  append([]entity.SettlementLine(nil), s.settleLines...),
		adjustments:  copyMap(s.adjustments),
		appointments: copyMap(s.appointments),
		customers:    copyMap(s.customers),
		pets:         copyMap(s.pets),
		users:        copyMap(s.users),
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.owners = snap.owners
	s.products = snap.products
	s.categories = snap.categories
	s.variants = snap.variants
	s.movements = snap.movements
	s.sales = snap.sales
	s.saleItems = snap.saleItems
	s.settlements = snap.settlements
	s.settleLines = snap.settleLines
	s.adjustments = snap.adjustments
	s.appointments = snap.appointments
	s.customers = snap.customers
	s.pets = snap.pets
	s.users = snap.users
}

// runTx serializa la transacción, toma snapshot y restaura si fn falla.
func (s *Store) runTx(fn func() error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	snap := s.takeSnapshot()
	if err := fn(); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// Run ejecuta fn como una transacción del libro de stock.
func (s *Store) Run(_ context.Context, fn func(
	movRepo repository.StockMovementRepository,
	variantRepo repository.VariantRepository,
) error) error {
	return s.runTx(func() error {
		return fn(s.Movements(), s.Variants())
	})
}

// RunCheckout ejecuta fn como una transacción de venta o anulación.
func (s *Store) RunCheckout(_ context.Context, fn func(
	saleRepo repository.SaleRepository,
	movRepo repository.StockMovementRepository,
	variantRepo repository.VariantRepository,
	apptRepo repository.AppointmentRepository,
	adjRepo repository.AdjustmentRepository,
	productRepo repository.ProductRepository,
) error) error {
	return s.runTx(func() error {
		return fn(s.Sales(), s.Movements(), s.Variants(), s.Appointments(), s.Adjustments(), s.Products())
	})
}

// RunSettlement ejecuta fn como una transacción de liquidación.
func (s *Store) RunSettlement(_ context.Context, fn func(
	saleRepo repository.SaleRepository,
	adjRepo repository.AdjustmentRepository,
	settlementRepo repository.SettlementRepository,
	productRepo repository.ProductRepository,
) error) error {
	return s.runTx(func() error {
		return fn(s.Sales(), s.Adjustments(), s.Settlements(), s.Products())
	})
}
