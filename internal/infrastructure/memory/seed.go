package memory

import (
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/petshop-pro/internal/domain/entity"
)

// NewSeeded crea un Store con datos de demostración: usuarios admin/vendedor,
// un proveedor con productos en consignación y un cliente con mascota.
// Las contraseñas se leen de SEED_ADMIN_PASSWORD y SEED_VENDEDOR_PASSWORD;
// si no están definidas se usan valores de desarrollo con aviso por consola.
// Este modo nunca se usa en producción (con DATABASE_URL se usa PostgreSQL).
func NewSeeded() *Store {
	s := New()
	now := time.Now()

	seedUsers(s, now)

	owner := entity.Owner{
		ID: uuid.New().String(), Name: "Consignaciones El Bosque", Document: "900123456",
		Phone: "3001234567", Email: "elbosque@example.com", CreatedAt: now, UpdatedAt: now,
	}
	s.owners[owner.ID] = owner

	cat := entity.Category{ID: uuid.New().String(), Name: "alimentos", CreatedAt: now}
	s.categories[cat.ID] = cat

	product := entity.Product{
		ID: uuid.New().String(), OwnerID: owner.ID, CategoryID: cat.ID,
		Name: "Concentrado premium para perro", CreatedAt: now, UpdatedAt: now,
	}
	s.products[product.ID] = product

	for _, v := range []struct {
		name  string
		cost  string
		price string
		stock int64
	}{
		{"Bolsa 2kg", "18000", "25000", 20},
		{"Bolsa 10kg", "72000", "95000", 8},
	} {
		variant := entity.ProductVariant{
			ID: uuid.New().String(), ProductID: product.ID, Name: v.name,
			CostPrice: mustDecimal(v.cost), SalePrice: mustDecimal(v.price),
			Stock: v.stock, CreatedAt: now, UpdatedAt: now,
		}
		s.variants[variant.ID] = variant
		// Movimiento de entrada que respalda el stock inicial: el contador
		// siempre debe coincidir con la suma del libro.
		s.movements = append(s.movements, entity.StockMovement{
			ID: uuid.New().String(), VariantID: variant.ID, Quantity: v.stock,
			Type: entity.MovementTypeEntry, Reason: "carga inicial", CreatedAt: now,
		})
	}

	customer := entity.Customer{
		ID: uuid.New().String(), Name: "Laura Gómez", Phone: "3109876543",
		Email: "laura@example.com", CreatedAt: now,
	}
	s.customers[customer.ID] = customer
	pet := entity.Pet{
		ID: uuid.New().String(), CustomerID: customer.ID, Name: "Rocky",
		Species: "perro", Breed: "beagle", CreatedAt: now,
	}
	s.pets[pet.ID] = pet

	return s
}

func mustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func seedUsers(s *Store, now time.Time) {
	adminPwd := envOr("SEED_ADMIN_PASSWORD", "admin123")
	vendedorPwd := envOr("SEED_VENDEDOR_PASSWORD", "vendedor123")
	if os.Getenv("SEED_ADMIN_PASSWORD") == "" || os.Getenv("SEED_VENDEDOR_PASSWORD") == "" {
		log.Println("[memory-store] AVISO: usando credenciales de desarrollo. Defina SEED_ADMIN_PASSWORD y SEED_VENDEDOR_PASSWORD para reemplazarlas.")
	}

	for _, u := range []struct {
		email    string
		name     string
		password string
		role     string
	}{
		{"admin@petshop.local", "Administrador", adminPwd, entity.RoleAdmin},
		{"vendedor@petshop.local", "Vendedor", vendedorPwd, entity.RoleVendedor},
	} {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("[memory-store] no se pudo hashear la contraseña seed de %s: %v", u.email, err)
		}
		id := uuid.New().String()
		s.users[id] = entity.User{
			ID: id, Email: u.email, Name: u.name, PasswordHash: string(hash),
			Role: u.role, Status: "active", CreatedAt: now, UpdatedAt: now,
		}
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
