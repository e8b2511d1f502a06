package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/petshop-pro/internal/application/auth"
	"github.com/tu-usuario/petshop-pro/internal/application/catalog"
	"github.com/tu-usuario/petshop-pro/internal/application/checkout"
	"github.com/tu-usuario/petshop-pro/internal/application/schedule"
	"github.com/tu-usuario/petshop-pro/internal/application/settlement"
	"github.com/tu-usuario/petshop-pro/internal/application/stock"
	"github.com/tu-usuario/petshop-pro/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	OwnerUC      *catalog.OwnerUseCase
	ProductUC    *catalog.ProductUseCase
	CustomerUC   *catalog.CustomerUseCase
	LedgerUC     *stock.LedgerUseCase
	CheckoutUC   *checkout.UseCase
	SettlementUC *settlement.UseCase
	ScheduleUC   *schedule.UseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	// Owners (protegido)
	owners := protected.Group("/owners")
	ownerHandler := NewOwnerHandler(deps.OwnerUC)
	owners.Post("/", ownerHandler.Create)
	owners.Get("/", ownerHandler.List)
	owners.Get("/:id", ownerHandler.GetByID)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/variants/:variant_id/prices", productHandler.UpdatePrices)

	// Stock (protegido)
	stockGroup := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.LedgerUC)
	stockGroup.Post("/movements", stockHandler.RegisterMovement)
	stockGroup.Get("/variants/:variant_id/movements", stockHandler.History)
	stockGroup.Get("/variants/:variant_id/audit", stockHandler.Audit)

	// Sales (protegido)
	sales := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.CheckoutUC)
	sales.Post("/", saleHandler.Checkout)
	sales.Get("/", saleHandler.List)
	sales.Get("/:id", saleHandler.GetByID)
	sales.Post("/:id/cancel", saleHandler.Cancel)
	sales.Post("/:id/pay", saleHandler.MarkPaid)

	// Settlements (protegido; escribir exige admin)
	settlementHandler := NewSettlementHandler(deps.SettlementUC)
	protected.Get("/owners/:owner_id/balance", settlementHandler.Balance)
	protected.Get("/owners/:owner_id/pending", settlementHandler.PendingItems)
	protected.Get("/owners/:owner_id/settlements", settlementHandler.ListByOwner)
	protected.Post("/owners/:owner_id/settlements", adminOnly, settlementHandler.Settle)
	protected.Post("/owners/:owner_id/adjustments", adminOnly, settlementHandler.CreateAdjustment)
	protected.Get("/settlements/:id", settlementHandler.GetByID)
	protected.Get("/settlements/:id/receipt", settlementHandler.Receipt)

	// Appointments (protegido)
	appointments := protected.Group("/appointments")
	scheduleHandler := NewScheduleHandler(deps.ScheduleUC)
	appointments.Post("/", scheduleHandler.Book)
	appointments.Get("/", scheduleHandler.List)
	appointments.Get("/:id", scheduleHandler.GetByID)
	appointments.Post("/:id/confirm", scheduleHandler.Confirm)
	appointments.Post("/:id/complete", scheduleHandler.Complete)
	appointments.Post("/:id/cancel", scheduleHandler.Cancel)

	// Customers y mascotas (protegido)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Post("/:id/pets", customerHandler.CreatePet)
	customers.Get("/:id/pets", customerHandler.ListPets)
}
