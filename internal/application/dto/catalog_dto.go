package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOwnerRequest alta de proveedor en consignación.
type CreateOwnerRequest struct {
	Name     string `json:"name"`
	Document string `json:"document,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
}

// OwnerResponse proveedor.
type OwnerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Document  string    `json:"document,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateVariantRequest variante inicial de un producto.
type CreateVariantRequest struct {
	Name      string          `json:"name"`
	CostPrice decimal.Decimal `json:"cost_price"`
	SalePrice decimal.Decimal `json:"sale_price"`
}

// CreateProductRequest alta de producto con sus variantes.
type CreateProductRequest struct {
	OwnerID     string                 `json:"owner_id"`
	Category    string                 `json:"category"` // nombre; se resuelve con insert-or-get
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	Variants    []CreateVariantRequest `json:"variants"`
}

// VariantResponse variante stockeable.
type VariantResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	CostPrice decimal.Decimal `json:"cost_price"`
	SalePrice decimal.Decimal `json:"sale_price"`
	Stock     int64           `json:"stock"`
}

// ProductResponse producto con sus variantes.
type ProductResponse struct {
	ID          string            `json:"id"`
	OwnerID     string            `json:"owner_id"`
	CategoryID  string            `json:"category_id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Variants    []VariantResponse `json:"variants,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

// UpdatePricesRequest nuevos precios de una variante.
type UpdatePricesRequest struct {
	CostPrice decimal.Decimal `json:"cost_price"`
	SalePrice decimal.Decimal `json:"sale_price"`
}

// CreateCustomerRequest alta de cliente.
type CreateCustomerRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

// CustomerResponse cliente.
type CustomerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CreatePetRequest alta de mascota de un cliente.
type CreatePetRequest struct {
	CustomerID string `json:"customer_id"`
	Name       string `json:"name"`
	Species    string `json:"species,omitempty"`
	Breed      string `json:"breed,omitempty"`
}

// PetResponse mascota.
type PetResponse struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customer_id"`
	Name       string    `json:"name"`
	Species    string    `json:"species,omitempty"`
	Breed      string    `json:"breed,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
