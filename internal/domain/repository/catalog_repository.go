package repository

import "github.com/tu-usuario/petshop-pro/internal/domain/entity"

// OwnerRepository puerto de persistencia para proveedores en consignación.
type OwnerRepository interface {
	Create(o *entity.Owner) error
	GetByID(id string) (*entity.Owner, error)
	List(limit, offset int) ([]*entity.Owner, error)
	Update(o *entity.Owner) error
}

// ProductRepository puerto de persistencia para productos.
// OwnerOfVariant resuelve el proveedor dueño de una variante ("" si no existe);
// lo usan anulación y liquidación para atribuir importes.
type ProductRepository interface {
	Create(p *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	List(limit, offset int) ([]*entity.Product, error)
	ListByOwner(ownerID string) ([]*entity.Product, error)
	OwnerOfVariant(variantID string) (string, error)
}

// CategoryRepository puerto para categorías de producto.
// InsertOrGet es atómico (insert-or-get) para evitar duplicados bajo
// importaciones concurrentes.
type CategoryRepository interface {
	InsertOrGet(name string) (*entity.Category, error)
	List() ([]*entity.Category, error)
}

// CustomerRepository puerto de persistencia para clientes.
type CustomerRepository interface {
	Create(c *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	List(limit, offset int) ([]*entity.Customer, error)
}

// PetRepository puerto de persistencia para mascotas.
type PetRepository interface {
	Create(p *entity.Pet) error
	GetByID(id string) (*entity.Pet, error)
	ListByCustomer(customerID string) ([]*entity.Pet, error)
}

// UserRepository puerto de persistencia para usuarios.
type UserRepository interface {
	Create(u *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
}
