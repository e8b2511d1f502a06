package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/petshop-pro/internal/application/dto"
	"github.com/tu-usuario/petshop-pro/internal/domain"
	"github.com/tu-usuario/petshop-pro/internal/domain/entity"
	"github.com/tu-usuario/petshop-pro/internal/domain/repository"
)

// CustomerUseCase CRUD de clientes y mascotas.
type CustomerUseCase struct {
	customerRepo repository.CustomerRepository
	petRepo      repository.PetRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(customerRepo repository.CustomerRepository, petRepo repository.PetRepository) *CustomerUseCase {
	return &CustomerUseCase{customerRepo: customerRepo, petRepo: petRepo}
}

// CreateCustomer crea un cliente.
func (uc *CustomerUseCase) CreateCustomer(in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	customer := &entity.Customer{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Phone:     in.Phone,
		Email:     in.Email,
		CreatedAt: time.Now(),
	}
	if err := uc.customerRepo.Create(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// ListCustomers lista clientes.
func (uc *CustomerUseCase) ListCustomers(limit, offset int) ([]dto.CustomerResponse, error) {
	customers, err := uc.customerRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomerResponse, 0, len(customers))
	for _, c := range customers {
		out = append(out, *toCustomerResponse(c))
	}
	return out, nil
}

// CreatePet registra una mascota de un cliente existente.
func (uc *CustomerUseCase) CreatePet(in dto.CreatePetRequest) (*dto.PetResponse, error) {
	if in.CustomerID == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	pet := &entity.Pet{
		ID:         uuid.New().String(),
		CustomerID: in.CustomerID,
		Name:       in.Name,
		Species:    in.Species,
		Breed:      in.Breed,
		CreatedAt:  time.Now(),
	}
	if err := uc.petRepo.Create(pet); err != nil {
		return nil, err
	}
	return toPetResponse(pet), nil
}

// ListPets lista las mascotas de un cliente.
func (uc *CustomerUseCase) ListPets(customerID string) ([]dto.PetResponse, error) {
	pets, err := uc.petRepo.ListByCustomer(customerID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PetResponse, 0, len(pets))
	for _, p := range pets {
		out = append(out, *toPetResponse(p))
	}
	return out, nil
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		CreatedAt: c.CreatedAt,
	}
}

func toPetResponse(p *entity.Pet) *dto.PetResponse {
	return &dto.PetResponse{
		ID:         p.ID,
		CustomerID: p.CustomerID,
		Name:       p.Name,
		Species:    p.Species,
		Breed:      p.Breed,
		CreatedAt:  p.CreatedAt,
	}
}
