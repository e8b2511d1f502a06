package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/petshop-pro/internal/application/dto"
	"github.com/tu-usuario/petshop-pro/internal/domain"
	"github.com/tu-usuario/petshop-pro/internal/domain/entity"
	"github.com/tu-usuario/petshop-pro/internal/domain/repository"
)

// OwnerUseCase CRUD de proveedores en consignación.
type OwnerUseCase struct {
	repo repository.OwnerRepository
}

// NewOwnerUseCase construye el caso de uso.
func NewOwnerUseCase(repo repository.OwnerRepository) *OwnerUseCase {
	return &OwnerUseCase{repo: repo}
}

// Create crea un proveedor.
func (uc *OwnerUseCase) Create(in dto.CreateOwnerRequest) (*dto.OwnerResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	owner := &entity.Owner{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Document:  in.Document,
		Phone:     in.Phone,
		Email:     in.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(owner); err != nil {
		return nil, err
	}
	return toOwnerResponse(owner), nil
}

// GetByID obtiene un proveedor.
func (uc *OwnerUseCase) GetByID(id string) (*dto.OwnerResponse, error) {
	owner, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, nil
	}
	return toOwnerResponse(owner), nil
}

// List lista proveedores.
func (uc *OwnerUseCase) List(limit, offset int) ([]dto.OwnerResponse, error) {
	owners, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OwnerResponse, 0, len(owners))
	for _, o := range owners {
		out = append(out, *toOwnerResponse(o))
	}
	return out, nil
}

func toOwnerResponse(o *entity.Owner) *dto.OwnerResponse {
	return &dto.OwnerResponse{
		ID:        o.ID,
		Name:      o.Name,
		Document:  o.Document,
		Phone:     o.Phone,
		Email:     o.Email,
		CreatedAt: o.CreatedAt,
	}
}
