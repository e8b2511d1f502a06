package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/petshop-pro/internal/application/dto"
	"github.com/tu-usuario/petshop-pro/internal/domain"
	"github.com/tu-usuario/petshop-pro/internal/domain/entity"
	"github.com/tu-usuario/petshop-pro/internal/domain/repository"
)

// ProductUseCase CRUD de productos y variantes. El stock de las variantes nunca
// se edita aquí: solo muta vía movimientos del libro.
type ProductUseCase struct {
	productRepo  repository.ProductRepository
	variantRepo  repository.VariantRepository
	ownerRepo    repository.OwnerRepository
	categoryRepo repository.CategoryRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	productRepo repository.ProductRepository,
	variantRepo repository.VariantRepository,
	ownerRepo repository.OwnerRepository,
	categoryRepo repository.CategoryRepository,
) *ProductUseCase {
	return &ProductUseCase{
		productRepo:  productRepo,
		variantRepo:  variantRepo,
		ownerRepo:    ownerRepo,
		categoryRepo: categoryRepo,
	}
}

// Create crea un producto con sus variantes iniciales (stock 0). La categoría se
// resuelve por nombre con insert-or-get atómico: importaciones concurrentes con
// la misma categoría no crean duplicados.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.OwnerID == "" || in.Name == "" || len(in.Variants) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, v := range in.Variants {
		if v.CostPrice.LessThan(decimal.Zero) || v.SalePrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}
	owner, err := uc.ownerRepo.GetByID(in.OwnerID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, domain.ErrNotFound
	}
	categoryName := in.Category
	if categoryName == "" {
		categoryName = "general"
	}
	category, err := uc.categoryRepo.InsertOrGet(categoryName)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		OwnerID:     in.OwnerID,
		CategoryID:  category.ID,
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	resp := toProductResponse(product)
	for _, v := range in.Variants {
		name := v.Name
		if name == "" {
			name = product.Name
		}
		variant := &entity.ProductVariant{
			ID:        uuid.New().String(),
			ProductID: product.ID,
			Name:      name,
			CostPrice: entity.RoundMoney(v.CostPrice),
			SalePrice: entity.RoundMoney(v.SalePrice),
			Stock:     0,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := uc.variantRepo.Create(variant); err != nil {
			return nil, err
		}
		resp.Variants = append(resp.Variants, *toVariantResponse(variant))
	}
	return resp, nil
}

// GetByID obtiene un producto con sus variantes.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	resp := toProductResponse(product)
	variants, err := uc.variantRepo.ListByProduct(id)
	if err != nil {
		return nil, err
	}
	for _, v := range variants {
		resp.Variants = append(resp.Variants, *toVariantResponse(v))
	}
	return resp, nil
}

// List lista productos.
func (uc *ProductUseCase) List(limit, offset int) ([]dto.ProductResponse, error) {
	products, err := uc.productRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, *toProductResponse(p))
	}
	return out, nil
}

// UpdatePrices actualiza los precios de una variante.
func (uc *ProductUseCase) UpdatePrices(variantID string, cost, sale decimal.Decimal) (*dto.VariantResponse, error) {
	if cost.LessThan(decimal.Zero) || sale.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	variant, err := uc.variantRepo.GetByID(variantID)
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, nil
	}
	if err := uc.variantRepo.UpdatePrices(variantID, entity.RoundMoney(cost), entity.RoundMoney(sale)); err != nil {
		return nil, err
	}
	variant.CostPrice = entity.RoundMoney(cost)
	variant.SalePrice = entity.RoundMoney(sale)
	return toVariantResponse(variant), nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		OwnerID:     p.OwnerID,
		CategoryID:  p.CategoryID,
		Name:        p.Name,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
	}
}

func toVariantResponse(v *entity.ProductVariant) *dto.VariantResponse {
	return &dto.VariantResponse{
		ID:        v.ID,
		ProductID: v.ProductID,
		Name:      v.Name,
		CostPrice: v.CostPrice,
		SalePrice: v.SalePrice,
		Stock:     v.Stock,
	}
}
