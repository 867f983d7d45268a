package usecase

import (
	"context"

	"voltbay/internal/domain/entity"
	"voltbay/internal/domain/repository"
)

// ProductUseCase only resolves listings; listing management happens outside
// this service. The contact flow uses it to find a product's seller.
type ProductUseCase struct {
	productRepo repository.ProductRepository
}

func NewProductUseCase(productRepo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{
		productRepo: productRepo,
	}
}

func (uc *ProductUseCase) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	return uc.productRepo.GetByID(ctx, id)
}
