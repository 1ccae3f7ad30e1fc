package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/trinhdvt/storefront/internal/model"
	"github.com/trinhdvt/storefront/internal/repository"
	"github.com/trinhdvt/storefront/pkg/pagination"
)

type CreateProductParams struct {
	Name        string
	Description *string
	Price       float64
	ImageURL    *string
}

type UpdateProductParams struct {
	Name        *string
	Description *string
	Price       *float64
	ImageURL    *string
}

type ProductService interface {
	CreateProduct(ctx context.Context, params CreateProductParams) (model.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (model.Product, error)
	ListProducts(ctx context.Context, plan pagination.Plan) (pagination.Page[model.Product], error)
	UpdateProduct(ctx context.Context, id uuid.UUID, params UpdateProductParams) (model.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

type productService struct {
	productRepo repository.ProductRepository
}

func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productService{productRepo: productRepo}
}

func (s *productService) CreateProduct(ctx context.Context, params CreateProductParams) (model.Product, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return model.Product{}, fmt.Errorf("generate uuid v7: %w", err)
	}

	// created_at == updated_at on a fresh row.
	now := time.Now().UTC()
	product, err := s.productRepo.CreateProduct(ctx, repository.CreateProductParams{
		ID:          id,
		Name:        params.Name,
		Description: params.Description,
		Price:       params.Price,
		ImageURL:    params.ImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return model.Product{}, fmt.Errorf("product repository create product: %w", err)
	}

	return product, nil
}

func (s *productService) GetProduct(ctx context.Context, id uuid.UUID) (model.Product, error) {
	product, err := s.productRepo.GetProduct(ctx, id)
	if err != nil {
		return model.Product{}, fmt.Errorf("product repository get product: %w", err)
	}

	return product, nil
}

func (s *productService) ListProducts(ctx context.Context, plan pagination.Plan) (pagination.Page[model.Product], error) {
	products, err := s.productRepo.ListProducts(ctx, repository.ListProductsParams{
		Limit:  plan.PerPage,
		Offset: plan.Offset(),
	})
	if err != nil {
		return pagination.Page[model.Product]{}, fmt.Errorf("product repository list products: %w", err)
	}

	total, err := s.productRepo.CountProducts(ctx)
	if err != nil {
		return pagination.Page[model.Product]{}, fmt.Errorf("product repository count products: %w", err)
	}

	return pagination.NewPage(plan, total, products), nil
}

func (s *productService) UpdateProduct(ctx context.Context, id uuid.UUID, params UpdateProductParams) (model.Product, error) {
	product, err := s.productRepo.UpdateProduct(ctx, id, repository.UpdateProductParams{
		Name:        params.Name,
		Description: params.Description,
		Price:       params.Price,
		ImageURL:    params.ImageURL,
		UpdatedAt:   time.Now().UTC(),
	})
	if err != nil {
		return model.Product{}, fmt.Errorf("product repository update product: %w", err)
	}

	return product, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.productRepo.DeleteProduct(ctx, id); err != nil {
		return fmt.Errorf("product repository delete product: %w", err)
	}

	return nil
}
