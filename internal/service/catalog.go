package service

import (
	"context"
	"errors"
	"log"
	"sync"

	"shopcart-api/internal/model"
	"shopcart-api/internal/repository"
	"shopcart-api/pkg/apierror"
	"shopcart-api/pkg/uid"
)

// ProductInput carries the mutable fields of a product for create and
// update calls.
type ProductInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
}

// validate checks the business constraints shared by create and update.
func (in *ProductInput) validate() error {
	if in.Name == "" {
		return apierror.BadRequest("Product name is required")
	}
	if in.Price <= 0 {
		return apierror.BadRequest("Price must be greater than zero")
	}
	if in.Stock < 0 {
		return apierror.BadRequest("Stock must not be negative")
	}
	return nil
}

// CatalogService owns product CRUD. Stock-mutating operations take the
// shared stock mutex so they serialize with the checkout engine's
// validate-then-commit sequence; without it a stock edit between the
// two checkout passes could drive stock negative.
type CatalogService struct {
	products repository.ProductRepository
	stockMu  *sync.Mutex
}

// NewCatalogService creates a new catalog service. stockMu must be the
// same mutex handed to the checkout engine.
func NewCatalogService(products repository.ProductRepository, stockMu *sync.Mutex) *CatalogService {
	return &CatalogService{products: products, stockMu: stockMu}
}

// Create adds a new product with a generated unique id.
func (s *CatalogService) Create(ctx context.Context, in ProductInput) (*model.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	product := &model.Product{
		ID:          uid.New(),
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
	}

	if err := s.products.Upsert(ctx, product); err != nil {
		log.Printf("[CatalogService] failed to store product %q: %v", product.ID, err)
		return nil, apierror.InternalError("")
	}

	log.Printf("[CatalogService] product %q created (%s)", product.Name, product.ID)
	return product, nil
}

// Get retrieves a single product.
func (s *CatalogService) Get(ctx context.Context, id string) (*model.Product, error) {
	product, err := s.products.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apierror.NotFound("Product not found")
		}
		log.Printf("[CatalogService] failed to get product %q: %v", id, err)
		return nil, apierror.InternalError("")
	}
	return product, nil
}

// List returns all products.
func (s *CatalogService) List(ctx context.Context) ([]model.Product, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		log.Printf("[CatalogService] failed to list products: %v", err)
		return nil, apierror.InternalError("")
	}
	return products, nil
}

// Update replaces all mutable fields of an existing product, keeping
// its id.
func (s *CatalogService) Update(ctx context.Context, id string, in ProductInput) (*model.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	s.stockMu.Lock()
	defer s.stockMu.Unlock()

	if _, err := s.products.Get(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apierror.NotFound("Product not found")
		}
		log.Printf("[CatalogService] failed to get product %q: %v", id, err)
		return nil, apierror.InternalError("")
	}

	product := &model.Product{
		ID:          id,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
	}
	if err := s.products.Upsert(ctx, product); err != nil {
		log.Printf("[CatalogService] failed to store product %q: %v", id, err)
		return nil, apierror.InternalError("")
	}

	log.Printf("[CatalogService] product %q updated (%s)", product.Name, id)
	return product, nil
}

// Delete removes a product from the catalog.
func (s *CatalogService) Delete(ctx context.Context, id string) error {
	s.stockMu.Lock()
	defer s.stockMu.Unlock()

	if err := s.products.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apierror.NotFound("Product not found")
		}
		log.Printf("[CatalogService] failed to delete product %q: %v", id, err)
		return apierror.InternalError("")
	}

	log.Printf("[CatalogService] product %s deleted", id)
	return nil
}
