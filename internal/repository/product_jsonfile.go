package repository

import (
	"context"
	"log"
	"sort"
	"sync"

	"shopcart-api/internal/model"
)

// JSONProductRepository implements ProductRepository over a single JSON
// document keyed by product id, with write-through persistence.
type JSONProductRepository struct {
	mu       sync.RWMutex
	path     string
	products map[string]model.Product
}

// NewJSONProductRepository creates a catalog repository backed by the
// JSON document at path.
func NewJSONProductRepository(path string) *JSONProductRepository {
	products := make(map[string]model.Product)
	if !loadDocument(path, &products) {
		products = make(map[string]model.Product)
	}

	log.Printf("[JSONProductRepository] loaded %d products from %s", len(products), path)
	return &JSONProductRepository{path: path, products: products}
}

// Get retrieves a product by id.
func (r *JSONProductRepository) Get(ctx context.Context, id string) (*model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &product, nil
}

// List returns all products, ordered by name.
func (r *JSONProductRepository) List(ctx context.Context) ([]model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]model.Product, 0, len(r.products))
	for _, p := range r.products {
		products = append(products, p)
	}

	sort.Slice(products, func(i, j int) bool {
		return products[i].Name < products[j].Name
	})
	return products, nil
}

// Upsert inserts or replaces a product record.
func (r *JSONProductRepository) Upsert(ctx context.Context, product *model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.products[product.ID] = *product
	r.persist()
	return nil
}

// Delete removes a product.
func (r *JSONProductRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return ErrNotFound
	}

	delete(r.products, id)
	r.persist()
	return nil
}

// Close implements ProductRepository. The file needs no teardown.
func (r *JSONProductRepository) Close() error {
	return nil
}

// persist writes the whole store to disk. Failures are logged and
// swallowed; memory stays authoritative.
func (r *JSONProductRepository) persist() {
	if err := saveDocument(r.path, r.products); err != nil {
		log.Printf("[JSONProductRepository] failed to save %s: %v", r.path, err)
	}
}

// Ensure JSONProductRepository implements ProductRepository
var _ ProductRepository = (*JSONProductRepository)(nil)
