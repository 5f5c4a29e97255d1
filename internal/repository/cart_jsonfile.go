package repository

import (
	"context"
	"log"
	"sync"

	"shopcart-api/internal/model"
)

// JSONCartRepository implements CartRepository over a single JSON
// document keyed by username, with write-through persistence.
type JSONCartRepository struct {
	mu    sync.RWMutex
	path  string
	carts map[string]model.Cart
}

// NewJSONCartRepository creates a cart repository backed by the JSON
// document at path.
func NewJSONCartRepository(path string) *JSONCartRepository {
	carts := make(map[string]model.Cart)
	if !loadDocument(path, &carts) {
		carts = make(map[string]model.Cart)
	}

	log.Printf("[JSONCartRepository] loaded %d carts from %s", len(carts), path)
	return &JSONCartRepository{path: path, carts: carts}
}

// Get retrieves a user's cart. The returned cart is a copy; mutating it
// has no effect until it is written back with Upsert.
func (r *JSONCartRepository) Get(ctx context.Context, username string) (*model.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cart, ok := r.carts[username]
	if !ok {
		return nil, ErrNotFound
	}

	items := make([]model.CartItem, len(cart.Items))
	copy(items, cart.Items)
	return &model.Cart{Items: items}, nil
}

// Upsert inserts or replaces a user's cart.
func (r *JSONCartRepository) Upsert(ctx context.Context, username string, cart *model.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := make([]model.CartItem, len(cart.Items))
	copy(items, cart.Items)
	r.carts[username] = model.Cart{Items: items}
	r.persist()
	return nil
}

// Delete removes a user's cart.
func (r *JSONCartRepository) Delete(ctx context.Context, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.carts[username]; !ok {
		return ErrNotFound
	}

	delete(r.carts, username)
	r.persist()
	return nil
}

// Close implements CartRepository. The file needs no teardown.
func (r *JSONCartRepository) Close() error {
	return nil
}

// persist writes the whole store to disk. Failures are logged and
// swallowed; memory stays authoritative.
func (r *JSONCartRepository) persist() {
	if err := saveDocument(r.path, r.carts); err != nil {
		log.Printf("[JSONCartRepository] failed to save %s: %v", r.path, err)
	}
}

// Ensure JSONCartRepository implements CartRepository
var _ CartRepository = (*JSONCartRepository)(nil)
