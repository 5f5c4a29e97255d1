package repository

import (
	"context"
	"errors"

	"shopcart-api/internal/model"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// UserRepository defines user account data access methods.
type UserRepository interface {
	// Get retrieves a user by username. Returns ErrNotFound if absent.
	Get(ctx context.Context, username string) (*model.User, error)

	// Upsert inserts or replaces a user record.
	Upsert(ctx context.Context, user *model.User) error

	// Close releases any underlying resources.
	Close() error
}

// ProductRepository defines catalog data access methods.
type ProductRepository interface {
	// Get retrieves a product by id. Returns ErrNotFound if absent.
	Get(ctx context.Context, id string) (*model.Product, error)

	// List returns all products, ordered by name.
	List(ctx context.Context) ([]model.Product, error)

	// Upsert inserts or replaces a product record.
	Upsert(ctx context.Context, product *model.Product) error

	// Delete removes a product. Returns ErrNotFound if absent.
	Delete(ctx context.Context, id string) error

	// Close releases any underlying resources.
	Close() error
}

// CartRepository defines cart data access methods, keyed by username.
type CartRepository interface {
	// Get retrieves a user's cart. Returns ErrNotFound if the user has
	// no cart.
	Get(ctx context.Context, username string) (*model.Cart, error)

	// Upsert inserts or replaces a user's cart.
	Upsert(ctx context.Context, username string, cart *model.Cart) error

	// Delete removes a user's cart. Returns ErrNotFound if absent.
	Delete(ctx context.Context, username string) error

	// Close releases any underlying resources.
	Close() error
}
