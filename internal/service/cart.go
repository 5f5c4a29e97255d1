package service

import (
	"context"
	"errors"
	"log"

	"shopcart-api/internal/model"
	"shopcart-api/internal/repository"
	"shopcart-api/pkg/apierror"
)

// CartService owns per-user carts. Product ids are unique within a
// cart: adding an already-present product merges quantities into the
// existing line.
type CartService struct {
	carts    repository.CartRepository
	products repository.ProductRepository
}

// NewCartService creates a new cart service.
func NewCartService(carts repository.CartRepository, products repository.ProductRepository) *CartService {
	return &CartService{carts: carts, products: products}
}

// Add puts quantity of a product into the user's cart, merging into an
// existing line for the same product. The merged quantity is validated
// against current stock before the cart is mutated or persisted, so a
// rejected add leaves no trace.
func (s *CartService) Add(ctx context.Context, username, productID string, quantity int) (*model.Product, error) {
	if quantity <= 0 {
		return nil, apierror.BadRequest("Quantity must be greater than zero")
	}

	product, err := s.resolveProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	cart, err := s.loadOrEmpty(ctx, username)
	if err != nil {
		return nil, err
	}

	merged := quantity
	existing := cart.Find(productID)
	if existing != nil {
		merged += existing.Quantity
	}
	if merged > product.Stock {
		return nil, apierror.BadRequest("Requested quantity exceeds available stock")
	}

	if existing != nil {
		existing.Quantity = merged
	} else {
		cart.Items = append(cart.Items, model.CartItem{ProductID: productID, Quantity: quantity})
	}

	if err := s.carts.Upsert(ctx, username, cart); err != nil {
		log.Printf("[CartService] failed to store cart for %q: %v", username, err)
		return nil, apierror.InternalError("")
	}

	log.Printf("[CartService] user %q added %d of product %q", username, quantity, product.Name)
	return product, nil
}

// SetQuantity replaces the quantity of an item already in the cart.
func (s *CartService) SetQuantity(ctx context.Context, username, productID string, quantity int) (*model.Product, error) {
	if quantity <= 0 {
		return nil, apierror.BadRequest("Quantity must be greater than zero")
	}

	product, err := s.resolveProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if quantity > product.Stock {
		return nil, apierror.BadRequest("Requested quantity exceeds available stock")
	}

	cart, err := s.loadOrEmpty(ctx, username)
	if err != nil {
		return nil, err
	}

	item := cart.Find(productID)
	if item == nil {
		return nil, apierror.NotFound("Product not found in cart")
	}
	item.Quantity = quantity

	if err := s.carts.Upsert(ctx, username, cart); err != nil {
		log.Printf("[CartService] failed to store cart for %q: %v", username, err)
		return nil, apierror.InternalError("")
	}

	log.Printf("[CartService] user %q set product %q quantity to %d", username, product.Name, quantity)
	return product, nil
}

// Remove deletes a single item from the cart.
func (s *CartService) Remove(ctx context.Context, username, productID string) error {
	cart, err := s.carts.Get(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apierror.NotFound("Cart is empty or not found")
		}
		log.Printf("[CartService] failed to load cart for %q: %v", username, err)
		return apierror.InternalError("")
	}

	kept := cart.Items[:0]
	for _, item := range cart.Items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(cart.Items) {
		return apierror.NotFound("Product not found in cart")
	}
	cart.Items = kept

	if err := s.carts.Upsert(ctx, username, cart); err != nil {
		log.Printf("[CartService] failed to store cart for %q: %v", username, err)
		return apierror.InternalError("")
	}

	log.Printf("[CartService] user %q removed product %q from cart", username, productID)
	return nil
}

// Clear deletes the user's entire cart.
func (s *CartService) Clear(ctx context.Context, username string) error {
	if err := s.carts.Delete(ctx, username); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apierror.NotFound("Cart is already empty or not found")
		}
		log.Printf("[CartService] failed to delete cart for %q: %v", username, err)
		return apierror.InternalError("")
	}

	log.Printf("[CartService] user %q cleared their cart", username)
	return nil
}

// Get returns the user's cart, or an empty cart when none exists.
func (s *CartService) Get(ctx context.Context, username string) (*model.Cart, error) {
	return s.loadOrEmpty(ctx, username)
}

// resolveProduct maps a product lookup to the API error taxonomy.
func (s *CartService) resolveProduct(ctx context.Context, productID string) (*model.Product, error) {
	product, err := s.products.Get(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apierror.NotFound("Product not found")
		}
		log.Printf("[CartService] failed to get product %q: %v", productID, err)
		return nil, apierror.InternalError("")
	}
	return product, nil
}

// loadOrEmpty fetches the user's cart, treating a missing cart as empty.
func (s *CartService) loadOrEmpty(ctx context.Context, username string) (*model.Cart, error) {
	cart, err := s.carts.Get(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &model.Cart{}, nil
		}
		log.Printf("[CartService] failed to load cart for %q: %v", username, err)
		return nil, apierror.InternalError("")
	}
	return cart, nil
}
