package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"shopcart-api/internal/model"
	"shopcart-api/internal/repository"
	"shopcart-api/pkg/apierror"
)

// CheckoutState tracks the phases of a checkout call.
type CheckoutState string

const (
	CheckoutStateIdle       CheckoutState = "IDLE"
	CheckoutStateValidating CheckoutState = "VALIDATING"
	CheckoutStateCommitting CheckoutState = "COMMITTING"
	CheckoutStateDone       CheckoutState = "DONE"
	CheckoutStateRejected   CheckoutState = "REJECTED"
)

// CheckoutResult is the outcome of a successful checkout.
type CheckoutResult struct {
	TotalCost float64
}

// FormattedTotal renders the total with a currency symbol and exactly
// two decimal places.
func (r *CheckoutResult) FormattedTotal() string {
	return fmt.Sprintf("$%.2f", r.TotalCost)
}

// CheckoutService runs the two-pass checkout sequence:
//
//	Idle -> Validating -> Committing -> Done (or Rejected from Validating)
//
// The first pass resolves every cart item against the catalog and
// accumulates the total without touching stock; the second pass, only
// reached when every item passed, deducts stock and deletes the cart.
// No stock is decremented unless the whole cart is available, so a
// rejected checkout changes nothing.
//
// The whole sequence holds the shared stock mutex: concurrent checkouts
// and admin stock edits serialize against it, otherwise a mutation
// between the two passes could invalidate the first pass and drive
// stock negative.
type CheckoutService struct {
	carts    repository.CartRepository
	products repository.ProductRepository
	stockMu  *sync.Mutex
}

// NewCheckoutService creates a new checkout service. stockMu must be
// the same mutex handed to the catalog service.
func NewCheckoutService(carts repository.CartRepository, products repository.ProductRepository, stockMu *sync.Mutex) *CheckoutService {
	return &CheckoutService{carts: carts, products: products, stockMu: stockMu}
}

// Checkout runs one full checkout for the user's cart.
func (s *CheckoutService) Checkout(ctx context.Context, username string) (*CheckoutResult, error) {
	s.stockMu.Lock()
	defer s.stockMu.Unlock()

	state := CheckoutStateValidating

	cart, err := s.carts.Get(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, s.reject(username, state, apierror.BadRequest("Cart is empty"))
		}
		log.Printf("[CheckoutService] failed to load cart for %q: %v", username, err)
		return nil, apierror.InternalError("")
	}
	if cart.IsEmpty() {
		return nil, s.reject(username, state, apierror.BadRequest("Cart is empty"))
	}

	// First pass: read-only validation over all items. All-or-nothing:
	// any missing product or short stock rejects the whole checkout
	// before any stock is touched.
	total := 0.0
	resolved := make([]*model.Product, len(cart.Items))
	for i, item := range cart.Items {
		product, err := s.products.Get(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, s.reject(username, state, apierror.NotFound(
					fmt.Sprintf("Product %s no longer exists", item.ProductID)))
			}
			log.Printf("[CheckoutService] failed to get product %q: %v", item.ProductID, err)
			return nil, apierror.InternalError("")
		}
		if item.Quantity > product.Stock {
			return nil, s.reject(username, state, apierror.BadRequest(
				fmt.Sprintf("Insufficient stock for product %s: %d available, %d requested",
					product.Name, product.Stock, item.Quantity)))
		}

		total += product.Price * float64(item.Quantity)
		resolved[i] = product
	}

	// Second pass: every item is confirmed available, deduct stock and
	// drop the cart. Each store persists independently (best-effort,
	// non-atomic across stores).
	state = CheckoutStateCommitting
	log.Printf("[CheckoutService] user %q: %s -> %s", username, CheckoutStateValidating, state)
	for i, item := range cart.Items {
		resolved[i].Stock -= item.Quantity
		if err := s.products.Upsert(ctx, resolved[i]); err != nil {
			log.Printf("[CheckoutService] failed to store product %q: %v", resolved[i].ID, err)
			return nil, apierror.InternalError("")
		}
	}
	if err := s.carts.Delete(ctx, username); err != nil && !errors.Is(err, repository.ErrNotFound) {
		log.Printf("[CheckoutService] failed to delete cart for %q: %v", username, err)
		return nil, apierror.InternalError("")
	}

	state = CheckoutStateDone
	result := &CheckoutResult{TotalCost: total}
	log.Printf("[CheckoutService] user %q: checkout %s, total %s", username, state, result.FormattedTotal())
	return result, nil
}

// reject logs the terminal transition and passes the error through.
func (s *CheckoutService) reject(username string, from CheckoutState, err *apierror.Error) error {
	log.Printf("[CheckoutService] user %q: %s -> %s (%s)", username, from, CheckoutStateRejected, err.Message)
	return err
}
