package service

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"

	"shopcart-api/internal/model"
	"shopcart-api/internal/repository"
)

type cartFixture struct {
	carts    *repository.JSONCartRepository
	products *repository.JSONProductRepository
	svc      *CartService
}

func newCartFixture(t *testing.T) *cartFixture {
	t.Helper()
	dir := t.TempDir()
	carts := repository.NewJSONCartRepository(filepath.Join(dir, "carts.json"))
	products := repository.NewJSONProductRepository(filepath.Join(dir, "products.json"))
	return &cartFixture{
		carts:    carts,
		products: products,
		svc:      NewCartService(carts, products),
	}
}

func (f *cartFixture) seedProduct(t *testing.T, id string, price float64, stock int) {
	t.Helper()
	err := f.products.Upsert(context.Background(), &model.Product{
		ID:    id,
		Name:  "product-" + id,
		Price: price,
		Stock: stock,
	})
	if err != nil {
		t.Fatalf("failed to seed product %s: %v", id, err)
	}
}

func TestAdd_MergesSameProduct(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()
	f.seedProduct(t, "p1", 3.0, 10)

	if _, err := f.svc.Add(ctx, "alice", "p1", 2); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	if _, err := f.svc.Add(ctx, "alice", "p1", 3); err != nil {
		t.Fatalf("second add failed: %v", err)
	}

	cart, err := f.svc.Get(ctx, "alice")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(cart.Items) != 1 {
		t.Fatalf("adds of the same product must merge into one line, got %d lines", len(cart.Items))
	}
	if cart.Items[0].Quantity != 5 {
		t.Errorf("merged quantity = %d, want 5", cart.Items[0].Quantity)
	}
}

func TestAdd_MergedQuantityOverStockRejectedWithoutTrace(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()
	f.seedProduct(t, "p1", 3.0, 5)

	if _, err := f.svc.Add(ctx, "alice", "p1", 4); err != nil {
		t.Fatalf("first add failed: %v", err)
	}

	// 4 + 3 exceeds the stock of 5; the cart must keep the old quantity.
	_, err := f.svc.Add(ctx, "alice", "p1", 3)
	if got := statusOf(t, err); got != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", got)
	}

	cart, err := f.svc.Get(ctx, "alice")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if cart.Items[0].Quantity != 4 {
		t.Errorf("rejected add leaked into the cart: quantity = %d, want 4", cart.Items[0].Quantity)
	}
}

func TestAdd_UnknownProduct(t *testing.T) {
	f := newCartFixture(t)

	_, err := f.svc.Add(context.Background(), "alice", "nope", 1)
	if got := statusOf(t, err); got != http.StatusNotFound {
		t.Errorf("status = %d, want 404", got)
	}
}

func TestAdd_NonPositiveQuantity(t *testing.T) {
	f := newCartFixture(t)
	f.seedProduct(t, "p1", 3.0, 10)

	_, err := f.svc.Add(context.Background(), "alice", "p1", 0)
	if got := statusOf(t, err); got != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", got)
	}
}

func TestSetQuantity(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()
	f.seedProduct(t, "p1", 3.0, 10)

	if _, err := f.svc.Add(ctx, "alice", "p1", 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := f.svc.SetQuantity(ctx, "alice", "p1", 7); err != nil {
		t.Fatalf("SetQuantity failed: %v", err)
	}

	cart, _ := f.svc.Get(ctx, "alice")
	if cart.Items[0].Quantity != 7 {
		t.Errorf("quantity = %d, want 7", cart.Items[0].Quantity)
	}
}

func TestSetQuantity_NotInCart(t *testing.T) {
	f := newCartFixture(t)
	f.seedProduct(t, "p1", 3.0, 10)

	_, err := f.svc.SetQuantity(context.Background(), "alice", "p1", 2)
	if got := statusOf(t, err); got != http.StatusNotFound {
		t.Errorf("status = %d, want 404", got)
	}
}

func TestSetQuantity_OverStock(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()
	f.seedProduct(t, "p1", 3.0, 5)

	if _, err := f.svc.Add(ctx, "alice", "p1", 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	_, err := f.svc.SetQuantity(ctx, "alice", "p1", 6)
	if got := statusOf(t, err); got != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", got)
	}
}

func TestRemove(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()
	f.seedProduct(t, "p1", 3.0, 10)
	f.seedProduct(t, "p2", 4.0, 10)

	f.svc.Add(ctx, "alice", "p1", 1)
	f.svc.Add(ctx, "alice", "p2", 1)

	if err := f.svc.Remove(ctx, "alice", "p1"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	cart, _ := f.svc.Get(ctx, "alice")
	if len(cart.Items) != 1 || cart.Items[0].ProductID != "p2" {
		t.Errorf("cart after remove = %+v, want only p2", cart.Items)
	}
}

func TestRemove_MissingCartOrItem(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()

	if err := f.svc.Remove(ctx, "alice", "p1"); err == nil {
		t.Error("removing from a missing cart must fail")
	} else if got := statusOf(t, err); got != http.StatusNotFound {
		t.Errorf("status = %d, want 404", got)
	}

	f.seedProduct(t, "p1", 3.0, 10)
	f.svc.Add(ctx, "alice", "p1", 1)
	if err := f.svc.Remove(ctx, "alice", "other"); err == nil {
		t.Error("removing an absent item must fail")
	} else if got := statusOf(t, err); got != http.StatusNotFound {
		t.Errorf("status = %d, want 404", got)
	}
}

func TestClear(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()
	f.seedProduct(t, "p1", 3.0, 10)
	f.svc.Add(ctx, "alice", "p1", 1)

	if err := f.svc.Clear(ctx, "alice"); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	if err := f.svc.Clear(ctx, "alice"); err == nil {
		t.Error("clearing a missing cart must fail")
	} else if got := statusOf(t, err); got != http.StatusNotFound {
		t.Errorf("status = %d, want 404", got)
	}
}

func TestGet_MissingCartIsEmpty(t *testing.T) {
	f := newCartFixture(t)

	cart, err := f.svc.Get(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("Get must never fail for a missing cart: %v", err)
	}
	if !cart.IsEmpty() {
		t.Errorf("missing cart should read as empty, got %+v", cart.Items)
	}
}
