package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"shopcart-api/internal/model"
)

func TestJSONProductRepository_MissingFileStartsEmpty(t *testing.T) {
	repo := NewJSONProductRepository(filepath.Join(t.TempDir(), "products.json"))

	products, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(products) != 0 {
		t.Errorf("expected empty store, got %d products", len(products))
	}
}

func TestJSONProductRepository_MalformedFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	if err := os.WriteFile(path, []byte("{not valid json"), 0o644); err != nil {
		t.Fatal(err)
	}

	repo := NewJSONProductRepository(path)

	products, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(products) != 0 {
		t.Errorf("malformed file must degrade to an empty store, got %d products", len(products))
	}
}

func TestJSONProductRepository_WriteThroughSurvivesReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	ctx := context.Background()

	repo := NewJSONProductRepository(path)
	product := &model.Product{ID: "p1", Name: "Widget", Price: 4.5, Stock: 10}
	if err := repo.Upsert(ctx, product); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	// A fresh repository over the same file sees the record.
	reloaded := NewJSONProductRepository(path)
	got, err := reloaded.Get(ctx, "p1")
	if err != nil {
		t.Fatalf("Get after reload failed: %v", err)
	}
	if got.Name != "Widget" || got.Price != 4.5 || got.Stock != 10 {
		t.Errorf("reloaded product = %+v, want original values", got)
	}
}

func TestJSONProductRepository_DeleteMissing(t *testing.T) {
	repo := NewJSONProductRepository(filepath.Join(t.TempDir(), "products.json"))

	err := repo.Delete(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete of missing product = %v, want ErrNotFound", err)
	}
}

func TestJSONCartRepository_GetReturnsCopy(t *testing.T) {
	repo := NewJSONCartRepository(filepath.Join(t.TempDir(), "carts.json"))
	ctx := context.Background()

	cart := &model.Cart{Items: []model.CartItem{{ProductID: "p1", Quantity: 2}}}
	if err := repo.Upsert(ctx, "alice", cart); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	first, err := repo.Get(ctx, "alice")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	first.Items[0].Quantity = 99

	second, err := repo.Get(ctx, "alice")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if second.Items[0].Quantity != 2 {
		t.Errorf("mutating a returned cart leaked into the store: quantity = %d, want 2", second.Items[0].Quantity)
	}
}

func TestJSONCartRepository_DeleteMissing(t *testing.T) {
	repo := NewJSONCartRepository(filepath.Join(t.TempDir(), "carts.json"))

	err := repo.Delete(context.Background(), "nobody")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete of missing cart = %v, want ErrNotFound", err)
	}
}

func TestJSONUserRepository_GetMissing(t *testing.T) {
	repo := NewJSONUserRepository(filepath.Join(t.TempDir(), "users.json"))

	_, err := repo.Get(context.Background(), "ghost")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get of missing user = %v, want ErrNotFound", err)
	}
}
