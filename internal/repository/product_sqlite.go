package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"shopcart-api/internal/model"

	_ "modernc.org/sqlite" // Pure Go SQLite driver - no CGO required
)

// SQLiteProductRepository implements ProductRepository using SQLite.
// An alternative to the JSON catalog store for deployments that want
// per-record writes instead of whole-document serialization.
type SQLiteProductRepository struct {
	db *sql.DB
}

// NewSQLiteProductRepository creates a new SQLite catalog repository.
// dbPath is the path to the SQLite database file (e.g., "./data/catalog.db")
func NewSQLiteProductRepository(dbPath string) (*SQLiteProductRepository, error) {
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000", dbPath)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite: %w", err)
	}

	// SQLite only supports 1 writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := createProductTable(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	log.Printf("[SQLiteProductRepository] initialized with database: %s", dbPath)
	return &SQLiteProductRepository{db: db}, nil
}

// createProductTable creates the products table.
func createProductTable(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS products (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		price REAL NOT NULL,
		stock INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_products_name ON products(name);
	`
	_, err := db.Exec(query)
	return err
}

// Get retrieves a product by id.
func (r *SQLiteProductRepository) Get(ctx context.Context, id string) (*model.Product, error) {
	query := `SELECT id, name, description, price, stock FROM products WHERE id = ?`

	var p model.Product
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return &p, nil
}

// List returns all products, ordered by name.
func (r *SQLiteProductRepository) List(ctx context.Context) ([]model.Product, error) {
	query := `SELECT id, name, description, price, stock FROM products ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := make([]model.Product, 0)
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	return products, rows.Err()
}

// Upsert inserts or replaces a product record.
func (r *SQLiteProductRepository) Upsert(ctx context.Context, product *model.Product) error {
	query := `
		INSERT INTO products (id, name, description, price, stock)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			price = excluded.price,
			stock = excluded.stock`

	_, err := r.db.ExecContext(ctx, query,
		product.ID, product.Name, product.Description, product.Price, product.Stock)
	if err != nil {
		return fmt.Errorf("failed to upsert product: %w", err)
	}
	return nil
}

// Delete removes a product.
func (r *SQLiteProductRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Close closes the database connection.
func (r *SQLiteProductRepository) Close() error {
	return r.db.Close()
}

// Ensure SQLiteProductRepository implements ProductRepository
var _ ProductRepository = (*SQLiteProductRepository)(nil)
