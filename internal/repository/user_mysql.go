package repository

import (
	"context"
	"database/sql"
	"fmt"

	"shopcart-api/internal/model"
)

// MySQLUserRepository implements UserRepository using MySQL. Optional:
// when MySQL is unreachable at startup, main falls back to the JSON
// user store with a warning.
type MySQLUserRepository struct {
	db *sql.DB
}

// NewMySQLUserRepository creates a new MySQL user repository. The
// repository takes ownership of db; Close releases it.
func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{db: db}
}

// EnsureSchema creates the users table if it does not exist.
func (r *MySQLUserRepository) EnsureSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS users (
		username VARCHAR(191) PRIMARY KEY,
		hashed_password VARCHAR(255) NOT NULL,
		role VARCHAR(32) NOT NULL DEFAULT 'customer'
	)`

	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create users table: %w", err)
	}
	return nil
}

// Get retrieves a user by username.
func (r *MySQLUserRepository) Get(ctx context.Context, username string) (*model.User, error) {
	query := `SELECT username, hashed_password, role FROM users WHERE username = ? LIMIT 1`

	var user model.User
	err := r.db.QueryRowContext(ctx, query, username).Scan(
		&user.Username,
		&user.HashedPassword,
		&user.Role,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// Upsert inserts or replaces a user record.
func (r *MySQLUserRepository) Upsert(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (username, hashed_password, role)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE
			hashed_password = VALUES(hashed_password),
			role = VALUES(role)`

	_, err := r.db.ExecContext(ctx, query, user.Username, user.HashedPassword, user.Role)
	if err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (r *MySQLUserRepository) Close() error {
	return r.db.Close()
}

// Ensure MySQLUserRepository implements UserRepository
var _ UserRepository = (*MySQLUserRepository)(nil)
