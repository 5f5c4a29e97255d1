package repository

import (
	"context"
	"log"
	"sync"

	"shopcart-api/internal/model"
)

// JSONUserRepository implements UserRepository over a single JSON
// document keyed by username. Every mutation writes the whole store
// back to disk before returning (write-through).
type JSONUserRepository struct {
	mu    sync.RWMutex
	path  string
	users map[string]model.User
}

// NewJSONUserRepository creates a user repository backed by the JSON
// document at path.
func NewJSONUserRepository(path string) *JSONUserRepository {
	users := make(map[string]model.User)
	if !loadDocument(path, &users) {
		users = make(map[string]model.User)
	}

	log.Printf("[JSONUserRepository] loaded %d users from %s", len(users), path)
	return &JSONUserRepository{path: path, users: users}
}

// Get retrieves a user by username.
func (r *JSONUserRepository) Get(ctx context.Context, username string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[username]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

// Upsert inserts or replaces a user record.
func (r *JSONUserRepository) Upsert(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users[user.Username] = *user
	r.persist()
	return nil
}

// Close implements UserRepository. The file needs no teardown.
func (r *JSONUserRepository) Close() error {
	return nil
}

// persist writes the whole store to disk. Failures are logged and
// swallowed: the in-memory state stays authoritative for the rest of
// the process lifetime even if the on-disk copy is stale.
func (r *JSONUserRepository) persist() {
	if err := saveDocument(r.path, r.users); err != nil {
		log.Printf("[JSONUserRepository] failed to save %s: %v", r.path, err)
	}
}

// Ensure JSONUserRepository implements UserRepository
var _ UserRepository = (*JSONUserRepository)(nil)
