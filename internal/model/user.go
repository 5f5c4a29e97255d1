package model

// User roles.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User represents a registered account as stored in the user store.
// The bcrypt hash embeds its algorithm identifier and salt, so the
// hashing scheme can be upgraded without invalidating old records.
type User struct {
	Username       string `json:"username"`
	HashedPassword string `json:"hashed_password"`
	Role           string `json:"role"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
