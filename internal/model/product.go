package model

// Product is a catalog entry. Stock is mutated by admin edits and by
// checkout deductions; it never goes below zero.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
}
