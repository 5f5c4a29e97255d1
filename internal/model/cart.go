package model

// CartItem is one line of a cart. Quantity is always positive.
type CartItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// Cart holds a user's pending items in insertion order.
// Product IDs are unique within Items: adds merge into the existing line.
type Cart struct {
	Items []CartItem `json:"items"`
}

// Find returns a pointer to the item for productID, or nil.
func (c *Cart) Find(productID string) *CartItem {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}

// IsEmpty reports whether the cart has no items.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
