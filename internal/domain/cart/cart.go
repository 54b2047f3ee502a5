package cart

import "github.com/google/uuid"

// Cart is the session-scoped ordered set of product references. It owns no
// product state: adding an item reserves nothing, and a lost cart loses
// nothing that was ever durable. Insertion order is preserved for stable
// display only.
type Cart struct {
	sessionID string
	items     []uuid.UUID
}

func New(sessionID string) *Cart {
	return &Cart{sessionID: sessionID}
}

func Reconstruct(sessionID string, items []uuid.UUID) *Cart {
	c := &Cart{sessionID: sessionID}
	for _, id := range items {
		c.Add(id)
	}
	return c
}

// Add inserts productID unless already present. Returns true when the cart
// changed.
func (c *Cart) Add(productID uuid.UUID) bool {
	if c.Contains(productID) {
		return false
	}
	c.items = append(c.items, productID)
	return true
}

// Remove deletes productID if present; removing a non-member is a no-op.
func (c *Cart) Remove(productID uuid.UUID) bool {
	for i, id := range c.items {
		if id == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

func (c *Cart) Contains(productID uuid.UUID) bool {
	for _, id := range c.items {
		if id == productID {
			return true
		}
	}
	return false
}

// Snapshot returns a point-in-time copy of the item list. Checkout operates
// on the snapshot, never on the live cart.
func (c *Cart) Snapshot() []uuid.UUID {
	out := make([]uuid.UUID, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) SessionID() string { return c.sessionID }
func (c *Cart) Len() int          { return len(c.items) }
func (c *Cart) IsEmpty() bool     { return len(c.items) == 0 }
