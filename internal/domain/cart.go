package domain

import "time"

// SchemaVersion tags persisted cart snapshots so the stored layout can
// evolve without silently producing a malformed cart on reload.
const SchemaVersion = 1

// Line is a book held in the cart together with the quantity.
// Quantity is always >= 1 and never exceeds the book's stock; a line whose
// quantity would drop to 0 is removed from the cart instead.
type Line struct {
	Book
	Quantity int `json:"quantity"`
}

// Subtotal returns price times quantity for this line.
func (l Line) Subtotal() int64 {
	return l.Price * int64(l.Quantity)
}

// Cart is an ordered collection of lines, unique by book ID. Position is
// determined by first add.
type Cart struct {
	SchemaVersion int       `json:"schema_version"`
	Lines         []Line    `json:"lines"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewCart creates an empty cart with the current schema version.
func NewCart() *Cart {
	return &Cart{
		SchemaVersion: SchemaVersion,
		Lines:         []Line{},
		UpdatedAt:     time.Now().UTC(),
	}
}

// TotalAmount calculates the total price of all lines (in minor units).
func (c *Cart) TotalAmount() int64 {
	var total int64
	for _, l := range c.Lines {
		total += l.Subtotal()
	}
	return total
}

// ItemCount returns the total number of units across all lines.
func (c *Cart) ItemCount() int {
	var count int
	for _, l := range c.Lines {
		count += l.Quantity
	}
	return count
}

// FindLineIndex returns the index of the line holding the given book ID,
// or -1 if the cart has no such line.
func (c *Cart) FindLineIndex(bookID string) int {
	for i := range c.Lines {
		if c.Lines[i].ID == bookID {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of the cart so callers can hand out snapshots
// without exposing internal state to mutation.
func (c *Cart) Clone() *Cart {
	lines := make([]Line, len(c.Lines))
	copy(lines, c.Lines)
	return &Cart{
		SchemaVersion: c.SchemaVersion,
		Lines:         lines,
		UpdatedAt:     c.UpdatedAt,
	}
}
