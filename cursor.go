package vram

// Cursor is the index of the displayed buffer. It always lies in
// [0, Count()) for a non-empty pool.
type Cursor struct {
	index int
	count int
}

// NewCursor returns a cursor at buffer 0 of count buffers.
func NewCursor(count int) Cursor {
	return Cursor{count: count}
}

// Index returns the current buffer index.
func (c Cursor) Index() int { return c.index }

// Count returns the number of buffers the cursor ranges over.
func (c Cursor) Count() int { return c.count }

// Move shifts the cursor by delta buffers, wrapping around both ends, and
// returns the new index. On an empty range the index stays 0.
func (c *Cursor) Move(delta int) int {
	if c.count <= 0 {
		c.index = 0
		return 0
	}
	c.index = wrap(c.index+delta, c.count)
	return c.index
}

// wrap is the mathematical modulo: the result has the sign of n.
func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
