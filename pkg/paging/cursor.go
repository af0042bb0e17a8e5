// Package paging hands out a filtered result list in fixed-size batches.
package paging

// DefaultBatchSize is the number of records handed out per batch.
const DefaultBatchSize = 50

// Cursor tracks how many results have been handed out. It is not safe for
// concurrent use and must be Reset whenever the result list it walks is
// replaced.
type Cursor struct {
	position  int
	batchSize int
}

// New returns a cursor at position 0. A non-positive size means
// DefaultBatchSize.
func New(batchSize int) *Cursor {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Cursor{batchSize: batchSize}
}

// Reset moves the cursor back to the start.
func (c *Cursor) Reset() {
	c.position = 0
}

// Next returns the next batch of results, clamped to what is left, advances
// the cursor past it and reports whether more results remain.
func Next[T any](c *Cursor, results []T) ([]T, bool) {
	start := min(c.position, len(results))
	end := min(start+c.batchSize, len(results))

	batch := results[start:end:end]
	c.position = end
	return batch, c.position < len(results)
}

// Position returns the number of results handed out so far.
func (c *Cursor) Position() int {
	return c.position
}

// BatchSize returns the configured batch size.
func (c *Cursor) BatchSize() int {
	return c.batchSize
}

// HasMore reports whether results has entries beyond the cursor.
func (c *Cursor) HasMore(total int) bool {
	return c.position < total
}
