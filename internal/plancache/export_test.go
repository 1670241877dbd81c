package plancache

// TrackedUINs reports how many UINs currently have load bookkeeping.
func (c *Cache) TrackedUINs() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.loading) + len(c.generations)
}
