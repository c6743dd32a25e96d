// Package snapshot hands immutable values from the goroutine that computes
// them to the goroutines that read them, without locks on the read side.
package snapshot

import "sync/atomic"

// Box holds the latest published *T. Values are replaced whole: once stored,
// a value must not be modified, so readers never observe a partial update.
type Box[T any] struct {
	v   atomic.Pointer[T]
	gen atomic.Uint64
}

// Store publishes v.
func (b *Box[T]) Store(v *T) {
	b.v.Store(v)
	b.gen.Add(1)
}

// Load returns the most recently published value, or nil if nothing has
// been published yet.
func (b *Box[T]) Load() *T {
	return b.v.Load()
}

// Generation counts how many values have been published.
func (b *Box[T]) Generation() uint64 {
	return b.gen.Load()
}
