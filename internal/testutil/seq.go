package testutil

import (
	"iter"
	"sync"
)

// CountingSource is a restartable sequence that records how often it is
// iterated and how many elements were pulled from it.
//
// Used to verify that query pipelines stay lazy: nothing is pulled before
// iteration, and each element is pulled at most once per pass.
//
// Thread-safety: counters are protected by an internal mutex.
type CountingSource[T any] struct {
	mu     sync.Mutex
	items  []T
	passes int
	pulls  int
}

// NewCountingSource creates a source over items.
func NewCountingSource[T any](items ...T) *CountingSource[T] {
	return &CountingSource[T]{items: items}
}

// Seq returns the sequence. Each range over it counts as one pass.
func (c *CountingSource[T]) Seq() iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		c.mu.Lock()
		c.passes++
		c.mu.Unlock()

		for _, item := range c.items {
			c.mu.Lock()
			c.pulls++
			c.mu.Unlock()
			if !yield(item, nil) {
				return
			}
		}
	}
}

// Passes returns how many times the sequence has been ranged over.
func (c *CountingSource[T]) Passes() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.passes
}

// Pulls returns the total number of elements yielded across all passes.
func (c *CountingSource[T]) Pulls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pulls
}

// Reset zeroes both counters.
func (c *CountingSource[T]) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.passes = 0
	c.pulls = 0
}

// FailingSource yields items and then err.
func FailingSource[T any](err error, items ...T) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for _, item := range items {
			if !yield(item, nil) {
				return
			}
		}
		var zero T
		yield(zero, err)
	}
}
