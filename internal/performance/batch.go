// Package performance provides batching utilities for bulk data operations.
package performance

import "sync"

// DefaultBatchSize is the number of items written per flush when no size is given.
const DefaultBatchSize = 500

// BatchWriter accumulates items and hands them to a write function in
// fixed-size chunks. Large CSV imports go through this so a single
// transaction never has to hold thousands of rows.
type BatchWriter[T any] struct {
	size    int
	write   func([]T) error
	pending []T
	written int
	mu      sync.Mutex
}

// NewBatchWriter creates a batch writer that flushes through write every
// size items. If size is 0 or negative, DefaultBatchSize is used.
func NewBatchWriter[T any](size int, write func([]T) error) *BatchWriter[T] {
	if size <= 0 {
		size = DefaultBatchSize
	}
	return &BatchWriter[T]{
		size:    size,
		write:   write,
		pending: make([]T, 0, size),
	}
}

// Add queues an item, flushing the current chunk if it is full.
func (b *BatchWriter[T]) Add(item T) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.pending = append(b.pending, item)
	if len(b.pending) >= b.size {
		return b.flush()
	}
	return nil
}

// Flush writes any queued items that have not yet been flushed.
func (b *BatchWriter[T]) Flush() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.flush()
}

// Written reports how many items have been handed to the write function.
func (b *BatchWriter[T]) Written() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.written
}

func (b *BatchWriter[T]) flush() error {
	if len(b.pending) == 0 {
		return nil
	}

	if err := b.write(b.pending); err != nil {
		return err
	}
	b.written += len(b.pending)
	b.pending = b.pending[:0] // Reset slice but keep capacity
	return nil
}
