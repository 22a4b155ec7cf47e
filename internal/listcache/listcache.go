// Package listcache holds the transient per-entity lists the admin
// screens work against. The upstream API stays authoritative: a list is
// replaced wholesale on every fetch (last fetch wins) and only patched
// locally after a confirmed create/update/delete.
package listcache

import "sync"

// List is a cached slice of entities with optimistic update semantics.
type List[T any] struct {
	mu    sync.Mutex
	items []T
	id    func(T) int
}

// New creates a list cache; id extracts the entity identifier used by
// Update and Remove.
func New[T any](id func(T) int) *List[T] {
	return &List[T]{
		id: id,
	}
}

// Replace swaps the whole cached list for the given one.
func (l *List[T]) Replace(items []T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = make([]T, len(items))
	copy(l.items, items)
}

// Prepend puts a freshly created entity at the front of the list.
func (l *List[T]) Prepend(item T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = append([]T{item}, l.items...)
}

// Update replaces the cached entity with the same id. Entities not in the
// cache are left alone (the next full fetch picks them up).
func (l *List[T]) Update(item T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.items {
		if l.id(l.items[i]) == l.id(item) {
			l.items[i] = item
			return
		}
	}
}

// Remove drops the entity with the given id from the list.
func (l *List[T]) Remove(id int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	filtered := l.items[:0]
	for _, item := range l.items {
		if l.id(item) != id {
			filtered = append(filtered, item)
		}
	}
	l.items = filtered
}

// Items returns a copy of the cached list.
func (l *List[T]) Items() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	itemsCopy := make([]T, len(l.items))
	copy(itemsCopy, l.items)
	return itemsCopy
}

// Len returns the number of cached entities.
func (l *List[T]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}
