// Package seq provides a generic singly linked, insertion-ordered list with
// call-site owned cursors and predicate-based bulk removal.
//
// A List is not safe for concurrent mutation. Any number of cursors may read
// the same list as long as nobody appends or removes meanwhile.
package seq

import "iter"

// Prunable is implemented by elements that can be tested against a removal
// criterion of their own type. It is a one-sided predicate, not an ordering.
type Prunable[T any] interface {
	PrunedBy(criterion T) bool
}

type node[T any] struct {
	data T
	next *node[T]
}

// List is a singly linked list with O(1) append.
// Invariants: head == nil iff tail == nil; tail.next == nil.
type List[T any] struct {
	head *node[T]
	tail *node[T]
	size int
}

// New creates an empty list.
func New[T any]() *List[T] {
	return &List[T]{}
}

// From creates a list holding items in order.
func From[T any](items ...T) *List[T] {
	l := New[T]()
	for _, it := range items {
		l.Append(it)
	}
	return l
}

// Append adds item as the new tail.
func (l *List[T]) Append(item T) {
	n := &node[T]{data: item}
	if l.head == nil {
		l.head = n
	} else {
		l.tail.next = n
	}
	l.tail = n
	l.size++
}

// Len returns the number of elements.
func (l *List[T]) Len() int { return l.size }

// IsEmpty reports whether the list has no elements.
func (l *List[T]) IsEmpty() bool { return l.head == nil }

// Cursor returns a new unpositioned cursor over l. Call Reset before use.
func (l *List[T]) Cursor() *Cursor[T] {
	return &Cursor[T]{list: l}
}

// All yields the elements in insertion order.
func (l *List[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for n := l.head; n != nil; n = n.next {
			if !yield(n.data) {
				return
			}
		}
	}
}

// RemoveMatching removes every element e for which e.PrunedBy(criterion)
// holds and returns how many were removed. Survivors keep their order.
// Cursors obtained before the call must be Reset before further use.
func RemoveMatching[T Prunable[T]](l *List[T], criterion T) int {
	return l.RemoveFunc(func(e T) bool { return e.PrunedBy(criterion) })
}

// RemoveFunc removes every element for which match returns true, first the
// matching run at the head, then interior and tail matches in one pass.
func (l *List[T]) RemoveFunc(match func(T) bool) int {
	removed := 0

	for l.head != nil && match(l.head.data) {
		l.head = l.head.next
		removed++
	}
	if l.head == nil {
		l.tail = nil
		l.size = 0
		return removed
	}

	prev := l.head
	for prev.next != nil {
		if match(prev.next.data) {
			// re-check the new successor before moving on
			prev.next = prev.next.next
			removed++
			continue
		}
		prev = prev.next
	}
	l.tail = prev
	l.size -= removed

	return removed
}
