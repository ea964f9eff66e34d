package seq

import "perishables/internal/core/apperror"

// Cursor walks a List front to back. It is owned by whoever called
// List.Cursor, so independent traversals never disturb each other.
//
//	c := l.Cursor()
//	for c.Reset(); c.Valid(); c.Advance() {
//		use(c.Value())
//	}
type Cursor[T any] struct {
	list    *List[T]
	current *node[T]
}

// Reset positions the cursor at the first element, or leaves it exhausted
// when the list is empty.
func (c *Cursor[T]) Reset() {
	c.current = c.list.head
}

// Valid reports whether the cursor references an element.
func (c *Cursor[T]) Valid() bool {
	return c.current != nil
}

// Advance moves to the successor of the current element. Advancing an
// exhausted or unpositioned cursor is a contract violation and returns an
// INVALID_STATE error without moving.
func (c *Cursor[T]) Advance() error {
	if c.current == nil {
		return errCursorExhausted("advance")
	}
	c.current = c.current.next
	return nil
}

// Value returns the element at the cursor. It panics with an INVALID_STATE
// error when the cursor is not Valid.
func (c *Cursor[T]) Value() T {
	if c.current == nil {
		panic(errCursorExhausted("value"))
	}
	return c.current.data
}

func errCursorExhausted(op string) *apperror.AppError {
	return apperror.NewInvalidState("cursor does not reference an element").
		WithDetail("op", op)
}
