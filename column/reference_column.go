package column

import (
	"github.com/EvilMcJerkface/hyrise/errs"
	"github.com/EvilMcJerkface/hyrise/format"
)

// ReferenceColumn is an indirection over another column: it holds a
// position list into the referenced column, as produced by selection
// operators. It decodes nothing itself; every read resolves through the
// referenced column.
//
// The referenced column is shared (it is immutable and safe to share); the
// position list is owned. Clone deep-copies the position list and keeps the
// shared reference.
type ReferenceColumn[T Scalar] struct {
	referenced Column[T]
	positions  []uint32
}

var _ Column[int64] = (*ReferenceColumn[int64])(nil)

// NewReferenceColumn creates a reference column over referenced, picking
// the rows listed in positions. The position list is not copied; the caller
// hands over ownership. Every position must be within the referenced
// column's size.
func NewReferenceColumn[T Scalar](referenced Column[T], positions []uint32) *ReferenceColumn[T] {
	return &ReferenceColumn[T]{referenced: referenced, positions: positions}
}

// Size returns the number of referenced positions.
func (c *ReferenceColumn[T]) Size() int {
	return len(c.positions)
}

// Referenced returns the column this one points into.
func (c *ReferenceColumn[T]) Referenced() Column[T] {
	return c.referenced
}

// Positions returns the position list. The returned slice is the column's
// backing storage and must not be modified.
func (c *ReferenceColumn[T]) Positions() []uint32 {
	return c.positions
}

// ValueAt resolves the element at pos through the referenced column.
func (c *ReferenceColumn[T]) ValueAt(pos int) (T, bool) {
	checkPosition[T](c, pos)

	return c.referenced.ValueAt(int(c.positions[pos]))
}

// Materialize resolves every position through the referenced column.
// The null slice is nil when no referenced row is null.
func (c *ReferenceColumn[T]) Materialize() ([]T, []bool) {
	values := make([]T, len(c.positions))

	var nulls []bool
	for i, pos := range c.positions {
		value, ok := c.referenced.ValueAt(int(pos))
		if !ok {
			if nulls == nil {
				nulls = make([]bool, len(c.positions))
			}
			nulls[i] = true
			continue
		}
		values[i] = value
	}

	return values, nulls
}

// Append always fails: reference columns are immutable after construction.
func (c *ReferenceColumn[T]) Append(value T, null bool) error {
	return errs.ErrImmutableColumn
}

// Clone deep-copies the position list. The referenced column is immutable
// and stays shared.
func (c *ReferenceColumn[T]) Clone() Column[T] {
	positions := make([]uint32, len(c.positions))
	copy(positions, c.positions)

	return &ReferenceColumn[T]{referenced: c.referenced, positions: positions}
}

// EncodingType returns format.EncodingReference.
func (c *ReferenceColumn[T]) EncodingType() format.EncodingType {
	return format.EncodingReference
}

// Accept invokes the visitor's reference-column handler.
func (c *ReferenceColumn[T]) Accept(visitor Visitor[T], ctx any) {
	visitor.VisitReferenceColumn(c, ctx)
}
