package column

import (
	"fmt"

	"github.com/EvilMcJerkface/hyrise/errs"
	"github.com/EvilMcJerkface/hyrise/format"
)

// ValueColumn is the plain, uncompressed column: one value per row plus an
// optional out-of-band null mask. It is the only mutable column kind and
// serves as the input to every encoder.
type ValueColumn[T Scalar] struct {
	values   []T
	nulls    []bool
	nullable bool
}

var _ Column[int64] = (*ValueColumn[int64])(nil)

// NewValueColumn creates an empty value column. A nullable column tracks a
// null mask alongside the values; a non-nullable one rejects null appends.
func NewValueColumn[T Scalar](nullable bool) *ValueColumn[T] {
	return &ValueColumn[T]{nullable: nullable}
}

// NewValueColumnFromSlice wraps a complete value sequence as a non-nullable
// column. The slice is not copied; the caller hands over ownership.
func NewValueColumnFromSlice[T Scalar](values []T) *ValueColumn[T] {
	return &ValueColumn[T]{values: values}
}

// NewValueColumnWithNulls wraps a complete value sequence and its null mask
// as a nullable column. The slices are not copied; the caller hands over
// ownership. The mask must have the same length as the values.
func NewValueColumnWithNulls[T Scalar](values []T, nulls []bool) (*ValueColumn[T], error) {
	if len(values) != len(nulls) {
		return nil, fmt.Errorf("%w: %d values, %d mask entries", errs.ErrLengthMismatch, len(values), len(nulls))
	}

	return &ValueColumn[T]{values: values, nulls: nulls, nullable: true}, nil
}

// Size returns the row count.
func (c *ValueColumn[T]) Size() int {
	return len(c.values)
}

// IsNullable reports whether the column carries a null mask.
func (c *ValueColumn[T]) IsNullable() bool {
	return c.nullable
}

// Values returns the backing value slice. Callers must not modify it while
// the column is shared.
func (c *ValueColumn[T]) Values() []T {
	return c.values
}

// NullMask returns the backing null mask, or nil for a non-nullable column.
func (c *ValueColumn[T]) NullMask() []bool {
	return c.nulls
}

// ValueAt returns the element at pos and whether it is non-null.
func (c *ValueColumn[T]) ValueAt(pos int) (T, bool) {
	checkPosition[T](c, pos)

	if c.nullable && c.nulls[pos] {
		var zero T
		return zero, false
	}

	return c.values[pos], true
}

// Materialize copies the values and null mask into freshly allocated slices.
func (c *ValueColumn[T]) Materialize() ([]T, []bool) {
	values := make([]T, len(c.values))
	copy(values, c.values)

	if !c.nullable {
		return values, nil
	}

	nulls := make([]bool, len(c.nulls))
	copy(nulls, c.nulls)

	return values, nulls
}

// Append adds one row. Appending a null to a non-nullable column fails.
func (c *ValueColumn[T]) Append(value T, null bool) error {
	if null && !c.nullable {
		return errs.ErrNullNotAllowed
	}

	c.values = append(c.values, value)
	if c.nullable {
		c.nulls = append(c.nulls, null)
	}

	return nil
}

// Clone returns a deep copy that shares no storage with the receiver.
func (c *ValueColumn[T]) Clone() Column[T] {
	values := make([]T, len(c.values))
	copy(values, c.values)

	clone := &ValueColumn[T]{values: values, nullable: c.nullable}
	if c.nullable {
		clone.nulls = make([]bool, len(c.nulls))
		copy(clone.nulls, c.nulls)
	}

	return clone
}

// EncodingType returns format.EncodingUnencoded.
func (c *ValueColumn[T]) EncodingType() format.EncodingType {
	return format.EncodingUnencoded
}

// Accept invokes the visitor's value-column handler.
func (c *ValueColumn[T]) Accept(visitor Visitor[T], ctx any) {
	visitor.VisitValueColumn(c, ctx)
}
