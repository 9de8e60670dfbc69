package column

import (
	"fmt"
	"math"
	"slices"

	"github.com/EvilMcJerkface/hyrise/errs"
	"github.com/EvilMcJerkface/hyrise/format"
	"github.com/EvilMcJerkface/hyrise/internal/options"
)

// RunLengthEncoderConfig controls the null sentinel of a run-length column.
type RunLengthEncoderConfig[T Scalar] struct {
	sentinel    T
	hasSentinel bool
}

// RunLengthEncoderOption is a functional option for RunLengthEncoderConfig.
type RunLengthEncoderOption[T Scalar] = options.Option[*RunLengthEncoderConfig[T]]

// WithNullSentinel overrides the default null sentinel value. The encoder
// still validates the override against the input: a non-null input value
// equal to the sentinel fails the encode with ErrSentinelCollision.
func WithNullSentinel[T Scalar](sentinel T) RunLengthEncoderOption[T] {
	return options.NoError(func(cfg *RunLengthEncoderConfig[T]) {
		cfg.sentinel = sentinel
		cfg.hasSentinel = true
	})
}

// defaultNullSentinel returns the per-kind sentinel used when the caller
// does not override it: the most negative int64, a NaN bit pattern for
// float64 (compared bit-wise, so it forms runs and matches itself), and an
// unlikely control-prefixed string.
func defaultNullSentinel[T Scalar]() T {
	var zero T
	switch any(zero).(type) {
	case int64:
		return any(int64(math.MinInt64)).(T)
	case float64:
		return any(math.NaN()).(T)
	default:
		return any("\xff\x00hyrise.null").(T)
	}
}

// EncodeRunLength builds a run-length column from a complete value column.
//
// The input is scanned once; whenever the value changes (including
// transitions to or from null, mapped through the sentinel) the current run
// is closed and a new (value, end-position) pair begins. The run table ends
// with end position rowCount-1.
//
// Null handling relies on the sentinel never colliding with real data, so
// the scan validates it: encoding fails with ErrSentinelCollision if any
// non-null input value equals the sentinel. Float64 comparisons are
// bit-pattern based, which lets the NaN sentinel work and keeps real NaN
// runs intact on non-nullable columns.
func EncodeRunLength[T Scalar](valueColumn *ValueColumn[T], opts ...RunLengthEncoderOption[T]) (*RunLengthColumn[T], error) {
	cfg := &RunLengthEncoderConfig[T]{}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}
	if !cfg.hasSentinel {
		cfg.sentinel = defaultNullSentinel[T]()
	}

	values := valueColumn.Values()
	nulls := valueColumn.NullMask()
	nullable := valueColumn.IsNullable()

	var (
		runValues    []T
		endPositions []uint32
	)

	if len(values) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d rows exceed run table positions", errs.ErrCardinalityOverflow, len(values))
	}

	var prev T
	for i, v := range values {
		isNull := nullable && nulls[i]

		cur := v
		if isNull {
			cur = cfg.sentinel
		} else if nullable && sameValue(v, cfg.sentinel) {
			return nil, fmt.Errorf("%w: value at row %d", errs.ErrSentinelCollision, i)
		}

		if i == 0 || !sameValue(cur, prev) {
			runValues = append(runValues, cur)
			endPositions = append(endPositions, uint32(i))
		} else {
			endPositions[len(endPositions)-1] = uint32(i)
		}
		prev = cur
	}

	// Shrink to fit: the run table owns exact-size buffers.
	ownedValues := make([]T, len(runValues))
	copy(ownedValues, runValues)
	ownedEnds := make([]uint32, len(endPositions))
	copy(ownedEnds, endPositions)

	return &RunLengthColumn[T]{
		values:       ownedValues,
		endPositions: ownedEnds,
		nullValue:    cfg.sentinel,
		nullable:     nullable,
	}, nil
}

// RunLengthColumn collapses consecutive repeated values into (value,
// end-position) pairs. End positions are strictly increasing and the last
// one equals rowCount-1.
//
// Nulls are stored as runs of the sentinel value recorded in the column;
// the encoder has validated that the sentinel never occurs as real data.
// The column is immutable and independent of the zero-suppression
// framework.
type RunLengthColumn[T Scalar] struct {
	values       []T
	endPositions []uint32
	nullValue    T
	nullable     bool
}

var _ Column[int64] = (*RunLengthColumn[int64])(nil)

// NewRunLengthColumnFromParts rebuilds a run-length column from its raw
// parts, as a snapshot reader does. End positions must be strictly
// increasing and parallel to the run values.
func NewRunLengthColumnFromParts[T Scalar](values []T, endPositions []uint32, nullValue T, nullable bool) (*RunLengthColumn[T], error) {
	if len(values) != len(endPositions) {
		return nil, fmt.Errorf("%w: %d run values, %d end positions", errs.ErrCorruptedPayload, len(values), len(endPositions))
	}
	for i := 1; i < len(endPositions); i++ {
		if endPositions[i-1] >= endPositions[i] {
			return nil, fmt.Errorf("%w: end positions not strictly increasing at run %d", errs.ErrCorruptedPayload, i)
		}
	}

	return &RunLengthColumn[T]{
		values:       values,
		endPositions: endPositions,
		nullValue:    nullValue,
		nullable:     nullable,
	}, nil
}

// Size returns the row count: one past the last run's end position.
func (c *RunLengthColumn[T]) Size() int {
	if len(c.endPositions) == 0 {
		return 0
	}

	return int(c.endPositions[len(c.endPositions)-1]) + 1
}

// RunCount returns the number of runs in the table.
func (c *RunLengthColumn[T]) RunCount() int {
	return len(c.values)
}

// Values returns the run values. The returned slice is the column's backing
// storage and must not be modified.
func (c *RunLengthColumn[T]) Values() []T {
	return c.values
}

// EndPositions returns the run end positions, parallel to Values.
// The returned slice is the column's backing storage and must not be
// modified.
func (c *RunLengthColumn[T]) EndPositions() []uint32 {
	return c.endPositions
}

// NullValue returns the sentinel standing in for null runs.
func (c *RunLengthColumn[T]) NullValue() T {
	return c.nullValue
}

// IsNullable reports whether null runs can occur, i.e. whether the sentinel
// carries null semantics.
func (c *RunLengthColumn[T]) IsNullable() bool {
	return c.nullable
}

// ValueAt returns the element at pos and whether it is non-null.
//
// It binary-searches the end positions for the first run covering pos,
// costing O(log runs) per probe. Full scans should use Materialize, which
// replays the runs in O(n).
func (c *RunLengthColumn[T]) ValueAt(pos int) (T, bool) {
	checkPosition[T](c, pos)

	// First run whose end position is >= pos covers pos.
	run, _ := slices.BinarySearch(c.endPositions, uint32(pos))
	value := c.values[run]

	if c.nullable && sameValue(value, c.nullValue) {
		var zero T
		return zero, false
	}

	return value, true
}

// Materialize replays the runs in order into freshly allocated slices.
// The null slice is nil when the column holds no nulls.
func (c *RunLengthColumn[T]) Materialize() ([]T, []bool) {
	size := c.Size()
	values := make([]T, size)

	var nulls []bool
	pos := 0
	for run, value := range c.values {
		isNull := c.nullable && sameValue(value, c.nullValue)
		if isNull && nulls == nil {
			nulls = make([]bool, size)
		}

		for ; pos <= int(c.endPositions[run]); pos++ {
			if isNull {
				nulls[pos] = true
			} else {
				values[pos] = value
			}
		}
	}

	return values, nulls
}

// Append always fails: run-length columns are immutable after construction.
func (c *RunLengthColumn[T]) Append(value T, null bool) error {
	return errs.ErrImmutableColumn
}

// Clone returns a structurally identical, fully independent copy. The run
// table is deep-copied into fresh buffers and never aliases the source.
func (c *RunLengthColumn[T]) Clone() Column[T] {
	values := make([]T, len(c.values))
	copy(values, c.values)
	ends := make([]uint32, len(c.endPositions))
	copy(ends, c.endPositions)

	return &RunLengthColumn[T]{
		values:       values,
		endPositions: ends,
		nullValue:    c.nullValue,
		nullable:     c.nullable,
	}
}

// EncodingType returns format.EncodingRunLength.
func (c *RunLengthColumn[T]) EncodingType() format.EncodingType {
	return format.EncodingRunLength
}

// Accept invokes the visitor's run-length-column handler.
func (c *RunLengthColumn[T]) Accept(visitor Visitor[T], ctx any) {
	visitor.VisitRunLengthColumn(c, ctx)
}
