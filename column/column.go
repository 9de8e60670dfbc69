package column

import (
	"fmt"
	"math"

	"github.com/EvilMcJerkface/hyrise/format"
	"github.com/EvilMcJerkface/hyrise/internal/pool"
)

// Scalar is the closed set of scalar kinds a column can hold. The set is
// deliberately exact (no ~ approximation): encoders type-switch on it, and
// the representation differs only for the variable-length string kind.
type Scalar interface {
	int64 | float64 | string
}

// ValueID is the rank of a value in a dictionary. The null sentinel ID of a
// dictionary column equals the dictionary size.
type ValueID = uint32

// InvalidValueID marks "no such value" results from dictionary searches.
const InvalidValueID ValueID = math.MaxUint32

// Column is the shared read contract every encoding implements. It is what
// the surrounding query engine consumes: operators never see the concrete
// layout unless they opt in through Accept.
type Column[T Scalar] interface {
	// Size returns the row count.
	Size() int

	// ValueAt returns the decoded element at position pos and whether it is
	// non-null (true means a real value, false means null). It panics when
	// pos is out of range; positions come from the operator layer, which
	// knows the row count.
	//
	// For block-structured encodings this is the legacy single-element
	// path: correct, but it forces redundant block unpacking. Scans should
	// use Materialize or an encoding-specific fast path via Accept.
	ValueAt(pos int) (T, bool)

	// Materialize decodes the full column into freshly allocated value and
	// null slices of length Size(). The null slice is nil when the column
	// cannot contain nulls.
	Materialize() ([]T, []bool)

	// Append is the mutation entry point of the shared contract. Encoded
	// columns are immutable, so it fails with errs.ErrImmutableColumn for
	// every encoding in this package except the plain ValueColumn.
	Append(value T, null bool) error

	// Clone returns a structurally identical, fully independent deep copy.
	// The copy never aliases the receiver's backing buffers.
	Clone() Column[T]

	// EncodingType identifies the concrete encoding.
	EncodingType() format.EncodingType

	// Accept dispatches to the visitor handler matching the column's
	// concrete encoding, passing the column itself and the opaque context.
	Accept(visitor Visitor[T], ctx any)
}

// Visitor lets an operator branch on a column's concrete encoding without
// runtime type inspection at each call site. Implementations provide fast
// paths for the encodings they specialize (for example comparing against
// dictionary IDs directly) and fall back to Materialize for the rest.
//
// The dispatch is closed and exhaustive by construction: adding a new
// encoding means adding exactly one handler method here and updating every
// visitor implementation.
type Visitor[T Scalar] interface {
	VisitValueColumn(column *ValueColumn[T], ctx any)
	VisitDictionaryColumn(column *DictionaryColumn[T], ctx any)
	VisitRunLengthColumn(column *RunLengthColumn[T], ctx any)
	VisitReferenceColumn(column *ReferenceColumn[T], ctx any)
}

// ScalarTypeOf returns the format.ScalarType for the scalar kind T.
func ScalarTypeOf[T Scalar]() format.ScalarType {
	var zero T
	switch any(zero).(type) {
	case int64:
		return format.ScalarInt64
	case float64:
		return format.ScalarFloat64
	case string:
		return format.ScalarString
	default:
		// Unreachable: the Scalar constraint is exact.
		panic(fmt.Sprintf("unsupported scalar kind %T", zero))
	}
}

// sameValue reports whether two scalars are the same stored value.
//
// For float64 this compares bit patterns, so a NaN sentinel or a NaN run
// compares equal to itself, which plain == would not.
func sameValue[T Scalar](a, b T) bool {
	if af, ok := any(a).(float64); ok {
		bf := any(b).(float64)
		return math.Float64bits(af) == math.Float64bits(bf)
	}

	return a == b
}

// isNaNValue reports whether v is a float64 NaN. Other scalar kinds never
// satisfy it.
func isNaNValue[T Scalar](v T) bool {
	f, ok := any(v).(float64)
	return ok && math.IsNaN(f)
}

func checkPosition[T Scalar](c Column[T], pos int) {
	if pos < 0 || pos >= c.Size() {
		panic(fmt.Sprintf("position %d out of range for column of size %d", pos, c.Size()))
	}
}

// scratchSlice returns a pooled working buffer of the scalar kind, sized to
// size. The release func must be called once the buffer is no longer needed;
// nothing that escapes the encoder may alias it.
func scratchSlice[T Scalar](size int) ([]T, func()) {
	var zero T
	switch any(zero).(type) {
	case int64:
		s, release := pool.GetInt64Slice(size)
		return any(s).([]T), release
	case float64:
		s, release := pool.GetFloat64Slice(size)
		return any(s).([]T), release
	default:
		s, release := pool.GetStringSlice(size)
		return any(s).([]T), release
	}
}
