package column

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/EvilMcJerkface/hyrise/encoding"
	"github.com/EvilMcJerkface/hyrise/errs"
	"github.com/EvilMcJerkface/hyrise/format"
	"github.com/EvilMcJerkface/hyrise/internal/hash"
	"github.com/EvilMcJerkface/hyrise/internal/pool"
)

// DictionaryColumn stores a sorted, duplicate-free dictionary of the
// column's distinct values plus an attribute vector holding one dictionary
// rank (ValueID) per row. Null rows carry the sentinel ID, which equals the
// dictionary size.
//
// The dictionary is strictly ascending under the cmp total order (for
// float64 all NaNs compare equal and smallest, so a dictionary holds at most
// one NaN entry, at rank 0), and a value's unique ID is its rank found by
// binary search. Operators exploit this through LowerBound and UpperBound: a
// predicate against a constant becomes an ID-range test over the attribute
// vector, with no value decoding at all.
//
// The column is immutable and owns its buffers exclusively; it is safe for
// unsynchronized concurrent reads.
type DictionaryColumn[T Scalar] struct {
	dictionary      []T
	attributeVector encoding.Vector
	nullValueID     ValueID
	fingerprint     uint64
}

var _ Column[int64] = (*DictionaryColumn[int64])(nil)

func newDictionaryColumn[T Scalar](dictionary []T, attributeVector encoding.Vector, nullValueID ValueID) *DictionaryColumn[T] {
	return &DictionaryColumn[T]{
		dictionary:      dictionary,
		attributeVector: attributeVector,
		nullValueID:     nullValueID,
		fingerprint:     fingerprintDictionary(dictionary),
	}
}

// fingerprintDictionary hashes the dictionary payload. Identical inputs
// yield identical dictionaries and therefore identical fingerprints, which
// makes the fingerprint usable for shared-dictionary detection across
// chunks of the same table.
func fingerprintDictionary[T Scalar](dictionary []T) uint64 {
	switch vals := any(dictionary).(type) {
	case []string:
		return hash.FingerprintStrings(vals)
	case []int64:
		buf := pool.GetScratchBuffer()
		defer pool.PutScratchBuffer(buf)

		for _, v := range vals {
			var b [8]byte
			b[0] = byte(v)
			b[1] = byte(v >> 8)
			b[2] = byte(v >> 16)
			b[3] = byte(v >> 24)
			b[4] = byte(v >> 32)
			b[5] = byte(v >> 40)
			b[6] = byte(v >> 48)
			b[7] = byte(v >> 56)
			buf.MustWrite(b[:])
		}

		return hash.Fingerprint(buf.Bytes())
	case []float64:
		buf := pool.GetScratchBuffer()
		defer pool.PutScratchBuffer(buf)

		for _, v := range vals {
			bits := math.Float64bits(v)
			var b [8]byte
			b[0] = byte(bits)
			b[1] = byte(bits >> 8)
			b[2] = byte(bits >> 16)
			b[3] = byte(bits >> 24)
			b[4] = byte(bits >> 32)
			b[5] = byte(bits >> 40)
			b[6] = byte(bits >> 48)
			b[7] = byte(bits >> 56)
			buf.MustWrite(b[:])
		}

		return hash.Fingerprint(buf.Bytes())
	default:
		return 0
	}
}

// NewDictionaryColumnFromParts rebuilds a dictionary column from its raw
// parts, as a snapshot reader does. The dictionary must be strictly
// ascending and duplicate-free, and the null sentinel ID must equal the
// dictionary size; violating either means the payload does not describe a
// valid dictionary column.
func NewDictionaryColumnFromParts[T Scalar](dictionary []T, attributeVector encoding.Vector, nullValueID ValueID) (*DictionaryColumn[T], error) {
	if nullValueID != ValueID(len(dictionary)) {
		return nil, fmt.Errorf("%w: null sentinel ID %d, dictionary size %d", errs.ErrCorruptedPayload, nullValueID, len(dictionary))
	}
	for i := 1; i < len(dictionary); i++ {
		// The cmp total order matches the encoder's sort, so a NaN entry at
		// rank 0 validates while plain < would reject the encoder's own
		// output.
		if cmp.Compare(dictionary[i-1], dictionary[i]) >= 0 {
			return nil, fmt.Errorf("%w: dictionary not strictly ascending at rank %d", errs.ErrCorruptedPayload, i)
		}
	}

	return newDictionaryColumn(dictionary, attributeVector, nullValueID), nil
}

// Size returns the row count.
func (c *DictionaryColumn[T]) Size() int {
	return c.attributeVector.Size()
}

// UniqueValuesCount returns the number of distinct non-null values.
func (c *DictionaryColumn[T]) UniqueValuesCount() int {
	return len(c.dictionary)
}

// Dictionary returns the sorted dictionary. The returned slice is the
// column's backing storage and must not be modified.
func (c *DictionaryColumn[T]) Dictionary() []T {
	return c.dictionary
}

// AttributeVector returns the zero-suppression vector holding the ID stream.
func (c *DictionaryColumn[T]) AttributeVector() encoding.Vector {
	return c.attributeVector
}

// NullValueID returns the sentinel ID standing in for null rows. It equals
// the dictionary size.
func (c *DictionaryColumn[T]) NullValueID() ValueID {
	return c.nullValueID
}

// Fingerprint returns the xxHash64 of the dictionary payload.
func (c *DictionaryColumn[T]) Fingerprint() uint64 {
	return c.fingerprint
}

// ValueByID resolves a dictionary ID back to its value. The second return
// is false for the null sentinel ID or an out-of-range ID.
func (c *DictionaryColumn[T]) ValueByID(id ValueID) (T, bool) {
	if id >= ValueID(len(c.dictionary)) {
		var zero T
		return zero, false
	}

	return c.dictionary[id], true
}

// LowerBound returns the ID of the first dictionary value not less than
// value, or InvalidValueID when every dictionary value is less.
func (c *DictionaryColumn[T]) LowerBound(value T) ValueID {
	rank, _ := slices.BinarySearchFunc(c.dictionary, value, cmp.Compare)
	if rank == len(c.dictionary) {
		return InvalidValueID
	}

	return ValueID(rank)
}

// UpperBound returns the ID of the first dictionary value greater than
// value, or InvalidValueID when no dictionary value is greater.
func (c *DictionaryColumn[T]) UpperBound(value T) ValueID {
	rank, found := slices.BinarySearchFunc(c.dictionary, value, cmp.Compare)
	if found {
		rank++
	}
	if rank >= len(c.dictionary) {
		return InvalidValueID
	}

	return ValueID(rank)
}

// ValueAt returns the decoded element at pos and whether it is non-null.
//
// It creates a fresh decoder per call so concurrent readers never share
// decoder state; scans should materialize or hold one decoder per worker
// instead of probing row by row.
func (c *DictionaryColumn[T]) ValueAt(pos int) (T, bool) {
	checkPosition[T](c, pos)

	id, _ := c.attributeVector.CreateDecoder().Get(pos)
	if id == c.nullValueID {
		var zero T
		return zero, false
	}

	return c.dictionary[id], true
}

// Materialize decodes the full column through one sequential pass over the
// attribute vector. The null slice is nil when the column holds no nulls.
func (c *DictionaryColumn[T]) Materialize() ([]T, []bool) {
	values := make([]T, c.Size())

	var nulls []bool
	i := 0
	for id := range c.attributeVector.CreateDecoder().All() {
		if id == c.nullValueID {
			if nulls == nil {
				nulls = make([]bool, c.Size())
			}
			nulls[i] = true
		} else {
			values[i] = c.dictionary[id]
		}
		i++
	}

	return values, nulls
}

// AppendTo decodes the element at pos into a mutable value column,
// preserving nullability.
func (c *DictionaryColumn[T]) AppendTo(target *ValueColumn[T], pos int) error {
	value, ok := c.ValueAt(pos)
	return target.Append(value, !ok)
}

// Append always fails: dictionary columns are immutable after construction.
func (c *DictionaryColumn[T]) Append(value T, null bool) error {
	return errs.ErrImmutableColumn
}

// Clone returns a deep copy under fresh storage, never aliasing the source.
func (c *DictionaryColumn[T]) Clone() Column[T] {
	dictionary := make([]T, len(c.dictionary))
	copy(dictionary, c.dictionary)

	return &DictionaryColumn[T]{
		dictionary:      dictionary,
		attributeVector: c.attributeVector.Clone(),
		nullValueID:     c.nullValueID,
		fingerprint:     c.fingerprint,
	}
}

// EncodingType returns format.EncodingDictionary.
func (c *DictionaryColumn[T]) EncodingType() format.EncodingType {
	return format.EncodingDictionary
}

// Accept invokes the visitor's dictionary-column handler.
func (c *DictionaryColumn[T]) Accept(visitor Visitor[T], ctx any) {
	visitor.VisitDictionaryColumn(c, ctx)
}
