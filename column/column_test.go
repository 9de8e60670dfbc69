package column

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/EvilMcJerkface/hyrise/format"
)

// countingVisitor records which handler ran.
type countingVisitor[T Scalar] struct {
	value      int
	dictionary int
	runLength  int
	reference  int
	rows       int
}

func (v *countingVisitor[T]) VisitValueColumn(c *ValueColumn[T], ctx any) {
	v.value++
	v.rows += c.Size()
}

func (v *countingVisitor[T]) VisitDictionaryColumn(c *DictionaryColumn[T], ctx any) {
	v.dictionary++
	v.rows += c.Size()
}

func (v *countingVisitor[T]) VisitRunLengthColumn(c *RunLengthColumn[T], ctx any) {
	v.runLength++
	v.rows += c.Size()
}

func (v *countingVisitor[T]) VisitReferenceColumn(c *ReferenceColumn[T], ctx any) {
	v.reference++
	v.rows += c.Size()
}

func TestAccept_DispatchesByColumnKind(t *testing.T) {
	vc := NewValueColumnFromSlice([]int64{1, 1, 2})
	dict, err := EncodeDictionary(vc)
	require.NoError(t, err)
	rle, err := EncodeRunLength(vc)
	require.NoError(t, err)
	ref := NewReferenceColumn[int64](dict, []uint32{0, 2})

	visitor := &countingVisitor[int64]{}
	for _, c := range []Column[int64]{vc, dict, rle, ref} {
		c.Accept(visitor, nil)
	}

	require.Equal(t, 1, visitor.value)
	require.Equal(t, 1, visitor.dictionary)
	require.Equal(t, 1, visitor.runLength)
	require.Equal(t, 1, visitor.reference)
	require.Equal(t, 3+3+3+2, visitor.rows)
}

// sumVisitor consumes a column generically through Materialize, the
// fallback for operators without a specialized per-encoding path.
type sumVisitor struct {
	total int64
}

func (v *sumVisitor) visit(c Column[int64]) {
	values, nulls := c.Materialize()
	for i, value := range values {
		if nulls == nil || !nulls[i] {
			v.total += value
		}
	}
}

func (v *sumVisitor) VisitValueColumn(c *ValueColumn[int64], ctx any)           { v.visit(c) }
func (v *sumVisitor) VisitDictionaryColumn(c *DictionaryColumn[int64], ctx any) { v.visit(c) }
func (v *sumVisitor) VisitRunLengthColumn(c *RunLengthColumn[int64], ctx any)   { v.visit(c) }
func (v *sumVisitor) VisitReferenceColumn(c *ReferenceColumn[int64], ctx any)   { v.visit(c) }

func TestVisitor_GenericFallbackSeesSameData(t *testing.T) {
	vc := NewValueColumn[int64](true)
	require.NoError(t, vc.Append(10, false))
	require.NoError(t, vc.Append(0, true))
	require.NoError(t, vc.Append(10, false))
	require.NoError(t, vc.Append(5, false))

	dict, err := EncodeDictionary(vc)
	require.NoError(t, err)
	rle, err := EncodeRunLength(vc)
	require.NoError(t, err)

	for _, c := range []Column[int64]{vc, dict, rle} {
		visitor := &sumVisitor{}
		c.Accept(visitor, nil)
		require.Equal(t, int64(25), visitor.total, "%s column", c.EncodingType())
	}
}

func TestScalarTypeOf(t *testing.T) {
	require.Equal(t, format.ScalarInt64, ScalarTypeOf[int64]())
	require.Equal(t, format.ScalarFloat64, ScalarTypeOf[float64]())
	require.Equal(t, format.ScalarString, ScalarTypeOf[string]())
}
