package column

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/EvilMcJerkface/hyrise/errs"
	"github.com/EvilMcJerkface/hyrise/format"
)

func TestEncodeRunLength_RunTable(t *testing.T) {
	vc := NewValueColumnFromSlice([]int64{5, 5, 5, 7, 7, 9})

	rle, err := EncodeRunLength(vc)
	require.NoError(t, err)

	require.Equal(t, []int64{5, 7, 9}, rle.Values())
	require.Equal(t, []uint32{2, 4, 5}, rle.EndPositions())
	require.Equal(t, 3, rle.RunCount())
	require.Equal(t, 6, rle.Size())
	require.Equal(t, format.EncodingRunLength, rle.EncodingType())
}

func TestEncodeRunLength_SingleRun(t *testing.T) {
	vc := NewValueColumnFromSlice([]string{"x", "x", "x", "x"})

	rle, err := EncodeRunLength(vc)
	require.NoError(t, err)

	require.Equal(t, 1, rle.RunCount())
	require.Equal(t, []uint32{3}, rle.EndPositions())
}

func TestEncodeRunLength_Nulls(t *testing.T) {
	vc := NewValueColumn[int64](true)
	require.NoError(t, vc.Append(5, false))
	require.NoError(t, vc.Append(5, false))
	require.NoError(t, vc.Append(0, true))
	require.NoError(t, vc.Append(0, true))
	require.NoError(t, vc.Append(5, false))

	rle, err := EncodeRunLength(vc)
	require.NoError(t, err)

	// A null run breaks a value run even when the stored values match.
	require.Equal(t, 3, rle.RunCount())
	require.True(t, rle.IsNullable())

	wantValues, wantNulls := vc.Materialize()
	gotValues, gotNulls := rle.Materialize()
	require.Equal(t, wantNulls, gotNulls)
	for i := range wantValues {
		if !wantNulls[i] {
			require.Equal(t, wantValues[i], gotValues[i])
		}
	}

	_, ok := rle.ValueAt(2)
	require.False(t, ok)
	v, ok := rle.ValueAt(4)
	require.True(t, ok)
	require.Equal(t, int64(5), v)
}

func TestEncodeRunLength_FloatNaNSentinel(t *testing.T) {
	vc := NewValueColumn[float64](true)
	require.NoError(t, vc.Append(1.5, false))
	require.NoError(t, vc.Append(0, true))
	require.NoError(t, vc.Append(0, true))
	require.NoError(t, vc.Append(2.5, false))

	rle, err := EncodeRunLength(vc)
	require.NoError(t, err)

	// The NaN sentinel compares bit-wise, so consecutive nulls form one run.
	require.Equal(t, 3, rle.RunCount())
	require.True(t, math.IsNaN(rle.NullValue()))

	_, ok := rle.ValueAt(1)
	require.False(t, ok)
	_, ok = rle.ValueAt(2)
	require.False(t, ok)
}

func TestEncodeRunLength_SentinelCollision(t *testing.T) {
	vc := NewValueColumn[int64](true)
	require.NoError(t, vc.Append(math.MinInt64, false))

	_, err := EncodeRunLength(vc)
	require.ErrorIs(t, err, errs.ErrSentinelCollision)
}

func TestEncodeRunLength_SentinelOverride(t *testing.T) {
	vc := NewValueColumn[int64](true)
	require.NoError(t, vc.Append(math.MinInt64, false))
	require.NoError(t, vc.Append(0, true))

	rle, err := EncodeRunLength(vc, WithNullSentinel[int64](-1))
	require.NoError(t, err)
	require.Equal(t, int64(-1), rle.NullValue())

	v, ok := rle.ValueAt(0)
	require.True(t, ok)
	require.Equal(t, int64(math.MinInt64), v)
	_, ok = rle.ValueAt(1)
	require.False(t, ok)
}

func TestEncodeRunLength_SentinelOverrideCollision(t *testing.T) {
	vc := NewValueColumn[int64](true)
	require.NoError(t, vc.Append(-1, false))

	_, err := EncodeRunLength(vc, WithNullSentinel[int64](-1))
	require.ErrorIs(t, err, errs.ErrSentinelCollision)
}

func TestEncodeRunLength_NonNullableSkipsValidation(t *testing.T) {
	// On a non-nullable column the sentinel carries no meaning, so even
	// values equal to it encode fine.
	vc := NewValueColumnFromSlice([]int64{math.MinInt64, math.MinInt64, 3})

	rle, err := EncodeRunLength(vc)
	require.NoError(t, err)
	require.False(t, rle.IsNullable())
	require.Equal(t, 2, rle.RunCount())

	v, ok := rle.ValueAt(0)
	require.True(t, ok)
	require.Equal(t, int64(math.MinInt64), v)
}

func TestRunLengthColumn_ValueAtMatchesMaterialize(t *testing.T) {
	vc := NewValueColumn[string](true)
	words := []string{"aa", "aa", "bb", "bb", "bb", "cc"}
	for i, w := range words {
		require.NoError(t, vc.Append(w, i == 3))
	}

	rle, err := EncodeRunLength(vc)
	require.NoError(t, err)

	values, nulls := rle.Materialize()
	for pos := range rle.Size() {
		v, ok := rle.ValueAt(pos)
		require.Equal(t, !nulls[pos], ok, "row %d", pos)
		if ok {
			require.Equal(t, values[pos], v, "row %d", pos)
		}
	}
}

func TestRunLengthColumn_Immutable(t *testing.T) {
	rle, err := EncodeRunLength(NewValueColumnFromSlice([]int64{1, 1}))
	require.NoError(t, err)

	require.ErrorIs(t, rle.Append(2, false), errs.ErrImmutableColumn)
}

func TestRunLengthColumn_CloneIndependent(t *testing.T) {
	rle, err := EncodeRunLength(NewValueColumnFromSlice([]int64{4, 4, 6}))
	require.NoError(t, err)

	clone := rle.Clone().(*RunLengthColumn[int64])
	rle.values[0] = -99
	rle.endPositions[0] = 0

	require.Equal(t, int64(4), clone.values[0])
	require.Equal(t, uint32(1), clone.endPositions[0])
}

func TestRunLengthColumn_Empty(t *testing.T) {
	rle, err := EncodeRunLength(NewValueColumn[int64](false))
	require.NoError(t, err)

	require.Equal(t, 0, rle.Size())
	require.Equal(t, 0, rle.RunCount())

	values, nulls := rle.Materialize()
	require.Empty(t, values)
	require.Nil(t, nulls)
}

func TestNewRunLengthColumnFromParts_Validation(t *testing.T) {
	t.Run("length mismatch", func(t *testing.T) {
		_, err := NewRunLengthColumnFromParts([]int64{1, 2}, []uint32{0}, 0, false)
		require.ErrorIs(t, err, errs.ErrCorruptedPayload)
	})

	t.Run("non-increasing end positions", func(t *testing.T) {
		_, err := NewRunLengthColumnFromParts([]int64{1, 2}, []uint32{3, 3}, 0, false)
		require.ErrorIs(t, err, errs.ErrCorruptedPayload)
	})
}
