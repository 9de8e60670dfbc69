package encoding

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/EvilMcJerkface/hyrise/format"
)

// generateConfined returns n values confined to [minVal, maxVal], with both
// bounds guaranteed to occur so the packed width is exercised exactly.
func generateConfined(t *testing.T, n int, minVal, maxVal uint32, seed int64) []uint32 {
	t.Helper()

	rng := rand.New(rand.NewSource(seed))
	values := make([]uint32, n)
	for i := range values {
		values[i] = minVal + uint32(rng.Int63n(int64(maxVal-minVal)+1))
	}
	values[0] = minVal
	values[n-1] = maxVal

	return values
}

func TestEncodeBitPacked_Empty(t *testing.T) {
	vec := EncodeBitPacked(nil)

	require.Equal(t, 0, vec.Size())
	require.Equal(t, 0, vec.BlockCount())
	require.Empty(t, vec.Decode())

	decoder := vec.CreateDecoder()
	_, ok := decoder.Get(0)
	require.False(t, ok)
}

func TestEncodeBitPacked_AllZerosPacksAtZeroBits(t *testing.T) {
	values := make([]uint32, BlockSize)
	vec := EncodeBitPacked(values)

	require.Equal(t, 1, vec.BlockCount())
	require.Equal(t, uint8(0), vec.BlockWidths()[0])
	require.Equal(t, 0, vec.DataSize(), "a zero-width block occupies no data words")
	require.Equal(t, values, vec.Decode())
}

func TestEncodeBitPacked_WidthIsMinimal(t *testing.T) {
	tests := []struct {
		name      string
		maxValue  uint32
		wantWidth uint8
	}{
		{"one bit", 1, 1},
		{"seven bits", 127, 7},
		{"eight bits", 255, 8},
		{"seventeen bits plus one", 1 << 17, 18},
		{"full width", 1<<32 - 1, 32},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := make([]uint32, BlockSize)
			values[BlockSize/2] = tt.maxValue

			vec := EncodeBitPacked(values)
			require.Equal(t, tt.wantWidth, vec.BlockWidths()[0])
			require.Equal(t, values, vec.Decode())
		})
	}
}

func TestEncodeBitPacked_PartialFinalBlock(t *testing.T) {
	values := generateConfined(t, BlockSize+33, 10, 1000, 1)

	vec := EncodeBitPacked(values)
	require.Equal(t, 2, vec.BlockCount())
	require.Equal(t, len(values), vec.Size())
	require.Equal(t, values, vec.Decode())
}

func TestEncodeBitPacked_BlocksPackIndependently(t *testing.T) {
	// First block stays narrow, second block needs the full width; the
	// narrow block must not pay for the wide one.
	values := make([]uint32, 2*BlockSize)
	for i := range BlockSize {
		values[i] = uint32(i % 4)
	}
	for i := BlockSize; i < 2*BlockSize; i++ {
		values[i] = 1<<31 + uint32(i)
	}

	vec := EncodeBitPacked(values)
	require.Equal(t, uint8(2), vec.BlockWidths()[0])
	require.Equal(t, uint8(32), vec.BlockWidths()[1])
	require.Equal(t, values, vec.Decode())
}

func TestBitPacked_RoundTripConfinedSequences(t *testing.T) {
	// Mirrors the classic codec test: 4200 generated values confined to
	// [min,max] for every bit width, reproduced exactly via both the
	// iterator path and the random-access path.
	const n = 4200

	for width := 1; width <= 32; width++ {
		minVal := uint32(0)
		maxVal := uint32(1)<<uint(width) - 1
		if width > 1 {
			minVal = uint32(1) << uint(width-1)
		}

		values := generateConfined(t, n, minVal, maxVal, int64(width))
		vec := EncodeBitPacked(values)

		require.Equal(t, n, vec.Size())
		require.Equal(t, values, vec.Decode(), "width %d", width)

		// Iterator path.
		decoder := vec.CreateDecoder()
		i := 0
		for v := range decoder.All() {
			require.Equal(t, values[i], v, "width %d position %d", width, i)
			i++
		}
		require.Equal(t, n, i)

		// Random-access path.
		for _, pos := range []int{0, 1, BlockSize - 1, BlockSize, n / 2, n - 1} {
			v, ok := decoder.Get(pos)
			require.True(t, ok)
			require.Equal(t, values[pos], v, "width %d position %d", width, pos)
		}
	}
}

func TestBitPackedDecoder_GetMatchesSequentialDecode(t *testing.T) {
	values := generateConfined(t, 1000, 3, 99999, 42)

	vec := EncodeBitPacked(values)
	decoded := vec.Decode()
	decoder := vec.CreateDecoder()

	for pos := range values {
		v, ok := decoder.Get(pos)
		require.True(t, ok)
		require.Equal(t, decoded[pos], v)
	}
}

func TestBitPackedDecoder_GetOutOfBounds(t *testing.T) {
	vec := EncodeBitPacked([]uint32{1, 2, 3})
	decoder := vec.CreateDecoder()

	_, ok := decoder.Get(-1)
	require.False(t, ok)
	_, ok = decoder.Get(3)
	require.False(t, ok)
}

func TestBitPackedDecoder_AllIsRestartable(t *testing.T) {
	values := generateConfined(t, 300, 0, 500, 7)
	decoder := EncodeBitPacked(values).CreateDecoder()

	for range 2 {
		collected := make([]uint32, 0, len(values))
		for v := range decoder.All() {
			collected = append(collected, v)
		}
		require.Equal(t, values, collected)
	}
}

func TestBitPackedDecoder_AllEarlyBreak(t *testing.T) {
	values := generateConfined(t, 400, 1, 100, 11)
	decoder := EncodeBitPacked(values).CreateDecoder()

	count := 0
	for range decoder.All() {
		count++
		if count == 150 {
			break
		}
	}
	require.Equal(t, 150, count)
}

func TestBitPackedVector_Clone(t *testing.T) {
	values := generateConfined(t, 500, 0, 1<<20, 3)
	vec := EncodeBitPacked(values)

	clone := vec.Clone()
	require.Equal(t, format.VectorBitPacked128, clone.Type())
	require.Equal(t, vec.Size(), clone.Size())
	require.Equal(t, values, clone.Decode())

	// The copy must not alias the source buffers.
	cloned := clone.(*BitPackedVector)
	cloned.words[0] ^= 0xffffffff
	require.Equal(t, values, vec.Decode(), "mutating the clone must not affect the source")
}

func BenchmarkBitPackedDecode(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	values := make([]uint32, 64*1024)
	for i := range values {
		values[i] = uint32(rng.Intn(1 << 12))
	}
	vec := EncodeBitPacked(values)

	b.ResetTimer()
	for range b.N {
		_ = vec.Decode()
	}
}

func BenchmarkBitPackedDecoderGet(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	values := make([]uint32, 64*1024)
	for i := range values {
		values[i] = uint32(rng.Intn(1 << 12))
	}
	decoder := EncodeBitPacked(values).CreateDecoder()

	b.ResetTimer()
	for i := range b.N {
		_, _ = decoder.Get(i % len(values))
	}
}
