package encoding

import (
	"fmt"
	"iter"
	"math"

	"github.com/EvilMcJerkface/hyrise/endian"
	"github.com/EvilMcJerkface/hyrise/errs"
	"github.com/EvilMcJerkface/hyrise/format"
)

// Vector is the uniform contract over all zero-suppression codecs.
//
// A Vector is an immutable ordered sequence of unsigned 32-bit values.
// The decoded length always equals the original input length, including a
// final partial block for the bit-packed variant.
type Vector interface {
	// Type returns the concrete codec of this vector.
	Type() format.VectorType

	// Size returns the logical number of elements.
	Size() int

	// DataSize returns the number of bytes of packed storage, excluding
	// per-block width metadata.
	DataSize() int

	// Decode materializes the full sequence into a freshly allocated slice.
	// The returned slice is owned by the caller.
	Decode() []uint32

	// CreateDecoder returns a stateful decoder for random access and
	// forward iteration. The decoder must not be shared between goroutines.
	CreateDecoder() VectorDecoder

	// Clone returns a structurally identical, fully independent copy.
	// The copy never aliases the source's backing buffers.
	Clone() Vector
}

// VectorDecoder provides positional and sequential access to a Vector.
//
// Get returns the element at the given index, or false when the index is out
// of bounds. All yields every element in order; the sequence is finite and
// restartable (each range statement starts from the beginning).
type VectorDecoder interface {
	Get(index int) (uint32, bool)
	All() iter.Seq[uint32]
}

// SelectVectorType selects the fixed-size byte-aligned codec for a domain
// whose largest representable value is maxValue.
//
// The selection is a pure function of maxValue: values up to 255 fit in one
// byte per element, up to 65535 in two bytes, anything else in four. Callers
// encoding a dictionary ID stream must pass the null sentinel ID (the
// dictionary size) so that it remains representable.
func SelectVectorType(maxValue uint32) format.VectorType {
	switch {
	case maxValue <= math.MaxUint8:
		return format.VectorFixed1ByteAligned
	case maxValue <= math.MaxUint16:
		return format.VectorFixed2ByteAligned
	default:
		return format.VectorFixed4ByteAligned
	}
}

// EncodeVector encodes values with the requested codec.
//
// For the fixed-size codecs, every value must fit the element width;
// a value out of range fails the construction with ErrCardinalityOverflow.
// The bit-packed codec represents any uint32 and never fails.
//
// The returned vector owns its backing buffers; the input slice is not
// retained and may be reused by the caller.
func EncodeVector(values []uint32, vectorType format.VectorType, engine endian.EndianEngine) (Vector, error) {
	switch vectorType {
	case format.VectorFixed1ByteAligned, format.VectorFixed2ByteAligned, format.VectorFixed4ByteAligned:
		return encodeFixedSizeVector(values, vectorType, engine)
	case format.VectorBitPacked128:
		return EncodeBitPacked(values), nil
	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidVectorType, vectorType)
	}
}

// MaxValue returns the largest element of values, or 0 for an empty slice.
func MaxValue(values []uint32) uint32 {
	var maxVal uint32
	for _, v := range values {
		if v > maxVal {
			maxVal = v
		}
	}

	return maxVal
}
