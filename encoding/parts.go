package encoding

import (
	"fmt"

	"github.com/EvilMcJerkface/hyrise/endian"
	"github.com/EvilMcJerkface/hyrise/errs"
	"github.com/EvilMcJerkface/hyrise/format"
)

// The constructors in this file rebuild vectors from their raw parts, as a
// snapshot reader does. The in-memory layouts are the de facto binary
// contract: a rebuilt vector is bit-for-bit identical to the original.

// Bytes returns the packed element bytes of a fixed-size vector. The
// returned slice is the vector's backing storage and must not be modified.
func (v *FixedSizeVector) Bytes() []byte {
	return v.data
}

// NewFixedSizeVectorFromBytes rebuilds a fixed-size vector from its packed
// element bytes. The data length must equal count times the element width.
// The data slice is not copied; the caller hands over ownership.
func NewFixedSizeVectorFromBytes(data []byte, vectorType format.VectorType, engine endian.EndianEngine, count int) (*FixedSizeVector, error) {
	width := fixedWidth(vectorType)
	if width == 0 {
		return nil, fmt.Errorf("%w: %s is not fixed-size", errs.ErrInvalidVectorType, vectorType)
	}
	if len(data) != count*width {
		return nil, fmt.Errorf("%w: %d bytes cannot hold %d elements of width %d",
			errs.ErrCorruptedPayload, len(data), count, width)
	}

	return &FixedSizeVector{
		data:       data,
		engine:     engine,
		vectorType: vectorType,
		width:      width,
		count:      count,
	}, nil
}

// NewBitPackedFromParts rebuilds a bit-packed vector from its data words,
// per-block widths and logical size. The slices are not copied; the caller
// hands over ownership.
func NewBitPackedFromParts(words []uint64, widths []uint8, size int) (*BitPackedVector, error) {
	wantBlocks := (size + BlockSize - 1) / BlockSize
	if len(widths) != wantBlocks {
		return nil, fmt.Errorf("%w: %d block widths for %d elements", errs.ErrCorruptedPayload, len(widths), size)
	}

	offsets := make([]uint32, len(widths))
	wordPos := 0
	for i, width := range widths {
		if width > maxPackedWidth {
			return nil, fmt.Errorf("%w: block %d width %d exceeds 32", errs.ErrCorruptedPayload, i, width)
		}
		offsets[i] = uint32(wordPos)
		wordPos += wordsForWidth(width)
	}
	if wordPos != len(words) {
		return nil, fmt.Errorf("%w: widths require %d data words, payload has %d", errs.ErrCorruptedPayload, wordPos, len(words))
	}

	return &BitPackedVector{
		words:   words,
		widths:  widths,
		offsets: offsets,
		size:    size,
	}, nil
}
