package encoding

import (
	"iter"

	"github.com/EvilMcJerkface/hyrise/format"
)

// BitPackedVector is the adaptive block-wise zero-suppression codec.
//
// The input is processed in blocks of 128 unsigned 32-bit values. Each block
// is packed at the minimum bit width b ∈ [0,32] that represents the block's
// maximum value; b is recorded per block, so a decoder knows both how many
// data words the block occupies and how to unpack it. The final block, if
// partial, is zero-padded for packing while the vector reports only the true
// logical length.
//
// This is the densest variant and the general default for larger or skewed
// ID domains: a block of small IDs costs only a few bits per element even
// when another block of the same stream needs the full 32.
type BitPackedVector struct {
	words   []uint64 // packed data words of all blocks, concatenated
	widths  []uint8  // bit width of each block
	offsets []uint32 // word offset of each block within words
	size    int      // logical element count
}

var _ Vector = (*BitPackedVector)(nil)

// EncodeBitPacked packs values into a BitPackedVector.
//
// Values are unsigned and bounded to 32 bits by the element type, so the
// construction cannot fail: every block width lands in [0,32] by
// construction. The input slice is not retained.
func EncodeBitPacked(values []uint32) *BitPackedVector {
	blockCount := (len(values) + BlockSize - 1) / BlockSize

	vec := &BitPackedVector{
		widths:  make([]uint8, 0, blockCount),
		offsets: make([]uint32, 0, blockCount),
		size:    len(values),
	}

	totalWords := 0
	for start := 0; start < len(values); start += BlockSize {
		end := min(start+BlockSize, len(values))
		totalWords += wordsForWidth(blockWidth(values[start:end]))
	}
	vec.words = make([]uint64, totalWords)

	wordPos := 0
	for start := 0; start < len(values); start += BlockSize {
		end := min(start+BlockSize, len(values))
		block := values[start:end]

		width := blockWidth(block)
		words := wordsForWidth(width)

		packBlock(block, width, vec.words[wordPos:wordPos+words])

		vec.widths = append(vec.widths, width)
		vec.offsets = append(vec.offsets, uint32(wordPos))
		wordPos += words
	}

	return vec
}

// Type returns format.VectorBitPacked128.
func (v *BitPackedVector) Type() format.VectorType {
	return format.VectorBitPacked128
}

// Size returns the logical number of elements.
func (v *BitPackedVector) Size() int {
	return v.size
}

// DataSize returns the number of bytes occupied by the packed data words.
func (v *BitPackedVector) DataSize() int {
	return len(v.words) * 8
}

// BlockCount returns the number of 128-value blocks, including a final
// partial block.
func (v *BitPackedVector) BlockCount() int {
	return len(v.widths)
}

// BlockWidths returns the per-block bit widths. The returned slice is the
// vector's own metadata and must not be modified.
func (v *BitPackedVector) BlockWidths() []uint8 {
	return v.widths
}

// Words returns the packed data words. The returned slice is the vector's
// backing storage and must not be modified.
func (v *BitPackedVector) Words() []uint64 {
	return v.words
}

// Decode materializes the full sequence one block at a time into a freshly
// allocated slice of exactly Size() elements.
func (v *BitPackedVector) Decode() []uint32 {
	out := make([]uint32, v.size)

	var block [BlockSize]uint32
	for b := range v.widths {
		v.unpack(b, &block)

		start := b * BlockSize
		copy(out[start:], block[:min(BlockSize, v.size-start)])
	}

	return out
}

// CreateDecoder returns a stateful decoder that caches the most recently
// unpacked block, so clustered and sequential Get probes unpack each block
// once.
func (v *BitPackedVector) CreateDecoder() VectorDecoder {
	return &BitPackedDecoder{vec: v, cachedBlock: -1}
}

// Clone returns a deep copy that shares no storage with the receiver.
func (v *BitPackedVector) Clone() Vector {
	clone := &BitPackedVector{
		words:   make([]uint64, len(v.words)),
		widths:  make([]uint8, len(v.widths)),
		offsets: make([]uint32, len(v.offsets)),
		size:    v.size,
	}
	copy(clone.words, v.words)
	copy(clone.widths, v.widths)
	copy(clone.offsets, v.offsets)

	return clone
}

func (v *BitPackedVector) unpack(block int, out *[BlockSize]uint32) {
	width := v.widths[block]
	offset := int(v.offsets[block])

	unpackBlock(v.words[offset:offset+wordsForWidth(width)], width, out)
}

// BitPackedDecoder provides random access and forward iteration over a
// BitPackedVector.
//
// Get unpacks only the 128-value block containing the requested position and
// returns the single element, trading a bounded amount of redundant
// unpacking for avoiding full materialization. The last unpacked block is
// cached, which makes repeated probes into the same block O(1) after the
// first. The decoder is single-goroutine state; create one per worker.
type BitPackedDecoder struct {
	vec         *BitPackedVector
	cachedBlock int
	buf         [BlockSize]uint32
}

var _ VectorDecoder = (*BitPackedDecoder)(nil)

// Get returns the element at index, or false when index is out of bounds.
func (d *BitPackedDecoder) Get(index int) (uint32, bool) {
	if index < 0 || index >= d.vec.size {
		return 0, false
	}

	block := index / BlockSize
	if block != d.cachedBlock {
		d.vec.unpack(block, &d.buf)
		d.cachedBlock = block
	}

	return d.buf[index%BlockSize], true
}

// All returns a forward iterator over every element in order.
//
// The iterator materializes one block at a time and re-fetches the next
// block only after the current one is exhausted. The sequence is finite and
// restartable; it does not disturb the Get cache.
func (d *BitPackedDecoder) All() iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		var block [BlockSize]uint32

		remaining := d.vec.size
		for b := range d.vec.widths {
			d.vec.unpack(b, &block)

			n := min(BlockSize, remaining)
			for _, v := range block[:n] {
				if !yield(v) {
					return
				}
			}
			remaining -= n
		}
	}
}
