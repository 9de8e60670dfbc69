package encoding

import "math/bits"

// BlockSize is the number of logical values per bit-packed block.
const BlockSize = 128

// maxPackedWidth is the widest possible block: 32 bits per value.
const maxPackedWidth = 32

// blockWidth computes the minimum bit width that represents every value of
// a block. A block of all zeros packs at width 0 and occupies no data words.
func blockWidth(values []uint32) uint8 {
	var maxVal uint32
	for _, v := range values {
		if v > maxVal {
			maxVal = v
		}
	}

	return uint8(bits.Len32(maxVal))
}

// wordsForWidth returns the number of 64-bit data words a full block
// occupies at the given width.
func wordsForWidth(width uint8) int {
	return (BlockSize*int(width) + 63) / 64
}

// packBlock packs up to BlockSize values at the given width into out,
// which must hold wordsForWidth(width) zeroed words.
//
// Values are laid out LSB-first in a little-endian word stream: value i
// occupies bits [i*width, (i+1)*width). A partial final block is packed as
// if zero-padded to BlockSize; the padding bits stay zero.
func packBlock(values []uint32, width uint8, out []uint64) {
	if width == 0 {
		return
	}

	w := int(width)
	bitPos := 0
	for _, v := range values {
		wordIdx := bitPos >> 6
		bitOff := bitPos & 63

		out[wordIdx] |= uint64(v) << uint(bitOff)
		if bitOff+w > 64 {
			// Value straddles the word boundary.
			out[wordIdx+1] |= uint64(v) >> uint(64-bitOff)
		}

		bitPos += w
	}
}

// unpackBlock unpacks one block of BlockSize values from words into out.
// Padding positions of a partial final block decode as zero; the caller
// truncates to the logical count.
func unpackBlock(words []uint64, width uint8, out *[BlockSize]uint32) {
	if width == 0 {
		clear(out[:])
		return
	}

	w := int(width)
	mask := uint64(1)<<uint(w) - 1

	bitPos := 0
	for i := range out {
		wordIdx := bitPos >> 6
		bitOff := bitPos & 63

		v := words[wordIdx] >> uint(bitOff)
		if bitOff+w > 64 {
			v |= words[wordIdx+1] << uint(64-bitOff)
		}

		out[i] = uint32(v & mask)
		bitPos += w
	}
}
