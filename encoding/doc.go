// Package encoding implements the zero-suppression vectors that back the
// column encodings.
//
// A zero-suppression vector stores an immutable sequence of unsigned 32-bit
// IDs in less than 4 bytes per element. Two families are provided:
//
//   - Fixed-size byte-aligned vectors (1, 2 or 4 bytes per element), chosen
//     for small ID domains or as a simple fallback. Random access is a single
//     aligned load.
//   - The adaptive bit-packed vector, which processes the sequence in blocks
//     of 128 values and packs each block at the minimum bit width that
//     represents the block's maximum value. This is the densest variant and
//     the general default for larger or skewed domains.
//
// Codec selection is a pure function of the maximum value to be represented,
// never of sequence length; callers compute that maximum (for a dictionary
// ID stream, the null sentinel ID, which equals the dictionary size) before
// choosing a codec. See SelectVectorType and EncodeVector.
//
// Every vector supports full materialization via Decode, and random access
// plus forward iteration through a stateful decoder created by
// CreateDecoder. Vectors are immutable after construction and safe for
// unsynchronized concurrent reads; each decoder is single-goroutine state.
package encoding
