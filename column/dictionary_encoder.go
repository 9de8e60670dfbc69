package column

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/EvilMcJerkface/hyrise/encoding"
	"github.com/EvilMcJerkface/hyrise/endian"
	"github.com/EvilMcJerkface/hyrise/errs"
	"github.com/EvilMcJerkface/hyrise/format"
	"github.com/EvilMcJerkface/hyrise/internal/options"
	"github.com/EvilMcJerkface/hyrise/internal/pool"
)

// DictionaryEncoderConfig controls how the ID stream of a dictionary column
// is stored. The dictionary itself always has the same layout: sorted,
// deduplicated, exact-size.
type DictionaryEncoderConfig struct {
	engine     endian.EndianEngine
	vectorType format.VectorType
	autoSelect bool
}

// DictionaryEncoderOption is a functional option for DictionaryEncoderConfig.
type DictionaryEncoderOption = options.Option[*DictionaryEncoderConfig]

func newDictionaryEncoderConfig(opts ...DictionaryEncoderOption) (*DictionaryEncoderConfig, error) {
	cfg := &DictionaryEncoderConfig{
		engine:     endian.GetLittleEndianEngine(),
		autoSelect: true,
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithEndianEngine sets the byte order of the fixed-size ID stream layouts.
// Little endian is the default.
func WithEndianEngine(engine endian.EndianEngine) DictionaryEncoderOption {
	return options.New(func(cfg *DictionaryEncoderConfig) error {
		if engine == nil {
			return fmt.Errorf("endian engine must not be nil")
		}
		cfg.engine = engine

		return nil
	})
}

// WithVectorType forces a specific zero-suppression codec for the ID stream
// instead of the automatic fixed-size selection. Forcing a fixed-size codec
// narrower than the ID domain fails the encode with ErrCardinalityOverflow.
func WithVectorType(vectorType format.VectorType) DictionaryEncoderOption {
	return options.New(func(cfg *DictionaryEncoderConfig) error {
		switch vectorType {
		case format.VectorFixed1ByteAligned, format.VectorFixed2ByteAligned,
			format.VectorFixed4ByteAligned, format.VectorBitPacked128:
			cfg.vectorType = vectorType
			cfg.autoSelect = false

			return nil
		default:
			return fmt.Errorf("%w: %s", errs.ErrInvalidVectorType, vectorType)
		}
	})
}

// WithBitPackedVector stores the ID stream with the adaptive 128-value
// bit-packing codec, the densest choice for larger or skewed ID domains.
func WithBitPackedVector() DictionaryEncoderOption {
	return WithVectorType(format.VectorBitPacked128)
}

// EncodeDictionary builds a dictionary column from a complete value column.
//
// The algorithm follows the classic sorted-dictionary construction:
//
//  1. Copy the input into a working buffer. For a nullable input, partition
//     the null-marked entries to the tail with a two-pointer swap scan and
//     drop the tail.
//  2. Sort ascending under the cmp total order, remove adjacent duplicates,
//     shrink to exact size. This is the dictionary. The total order makes
//     all float64 NaNs compare equal (and smallest), so a NaN input yields
//     at most one NaN dictionary entry at rank 0 rather than one per row.
//  3. Assign each row, in original order, its dictionary rank as ID; null
//     rows get the sentinel ID, which equals the dictionary size.
//  4. Choose the zero-suppression codec from the maximum representable ID
//     (the sentinel, so dictionary size accounting for null) and encode the
//     ID stream with it.
//
// Encoding is deterministic: identical input always produces an identical
// dictionary, ID stream and fingerprint. More than 2^32-1 distinct values
// cannot be represented and fail the construction with
// ErrCardinalityOverflow; nothing partially built is ever published.
func EncodeDictionary[T Scalar](valueColumn *ValueColumn[T], opts ...DictionaryEncoderOption) (*DictionaryColumn[T], error) {
	cfg, err := newDictionaryEncoderConfig(opts...)
	if err != nil {
		return nil, err
	}

	values := valueColumn.Values()
	nulls := valueColumn.NullMask()
	nullable := valueColumn.IsNullable()

	work, releaseWork := scratchSlice[T](len(values))
	defer releaseWork()
	copy(work, values)

	if nullable {
		// Swap null entries to the tail, back to front, then drop them.
		// Avoids the O(n) shifting of repeated deletes.
		end := len(work)
		for i := len(work) - 1; i >= 0; i-- {
			if nulls[i] {
				end--
				work[i], work[end] = work[end], work[i]
			}
		}
		work = work[:end]
	}

	// Plain Sort/Compact would leave duplicate NaN entries (NaN != NaN);
	// the cmp total order deduplicates them like any other value.
	slices.SortFunc(work, cmp.Compare)
	work = slices.CompactFunc(work, func(a, b T) bool { return cmp.Compare(a, b) == 0 })

	// Shrink to fit: the dictionary owns an exact-size buffer independent
	// of the oversized working allocation.
	dictionary := make([]T, len(work))
	copy(dictionary, work)

	if uint64(len(dictionary)) >= math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d distinct values plus null sentinel", errs.ErrCardinalityOverflow, len(dictionary))
	}
	nullValueID := ValueID(len(dictionary))

	ids, cleanup := pool.GetUint32Slice(len(values))
	defer cleanup()

	for i, v := range values {
		if nullable && nulls[i] {
			ids[i] = nullValueID
			continue
		}

		rank, _ := slices.BinarySearchFunc(dictionary, v, cmp.Compare)
		ids[i] = uint32(rank)
	}

	vectorType := cfg.vectorType
	if cfg.autoSelect {
		// The maximum representable ID is the null sentinel, i.e. the
		// dictionary size. Selecting from the size alone, without the
		// sentinel, silently corrupts IDs at the 255/65535 boundaries.
		vectorType = encoding.SelectVectorType(nullValueID)
	}

	attributeVector, err := encoding.EncodeVector(ids, vectorType, cfg.engine)
	if err != nil {
		return nil, fmt.Errorf("encode attribute vector: %w", err)
	}

	return newDictionaryColumn(dictionary, attributeVector, nullValueID), nil
}
