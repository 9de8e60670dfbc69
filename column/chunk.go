package column

import (
	"fmt"
	"sync"

	"github.com/EvilMcJerkface/hyrise/format"
)

// EncodeColumn encodes one value column with the requested encoding.
// format.EncodingUnencoded returns a deep copy of the input, so the result
// is always independently owned.
func EncodeColumn[T Scalar](valueColumn *ValueColumn[T], encodingType format.EncodingType, opts ...DictionaryEncoderOption) (Column[T], error) {
	switch encodingType {
	case format.EncodingUnencoded:
		return valueColumn.Clone(), nil
	case format.EncodingDictionary:
		return EncodeDictionary(valueColumn, opts...)
	case format.EncodingRunLength:
		return EncodeRunLength(valueColumn)
	default:
		return nil, fmt.Errorf("cannot encode into %s column", encodingType)
	}
}

// EncodeColumns encodes a set of independent columns concurrently, one
// worker per column.
//
// Encoding is CPU-bound with no shared mutable state across columns, so the
// workers run fully parallel. Results are collected into a slice indexed
// like the input and handed back only after every worker has finished: the
// returning call is the single synchronized handoff, after which all
// encoded columns are immutable and safe for unsynchronized concurrent
// reads.
//
// If any column fails to encode, the first error (by input order) is
// returned and no columns are handed back; a failed construction never
// publishes a partially built column.
func EncodeColumns[T Scalar](valueColumns []*ValueColumn[T], encodingType format.EncodingType, opts ...DictionaryEncoderOption) ([]Column[T], error) {
	results := make([]Column[T], len(valueColumns))
	errors := make([]error, len(valueColumns))

	var wg sync.WaitGroup
	for i, vc := range valueColumns {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errors[i] = EncodeColumn(vc, encodingType, opts...)
		}()
	}
	wg.Wait()

	for i, err := range errors {
		if err != nil {
			return nil, fmt.Errorf("encode column %d: %w", i, err)
		}
	}

	return results, nil
}
