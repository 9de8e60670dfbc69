// Package hyrise provides columnar compression for in-memory column stores.
//
// It encodes complete, immutable columns of a single scalar kind (int64,
// float64 or string) into compact representations: sorted-dictionary
// encoding with zero-suppressed attribute vectors, run-length encoding, and
// position-list reference columns. Every encoded form answers the same read
// interface as the plain column it replaces, so operators work against any
// encoding.
//
// # Core Features
//
//   - Dictionary encoding: sorted, deduplicated dictionary plus a per-row
//     ID stream, with LowerBound/UpperBound for predicate-to-ID-range
//     rewrites and xxHash64 dictionary fingerprints
//   - Zero suppression for the ID stream: fixed 1/2/4-byte layouts or
//     adaptive 128-value block bit-packing
//   - Run-length encoding with validated null sentinels
//   - Closed visitor dispatch over the column kinds
//   - Concurrent chunk encoding, one worker per column
//   - Snapshot envelopes with optional compression (Zstd, S2, LZ4) and
//     xxHash64 checksums for moving columns between processes
//
// # Basic Usage
//
// Building and encoding a column:
//
//	import "github.com/EvilMcJerkface/hyrise"
//
//	vc := hyrise.NewValueColumn[string](true)
//	vc.Append("open", false)
//	vc.Append("", true)
//	vc.Append("closed", false)
//
//	dict, _ := hyrise.Encode(vc, format.EncodingDictionary)
//
//	// Reads work against any encoding.
//	value, ok := dict.ValueAt(0) // "open", true
//	_, ok = dict.ValueAt(1)      // null: ok == false
//
// Picking an encoding from data statistics:
//
//	suggestion, stats := hyrise.Suggest(vc)
//	encoded, _ := hyrise.Encode(vc, suggestion.EncodingType())
//	_ = stats
//
// Shipping a column to another process:
//
//	data, _ := hyrise.Snapshot(dict, snapshot.WithCompression(format.CompressionLZ4))
//	restored, _ := hyrise.Restore[string](data)
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the column and
// snapshot packages, simplifying the most common use cases. For fine-grained
// control (encoder options, vector selection, custom sentinels), use the
// column, encoding and snapshot packages directly.
package hyrise

import (
	"github.com/EvilMcJerkface/hyrise/column"
	"github.com/EvilMcJerkface/hyrise/format"
	"github.com/EvilMcJerkface/hyrise/snapshot"
)

// NewValueColumn creates an empty mutable column, the input to every
// encoder. A nullable column tracks a null mask alongside the values.
func NewValueColumn[T column.Scalar](nullable bool) *column.ValueColumn[T] {
	return column.NewValueColumn[T](nullable)
}

// NewValueColumnFromSlice wraps a complete value sequence as a non-nullable
// mutable column. The slice is not copied.
func NewValueColumnFromSlice[T column.Scalar](values []T) *column.ValueColumn[T] {
	return column.NewValueColumnFromSlice(values)
}

// Encode encodes one value column with the requested encoding. See
// column.EncodeColumn for the available options.
func Encode[T column.Scalar](valueColumn *column.ValueColumn[T], encodingType format.EncodingType, opts ...column.DictionaryEncoderOption) (column.Column[T], error) {
	return column.EncodeColumn(valueColumn, encodingType, opts...)
}

// EncodeAll encodes a set of independent columns concurrently, one worker
// per column. See column.EncodeColumns.
func EncodeAll[T column.Scalar](valueColumns []*column.ValueColumn[T], encodingType format.EncodingType, opts ...column.DictionaryEncoderOption) ([]column.Column[T], error) {
	return column.EncodeColumns(valueColumns, encodingType, opts...)
}

// Suggest recommends an encoding for a value column from its statistics.
func Suggest[T column.Scalar](valueColumn *column.ValueColumn[T]) (column.EncodingSuggestion, column.Statistics) {
	return column.SuggestEncoding(valueColumn)
}

// Snapshot serializes an encoded column into a self-describing envelope.
// See snapshot.Marshal for the available options.
func Snapshot[T column.Scalar](col column.Column[T], opts ...snapshot.Option) ([]byte, error) {
	return snapshot.Marshal(col, opts...)
}

// Restore rebuilds a column from a snapshot envelope produced by Snapshot.
func Restore[T column.Scalar](data []byte) (column.Column[T], error) {
	return snapshot.Unmarshal[T](data)
}
