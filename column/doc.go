// Package column implements the encoded column types of the in-memory
// column store: plain value columns, dictionary-encoded columns, run-length
// encoded columns and reference columns, together with the encoders that
// build them and the visitor dispatch operators use to branch on a column's
// concrete encoding.
//
// Every column is monomorphic over one scalar kind (int64, float64 or
// string); encodings never mix kinds within one column. Nulls are an
// out-of-band boolean mask on the uncompressed side; on the encoded side
// they become a reserved sentinel ID (dictionary encoding) or a validated
// sentinel value (run-length encoding).
//
// Encoded columns are built once, atomically, from a complete input and are
// never mutated afterward; the Append entry point of the shared contract
// fails unconditionally for them. After the constructing goroutine hands a
// column to readers, it is safe for unsynchronized concurrent reads.
package column
