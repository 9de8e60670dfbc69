// Package errs defines the sentinel errors shared across the column
// encoding packages.
package errs

import "errors"

var (
	// ErrImmutableColumn is returned when the mutation entry point is invoked
	// on an encoded column. Encoded columns are immutable after construction.
	ErrImmutableColumn = errors.New("encoded columns are immutable")

	// ErrCardinalityOverflow is returned when the number of distinct values
	// (or the maximum ID to be packed) exceeds what the chosen representation
	// can hold. The construction is fatal; the caller must pick a wider
	// representation and re-encode from scratch.
	ErrCardinalityOverflow = errors.New("value cardinality exceeds representation")

	// ErrSentinelCollision is returned by the run-length encoder when a
	// non-null input value equals the null sentinel.
	ErrSentinelCollision = errors.New("null sentinel collides with input value")

	// ErrLengthMismatch is returned when a null mask does not have the same
	// length as the value sequence it annotates.
	ErrLengthMismatch = errors.New("null mask length does not match value count")

	// ErrNullNotAllowed is returned when a null row is appended to a
	// non-nullable value column.
	ErrNullNotAllowed = errors.New("column is not nullable")

	// ErrInvalidVectorType is returned when a zero-suppression vector type is
	// unknown or cannot represent the requested maximum value.
	ErrInvalidVectorType = errors.New("invalid zero-suppression vector type")

	// ErrInvalidHeaderSize is returned when a snapshot header is truncated.
	ErrInvalidHeaderSize = errors.New("invalid snapshot header size")

	// ErrInvalidMagicNumber is returned when a snapshot does not start with
	// the expected magic number.
	ErrInvalidMagicNumber = errors.New("invalid snapshot magic number")

	// ErrChecksumMismatch is returned when a snapshot payload does not match
	// the checksum recorded in its header.
	ErrChecksumMismatch = errors.New("snapshot payload checksum mismatch")

	// ErrCorruptedPayload is returned when a snapshot payload cannot be
	// decoded back into a column.
	ErrCorruptedPayload = errors.New("corrupted snapshot payload")
)
