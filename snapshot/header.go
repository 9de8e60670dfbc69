package snapshot

import (
	"github.com/EvilMcJerkface/hyrise/endian"
	"github.com/EvilMcJerkface/hyrise/errs"
	"github.com/EvilMcJerkface/hyrise/format"
)

const (
	// MagicNumber identifies a column snapshot envelope.
	MagicNumber uint16 = 0x4859

	// Version is the current envelope layout version.
	Version uint8 = 1

	// HeaderSize is the fixed byte size of the envelope header.
	HeaderSize = 32
)

// Header flag bits.
const (
	flagBigEndian uint8 = 1 << 0 // payload sections use big-endian layouts
	flagNullable  uint8 = 1 << 1 // column carries null semantics
)

// Header is the fixed-size section at the start of a column snapshot.
//
// Layout (header fields are always little-endian, independent of the
// payload byte order flag):
//
//	offset 0-1   magic number
//	offset 2     version
//	offset 3     flags (endianness, nullability)
//	offset 4     encoding type
//	offset 5     scalar type
//	offset 6     vector type (dictionary snapshots only, else 0)
//	offset 7     compression type
//	offset 8-11  row count
//	offset 12-15 section A length in bytes (after compression)
//	offset 16-19 section B length in bytes (after compression)
//	offset 20-23 auxiliary value (null sentinel ID or run count)
//	offset 24-31 xxHash64 checksum of both payload sections
type Header struct {
	Encoding    format.EncodingType
	Scalar      format.ScalarType
	Vector      format.VectorType
	Compression format.CompressionType
	RowCount    uint32
	SectionALen uint32
	SectionBLen uint32
	Aux         uint32
	Checksum    uint64

	bigEndian bool
	nullable  bool
}

// PayloadEngine returns the endian engine of the payload sections.
func (h *Header) PayloadEngine() endian.EndianEngine {
	if h.bigEndian {
		return endian.GetBigEndianEngine()
	}

	return endian.GetLittleEndianEngine()
}

// Nullable reports whether the column carries null semantics.
func (h *Header) Nullable() bool {
	return h.nullable
}

// Bytes serializes the header into a fresh 32-byte slice.
func (h *Header) Bytes() []byte {
	b := make([]byte, HeaderSize)
	engine := endian.GetLittleEndianEngine()

	engine.PutUint16(b[0:2], MagicNumber)
	b[2] = Version

	var flags uint8
	if h.bigEndian {
		flags |= flagBigEndian
	}
	if h.nullable {
		flags |= flagNullable
	}
	b[3] = flags

	b[4] = uint8(h.Encoding)
	b[5] = uint8(h.Scalar)
	b[6] = uint8(h.Vector)
	b[7] = uint8(h.Compression)
	engine.PutUint32(b[8:12], h.RowCount)
	engine.PutUint32(b[12:16], h.SectionALen)
	engine.PutUint32(b[16:20], h.SectionBLen)
	engine.PutUint32(b[20:24], h.Aux)
	engine.PutUint64(b[24:32], h.Checksum)

	return b
}

// ParseHeader parses and validates a snapshot header.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, errs.ErrInvalidHeaderSize
	}

	engine := endian.GetLittleEndianEngine()
	if engine.Uint16(data[0:2]) != MagicNumber {
		return Header{}, errs.ErrInvalidMagicNumber
	}
	if data[2] != Version {
		return Header{}, errs.ErrCorruptedPayload
	}

	flags := data[3]

	return Header{
		Encoding:    format.EncodingType(data[4]),
		Scalar:      format.ScalarType(data[5]),
		Vector:      format.VectorType(data[6]),
		Compression: format.CompressionType(data[7]),
		RowCount:    engine.Uint32(data[8:12]),
		SectionALen: engine.Uint32(data[12:16]),
		SectionBLen: engine.Uint32(data[16:20]),
		Aux:         engine.Uint32(data[20:24]),
		Checksum:    engine.Uint64(data[24:32]),
		bigEndian:   flags&flagBigEndian != 0,
		nullable:    flags&flagNullable != 0,
	}, nil
}
