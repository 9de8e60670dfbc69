// Package snapshot serializes an encoded column into a self-describing byte
// envelope and restores it bit-for-bit.
//
// The envelope is an interchange format for shipping immutable encoded
// columns between processes, not a storage engine: it simply freezes the
// in-memory layouts (dictionary order, zero-suppression payloads, run
// tables, null sentinels), which are the de facto binary contract of the
// column encodings. A 32-byte header carries the layout description plus an
// xxHash64 checksum; each payload section can be compressed with any codec
// from the compress package.
package snapshot

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/EvilMcJerkface/hyrise/column"
	"github.com/EvilMcJerkface/hyrise/compress"
	"github.com/EvilMcJerkface/hyrise/encoding"
	"github.com/EvilMcJerkface/hyrise/endian"
	"github.com/EvilMcJerkface/hyrise/errs"
	"github.com/EvilMcJerkface/hyrise/format"
	"github.com/EvilMcJerkface/hyrise/internal/hash"
	"github.com/EvilMcJerkface/hyrise/internal/options"
	"github.com/EvilMcJerkface/hyrise/internal/pool"
)

// Config controls how a snapshot is written.
type Config struct {
	engine      endian.EndianEngine
	bigEndian   bool
	compression format.CompressionType
}

// Option is a functional option for snapshot Config.
type Option = options.Option[*Config]

func newConfig(opts ...Option) (*Config, error) {
	cfg := &Config{
		engine:      endian.GetLittleEndianEngine(),
		compression: format.CompressionNone,
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithCompression compresses the payload sections with the given codec.
func WithCompression(compression format.CompressionType) Option {
	return options.New(func(cfg *Config) error {
		if _, err := compress.GetCodec(compression); err != nil {
			return err
		}
		cfg.compression = compression

		return nil
	})
}

// WithBigEndian writes payload sections in big-endian byte order, for
// interchange with big-endian consumers. Little endian is the default.
func WithBigEndian() Option {
	return options.NoError(func(cfg *Config) {
		cfg.engine = endian.GetBigEndianEngine()
		cfg.bigEndian = true
	})
}

// Marshal serializes an encoded column into a snapshot envelope.
//
// Value, dictionary and run-length columns are supported. Reference columns
// are indirections into storage owned elsewhere and cannot be snapshotted;
// marshaling one returns an error.
func Marshal[T column.Scalar](col column.Column[T], opts ...Option) ([]byte, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	header := Header{
		Encoding:    col.EncodingType(),
		Scalar:      column.ScalarTypeOf[T](),
		Compression: cfg.compression,
		bigEndian:   cfg.bigEndian,
	}
	if col.Size() > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d rows", errs.ErrCardinalityOverflow, col.Size())
	}
	header.RowCount = uint32(col.Size())

	var sectionA, sectionB []byte
	switch c := any(col).(type) {
	case *column.ValueColumn[T]:
		header.nullable = c.IsNullable()
		sectionA = appendValues(nil, cfg.engine, c.Values())
		if c.IsNullable() {
			sectionB = appendNullMask(nil, c.NullMask())
		}

	case *column.DictionaryColumn[T]:
		header.Vector = c.AttributeVector().Type()
		header.Aux = c.NullValueID()
		sectionA = appendValues(nil, cfg.engine, c.Dictionary())
		sectionB, err = appendVector(nil, cfg.engine, c.AttributeVector())
		if err != nil {
			return nil, err
		}

	case *column.RunLengthColumn[T]:
		header.nullable = c.IsNullable()
		header.Aux = uint32(c.RunCount())
		// The sentinel travels as the leading entry of the run value
		// payload so that any sentinel, including an overridden one,
		// survives the round trip.
		sectionA = appendValues(nil, cfg.engine, []T{c.NullValue()})
		sectionA = appendValues(sectionA, cfg.engine, c.Values())
		sectionB = appendEndPositions(nil, cfg.engine, c.EndPositions())

	case *column.ReferenceColumn[T]:
		return nil, fmt.Errorf("cannot snapshot %s column: positions reference external storage", col.EncodingType())

	default:
		return nil, fmt.Errorf("cannot snapshot unknown column type %T", col)
	}

	codec, err := compress.GetCodec(cfg.compression)
	if err != nil {
		return nil, err
	}

	compressedA, err := codec.Compress(sectionA)
	if err != nil {
		return nil, fmt.Errorf("compress section A: %w", err)
	}
	compressedB, err := codec.Compress(sectionB)
	if err != nil {
		return nil, fmt.Errorf("compress section B: %w", err)
	}

	if len(compressedA) > math.MaxUint32 || len(compressedB) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: payload section too large", errs.ErrCardinalityOverflow)
	}
	header.SectionALen = uint32(len(compressedA))
	header.SectionBLen = uint32(len(compressedB))

	buf := pool.GetSnapshotBuffer()
	defer pool.PutSnapshotBuffer(buf)

	buf.MustWrite(compressedA)
	buf.MustWrite(compressedB)
	header.Checksum = hash.Fingerprint(buf.Bytes())

	out := make([]byte, 0, HeaderSize+buf.Len())
	out = append(out, header.Bytes()...)
	out = append(out, buf.Bytes()...)

	return out, nil
}

// Unmarshal restores a column from a snapshot envelope.
//
// The scalar kind T must match the snapshot's recorded scalar type; the
// checksum and all structural invariants (dictionary order, run table
// monotonicity, vector sizing) are validated before anything is published.
func Unmarshal[T column.Scalar](data []byte) (column.Column[T], error) {
	header, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}

	if want := column.ScalarTypeOf[T](); header.Scalar != want {
		return nil, fmt.Errorf("%w: snapshot holds %s, caller expects %s", errs.ErrCorruptedPayload, header.Scalar, want)
	}

	payload := data[HeaderSize:]
	total := int(header.SectionALen) + int(header.SectionBLen)
	if len(payload) < total {
		return nil, fmt.Errorf("%w: %d payload bytes, header describes %d", errs.ErrCorruptedPayload, len(payload), total)
	}
	payload = payload[:total]

	if hash.Fingerprint(payload) != header.Checksum {
		return nil, errs.ErrChecksumMismatch
	}

	codec, err := compress.GetCodec(header.Compression)
	if err != nil {
		return nil, err
	}

	sectionA, err := codec.Decompress(payload[:header.SectionALen])
	if err != nil {
		return nil, fmt.Errorf("decompress section A: %w", err)
	}
	sectionB, err := codec.Decompress(payload[header.SectionALen:])
	if err != nil {
		return nil, fmt.Errorf("decompress section B: %w", err)
	}

	engine := header.PayloadEngine()
	rowCount := int(header.RowCount)

	switch header.Encoding {
	case format.EncodingUnencoded:
		values, _, err := decodeValues[T](sectionA, engine, rowCount)
		if err != nil {
			return nil, err
		}
		if !header.Nullable() {
			return column.NewValueColumnFromSlice(values), nil
		}

		nulls, err := decodeNullMask(sectionB, rowCount)
		if err != nil {
			return nil, err
		}

		return column.NewValueColumnWithNulls(values, nulls)

	case format.EncodingDictionary:
		dictionary, _, err := decodeValues[T](sectionA, engine, -1)
		if err != nil {
			return nil, err
		}

		vector, err := decodeVector(sectionB, engine, header.Vector, rowCount)
		if err != nil {
			return nil, err
		}

		return column.NewDictionaryColumnFromParts(dictionary, vector, header.Aux)

	case format.EncodingRunLength:
		entries, _, err := decodeValues[T](sectionA, engine, int(header.Aux)+1)
		if err != nil {
			return nil, err
		}
		nullValue, runValues := entries[0], entries[1:]

		endPositions, err := decodeEndPositions(sectionB, engine, int(header.Aux))
		if err != nil {
			return nil, err
		}

		return column.NewRunLengthColumnFromParts(runValues, endPositions, nullValue, header.Nullable())

	default:
		return nil, fmt.Errorf("%w: encoding %s", errs.ErrCorruptedPayload, header.Encoding)
	}
}

// appendValues appends the payload representation of values: fixed 8-byte
// layouts for int64 and float64, uvarint-length-prefixed bytes for strings.
func appendValues[T column.Scalar](dst []byte, engine endian.EndianEngine, values []T) []byte {
	switch vals := any(values).(type) {
	case []int64:
		for _, v := range vals {
			dst = engine.AppendUint64(dst, uint64(v))
		}
	case []float64:
		for _, v := range vals {
			dst = engine.AppendUint64(dst, math.Float64bits(v))
		}
	case []string:
		for _, v := range vals {
			dst = binary.AppendUvarint(dst, uint64(len(v)))
			dst = append(dst, v...)
		}
	}

	return dst
}

// decodeValues decodes a value payload. A count of -1 means "until the
// payload is exhausted" (used for dictionaries, whose entry count is not
// recorded separately). It returns the values and the number of payload
// bytes consumed.
func decodeValues[T column.Scalar](data []byte, engine endian.EndianEngine, count int) ([]T, int, error) {
	var zero T
	switch any(zero).(type) {
	case int64, float64:
		if count < 0 {
			if len(data)%8 != 0 {
				return nil, 0, fmt.Errorf("%w: value payload of %d bytes", errs.ErrCorruptedPayload, len(data))
			}
			count = len(data) / 8
		}
		if len(data) < count*8 {
			return nil, 0, fmt.Errorf("%w: %d bytes cannot hold %d values", errs.ErrCorruptedPayload, len(data), count)
		}

		values := make([]T, count)
		switch out := any(values).(type) {
		case []int64:
			for i := range out {
				out[i] = int64(engine.Uint64(data[i*8 : i*8+8]))
			}
		case []float64:
			for i := range out {
				out[i] = math.Float64frombits(engine.Uint64(data[i*8 : i*8+8]))
			}
		}

		return values, count * 8, nil

	default: // string
		var values []string
		offset := 0
		for offset < len(data) && (count < 0 || len(values) < count) {
			length, n := binary.Uvarint(data[offset:])
			if n <= 0 || offset+n+int(length) > len(data) {
				return nil, 0, fmt.Errorf("%w: string entry at offset %d", errs.ErrCorruptedPayload, offset)
			}
			offset += n
			values = append(values, string(data[offset:offset+int(length)]))
			offset += int(length)
		}
		if count >= 0 && len(values) != count {
			return nil, 0, fmt.Errorf("%w: %d string entries, expected %d", errs.ErrCorruptedPayload, len(values), count)
		}

		return any(values).([]T), offset, nil
	}
}

func appendNullMask(dst []byte, nulls []bool) []byte {
	for _, isNull := range nulls {
		if isNull {
			dst = append(dst, 1)
		} else {
			dst = append(dst, 0)
		}
	}

	return dst
}

func decodeNullMask(data []byte, count int) ([]bool, error) {
	if len(data) != count {
		return nil, fmt.Errorf("%w: null mask of %d bytes for %d rows", errs.ErrCorruptedPayload, len(data), count)
	}

	nulls := make([]bool, count)
	for i, b := range data {
		nulls[i] = b != 0
	}

	return nulls, nil
}

func appendEndPositions(dst []byte, engine endian.EndianEngine, endPositions []uint32) []byte {
	for _, pos := range endPositions {
		dst = engine.AppendUint32(dst, pos)
	}

	return dst
}

func decodeEndPositions(data []byte, engine endian.EndianEngine, count int) ([]uint32, error) {
	if len(data) != count*4 {
		return nil, fmt.Errorf("%w: %d bytes cannot hold %d end positions", errs.ErrCorruptedPayload, len(data), count)
	}

	out := make([]uint32, count)
	for i := range out {
		out[i] = engine.Uint32(data[i*4 : i*4+4])
	}

	return out, nil
}

// appendVector appends the payload of a zero-suppression vector. Fixed-size
// vectors are their packed bytes verbatim; the bit-packed vector is block
// count, per-block widths, then data words.
func appendVector(dst []byte, engine endian.EndianEngine, vector encoding.Vector) ([]byte, error) {
	switch v := vector.(type) {
	case *encoding.FixedSizeVector:
		return append(dst, v.Bytes()...), nil
	case *encoding.BitPackedVector:
		dst = engine.AppendUint32(dst, uint32(v.BlockCount()))
		dst = append(dst, v.BlockWidths()...)
		for _, word := range v.Words() {
			dst = engine.AppendUint64(dst, word)
		}

		return dst, nil
	default:
		return nil, fmt.Errorf("%w: unknown vector %T", errs.ErrInvalidVectorType, vector)
	}
}

func decodeVector(data []byte, engine endian.EndianEngine, vectorType format.VectorType, count int) (encoding.Vector, error) {
	switch vectorType {
	case format.VectorFixed1ByteAligned, format.VectorFixed2ByteAligned, format.VectorFixed4ByteAligned:
		owned := make([]byte, len(data))
		copy(owned, data)

		return encoding.NewFixedSizeVectorFromBytes(owned, vectorType, engine, count)

	case format.VectorBitPacked128:
		if len(data) < 4 {
			return nil, fmt.Errorf("%w: truncated bit-packed vector", errs.ErrCorruptedPayload)
		}
		blockCount := int(engine.Uint32(data[:4]))
		data = data[4:]

		if len(data) < blockCount || (len(data)-blockCount)%8 != 0 {
			return nil, fmt.Errorf("%w: bit-packed vector sections misaligned", errs.ErrCorruptedPayload)
		}

		widths := make([]uint8, blockCount)
		copy(widths, data[:blockCount])
		data = data[blockCount:]

		words := make([]uint64, len(data)/8)
		for i := range words {
			words[i] = engine.Uint64(data[i*8 : i*8+8])
		}

		return encoding.NewBitPackedFromParts(words, widths, count)

	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidVectorType, vectorType)
	}
}
