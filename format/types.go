package format

type (
	// EncodingType identifies the concrete encoding of a column.
	EncodingType uint8
	// VectorType identifies the zero-suppression codec of an ID stream.
	VectorType uint8
	// CompressionType identifies the byte-level codec applied to a
	// snapshot payload.
	CompressionType uint8
	// ScalarType identifies the scalar kind a column is monomorphic over.
	ScalarType uint8
)

const (
	EncodingUnencoded  EncodingType = 0x1 // EncodingUnencoded represents a plain value column.
	EncodingDictionary EncodingType = 0x2 // EncodingDictionary represents dictionary encoding.
	EncodingRunLength  EncodingType = 0x3 // EncodingRunLength represents run-length encoding.
	EncodingReference  EncodingType = 0x4 // EncodingReference represents an indirection column.

	VectorFixed1ByteAligned VectorType = 0x1 // VectorFixed1ByteAligned stores each ID in 1 byte.
	VectorFixed2ByteAligned VectorType = 0x2 // VectorFixed2ByteAligned stores each ID in 2 bytes.
	VectorFixed4ByteAligned VectorType = 0x3 // VectorFixed4ByteAligned stores each ID in 4 bytes.
	VectorBitPacked128      VectorType = 0x4 // VectorBitPacked128 packs 128-value blocks at minimal bit width.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.

	ScalarInt64   ScalarType = 0x1 // ScalarInt64 represents 64-bit signed integer columns.
	ScalarFloat64 ScalarType = 0x2 // ScalarFloat64 represents 64-bit float columns.
	ScalarString  ScalarType = 0x3 // ScalarString represents variable-length text columns.
)

func (e EncodingType) String() string {
	switch e {
	case EncodingUnencoded:
		return "Unencoded"
	case EncodingDictionary:
		return "Dictionary"
	case EncodingRunLength:
		return "RunLength"
	case EncodingReference:
		return "Reference"
	default:
		return "Unknown"
	}
}

func (v VectorType) String() string {
	switch v {
	case VectorFixed1ByteAligned:
		return "Fixed1ByteAligned"
	case VectorFixed2ByteAligned:
		return "Fixed2ByteAligned"
	case VectorFixed4ByteAligned:
		return "Fixed4ByteAligned"
	case VectorBitPacked128:
		return "BitPacked128"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

func (s ScalarType) String() string {
	switch s {
	case ScalarInt64:
		return "Int64"
	case ScalarFloat64:
		return "Float64"
	case ScalarString:
		return "String"
	default:
		return "Unknown"
	}
}
