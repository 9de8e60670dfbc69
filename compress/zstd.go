package compress

// ZstdCompressor compresses snapshot payloads with Zstandard.
//
// Zstd provides the best compression ratio of the supported codecs and is
// the recommended choice for sorted text dictionary payloads, where shared
// prefixes between neighboring entries compress extremely well.
//
// Two implementations exist behind build tags: a cgo binding (valyala/gozstd)
// when cgo is available, and a pure Go fallback (klauspost/compress/zstd).
// Both produce standard Zstd frames and are wire compatible.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd codec with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
