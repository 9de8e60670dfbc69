// Package compress provides the byte-level codecs used by column snapshots.
//
// Encoding (dictionary, run-length, zero-suppression) already exploits the
// structure of the data; compression is a second, optional stage applied to
// snapshot payloads when an encoded column is serialized for interchange.
// Text dictionary payloads in particular compress well because the values
// are sorted, so neighboring entries share long prefixes.
//
// Supported algorithms:
//   - None: payload passes through unchanged (format.CompressionNone)
//   - Zstd: best ratio, moderate speed (format.CompressionZstd)
//   - S2: balanced ratio and speed (format.CompressionS2)
//   - LZ4: fastest decompression (format.CompressionLZ4)
//
// All codecs are safe for concurrent use; internal encoder/decoder state is
// pooled per algorithm.
package compress
