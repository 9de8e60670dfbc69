package hash

import "github.com/cespare/xxhash/v2"

// Fingerprint computes the xxHash64 of the given payload bytes.
//
// Encoded columns use it to fingerprint their backing buffers: two columns
// built from identical input produce identical fingerprints, which makes the
// fingerprint usable for shared-dictionary detection and snapshot checksums.
func Fingerprint(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// FingerprintStrings computes a single xxHash64 over a sequence of strings.
//
// Each string is fed to the digest with an interleaved length byte sequence
// so that ["ab","c"] and ["a","bc"] hash differently.
func FingerprintStrings(values []string) uint64 {
	d := xxhash.New()
	var lenBuf [4]byte
	for _, v := range values {
		n := len(v)
		lenBuf[0] = byte(n)
		lenBuf[1] = byte(n >> 8)
		lenBuf[2] = byte(n >> 16)
		lenBuf[3] = byte(n >> 24)
		_, _ = d.Write(lenBuf[:])
		_, _ = d.WriteString(v)
	}

	return d.Sum64()
}
