// Package identity turns a contract index into an on-chain address. The
// index is first encoded as a fixed-length seed string; a pluggable
// provider then derives the checksummed identity from the seed. When no
// provider is available the seed itself serves as a degraded address.
package identity

// SeedLength is the fixed width of an encoded seed.
const SeedLength = 56

// IdentityLength is the exact length of a checksummed identity string.
const IdentityLength = 60

// seedAlphabet maps nibble values 0-15 to letters A-P.
const seedAlphabet = "ABCDEFGHIJKLMNOP"

// Seed encodes a contract index as a 56-character string over the A-P
// alphabet. Nibbles are taken least-significant first, one letter per
// nibble, and the remainder is padded with 'A'. Zero or negative indices
// yield the all-'A' string.
func Seed(index int) string {
	buf := make([]byte, SeedLength)
	for i := range buf {
		buf[i] = seedAlphabet[0]
	}
	if index <= 0 {
		return string(buf)
	}
	n := index
	for i := 0; n > 0 && i < SeedLength; i++ {
		buf[i] = seedAlphabet[n&0xF]
		n >>= 4
	}
	return string(buf)
}
