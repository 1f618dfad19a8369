// Package pocklington implements hash-to-variable-length expansion (spec
// §4.D) and deterministic hash-to-prime via a chained Pocklington
// primality certificate (spec §4.E).
//
// The reference crate's corresponding source
// (rsa/src/hash_to_prime/pocklington.rs) was not included in the retrieval
// pack available for this module — only rsa/src/hog/*.rs and
// timed_commitments/src/lazy_tc.rs were — so the certificate's concrete
// 15-field layout below is an original construction, not a line-for-line
// port. It implements the classical result this package is named for:
//
// [Pocklington1914]
//
//	Pocklington, H. C., "The determination of the prime or composite nature
//	of large numbers by Fermat's theorem", Proc. Cambridge Philos. Soc. 18,
//	1914.
//
// and the chained variant used to deterministically grow a small certified
// prime into one with the requested entropy:
//
// [Maurer1995]
//
//	Maurer, U., "Fast generation of prime numbers and secure public-key
//	cryptographic parameters", Journal of Cryptology 8, 1995.
//
// The domain-separated tagged-hash idiom (concat + fixed-counter expansion)
// follows the teacher's frost/hash.go and roast/hash.go.
package pocklington

import (
	"crypto/sha256"
	"encoding/binary"
)

// ExpandHash deterministically extends a fixed-output hash into length
// bytes by concatenating H(input || i) for i = 0, 1, 2, ..., then
// truncating (spec §4.D). This is the streaming generalization of the
// teacher's bip340Hash/hashToScalar tagged-hash helpers, which only ever
// needed a single 32-byte block.
func ExpandHash(input []byte, length int) []byte {
	out := make([]byte, 0, length+sha256.Size)
	var counter [8]byte
	for i := uint64(0); len(out) < length; i++ {
		binary.BigEndian.PutUint64(counter[:], i)
		block := sha256.Sum256(concat(input, counter[:]))
		out = append(out, block[:]...)
	}
	return out[:length]
}

// concat returns a fresh slice holding a followed by each of bs, never
// mutating its arguments — the same defensive-copy idiom as the teacher's
// frost/hash.go and roast/hash.go concat helper.
func concat(a []byte, bs ...[]byte) []byte {
	c := make([]byte, len(a))
	copy(c, a)
	for _, b := range bs {
		c = append(c, b...)
	}
	return c
}
