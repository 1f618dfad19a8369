// Package tcerr collects the sentinel errors shared by every package in this
// module. Centralizing them lets callers use errors.Is/errors.As regardless
// of which layer (hog, pocklington, poe, basictc, lazytc) raised the error,
// mirroring the single RsaHOGError enum shared across the reference Rust
// crate's hog submodules.
package tcerr

import "errors"

var (
	// ErrNotInvertible is returned when a group element has a non-trivial
	// gcd with the modulus and therefore has no multiplicative inverse.
	ErrNotInvertible = errors.New("group element not invertible")

	// ErrNotCyclic is returned by Params.GeneratorUnsigned when the group was
	// constructed without a distinguished generator.
	ErrNotCyclic = errors.New("group is not cyclic: no generator configured")

	// ErrHashToPrimeExhausted is returned when no Pocklington step witness
	// is found within MAX_STEPS steps of NONCE_SIZE-bounded search.
	ErrHashToPrimeExhausted = errors.New("hash-to-prime: exhausted all steps without finding a certified prime")

	// ErrInvalidPoE names a proof of exponentiation that fails the verifier's
	// equation. poe.Verify reports that case as a false result with a nil
	// error; it does not return this sentinel.
	ErrInvalidPoE = errors.New("proof of exponentiation failed verification")

	// ErrInvalidCertificate is returned by pocklington.Verify for a
	// certificate with no steps. A step that fails to validate makes Verify
	// return false with a nil error instead.
	ErrInvalidCertificate = errors.New("pocklington certificate step failed to validate")

	// ErrInvalidCiphertext is returned when authenticated decryption fails,
	// including the case of mismatched associated data.
	ErrInvalidCiphertext = errors.New("authenticated decryption failed")

	// ErrArgumentOutOfRange is returned for malformed caller input, e.g.
	// from_nat(0) or a string that bigint.FromDecimal cannot parse.
	ErrArgumentOutOfRange = errors.New("argument out of range")

	// ErrKeyDerivationFailed is returned when the AEAD key cannot be
	// derived from the time-locked group element.
	ErrKeyDerivationFailed = errors.New("key derivation failed")
)
