// Package bigint is a thin, value-semantics facade over math/big.Int. Every
// operation returns a fresh *Int; none of them mutate a receiver or an
// argument. This mirrors the corpus's own fixed-generator-package convention
// of wrapping a primitive arithmetic type behind a handful of pure methods
// (compare curve.go's Point helpers in the teacher repo) rather than
// threading raw *big.Int pointers — and sidesteps that *big.Int methods
// themselves mutate their receiver in place, which is unsafe to expose
// directly on values callers treat as immutable group elements.
package bigint

import (
	"fmt"
	"math/big"

	"sealedauction.dev/tc/tcerr"
)

// Int is an arbitrary-precision signed integer with copy-on-write semantics:
// every method returns a new *Int and never modifies its receiver.
type Int struct {
	v *big.Int
}

// Zero returns the additive identity.
func Zero() *Int { return wrap(big.NewInt(0)) }

// One returns the multiplicative identity.
func One() *Int { return wrap(big.NewInt(1)) }

// FromInt64 builds an Int from a native int64.
func FromInt64(x int64) *Int { return wrap(big.NewInt(x)) }

// FromUint64 builds an Int from a native uint64.
func FromUint64(x uint64) *Int { return wrap(new(big.Int).SetUint64(x)) }

// FromDecimal parses a base-10 string into an Int.
func FromDecimal(s string) (*Int, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("bigint: invalid decimal string %q: %w", s, tcerr.ErrArgumentOutOfRange)
	}
	return wrap(v), nil
}

// FromBytesBE interprets b as an unsigned big-endian magnitude.
func FromBytesBE(b []byte) *Int { return wrap(new(big.Int).SetBytes(b)) }

// Pow2 returns 2^t. Used sparingly: callers proving or verifying over
// exponents measured in tens of bits should prefer the iterative quotient
// algorithm in package poe, which never materializes 2^T directly.
func Pow2(t uint64) *Int {
	return wrap(new(big.Int).Lsh(big.NewInt(1), uint(t)))
}

// FromBytesLE interprets b as an unsigned little-endian magnitude.
func FromBytesLE(b []byte) *Int {
	rev := make([]byte, len(b))
	for i, c := range b {
		rev[len(b)-1-i] = c
	}
	return wrap(new(big.Int).SetBytes(rev))
}

func wrap(v *big.Int) *Int { return &Int{v: v} }

func (x *Int) clone() *big.Int { return new(big.Int).Set(x.v) }

// Add returns x + y.
func (x *Int) Add(y *Int) *Int { return wrap(new(big.Int).Add(x.v, y.v)) }

// Sub returns x - y.
func (x *Int) Sub(y *Int) *Int { return wrap(new(big.Int).Sub(x.v, y.v)) }

// Mul returns x * y.
func (x *Int) Mul(y *Int) *Int { return wrap(new(big.Int).Mul(x.v, y.v)) }

// Mod returns the Euclidean remainder of x divided by m; the result always
// satisfies 0 <= result < |m|, matching Go's big.Int.Mod (not Rem).
func (x *Int) Mod(m *Int) *Int { return wrap(new(big.Int).Mod(x.v, m.v)) }

// Div returns the truncated quotient floor(x/y) for positive operands (used
// for exact divisions where the remainder is known to be zero).
func (x *Int) Div(y *Int) *Int { return wrap(new(big.Int).Div(x.v, y.v)) }

// ModPow returns base^exp mod m. exp may be negative only if base is
// invertible mod m; math/big.Int.Exp handles that via modular inverse.
func (x *Int) ModPow(exp, m *Int) *Int {
	return wrap(new(big.Int).Exp(x.v, exp.v, m.v))
}

// Neg returns -x.
func (x *Int) Neg() *Int { return wrap(new(big.Int).Neg(x.v)) }

// Abs returns |x|.
func (x *Int) Abs() *Int { return wrap(new(big.Int).Abs(x.v)) }

// Sqrt returns floor(sqrt(x)) for x >= 0.
func (x *Int) Sqrt() *Int { return wrap(new(big.Int).Sqrt(x.v)) }

// Cmp returns -1, 0, or +1 as x is less than, equal to, or greater than y.
func (x *Int) Cmp(y *Int) int { return x.v.Cmp(y.v) }

// Sign returns -1, 0, or +1 reflecting the sign of x.
func (x *Int) Sign() int { return x.v.Sign() }

// IsZero reports whether x == 0.
func (x *Int) IsZero() bool { return x.v.Sign() == 0 }

// IsEven reports whether x is divisible by two.
func (x *Int) IsEven() bool { return x.v.Bit(0) == 0 }

// BitLen returns the number of bits required to represent |x|, with
// BitLen(0) == 0.
func (x *Int) BitLen() int { return x.v.BitLen() }

// Bit returns the value of the i'th bit of x, i.e. a limb accessor as named
// in the BigInt facade's operation set.
func (x *Int) Bit(i int) uint { return x.v.Bit(i) }

// SetBit returns a copy of x with bit i set to value (0 or 1).
func (x *Int) SetBit(i int, value uint) *Int {
	return wrap(new(big.Int).SetBit(x.v, i, value))
}

// String renders x in base 10.
func (x *Int) String() string { return x.v.String() }

// Equal reports whether x and y denote the same integer.
func (x *Int) Equal(y *Int) bool { return x.v.Cmp(y.v) == 0 }

// ExtGCD computes the extended Euclidean algorithm on (a, m), returning
// Bézout coefficients (bx, by) and the non-negative gcd such that
// bx*a + by*m == gcd. This is the sign convention spec'd for the BigInt
// facade: gcd is always >= 0, and an inverse derived from bx may be negative
// (the caller normalizes by adding m), matching the reference
// extended_euclidean_gcd helper used throughout the hog package.
func ExtGCD(a, m *Int) (bx, by, gcd *Int) {
	var x, y big.Int
	g := new(big.Int).GCD(&x, &y, a.v, m.v)
	return wrap(&x), wrap(&y), wrap(g)
}

// bytesBEPadded returns the unsigned big-endian magnitude of v, left-padded
// with zero bytes so its length is a multiple of blockSize.
func bytesBEPadded(v *big.Int, blockSize int) []byte {
	raw := v.Bytes()
	if blockSize <= 0 {
		return raw
	}
	pad := (blockSize - len(raw)%blockSize) % blockSize
	out := make([]byte, pad+len(raw))
	copy(out[pad:], raw)
	return out
}

// BytesBE serializes the magnitude of x as big-endian bytes, left-padded to
// a multiple of blockSize bytes (pass 32 for the on-chain-oriented
// serialization convention in spec §6; pass 0 for the minimal encoding).
func (x *Int) BytesBE(blockSize int) []byte { return bytesBEPadded(x.v, blockSize) }

// BytesLE serializes the magnitude of x as little-endian bytes in exactly
// length bytes, truncating is never performed: callers must pick length
// large enough for the value (e.g. the scalar field's byte width), matching
// the fixed-width little-endian convention LazyTC uses to serialize the
// Pedersen opening randomness (spec §4.I step 2, §9 endianness decision).
func (x *Int) BytesLE(length int) []byte {
	be := bytesBEPadded(x.v, 0)
	size := length
	if len(be) > length {
		// Value doesn't fit; callers are expected to size length correctly,
		// but we still return something deterministic rather than silently
		// truncating significant bits.
		size = len(be)
	}
	out := make([]byte, size)
	for i, c := range be {
		// be is big-endian minimal; reverse into the fixed-length buffer.
		out[len(be)-1-i] = c
	}
	return out
}

// SignBit reports whether x is strictly negative, the companion bit to the
// big-endian magnitude in the on-chain serialization format (spec §6).
func (x *Int) SignBit() bool { return x.v.Sign() < 0 }
