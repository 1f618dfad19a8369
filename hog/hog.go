// Package hog implements the RSA Hidden-Order Group abstraction in both its
// signed (QR_M^+) and unsigned (Z_M^*) forms.
//
// Grounded on the reference crate's
// rsa/src/hog/{rsa_hidden_order_group.rs,unsigned_rsa_hidden_order_group.rs}:
// from_nat's reduce-then-fold sequence, op's multiply-then-fold, power's
// modpow-then-fold, and inverse's extended-gcd-with-NotInvertible-on-
// non-unit-gcd are carried over field for field. Group parameters are
// carried as a runtime-immutable handle (spec §9's "GroupCtx" option)
// instead of the reference's compile-time type parameter, following the
// teacher's frost.Ciphersuite/Curve interface-handle convention
// (frost/ciphersuite.go) rather than Go generics over phantom marker types.
package hog

import (
	"sealedauction.dev/tc/bigint"
	"sealedauction.dev/tc/tcerr"
)

// Params is the immutable (M, G) pair shared by every element built from it.
// It is safe to share a single *Params across concurrently operating
// callers: nothing here is ever mutated after construction.
type Params struct {
	m *bigint.Int
	g *bigint.Int // nil means "no configured generator" (unsigned variant only)
}

// NewParams builds a group parameter handle for the signed variant, which
// always carries a generator.
func NewParams(modulus, generator *bigint.Int) *Params {
	return &Params{m: modulus, g: generator}
}

// NewParamsNoGenerator builds a group parameter handle for the unsigned
// variant when no distinguished generator is published; GeneratorUnsigned()
// on it always fails with ErrNotCyclic.
func NewParamsNoGenerator(modulus *bigint.Int) *Params {
	return &Params{m: modulus, g: nil}
}

// Modulus returns the group's RSA modulus.
func (p *Params) Modulus() *bigint.Int { return p.m }

func fold(a, m *bigint.Int) *bigint.Int {
	ma := m.Sub(a)
	if ma.Cmp(a) < 0 {
		return ma
	}
	return a
}

// Signed is an element of QR_M^+ := { |x| : x ∈ QR_M }, stored in canonical
// folded form n = min(a mod M, M - a mod M).
type Signed struct {
	params *Params
	n      *bigint.Int
}

// FromNat builds the canonical signed representative of n. n must be
// strictly positive before reduction, matching the reference's
// assert!(a > BigInt::zero()) guard — reimplemented here as a returned
// error instead of a panic per spec §7's "no panics on adversarial input."
func (p *Params) FromNat(n *bigint.Int) (Signed, error) {
	if n.Sign() <= 0 {
		return Signed{}, tcerr.ErrArgumentOutOfRange
	}
	a := n.Mod(p.m)
	return Signed{params: p, n: fold(a, p.m)}, nil
}

// Identity returns the signed group's identity element, 1.
func (p *Params) Identity() Signed {
	return Signed{params: p, n: bigint.One()}
}

// Generator returns the configured generator, folded into canonical form.
func (p *Params) Generator() Signed {
	return Signed{params: p, n: fold(p.g.Mod(p.m), p.m)}
}

// Default returns the folded representative of 2, the reference crate's
// Default impl for RsaHiddenOrderGroup.
func (p *Params) Default() Signed {
	el, _ := p.FromNat(bigint.FromInt64(2))
	return el
}

// N returns the element's canonical representative.
func (a Signed) N() *bigint.Int { return a.n }

// Params returns the group parameter handle a was built from, letting
// callers that only hold an element (e.g. a TimeParams' x) recover the
// modulus without threading *Params through separately.
func (a Signed) Params() *Params { return a.params }

// Op composes two signed elements: (a*b mod M), folded.
func (a Signed) Op(b Signed) Signed {
	prod := a.n.Mul(b.n).Mod(a.params.m)
	return Signed{params: a.params, n: fold(prod, a.params.m)}
}

// Power raises a to the exponent e: modpow then fold.
func (a Signed) Power(e *bigint.Int) Signed {
	r := a.n.ModPow(e, a.params.m)
	return Signed{params: a.params, n: fold(r, a.params.m)}
}

// Inverse computes the multiplicative inverse of a via extended gcd,
// failing with ErrNotInvertible when gcd(a.n, M) != 1, mirroring the
// reference's inverse() plus its negative-inverse normalization
// (inv += M when the extended gcd returns a negative Bézout coefficient).
func (a Signed) Inverse() (Signed, error) {
	bx, _, gcd := bigint.ExtGCD(a.n, a.params.m)
	if gcd.Abs().Cmp(bigint.One()) > 0 {
		return Signed{}, tcerr.ErrNotInvertible
	}
	inv := bx
	if inv.Sign() < 0 {
		inv = inv.Add(a.params.m)
	}
	return a.params.FromNat(inv)
}

// Equal reports whether a and b are the same canonical element. Both must
// share the same Params (not checked here, matching the reference's
// type-level enforcement — it is the caller's responsibility to never
// mix elements across distinct parameter sets, per spec §9).
func (a Signed) Equal(b Signed) bool { return a.n.Equal(b.n) }

// Unsigned is an element of Z_M^*, the straight residue without folding.
type Unsigned struct {
	params *Params
	n      *bigint.Int
}

// FromNatUnsigned builds the unsigned representative of n (reduced mod M, no
// folding). As with the signed variant, n must be strictly positive.
func (p *Params) FromNatUnsigned(n *bigint.Int) (Unsigned, error) {
	if n.Sign() <= 0 {
		return Unsigned{}, tcerr.ErrArgumentOutOfRange
	}
	return Unsigned{params: p, n: n.Mod(p.m)}, nil
}

// IdentityUnsigned returns the unsigned group's identity element, 1.
func (p *Params) IdentityUnsigned() Unsigned {
	return Unsigned{params: p, n: bigint.One()}
}

// GeneratorUnsigned returns the configured generator, or ErrNotCyclic if
// none was configured (reference: Option<Self::Elem> == None).
func (p *Params) GeneratorUnsigned() (Unsigned, error) {
	if p.g == nil {
		return Unsigned{}, tcerr.ErrNotCyclic
	}
	return Unsigned{params: p, n: p.g.Mod(p.m)}, nil
}

// DefaultUnsigned returns the unfolded representative of 2.
func (p *Params) DefaultUnsigned() Unsigned {
	el, _ := p.FromNatUnsigned(bigint.FromInt64(2))
	return el
}

// N returns the element's residue.
func (a Unsigned) N() *bigint.Int { return a.n }

// Params returns the group parameter handle a was built from.
func (a Unsigned) Params() *Params { return a.params }

// Op composes two unsigned elements: a*b mod M, no folding.
func (a Unsigned) Op(b Unsigned) Unsigned {
	return Unsigned{params: a.params, n: a.n.Mul(b.n).Mod(a.params.m)}
}

// Power raises a to the exponent e: modpow, no folding.
func (a Unsigned) Power(e *bigint.Int) Unsigned {
	return Unsigned{params: a.params, n: a.n.ModPow(e, a.params.m)}
}

// Inverse computes the multiplicative inverse of a via extended gcd.
func (a Unsigned) Inverse() (Unsigned, error) {
	bx, _, gcd := bigint.ExtGCD(a.n, a.params.m)
	if gcd.Abs().Cmp(bigint.One()) > 0 {
		return Unsigned{}, tcerr.ErrNotInvertible
	}
	inv := bx
	if inv.Sign() < 0 {
		inv = inv.Add(a.params.m)
	}
	return a.params.FromNatUnsigned(inv)
}

// Equal reports whether a and b are the same residue. Unlike the signed
// variant, from_nat(30) and from_nat(M-30) are distinct here — there is no
// folding to collapse them (spec §8 scenario 4).
func (a Unsigned) Equal(b Unsigned) bool { return a.n.Equal(b.n) }
