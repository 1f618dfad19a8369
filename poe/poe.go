// Package poe implements a non-interactive Proof of Exponentiation over the
// signed hidden-order group, certifying that y = x^(2^T) mod M without
// requiring the verifier to perform T squarings itself (spec §4.F).
//
// [Wesolowski2019]
//
//	Wesolowski, B., "Efficient Verifiable Delay Functions", EUROCRYPT 2019.
//
// The hash-to-prime challenge and its Pocklington certificate come from
// package pocklington; the domain-separation of the challenge input follows
// the teacher's tagged-concatenation idiom (frost/hash.go, roast/hash.go).
package poe

import (
	"encoding/binary"
	"fmt"

	"sealedauction.dev/tc/bigint"
	"sealedauction.dev/tc/hog"
	"sealedauction.dev/tc/pocklington"
	"sealedauction.dev/tc/tcerr"
)

// Params tunes the hash-to-prime challenge derivation used by PoE, named
// HASH_TO_PRIME_ENTROPY in the reference crate's PoEParams trait.
type Params struct {
	PocklingtonParams pocklington.Params
	HashToPrimeEntropy int
}

// TestParams mirrors the reference crate's TestPoEParams fixture
// (HASH_TO_PRIME_ENTROPY = 128) paired with TestPocklingtonParams.
var TestParams = Params{
	PocklingtonParams:  pocklington.TestParams,
	HashToPrimeEntropy: 128,
}

// Proof is a PoE certificate: the group element q together with the
// Pocklington certificate for the Fiat-Shamir challenge prime l (spec §3
// "PoE Proof").
type Proof struct {
	Q    hog.Signed
	Cert *pocklington.Certificate
}

func challengeInput(x, y hog.Signed, t uint64) []byte {
	var tb [8]byte
	binary.BigEndian.PutUint64(tb[:], t)
	xb := x.N().BytesBE(32)
	yb := y.N().BytesBE(32)
	buf := make([]byte, 0, len(xb)+len(yb)+len(tb))
	buf = append(buf, xb...)
	buf = append(buf, yb...)
	buf = append(buf, tb[:]...)
	return buf
}

// floorDiv2ToT computes floor(2^t / l) via binary long division, one bit of
// the exponent at a time, so T's magnitude never forces materializing 2^T
// directly (Wesolowski's iterative proving algorithm).
func floorDiv2ToT(t uint64, l *bigint.Int) *bigint.Int {
	quotient := bigint.Zero()
	remainder := bigint.One()
	two := bigint.FromInt64(2)
	for i := uint64(0); i < t; i++ {
		remainder = remainder.Mul(two)
		quotient = quotient.Mul(two)
		if remainder.Cmp(l) >= 0 {
			remainder = remainder.Sub(l)
			quotient = quotient.Add(bigint.One())
		}
	}
	return quotient
}

// Prove produces a PoE certifying y = x^(2^T) mod M (spec §4.F Prover).
// Callers are expected to have already computed y themselves (e.g. via T
// sequential squarings, as basictc.ForceOpen does).
func Prove(params Params, x, y hog.Signed, t uint64) (Proof, error) {
	input := challengeInput(x, y, t)
	l, cert, err := pocklington.HashToPrime(params.PocklingtonParams, input, params.HashToPrimeEntropy)
	if err != nil {
		return Proof{}, fmt.Errorf("poe: deriving challenge prime: %w", err)
	}
	e := floorDiv2ToT(t, l)
	q := x.Power(e)
	return Proof{Q: q, Cert: cert}, nil
}

// Verify checks a PoE that y = x^(2^T) mod M (spec §4.F Verifier).
func Verify(params Params, x, y hog.Signed, t uint64, proof Proof) (bool, error) {
	input := challengeInput(x, y, t)
	ok, err := pocklington.Verify(input, params.HashToPrimeEntropy, proof.Cert)
	if err != nil {
		return false, fmt.Errorf("poe: verifying challenge certificate: %w", err)
	}
	if !ok {
		return false, nil
	}
	l := proof.Cert.Prime()

	r := bigint.FromInt64(2).ModPow(bigint.FromUint64(t), l)

	lhs := proof.Q.Power(l).Op(x.Power(r))
	if !lhs.Equal(y) {
		return false, nil
	}
	return true, nil
}

// ErrInvalidPoE is re-exported for callers that want a sentinel for a failed
// proof. Verify itself (and basictc.Verify) reports a failed proof as a false
// result with a nil error, not as this error.
var ErrInvalidPoE = tcerr.ErrInvalidPoE
