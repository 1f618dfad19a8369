package pocklington

import (
	"encoding/binary"
	"fmt"

	"sealedauction.dev/tc/bigint"
	"sealedauction.dev/tc/tcerr"
)

// Params tunes the hash-to-prime search: NonceSize bounds the per-step
// nonce search space (2^NonceSize candidates tried before giving up on a
// step), and MaxSteps bounds the number of chained Pocklington extensions
// (spec §4.E "Parameters").
type Params struct {
	NonceSize uint
	MaxSteps  int
}

// TestParams matches the reference crate's test fixture
// (TestPocklingtonParams in lazy_tc.rs: NONCE_SIZE=16, MAX_STEPS=5).
var TestParams = Params{NonceSize: 16, MaxSteps: 5}

// ProductionParams is a more conservative default for non-test callers.
var ProductionParams = Params{NonceSize: 24, MaxSteps: 24}

// baseCertifiedPrime is the small, axiomatically-trusted prime p0 every
// certificate chain starts from (spec §4.E step 1, "a small fixed prime of
// appropriate size").
var baseCertifiedPrime = bigint.FromInt64(11)

// smallWitnessBases are tried in order when searching for a Pocklington
// witness at each step.
var smallWitnessBases = []*bigint.Int{
	bigint.FromInt64(2),
	bigint.FromInt64(3),
	bigint.FromInt64(5),
	bigint.FromInt64(7),
}

// StepCert is one inductive step of a Pocklington certificate chain,
// proving N is prime given that Q (the previous step's certified prime, or
// the fixed base prime for the first step) divides N-1 along with a known
// factor of 2. Field names follow spec §3's 15-tuple; see buildStep for the
// construction (F = 2*Q, chosen so F is always both fully
// factored and, by construction of the cofactor M, greater than sqrt(N) —
// the classical Pocklington criterion).
type StepCert struct {
	F  *bigint.Int // known factor 2*Q
	N  *bigint.Int // candidate prime for this step
	N2 *bigint.Int // N - 1

	Nonce uint32 // nonce this step's cofactor was derived from, for Verify to recompute N

	A *bigint.Int // witness base

	BU, BV *bigint.Int // Bézout pair: BU*F + BV*PLessOneDivF == 1 (gcd(F, cofactor) == 1)

	V *bigint.Int // a^PLessOneDivTwo mod N, witness value for the "2" factor
	S *bigint.Int // a^(2*PLessOneDivF) mod N, witness value for the "Q" factor

	ExprSqrt *bigint.Int // floor(sqrt(N))

	PLessOneDivF   *bigint.Int // N2 / F, the unfactored cofactor
	PLessOneDivTwo *bigint.Int // N2 / 2

	BPDivF1, BPDivF2   *bigint.Int // Bézout pair proving gcd(S-1, N) == 1
	BPDivTwo1, BPDivTwo2 *bigint.Int // Bézout pair proving gcd(V-1, N) == 1
}

// Certificate is a chain of step certificates from the fixed base prime up
// to a final prime with at least the requested entropy. Each step carries
// its own nonce (spec §3), since the search below restarts the nonce from
// zero independently at every step.
type Certificate struct {
	Steps []StepCert
}

// Prime returns the certificate's final, highest-entropy certified prime.
func (c *Certificate) Prime() *bigint.Int {
	return c.Steps[len(c.Steps)-1].N
}

func stepInput(input []byte, step int, nonce uint32) []byte {
	var stepBytes [4]byte
	var nonceBytes [4]byte
	binary.BigEndian.PutUint32(stepBytes[:], uint32(step))
	binary.BigEndian.PutUint32(nonceBytes[:], nonce)
	return concat(input, stepBytes[:], nonceBytes[:])
}

// buildStep attempts to build one certified step extending qPrev, deriving
// the hash-bounded cofactor from input/step/nonce. It returns
// (cert, ok): ok is false when no witness base validates for this nonce,
// in which case the caller should retry with the next nonce.
func buildStep(input []byte, step int, nonce uint32, qPrev *bigint.Int) (StepCert, bool) {
	f := bigint.FromInt64(2).Mul(qPrev)

	// Bound the cofactor below F so that N = F*m+1 < F*F+1, guaranteeing
	// F > sqrt(N) (the Pocklington size requirement) by construction.
	raw := ExpandHash(stepInput(input, step, nonce), (qPrev.BitLen()/8)+32)
	m := bigint.FromBytesBE(raw).Mod(f)
	if m.IsZero() {
		m = bigint.One()
	}

	n := f.Mul(m).Add(bigint.One())
	n2 := n.Sub(bigint.One())

	bu, bv, gcd := bigint.ExtGCD(f, m)
	if gcd.Cmp(bigint.One()) != 0 {
		return StepCert{}, false
	}

	pLessOneDivF := m
	pLessOneDivTwo := qPrev.Mul(m)
	exprSqrt := n.Sqrt()

	for _, a := range smallWitnessBases {
		fermat := a.ModPow(n2, n)
		if fermat.Cmp(bigint.One()) != 0 {
			continue
		}
		v := a.ModPow(pLessOneDivTwo, n)
		s := a.ModPow(bigint.FromInt64(2).Mul(pLessOneDivF), n)

		vMinus1 := v.Sub(bigint.One())
		sMinus1 := s.Sub(bigint.One())

		bpTwo1, bpTwo2, gcdV := bigint.ExtGCD(vMinus1, n)
		if gcdV.Abs().Cmp(bigint.One()) != 0 {
			continue
		}
		bpF1, bpF2, gcdS := bigint.ExtGCD(sMinus1, n)
		if gcdS.Abs().Cmp(bigint.One()) != 0 {
			continue
		}

		return StepCert{
			F: f, N: n, N2: n2, Nonce: nonce, A: a,
			BU: bu, BV: bv,
			V: v, S: s,
			ExprSqrt:       exprSqrt,
			PLessOneDivF:   pLessOneDivF,
			PLessOneDivTwo: pLessOneDivTwo,
			BPDivF1: bpF1, BPDivF2: bpF2,
			BPDivTwo1: bpTwo1, BPDivTwo2: bpTwo2,
		}, true
	}
	return StepCert{}, false
}

// HashToPrime deterministically maps input to an odd prime of at least
// entropyBits, together with a verifiable Pocklington certificate chain
// (spec §4.E). A step only accepts a candidate with at least twice the bit
// length of the previous prime, so k steps from the 4-bit base prime reach at
// least 4*2^k bits. Returns ErrHashToPrimeExhausted if no certificate is found
// within params.MaxSteps steps of a 2^NonceSize-bounded search.
func HashToPrime(params Params, input []byte, entropyBits int) (*bigint.Int, *Certificate, error) {
	qPrev := baseCertifiedPrime
	var steps []StepCert

	maxNonce := uint32(1) << params.NonceSize
	for step := 1; step <= params.MaxSteps; step++ {
		found := false
		for nonce := uint32(0); nonce < maxNonce; nonce++ {
			cert, ok := buildStep(input, step, nonce, qPrev)
			if !ok || cert.N.BitLen() < 2*qPrev.BitLen() {
				continue
			}
			steps = append(steps, cert)
			qPrev = cert.N
			found = true
			if qPrev.BitLen() >= entropyBits {
				return qPrev, &Certificate{Steps: steps}, nil
			}
			break
		}
		if !found {
			return nil, nil, tcerr.ErrHashToPrimeExhausted
		}
	}
	if qPrev.BitLen() < entropyBits {
		return nil, nil, tcerr.ErrHashToPrimeExhausted
	}
	return qPrev, &Certificate{Steps: steps}, nil
}

// Verify recomputes every arithmetic relation in cert against input and
// rejects if any step's witness does not validate (spec §4.E
// "Verification recomputes each step ... and rejects if any step's
// arithmetic relation fails").
func Verify(input []byte, entropyBits int, cert *Certificate) (bool, error) {
	if len(cert.Steps) == 0 {
		return false, fmt.Errorf("pocklington: empty certificate: %w", tcerr.ErrInvalidCertificate)
	}
	qPrev := baseCertifiedPrime
	for i, s := range cert.Steps {
		if !verifyStep(input, i+1, qPrev, s) {
			return false, nil
		}
		qPrev = s.N
	}
	if qPrev.BitLen() < entropyBits {
		return false, nil
	}
	return true, nil
}

// verifyStep recomputes N from input/step/nonce exactly as buildStep derived
// it (spec §4.E "Verification recomputes each step from input and nonce"),
// then checks the Pocklington relations and witnesses against that
// recomputed value rather than trusting the certificate's stored N.
func verifyStep(input []byte, step int, qPrev *bigint.Int, s StepCert) bool {
	two := bigint.FromInt64(2)

	f := two.Mul(qPrev)
	if !s.F.Equal(f) {
		return false
	}
	raw := ExpandHash(stepInput(input, step, s.Nonce), (qPrev.BitLen()/8)+32)
	m := bigint.FromBytesBE(raw).Mod(f)
	if m.IsZero() {
		m = bigint.One()
	}
	recomputedN := f.Mul(m).Add(bigint.One())
	if !s.N.Equal(recomputedN) {
		return false
	}
	if !s.N2.Equal(s.N.Sub(bigint.One())) {
		return false
	}
	if !s.F.Mul(s.PLessOneDivF).Equal(s.N2) {
		return false
	}
	if !two.Mul(s.PLessOneDivTwo).Equal(s.N2) {
		return false
	}
	// expr_sqrt pins floor(sqrt(N)) without the verifier computing a
	// square root itself, then F > sqrt(N) is a cheap comparison.
	sq := s.ExprSqrt.Mul(s.ExprSqrt)
	sqPlusOne := s.ExprSqrt.Add(bigint.One())
	sqPlusOne = sqPlusOne.Mul(sqPlusOne)
	if sq.Cmp(s.N) > 0 || s.N.Cmp(sqPlusOne) >= 0 {
		return false
	}
	if s.F.Cmp(s.ExprSqrt) <= 0 {
		return false
	}

	// gcd(F, cofactor) == 1, checked via the supplied Bézout identity
	// instead of running gcd again.
	if !s.BU.Mul(s.F).Add(s.BV.Mul(s.PLessOneDivF)).Equal(bigint.One()) {
		return false
	}

	// Fermat witness over the full exponent.
	if !s.A.ModPow(s.N2, s.N).Equal(bigint.One()) {
		return false
	}

	// Recompute the two per-prime-factor witness values fresh (the stored
	// V/S are taken as the prover's claim and checked, not trusted).
	vCheck := s.A.ModPow(s.PLessOneDivTwo, s.N)
	if !vCheck.Equal(s.V) {
		return false
	}
	sCheck := s.A.ModPow(two.Mul(s.PLessOneDivF), s.N)
	if !sCheck.Equal(s.S) {
		return false
	}

	vMinus1 := s.V.Sub(bigint.One())
	if !s.BPDivTwo1.Mul(vMinus1).Add(s.BPDivTwo2.Mul(s.N)).Equal(bigint.One()) {
		return false
	}
	sMinus1 := s.S.Sub(bigint.One())
	if !s.BPDivF1.Mul(sMinus1).Add(s.BPDivF2.Mul(s.N)).Equal(bigint.One()) {
		return false
	}

	return true
}
