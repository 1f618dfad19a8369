package hog

import (
	"testing"

	"sealedauction.dev/tc/bigint"
	"sealedauction.dev/tc/internal/testutils"
	"sealedauction.dev/tc/tcerr"
)

// testModulus is the RSA-2048 challenge number, matching the reference
// crate's TestRsaParams::M fixture (rsa/src/hog/rsa_hidden_order_group.rs),
// used throughout spec §8's numbered end-to-end scenarios.
func testModulus(t *testing.T) *bigint.Int {
	t.Helper()
	m, err := bigint.FromDecimal(
		"25195908475657893494027183240048398571429282126204032027777137836043662020707" +
			"5955562640185258807844069182906412495150821892985591491761845028084891200728" +
			"4499268739280728777673597141834727026189637501497182469116507761337985909570" +
			"0097330459748808428401797429100642458691817195118746121515172654632282216869" +
			"9875491824224336372590851418654620435767984233871847744479207399342365848238" +
			"2428119816381501067481045166037730605620161967625613384414360383390441495263" +
			"4432190114657544454178424020924616515723350778707749817125772467962926386356" +
			"3732899121548314381678998850404453640235273819513786365643912120103971228221" +
			"20720357",
	)
	if err != nil {
		t.Fatalf("parsing test modulus: %v", err)
	}
	return m
}

func TestSignedCanonicalFolding(t *testing.T) {
	m := testModulus(t)
	params := NewParams(m, bigint.FromInt64(2))

	a, err := params.FromNat(bigint.FromInt64(30))
	if err != nil {
		t.Fatalf("FromNat(30): %v", err)
	}
	mMinus30 := m.Sub(bigint.FromInt64(30))
	aFolded, err := params.FromNat(mMinus30)
	if err != nil {
		t.Fatalf("FromNat(M-30): %v", err)
	}
	if !a.Equal(aFolded) {
		t.Fatalf("from_nat(30) and from_nat(M-30) must fold to the same element")
	}
	if a.N().Sign() < 0 {
		t.Fatalf("folded representative must be non-negative")
	}
	half := m.Div(bigint.FromInt64(2))
	if a.N().Cmp(half) > 0 {
		t.Fatalf("folded representative must be <= M/2")
	}
}

func TestSignedGroupLaws(t *testing.T) {
	m := testModulus(t)
	params := NewParams(m, bigint.FromInt64(2))

	a, err := params.FromNat(bigint.FromInt64(12345))
	if err != nil {
		t.Fatalf("FromNat: %v", err)
	}
	id := params.Identity()

	if !a.Op(id).Equal(a) {
		t.Fatalf("op(a, identity) != a")
	}
	inv, err := a.Inverse()
	if err != nil {
		t.Fatalf("Inverse: %v", err)
	}
	if !a.Op(inv).Equal(id) {
		t.Fatalf("op(a, inverse(a)) != identity")
	}

	b, err := params.FromNat(bigint.FromInt64(999))
	if err != nil {
		t.Fatalf("FromNat: %v", err)
	}
	if !a.Op(b).Equal(b.Op(a)) {
		t.Fatalf("op must be commutative")
	}
	c, err := params.FromNat(bigint.FromInt64(42))
	if err != nil {
		t.Fatalf("FromNat: %v", err)
	}
	if !a.Op(b).Op(c).Equal(a.Op(b.Op(c))) {
		t.Fatalf("op must be associative")
	}
}

func TestSignedExponentLaws(t *testing.T) {
	m := testModulus(t)
	params := NewParams(m, bigint.FromInt64(2))
	a, err := params.FromNat(bigint.FromInt64(777))
	if err != nil {
		t.Fatalf("FromNat: %v", err)
	}

	if !a.Power(bigint.Zero()).Equal(params.Identity()) {
		t.Fatalf("power(a, 0) != identity")
	}
	if !a.Power(bigint.One()).Equal(a) {
		t.Fatalf("power(a, 1) != a")
	}
	i := bigint.FromInt64(5)
	j := bigint.FromInt64(7)
	lhs := a.Power(i).Power(j)
	rhs := a.Power(i.Mul(j))
	if !lhs.Equal(rhs) {
		t.Fatalf("power(power(a, i), j) != power(a, i*j)")
	}
}

// TestSignedInverseScenario is spec §8 end-to-end scenario 1.
func TestSignedInverseScenario(t *testing.T) {
	m := testModulus(t)
	params := NewParams(m, bigint.FromInt64(2))

	a, err := params.FromNat(bigint.FromInt64(30))
	if err != nil {
		t.Fatalf("FromNat: %v", err)
	}
	inv, err := a.Inverse()
	if err != nil {
		t.Fatalf("Inverse: %v", err)
	}
	if a.Op(inv).N().Cmp(bigint.One()) != 0 {
		t.Fatalf("op(a, inverse(a)).n != 1")
	}
}

// TestSignedOpWrapsScenario is spec §8 end-to-end scenario 2: a = M-30,
// b = 40; op(a, b).n == 1200 after folding (not M-1200).
func TestSignedOpWrapsScenario(t *testing.T) {
	m := testModulus(t)
	params := NewParams(m, bigint.FromInt64(2))

	a, err := params.FromNat(m.Sub(bigint.FromInt64(30)))
	if err != nil {
		t.Fatalf("FromNat: %v", err)
	}
	b, err := params.FromNat(bigint.FromInt64(40))
	if err != nil {
		t.Fatalf("FromNat: %v", err)
	}
	got := a.Op(b)
	want := bigint.FromInt64(1200)
	if got.N().Cmp(want) != 0 {
		t.Fatalf("op((M-30), 40).n = %v, want 1200", got.N())
	}
}

// TestUnsignedOpScenario is spec §8 end-to-end scenario 3: the same inputs
// in Z_M^* yield M-1200, not folded.
func TestUnsignedOpScenario(t *testing.T) {
	m := testModulus(t)
	params := NewParamsNoGenerator(m)

	a, err := params.FromNatUnsigned(m.Sub(bigint.FromInt64(30)))
	if err != nil {
		t.Fatalf("FromNatUnsigned: %v", err)
	}
	b, err := params.FromNatUnsigned(bigint.FromInt64(40))
	if err != nil {
		t.Fatalf("FromNatUnsigned: %v", err)
	}
	got := a.Op(b)
	want := m.Sub(bigint.FromInt64(1200))
	if got.N().Cmp(want) != 0 {
		t.Fatalf("unsigned op((M-30), 40).n = %v, want M-1200", got.N())
	}
}

// TestUnsignedDistinguishesSign is spec §8 end-to-end scenario 4: unlike the
// signed variant, from_nat(30) != from_nat(M-30) when unfolded.
func TestUnsignedDistinguishesSign(t *testing.T) {
	m := testModulus(t)
	params := NewParamsNoGenerator(m)

	a, err := params.FromNatUnsigned(bigint.FromInt64(30))
	if err != nil {
		t.Fatalf("FromNatUnsigned: %v", err)
	}
	b, err := params.FromNatUnsigned(m.Sub(bigint.FromInt64(30)))
	if err != nil {
		t.Fatalf("FromNatUnsigned: %v", err)
	}
	if a.Equal(b) {
		t.Fatalf("unsigned variant must not fold 30 and M-30 to the same element")
	}
}

func TestUnsignedGeneratorAbsentIsNotCyclic(t *testing.T) {
	m := testModulus(t)
	params := NewParamsNoGenerator(m)
	if _, err := params.GeneratorUnsigned(); err == nil {
		t.Fatalf("expected ErrNotCyclic when no generator is configured")
	}
}

func TestFromNatRejectsNonPositive(t *testing.T) {
	m := testModulus(t)
	params := NewParams(m, bigint.FromInt64(2))
	_, err := params.FromNat(bigint.Zero())
	testutils.AssertErrorsSame(t, "from_nat(0) error", tcerr.ErrArgumentOutOfRange, err)
}

func TestInverseOfNonUnitFails(t *testing.T) {
	// M = p*q with tiny p, q: the factor p itself shares a nontrivial gcd
	// with M and so has no inverse.
	p := bigint.FromInt64(83)
	q := bigint.FromInt64(89)
	m := p.Mul(q)
	params := NewParams(m, bigint.FromInt64(2))

	a, err := params.FromNat(p)
	if err != nil {
		t.Fatalf("FromNat: %v", err)
	}
	_, err = a.Inverse()
	testutils.AssertErrorsSame(t, "inverse of a non-unit", tcerr.ErrNotInvertible, err)
}

func TestDefaultIsFoldedTwo(t *testing.T) {
	m := testModulus(t)
	params := NewParams(m, bigint.FromInt64(2))
	two, err := params.FromNat(bigint.FromInt64(2))
	if err != nil {
		t.Fatalf("FromNat(2): %v", err)
	}
	if !params.Default().Equal(two) {
		t.Fatalf("Default() must equal the folded representative of 2")
	}
}
