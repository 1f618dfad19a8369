package curve

import (
	"bytes"
	"crypto/rand"
	"math/big"
	"testing"
)

func TestScalarBaseMultMatchesAddChain(t *testing.T) {
	g := Generator()
	threeG := Add(Add(g, g), g)
	viaScalar := ScalarBaseMult(big.NewInt(3))
	if !Equal(threeG, viaScalar) {
		t.Fatalf("3*G via repeated Add != ScalarBaseMult(3)")
	}
}

func TestIdentityIsAddIdentity(t *testing.T) {
	g := Generator()
	if !Equal(Add(g, Identity()), g) {
		t.Fatalf("g + identity != g")
	}
	if !IsIdentity(Add(g, ScalarMult(g, new(big.Int).Sub(Order(), big.NewInt(1))))) {
		// g + (n-1)*g == n*g == identity
		t.Fatalf("expected g + (n-1)*g to be identity")
	}
}

func TestBytesRoundTrip(t *testing.T) {
	g := ScalarBaseMult(big.NewInt(12345))
	b := g.Bytes()
	got := PointFromBytes(b)
	if !Equal(g, got) {
		t.Fatalf("round trip through Bytes/PointFromBytes changed the point")
	}
}

func TestIdentityBytesRoundTrip(t *testing.T) {
	b := Identity().Bytes()
	if !bytes.Equal(b, make([]byte, 64)) {
		t.Fatalf("expected identity to serialize as 64 zero bytes")
	}
	if !IsIdentity(PointFromBytes(b)) {
		t.Fatalf("expected zero bytes to parse back to identity")
	}
}

func TestSampleScalarInRange(t *testing.T) {
	for i := 0; i < 64; i++ {
		s, err := SampleScalar(rand.Reader)
		if err != nil {
			t.Fatalf("SampleScalar: %v", err)
		}
		if s.Sign() <= 0 || s.Cmp(Order()) >= 0 {
			t.Fatalf("sampled scalar out of range: %v", s)
		}
	}
}

func TestHashToCurveIsOnCurveAndDeterministic(t *testing.T) {
	p1 := HashToCurve([]byte("sealed-auction/pedersen/h"))
	p2 := HashToCurve([]byte("sealed-auction/pedersen/h"))
	if !Equal(p1, p2) {
		t.Fatalf("HashToCurve is not deterministic")
	}
	other := HashToCurve([]byte("different tag"))
	if Equal(p1, other) {
		t.Fatalf("different tags produced the same point")
	}
}

func TestReduceScalarBounded(t *testing.T) {
	big32 := bytes.Repeat([]byte{0xff}, 64)
	s := ReduceScalar(big32)
	if s.Cmp(Order()) >= 0 {
		t.Fatalf("ReduceScalar did not bound result below Order")
	}
}
