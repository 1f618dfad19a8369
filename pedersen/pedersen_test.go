package pedersen

import (
	"crypto/rand"
	"math/big"
	"testing"

	"sealedauction.dev/tc/curve"
	"sealedauction.dev/tc/internal/testutils"
)

func TestCommitVerOpenRoundTrip(t *testing.T) {
	pp, err := GenParams(rand.Reader)
	if err != nil {
		t.Fatalf("GenParams: %v", err)
	}
	msg := []byte("bid: 42 wei")
	comm, r, err := Commit(rand.Reader, pp, msg)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	testutils.AssertBoolsEqual(t, "honest open", true, VerOpen(pp, comm, msg, r))
}

func TestVerOpenRejectsTamperedMessage(t *testing.T) {
	pp, _ := GenParams(rand.Reader)
	msg := []byte("bid: 42 wei")
	comm, r, _ := Commit(rand.Reader, pp, msg)

	tampered := append([]byte{}, msg...)
	tampered[0] ^= 0x01
	testutils.AssertBoolsEqual(t, "tampered message open", false, VerOpen(pp, comm, tampered, r))
}

func TestVerOpenRejectsTamperedRandomness(t *testing.T) {
	pp, _ := GenParams(rand.Reader)
	msg := []byte("bid: 42 wei")
	comm, r, _ := Commit(rand.Reader, pp, msg)

	tamperedR := new(big.Int).Add(r, big.NewInt(1))
	testutils.AssertBoolsEqual(t, "tampered randomness open", false, VerOpen(pp, comm, msg, tamperedR))
}

func TestGenParamsGAndHAreIndependent(t *testing.T) {
	pp, _ := GenParams(rand.Reader)
	if curve.Equal(pp.G, pp.H) {
		t.Fatalf("g and h must not be the same generator value")
	}
}

func TestGenParamsDeterministicH(t *testing.T) {
	pp1, _ := GenParams(rand.Reader)
	pp2, _ := GenParams(rand.Reader)
	if pp1.H.X.Cmp(pp2.H.X) != 0 || pp1.H.Y.Cmp(pp2.H.Y) != 0 {
		t.Fatalf("GenParams' h generator must be reproducible across calls")
	}
}
