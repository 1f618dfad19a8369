package pocklington

import "testing"

var testParams = Params{NonceSize: 12, MaxSteps: 6}

func TestHashToPrimeDeterministic(t *testing.T) {
	input := []byte("auction-42|bidder-7")
	p1, cert1, err := HashToPrime(testParams, input, 48)
	if err != nil {
		t.Fatalf("HashToPrime: %v", err)
	}
	p2, cert2, err := HashToPrime(testParams, input, 48)
	if err != nil {
		t.Fatalf("HashToPrime: %v", err)
	}
	if p1.Cmp(p2) != 0 {
		t.Fatalf("same input produced different primes: %v vs %v", p1, p2)
	}
	if len(cert1.Steps) != len(cert2.Steps) {
		t.Fatalf("same input produced certificates of different length")
	}
	ok, err := Verify(input, 48, cert1)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Fatalf("expected the honestly derived certificate to verify")
	}
}

func TestHashToPrimeMeetsEntropyBound(t *testing.T) {
	input := []byte("entropy-bound-check")
	p, _, err := HashToPrime(testParams, input, 40)
	if err != nil {
		t.Fatalf("HashToPrime: %v", err)
	}
	if p.BitLen() < 40 {
		t.Fatalf("returned prime has %d bits, want >= 40", p.BitLen())
	}
}

func TestVerifyRejectsWrongInput(t *testing.T) {
	input := []byte("input-a")
	_, cert, err := HashToPrime(testParams, input, 40)
	if err != nil {
		t.Fatalf("HashToPrime: %v", err)
	}
	ok, err := Verify([]byte("input-b"), 40, cert)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if ok {
		t.Fatalf("expected verification against a different input to fail")
	}
}

func TestVerifyRejectsTamperedStep(t *testing.T) {
	input := []byte("tamper-check")
	_, cert, err := HashToPrime(testParams, input, 40)
	if err != nil {
		t.Fatalf("HashToPrime: %v", err)
	}
	cert.Steps[0].A = cert.Steps[0].A.Add(cert.Steps[0].A)

	ok, err := Verify(input, 40, cert)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if ok {
		t.Fatalf("expected verification to fail after tampering with a step's witness base")
	}
}

func TestVerifyRejectsEmptyCertificate(t *testing.T) {
	_, err := Verify([]byte("x"), 40, &Certificate{})
	if err == nil {
		t.Fatalf("expected an error for an empty certificate")
	}
}

func TestExpandHashDeterministicAndLengthExact(t *testing.T) {
	out := ExpandHash([]byte("seed"), 97)
	if len(out) != 97 {
		t.Fatalf("expected exactly 97 bytes, got %d", len(out))
	}
	again := ExpandHash([]byte("seed"), 97)
	for i := range out {
		if out[i] != again[i] {
			t.Fatalf("ExpandHash is not deterministic at byte %d", i)
			break
		}
	}
}
