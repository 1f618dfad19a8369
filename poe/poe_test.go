package poe

import (
	"testing"

	"sealedauction.dev/tc/bigint"
	"sealedauction.dev/tc/hog"
	"sealedauction.dev/tc/pocklington"
)

// testModulus is the RSA-2048 challenge number, matching the reference
// crate's TestRsaParams::M fixture.
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

var testParams = Params{
	PocklingtonParams: pocklington.Params{NonceSize: 10, MaxSteps: 5},
	HashToPrimeEntropy: 64,
}

func TestProveVerifyRoundTrip(t *testing.T) {
	params := hog.NewParams(testModulus(t), bigint.FromInt64(2))
	x := params.Generator()
	const T = 24
	y := x
	for i := 0; i < T; i++ {
		y = y.Op(y)
	}

	proof, err := Prove(testParams, x, y, T)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	ok, err := Verify(testParams, x, y, T, proof)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Fatalf("expected an honest PoE to verify")
	}
}

func TestVerifyRejectsWrongY(t *testing.T) {
	params := hog.NewParams(testModulus(t), bigint.FromInt64(2))
	x := params.Generator()
	const T = 16
	y := x
	for i := 0; i < T; i++ {
		y = y.Op(y)
	}
	proof, err := Prove(testParams, x, y, T)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}

	wrongY, err := params.FromNat(bigint.FromInt64(12345))
	if err != nil {
		t.Fatalf("FromNat: %v", err)
	}
	ok, err := Verify(testParams, x, wrongY, T, proof)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if ok {
		t.Fatalf("expected verification against a tampered y to fail")
	}
}

func TestVerifyRejectsWrongT(t *testing.T) {
	params := hog.NewParams(testModulus(t), bigint.FromInt64(2))
	x := params.Generator()
	const T = 16
	y := x
	for i := 0; i < T; i++ {
		y = y.Op(y)
	}
	proof, err := Prove(testParams, x, y, T)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	ok, err := Verify(testParams, x, y, T+1, proof)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if ok {
		t.Fatalf("expected verification against a tampered T to fail")
	}
}

func TestVerifyRejectsTamperedQ(t *testing.T) {
	params := hog.NewParams(testModulus(t), bigint.FromInt64(2))
	x := params.Generator()
	const T = 16
	y := x
	for i := 0; i < T; i++ {
		y = y.Op(y)
	}
	proof, err := Prove(testParams, x, y, T)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	proof.Q = proof.Q.Op(x)

	ok, err := Verify(testParams, x, y, T, proof)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if ok {
		t.Fatalf("expected verification against a tampered q to fail")
	}
}
