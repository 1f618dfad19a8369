// Package symmetric provides the authenticated-encryption primitive BasicTC
// uses to seal the bid under a key derived from a time-locked group element
// (spec §4.G, §9 "Open question — AEAD choice").
//
// Grounded on the teacher's ephemeral package, whose symmetric_key_test.go
// and box_test.go fix the expected shape: a `box` wrapping a 32-byte key,
// `encrypt`/`decrypt` methods, ciphertexts that differ across calls on the
// same plaintext (randomized nonce), and a sentinel failure on malformed
// input. The teacher derives that key from an ECDH shared secret
// (SymmetricEcdhKey.Ecdh, github.com/btcsuite/btcd/btcec); this module has no
// key-exchange step (spec §1 Non-goals: key management), so the ECDH layer
// is dropped and the key instead comes from HKDF-SHA256 over the hash of a
// HOG element, bound to the commitment's associated data (spec §9's AEAD
// decision). The box itself — golang.org/x/crypto's
// nacl/secretbox, XSalsa20-Poly1305 — is the teacher's own dependency
// (go.mod: golang.org/x/crypto), used the same way the teacher's (missing
// from the retrieval pack) box.go implementation must have: a random nonce
// prepended to the sealed output.
package symmetric

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/nacl/secretbox"

	"sealedauction.dev/tc/tcerr"
)

// KeySize is the secretbox key length in bytes.
const KeySize = 32

// DeriveKey derives the AEAD key from a time-locked group element's
// serialization and the commitment's associated data: k =
// HKDF-SHA256(SHA256(elementBytes), ad). Binding ad into the HKDF salt means
// any change to ad yields a different key and therefore a decryption
// failure, which is how this module satisfies spec §6's "mismatched ad ⇒
// open fails" without a native AD input to secretbox.
func DeriveKey(elementBytes, ad []byte) ([KeySize]byte, error) {
	seed := sha256.Sum256(elementBytes)
	var key [KeySize]byte
	kdf := hkdf.New(sha256.New, seed[:], ad, []byte("sealedauction.dev/tc/symmetric/key"))
	if _, err := io.ReadFull(kdf, key[:]); err != nil {
		return key, fmt.Errorf("symmetric: key derivation: %w", tcerr.ErrKeyDerivationFailed)
	}
	return key, nil
}

// Box holds a derived key and seals/opens messages under it with
// XSalsa20-Poly1305 (nacl/secretbox), matching the teacher's box idiom: a
// random 24-byte nonce is generated per call and prepended to the sealed
// output.
type Box struct {
	key [KeySize]byte
}

// NewBox wraps a derived key for repeated sealing/opening, the direct
// analogue of the teacher's newBox(sha256.Sum256(...)).
func NewBox(key [KeySize]byte) *Box { return &Box{key: key} }

// Seal encrypts plaintext under the box's key, returning nonce||ciphertext.
// Two calls on the same plaintext never produce the same output, since the
// nonce is freshly randomized each time (the teacher's
// TestBoxCiphertextRandomized expectation).
func (b *Box) Seal(plaintext []byte) ([]byte, error) {
	var nonce [24]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, fmt.Errorf("symmetric: nonce generation: %w", err)
	}
	out := secretbox.Seal(nonce[:], plaintext, &nonce, &b.key)
	return out, nil
}

// Open decrypts a nonce||ciphertext produced by Seal, returning
// ErrInvalidCiphertext (the teacher's "symmetric key decryption failed") on
// any authentication failure, truncated input, or key/ad mismatch.
func (b *Box) Open(sealed []byte) ([]byte, error) {
	if len(sealed) < 24 {
		return nil, fmt.Errorf("symmetric: ciphertext too short: %w", tcerr.ErrInvalidCiphertext)
	}
	var nonce [24]byte
	copy(nonce[:], sealed[:24])
	plaintext, ok := secretbox.Open(nil, sealed[24:], &nonce, &b.key)
	if !ok {
		return nil, fmt.Errorf("symmetric: authentication failed: %w", tcerr.ErrInvalidCiphertext)
	}
	return plaintext, nil
}
