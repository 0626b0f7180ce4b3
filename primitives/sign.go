package primitives

import (
	"crypto/sha512"
	"fmt"

	"filippo.io/edwards25519"
)

// HBig hashes the concatenation of parts with SHA-512, returning the
// full 64-byte digest. It is the "big" hash used wherever a uniform
// 64-byte value is needed, such as seeding a scalar via
// edwards25519.Scalar.SetUniformBytes.
func HBig(parts ...[]byte) []byte {
	h := sha512.New()
	for _, p := range parts {
		h.Write(p)
	}
	return h.Sum(nil)
}

// HSmall hashes the concatenation of parts down to a reduced Ed25519
// scalar: it is HBig followed by a reduction modulo the group order,
// i.e. it always produces a canonical 32-byte scalar regardless of
// what was hashed.
func HSmall(parts ...[]byte) []byte {
	s := edwards25519.NewScalar()
	// SetUniformBytes never errors on a 64-byte input.
	s.SetUniformBytes(HBig(parts...))
	out := make([]byte, 32)
	copy(out, s.Bytes())
	return out
}

// DeriveKeyFromSeed turns an arbitrary-length seed into a clamped
// Ed25519 private scalar, the same way a standard Ed25519 private key
// is derived from its 32-byte seed: SHA-512, keep the first half,
// clamp it.
func DeriveKeyFromSeed(seed []byte) []byte {
	h := sha512.Sum512(seed)
	return ClampFromPrivateKey(h[:32])
}

// SignWithScalar produces a Schnorr signature over m under the
// clamped private scalar x, in the style of EdDSA but without
// requiring x to be derived from a fixed-size seed the way
// crypto/ed25519 demands -- the whole point of a reverse-entropy
// point clock is that the scalar at a given logical time is itself
// the product of repeated doubling, not a key generated once and
// stored.
//
// If randSeed is empty, the nonce is derived deterministically from x
// and m (as RFC 8032 does from the private key and message), which
// keeps signing reproducible for tests and avoids any dependency on
// crypto/rand for this codepath.
func SignWithScalar(x, m, randSeed []byte) ([]byte, error) {
	if len(x) != 32 {
		return nil, fmt.Errorf("%w: scalar must be 32 bytes, got %d", ErrInvalidScalar, len(x))
	}

	xPoint, err := DerivePointFromScalar(x)
	if err != nil {
		return nil, err
	}

	seed := randSeed
	if len(seed) == 0 {
		seed = HSmall(x, m)
	}

	nonce := HBig(seed)[32:64]
	r := ClampScalarOnly(HSmall(HBig(nonce, m)))

	rPoint, err := DerivePointFromScalar(r)
	if err != nil {
		return nil, err
	}

	c := ClampScalarOnly(HSmall(rPoint, xPoint, m))

	rScalar, err := edwards25519.NewScalar().SetCanonicalBytes(reduceClamped(r))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScalar, err)
	}
	cScalar, err := edwards25519.NewScalar().SetCanonicalBytes(reduceClamped(c))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScalar, err)
	}
	xScalar, err := edwards25519.NewScalar().SetCanonicalBytes(reduceClamped(x))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScalar, err)
	}

	s := edwards25519.NewScalar().MultiplyAdd(cScalar, xScalar, rScalar)

	sig := make([]byte, 64)
	copy(sig[:32], rPoint)
	copy(sig[32:], s.Bytes())
	return sig, nil
}
