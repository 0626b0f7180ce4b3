package primitives

import (
	"fmt"
	"math/big"

	"filippo.io/edwards25519"
)

// groupOrder is l, the order of the Ed25519 base point:
//
//	l = 2^252 + 27742317777372353535851937790883648493
//
// RFC 8032 section 5.1. A "clamped" private scalar (see
// ClampFromPrivateKey) is never itself reduced modulo l -- that's the
// point of clamping -- so reduceClamped is the one place this module
// reaches for math/big instead of filippo.io/edwards25519: the library
// deliberately only accepts scalars that are already < l, and the
// clamped root scalar a reverse-entropy point clock is built from is
// always somewhat larger than that.
var groupOrder = func() *big.Int {
	n, ok := new(big.Int).SetString("1000000000000000000000000000000014def9dea2f79cd65812631a5cf5d3ed", 16)
	if !ok {
		panic("primitives: malformed group order constant")
	}
	return n
}()

// ClampFromPrivateKey applies the Ed25519 "clamping from a private
// key" transform: clear the low 3 bits of byte 0, clear bit 255 and
// set bit 254 of byte 31. The result is a valid scalar multiplier for
// ScalarBaseMult, but is deliberately not reduced modulo the group
// order.
func ClampFromPrivateKey(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	out[0] &= 0b1111_1000
	out[31] &= 0b0111_1111
	out[31] |= 0b0100_0000
	return out
}

// ClampScalarOnly clears bit 255 of byte 31 and nothing else. Used on
// values that are already reduced modulo the group order (and so
// already have bit 255 clear), where the spec still calls for the
// clamp step for uniformity with the clamping defined in RFC 8032.
func ClampScalarOnly(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	out[31] &= 0b0111_1111
	return out
}

// reduceClamped reduces a little-endian 32-byte scalar modulo the
// group order, returning a canonical little-endian scalar usable with
// edwards25519.Scalar.SetCanonicalBytes.
func reduceClamped(b []byte) []byte {
	be := make([]byte, len(b))
	for i, v := range b {
		be[len(b)-1-i] = v
	}
	n := new(big.Int).SetBytes(be)
	n.Mod(n, groupOrder)

	nbBE := n.Bytes()
	out := make([]byte, 32)
	copy(out[32-len(nbBE):], nbBE)
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// RecursiveNextScalar applies Ed25519 scalar doubling (x <- x+x mod l)
// n times to x, which must be a 32-byte scalar (clamped or already
// reduced; both are accepted, matching the source's looser length-only
// validation).
func RecursiveNextScalar(x []byte, n uint32) ([]byte, error) {
	if len(x) != 32 {
		return nil, fmt.Errorf("%w: scalar must be 32 bytes, got %d", ErrInvalidScalar, len(x))
	}

	s, err := edwards25519.NewScalar().SetCanonicalBytes(reduceClamped(x))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScalar, err)
	}

	for i := uint32(0); i < n; i++ {
		s = s.Add(s, s)
	}

	out := make([]byte, 32)
	copy(out, s.Bytes())
	return out, nil
}
