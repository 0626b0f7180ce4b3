package primitives

import (
	"bytes"
	"fmt"

	"filippo.io/edwards25519"
)

// RecursiveNextPoint applies Ed25519 point doubling (p <- p+p) n times
// to the compressed point p, validating first that p is the canonical
// encoding of a point on the curve.
func RecursiveNextPoint(p []byte, n uint32) ([]byte, error) {
	pt, err := edwards25519.NewIdentityPoint().SetBytes(p)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPoint, err)
	}
	if !bytes.Equal(pt.Bytes(), p) {
		return nil, fmt.Errorf("%w: non-canonical encoding", ErrInvalidPoint)
	}

	for i := uint32(0); i < n; i++ {
		pt = pt.Add(pt, pt)
	}

	out := make([]byte, 32)
	copy(out, pt.Bytes())
	return out, nil
}

// DerivePointFromScalar computes x*B, the compressed point
// corresponding to the clamped scalar x under the Ed25519 base point.
func DerivePointFromScalar(x []byte) ([]byte, error) {
	if len(x) != 32 {
		return nil, fmt.Errorf("%w: scalar must be 32 bytes, got %d", ErrInvalidScalar, len(x))
	}

	s, err := edwards25519.NewScalar().SetCanonicalBytes(reduceClamped(x))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScalar, err)
	}

	pt := edwards25519.NewIdentityPoint().ScalarBaseMult(s)

	out := make([]byte, 32)
	copy(out, pt.Bytes())
	return out, nil
}
