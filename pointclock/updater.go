// Package pointclock implements a reverse-entropy logical clock built
// from Ed25519 scalar doubling: a creator holds a secret seed and
// advances by revealing less-doubled points of the scalar it derives,
// while anyone holding only the point at time zero (the uuid, which
// doubles as the chain's Ed25519 public key) can verify that a later
// point is a genuine forward step -- and, if the creator chooses to
// sign with the scalar valid at that time, can verify an attached
// Ed25519 signature with an ordinary verifier.
package pointclock

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"

	"github.com/zoobc/revclock/primitives"
	"github.com/zoobc/revclock/revclock"
)

// rootSize is the width of the point chain's secret seed.
const rootSize = 32

// Updater holds the secret seed of a point chain and the bound it was
// set up with. Advance(t) is a pure function of (root, maxTime, t);
// the updater carries no mutable logical-time cursor.
type Updater struct {
	root    []byte
	maxTime uint32
}

// Setup creates a new Updater. If root is nil, a fresh 32-byte random
// seed is drawn; otherwise root must be exactly 32 bytes. maxTime
// bounds how far the chain can be advanced. The uuid returned
// alongside the Updater is the chain's time-zero point,
// recursive_next_point(pubkey_of(skey), maxTime), an ordinary Ed25519
// public key safe to publish.
func Setup(maxTime uint32, root []byte) (*Updater, []byte, error) {
	if root == nil {
		root = make([]byte, rootSize)
		if _, err := rand.Read(root); err != nil {
			return nil, nil, fmt.Errorf("%w: generating root: %v", revclock.ErrProgrammer, err)
		}
	} else if len(root) != rootSize {
		return nil, nil, fmt.Errorf("%w: root must be %d bytes, got %d", revclock.ErrProgrammer, rootSize, len(root))
	} else {
		cp := make([]byte, rootSize)
		copy(cp, root)
		root = cp
	}

	u := &Updater{root: root, maxTime: maxTime}
	uuid, err := u.pointAt(0)
	if err != nil {
		return nil, nil, err
	}
	return u, uuid, nil
}

// skey derives the chain's base scalar from the seed: clamp(sha512(H_small(root))[:32]).
func (u *Updater) skey() []byte {
	return primitives.DeriveKeyFromSeed(primitives.HSmall(u.root))
}

// scalarAt computes the scalar at logical time t: skey doubled (maxTime-t) times.
func (u *Updater) scalarAt(t uint32) ([]byte, error) {
	return primitives.RecursiveNextScalar(u.skey(), u.maxTime-t)
}

func (u *Updater) pointAt(t uint32) ([]byte, error) {
	s, err := u.scalarAt(t)
	if err != nil {
		return nil, err
	}
	return primitives.DerivePointFromScalar(s)
}

// MaxTime returns the bound passed to Setup.
func (u *Updater) MaxTime() uint32 { return u.maxTime }

// Advance returns the timestamp for logical time t: the point at t,
// recursive_next_point(pubkey_of(skey), maxTime-t). It fails if t
// exceeds maxTime.
func (u *Updater) Advance(t uint32) (revclock.PlainTimestamp, error) {
	if t > u.maxTime {
		return revclock.PlainTimestamp{}, fmt.Errorf("%w: advance(%d) exceeds max time %d", revclock.ErrProgrammer, t, u.maxTime)
	}
	point, err := u.pointAt(t)
	if err != nil {
		return revclock.PlainTimestamp{}, err
	}
	return revclock.PlainTimestamp{Value: point, T: t}, nil
}

// AdvanceAndSign is Advance plus a Schnorr signature over message,
// produced under the scalar valid at logical time t. The resulting
// signature verifies against the point also returned, using an
// ordinary Ed25519 verifier, without the verifier needing to know
// anything about the point chain.
func (u *Updater) AdvanceAndSign(t uint32, message []byte) (revclock.SignedTimestamp, error) {
	if t > u.maxTime {
		return revclock.SignedTimestamp{}, fmt.Errorf("%w: advance(%d) exceeds max time %d", revclock.ErrProgrammer, t, u.maxTime)
	}
	scalar, err := u.scalarAt(t)
	if err != nil {
		return revclock.SignedTimestamp{}, err
	}
	point, err := primitives.DerivePointFromScalar(scalar)
	if err != nil {
		return revclock.SignedTimestamp{}, err
	}
	sig, err := primitives.SignWithScalar(scalar, message, u.root)
	if err != nil {
		return revclock.SignedTimestamp{}, err
	}
	return revclock.SignedTimestamp{Value: point, T: t, Signature: sig}, nil
}

// Pack serializes the updater's secret state: max time then the seed.
func (u *Updater) Pack() []byte {
	out := make([]byte, 4+len(u.root))
	binary.BigEndian.PutUint32(out[0:4], u.maxTime)
	copy(out[4:], u.root)
	return out
}

// Unpack restores an updater from bytes produced by Pack.
func Unpack(data []byte) (*Updater, error) {
	if len(data) < 4+rootSize {
		return nil, fmt.Errorf("%w: pointclock updater state", revclock.ErrMalformedState)
	}
	return &Updater{
		maxTime: binary.BigEndian.Uint32(data[0:4]),
		root:    append([]byte(nil), data[4:4+rootSize]...),
	}, nil
}
