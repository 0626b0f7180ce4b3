// Package hashclock implements a reverse-entropy logical clock built
// from a SHA-256 hash chain: a creator holds a secret root preimage
// and advances by revealing shallower and shallower hashes of it,
// while anyone holding only the terminal hash (the uuid) can verify
// that each revealed value is a genuine, forward-only step in that
// chain.
package hashclock

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"

	"github.com/zoobc/revclock/primitives"
	"github.com/zoobc/revclock/revclock"
)

// defaultRootSize is the width of a freshly generated secret root
// when Setup is not given one explicitly.
const defaultRootSize = 16

// Updater holds the secret root of a hash chain and the bound it was
// set up with. Only the party that calls Setup ever holds an Updater;
// everyone else verifies against the chain's uuid with a Clock.
//
// Advance(t) is a pure function of (root, maxTime, t): an Updater
// carries no mutable logical-time cursor, so it can reproduce any
// earlier timestamp on demand.
type Updater struct {
	root    []byte
	maxTime uint32
}

// Setup creates a new Updater. If root is nil, a fresh
// defaultRootSize-byte random root is drawn; otherwise root is used
// as supplied, at whatever length the caller chose (conventionally 16
// bytes). maxTime bounds how far the chain can be advanced. The uuid
// returned alongside the Updater is the chain's terminal value at
// time zero, H^maxTime(root), safe to publish.
func Setup(maxTime uint32, root []byte) (*Updater, []byte, error) {
	if root == nil {
		root = make([]byte, defaultRootSize)
		if _, err := rand.Read(root); err != nil {
			return nil, nil, fmt.Errorf("%w: generating root: %v", revclock.ErrProgrammer, err)
		}
	} else {
		cp := make([]byte, len(root))
		copy(cp, root)
		root = cp
	}

	u := &Updater{root: root, maxTime: maxTime}
	return u, u.valueAt(0), nil
}

// valueAt computes the chain value at logical time t: H^(maxTime-t)(root).
func (u *Updater) valueAt(t uint32) []byte {
	return primitives.RecursiveHash(u.root, u.maxTime-t)
}

// MaxTime returns the bound passed to Setup.
func (u *Updater) MaxTime() uint32 { return u.maxTime }

// Advance returns the timestamp for logical time t: (t, H^(maxTime-t)(root)).
// It fails if t exceeds maxTime, since no such chain value exists.
func (u *Updater) Advance(t uint32) (revclock.PlainTimestamp, error) {
	if t > u.maxTime {
		return revclock.PlainTimestamp{}, fmt.Errorf("%w: advance(%d) exceeds max time %d", revclock.ErrProgrammer, t, u.maxTime)
	}
	return revclock.PlainTimestamp{Value: u.valueAt(t), T: t}, nil
}

// Pack serializes the updater's secret state: max time then root.
func (u *Updater) Pack() []byte {
	out := make([]byte, 4+len(u.root))
	binary.BigEndian.PutUint32(out[0:4], u.maxTime)
	copy(out[4:], u.root)
	return out
}

// Unpack restores an updater from bytes produced by Pack, recomputing
// nothing eagerly: uuid and every chain value are derived on demand
// from (root, maxTime).
func Unpack(data []byte) (*Updater, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("%w: hashclock updater state", revclock.ErrMalformedState)
	}
	return &Updater{
		maxTime: binary.BigEndian.Uint32(data[0:4]),
		root:    append([]byte(nil), data[4:]...),
	}, nil
}
