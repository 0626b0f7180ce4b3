package hashclock

import (
	"encoding/binary"
	"fmt"

	"github.com/zoobc/revclock/primitives"
	"github.com/zoobc/revclock/revclock"
)

// Clock is the public, verifier-held half of a hash clock: the
// terminal chain value (uuid) and the most recently accepted state.
// It implements revclock.Backend so it can be used directly, or as a
// vectorclock.Clock type parameter.
type Clock struct {
	uuid  []byte
	t     uint32
	value []byte
}

var _ revclock.Backend = (*Clock)(nil)

// Bootstrap records the chain's time-zero value (its uuid) and
// initializes state to (0, uuid). Calling Bootstrap again with a
// different uuid is rejected; calling it again with the same uuid is
// a silent no-op.
func (c *Clock) Bootstrap(uuid []byte) error {
	if c.uuid != nil {
		if !primitives.ConstantTimeEqual(c.uuid, uuid) {
			return fmt.Errorf("%w: hashclock already bootstrapped with a different uuid", revclock.ErrAlreadyInitialized)
		}
		return nil
	}
	cp := make([]byte, len(uuid))
	copy(cp, uuid)
	c.uuid = cp
	c.t = 0
	c.value = cp
	return nil
}

// Initialized reports whether Bootstrap (or Unpack) has run.
func (c *Clock) Initialized() bool { return c.uuid != nil }

// UUID returns the chain's time-zero value.
func (c *Clock) UUID() []byte { return c.uuid }

// Read returns the clock's current state, or ok=false before Bootstrap.
func (c *Clock) Read() (revclock.Timestamp, uint32, bool) {
	if !c.Initialized() {
		return nil, 0, false
	}
	return revclock.PlainTimestamp{Value: c.value, T: c.t}, c.t, true
}

// CanBeUpdated reports whether the clock's current chain value is
// still a genuine SHA-256 digest width. It is a property of the
// clock's own state, not of any candidate timestamp.
func (c *Clock) CanBeUpdated() bool {
	return c.Initialized() && len(c.value) == 32
}

// HasTerminated reports whether the clock's current chain value is
// shorter (or longer) than a SHA-256 digest, which can only happen
// once the chain has been advanced all the way to its root: since
// every intermediate chain value is itself a SHA-256 digest, a
// non-32-byte value can only be the root preimage itself. No further
// valid update can ever follow, since any new candidate's forward
// hash is always 32 bytes.
func (c *Clock) HasTerminated() bool {
	return c.Initialized() && len(c.value) != 32
}

// VerifySelf reports whether the clock's own accepted state is still
// consistent with its uuid: uuid == sha256^t(state.1). True
// (vacuously) before Bootstrap.
func (c *Clock) VerifySelf() bool {
	if !c.Initialized() {
		return true
	}
	got := primitives.RecursiveHash(c.value, c.t)
	return primitives.ConstantTimeEqual(got, c.uuid)
}

// VerifyTimestamp reports whether ts is a valid timestamp for this
// chain's uuid at all, independent of the clock's currently accepted
// state: uuid == sha256^t(ts.Value). Any structural malformation is
// rejected by returning false, never by panicking.
func (c *Clock) VerifyTimestamp(ts revclock.Timestamp) bool {
	if !c.Initialized() || ts == nil {
		return false
	}
	value := ts.Bytes()
	if len(value) == 0 {
		return false
	}
	got := primitives.RecursiveHash(value, ts.Time())
	return primitives.ConstantTimeEqual(got, c.uuid)
}

// Update accepts ts as the clock's new state if it is a genuine
// forward step from the current state: ts.T must exceed the current
// time, and hashing ts's value forward the difference must reach the
// current value. A terminated clock (current value not 32 bytes)
// naturally rejects every further update, since any candidate's
// forward hash is always exactly 32 bytes and can never match.
func (c *Clock) Update(ts revclock.Timestamp) bool {
	if !c.Initialized() || ts == nil {
		return false
	}
	value := ts.Bytes()
	t := ts.Time()
	if t <= c.t || len(value) == 0 {
		return false
	}
	got := primitives.RecursiveHash(value, t-c.t)
	if !primitives.ConstantTimeEqual(got, c.value) {
		return false
	}
	c.t = t
	c.value = append([]byte(nil), value...)
	return true
}

// ChainForward hashes value forward steps times.
func (c *Clock) ChainForward(value []byte, steps uint32) ([]byte, error) {
	return primitives.RecursiveHash(value, steps), nil
}

// Pack serializes the clock's public state: the current logical time,
// big-endian, followed by the current chain value.
func (c *Clock) Pack() []byte {
	out := make([]byte, 4+len(c.value))
	binary.BigEndian.PutUint32(out[0:4], c.t)
	copy(out[4:], c.value)
	return out
}

// Unpack replaces the clock's state from bytes produced by Pack,
// recomputing uuid as sha256^t(S).
func (c *Clock) Unpack(data []byte) error {
	if len(data) < 5 {
		return fmt.Errorf("%w: hashclock clock state", revclock.ErrMalformedState)
	}
	t := binary.BigEndian.Uint32(data[0:4])
	value := append([]byte(nil), data[4:]...)

	c.t = t
	c.value = value
	c.uuid = primitives.RecursiveHash(value, t)
	return nil
}
