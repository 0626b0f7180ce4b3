package pointclock

import (
	"crypto/ed25519"
	"encoding/binary"
	"fmt"

	"github.com/zoobc/revclock/primitives"
	"github.com/zoobc/revclock/revclock"
)

// Clock is the public, verifier-held half of a point chain: the point
// at time zero (uuid, also usable directly as an Ed25519 public key)
// and the most recently accepted state. Unlike a hash clock, a point
// clock never terminates: every chain value is a 32-byte compressed
// Ed25519 point, so there is no HasTerminated here.
type Clock struct {
	uuid  []byte
	t     uint32
	value []byte
}

var _ revclock.Backend = (*Clock)(nil)

// Bootstrap records the chain's time-zero point and initializes state
// to (0, uuid).
func (c *Clock) Bootstrap(uuid []byte) error {
	if c.uuid != nil {
		if !primitives.ConstantTimeEqual(c.uuid, uuid) {
			return fmt.Errorf("%w: pointclock already bootstrapped with a different uuid", revclock.ErrAlreadyInitialized)
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

// UUID returns the chain's time-zero point.
func (c *Clock) UUID() []byte { return c.uuid }

// Read returns the clock's current state, or ok=false before Bootstrap.
func (c *Clock) Read() (revclock.Timestamp, uint32, bool) {
	if !c.Initialized() {
		return nil, 0, false
	}
	return revclock.PlainTimestamp{Value: c.value, T: c.t}, c.t, true
}

// VerifySelf reports whether the clock's own accepted state is still
// consistent with its uuid: uuid == doubled(state.1, state.0). True
// (vacuously) before Bootstrap.
func (c *Clock) VerifySelf() bool {
	if !c.Initialized() {
		return true
	}
	got, err := primitives.RecursiveNextPoint(c.value, c.t)
	if err != nil {
		return false
	}
	return primitives.ConstantTimeEqual(got, c.uuid)
}

// VerifyTimestamp reports whether ts occupies a genuine position in
// this chain: uuid == doubled(ts.Value, ts.Time()). A malformed point
// encoding is rejected by returning false, never by panicking.
func (c *Clock) VerifyTimestamp(ts revclock.Timestamp) bool {
	if !c.Initialized() || ts == nil {
		return false
	}
	got, err := primitives.RecursiveNextPoint(ts.Bytes(), ts.Time())
	if err != nil {
		return false
	}
	return primitives.ConstantTimeEqual(got, c.uuid)
}

// VerifySignedTimestamp checks both that ts occupies a genuine
// position in the chain and that the attached signature verifies
// against ts's own point under message, using an ordinary Ed25519
// verifier. Any malformed input or crypto-library exception is caught
// and reported as false.
func (c *Clock) VerifySignedTimestamp(ts revclock.SignedTimestamp, message []byte) bool {
	if !c.VerifyTimestamp(ts) {
		return false
	}
	if len(ts.Value) != ed25519.PublicKeySize || len(ts.Signature) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(ts.Value), message, ts.Signature)
}

// Update accepts ts as the clock's new state if it is a genuine
// forward step from the current state: ts.T must exceed the current
// time, and doubling ts's value forward the difference must reach the
// current value.
func (c *Clock) Update(ts revclock.Timestamp) bool {
	if !c.Initialized() || ts == nil {
		return false
	}
	value := ts.Bytes()
	t := ts.Time()
	if t <= c.t {
		return false
	}
	got, err := primitives.RecursiveNextPoint(value, t-c.t)
	if err != nil {
		return false
	}
	if !primitives.ConstantTimeEqual(got, c.value) {
		return false
	}
	c.t = t
	c.value = append([]byte(nil), value...)
	return true
}

// ChainForward doubles value forward steps times.
func (c *Clock) ChainForward(value []byte, steps uint32) ([]byte, error) {
	return primitives.RecursiveNextPoint(value, steps)
}

// Pack serializes the clock's public state: the current logical time,
// big-endian, followed by the current point.
func (c *Clock) Pack() []byte {
	out := make([]byte, 4+len(c.value))
	binary.BigEndian.PutUint32(out[0:4], c.t)
	copy(out[4:], c.value)
	return out
}

// Unpack replaces the clock's state from bytes produced by Pack,
// recomputing uuid by doubling t times.
func (c *Clock) Unpack(data []byte) error {
	if len(data) < 5 {
		return fmt.Errorf("%w: pointclock clock state", revclock.ErrMalformedState)
	}
	t := binary.BigEndian.Uint32(data[0:4])
	value := append([]byte(nil), data[4:]...)

	uuid, err := primitives.RecursiveNextPoint(value, t)
	if err != nil {
		return fmt.Errorf("%w: %v", revclock.ErrMalformedState, err)
	}

	c.t = t
	c.value = value
	c.uuid = uuid
	return nil
}
