package revclock

// Backend is the capability a concrete clock (hashclock.Clock,
// pointclock.Clock) must expose to be usable as one node's entry in a
// vectorclock.Clock. It captures only the public half of a clock: a
// vector clock never holds any creator secret, only the verifiable
// state contributed by each participant.
//
// vectorclock.Clock is generic over a struct type C whose pointer
// implements Backend, so that it can default-construct a fresh *C for
// every node when the vector clock is created, and bootstrap each one
// later (see Bootstrap).
type Backend interface {
	// Bootstrap initializes the clock from a uuid, the chain value at
	// time zero. A freshly bootstrapped clock starts at state (0,
	// uuid); calling Bootstrap again with a different uuid is
	// rejected.
	Bootstrap(uuid []byte) error

	// Initialized reports whether Bootstrap (or Unpack) has run.
	Initialized() bool

	// Read returns the clock's currently accepted timestamp and the
	// logical time it belongs to. ok is false only before Bootstrap.
	Read() (ts Timestamp, time uint32, ok bool)

	// VerifySelf reports whether the clock's own accepted state is
	// still consistent with its uuid. It is true (vacuously) on an
	// uninitialized clock.
	VerifySelf() bool

	// VerifyTimestamp reports whether ts is a valid timestamp for
	// this clock's uuid, independent of whether it has already been
	// accepted. Malformed input is rejected by returning false, never
	// by panicking or returning an error.
	VerifyTimestamp(ts Timestamp) bool

	// Update advances the clock's accepted state to ts if ts is valid
	// and represents forward progress from the current state. It
	// reports whether the state changed. An invalid or non-advancing
	// ts is rejected silently: this is a verification outcome, not a
	// programmer error, so it never returns an error value.
	Update(ts Timestamp) bool

	// ChainForward applies this backend's one-way chain operation
	// (hash or point doubling) to value, steps times. vectorclock
	// uses this to recover a not-yet-bootstrapped node's uuid from
	// the first timestamp it publishes, without needing to know
	// anything about which concrete chain flavor is in play.
	ChainForward(value []byte, steps uint32) ([]byte, error)

	// Pack serializes the clock's current public state.
	Pack() []byte

	// Unpack replaces the clock's public state from previously packed
	// bytes.
	Unpack(data []byte) error
}
