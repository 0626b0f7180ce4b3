package revclock

import "errors"

// ErrProgrammer marks an error that indicates misuse of the API by
// the calling code -- a malformed argument, an operation attempted
// before setup -- rather than a cryptographic or causality failure.
// The two classes are told apart by whether an error is returned at
// all: a returned error is a bug to fix in the caller, while a plain
// false return from Update/Verify/CanBeUpdated is an expected outcome
// of the protocol (an attacker, a stale message, a foreign chain) and
// is never an error. ErrProgrammer itself wraps only the errors built
// from it (such as Advance beyond max time); the other sentinels below
// are separate values that do not wrap it, so match them with
// errors.Is on the specific sentinel.
var ErrProgrammer = errors.New("revclock: programmer error")

// ErrNotInitialized is returned when an operation that requires
// Bootstrap to have run is attempted on a zero-value clock.
var ErrNotInitialized = errors.New("revclock: clock not initialized")

// ErrAlreadyInitialized is returned by Bootstrap when called on a
// clock that has already been bootstrapped with a different uuid.
var ErrAlreadyInitialized = errors.New("revclock: clock already initialized")

// ErrMalformedState is returned by Unpack when the supplied bytes do
// not decode to a valid packed clock state.
var ErrMalformedState = errors.New("revclock: malformed packed state")

// ErrUnknownNode is returned when an operation names a vector clock
// node-id outside the fixed set it was set up with.
var ErrUnknownNode = errors.New("revclock: unknown vector clock node")

// ErrWrongUUID is returned when a vector clock timestamp map carries
// an outer uuid that does not match the receiving vector clock's own.
var ErrWrongUUID = errors.New("revclock: vector clock uuid mismatch")

// ErrIncomparable is returned by the causality predicates when asked
// to order two timestamp maps that carry different outer uuids or share
// no coordinate -- calling happens-before on such a pair is a
// programmer error.
var ErrIncomparable = errors.New("revclock: timestamps are incomparable")
