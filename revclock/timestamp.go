// Package revclock holds the contracts shared by the hashclock and
// pointclock packages, and by anything generic over either flavor
// (vectorclock): the Timestamp tagged union and the Backend interface
// a concrete clock must satisfy to be usable as a vector clock entry.
package revclock

// Timestamp is a single entry in a clock's proof chain: a value that
// the creator's Updater can produce at a given logical time, and that
// the public half of the clock can verify without any secret state.
//
// A hash clock's timestamps are always PlainTimestamp (a chain value
// and nothing else). A point clock's timestamps are PlainTimestamp
// when unsigned and SignedTimestamp when produced by AdvanceAndSign.
// Modeling this as a closed interface with an unexported marker
// method, rather than a struct with an optional signature field,
// keeps "was this signed" a type-level question instead of a
// nil-check one.
type Timestamp interface {
	isTimestamp()
	// Bytes returns the chain value itself, independent of whether a
	// signature is attached.
	Bytes() []byte
	// Time returns the logical time this chain value is claimed to
	// belong to. A clock's chain is one-way, so the claimed time is
	// carried alongside the value rather than recomputed from it: a
	// verifier checks the claim by hashing (or doubling) the value
	// forward the claimed number of steps and comparing against known
	// state.
	Time() uint32
}

// PlainTimestamp is a chain value with no attached signature.
type PlainTimestamp struct {
	Value []byte
	T     uint32
}

func (PlainTimestamp) isTimestamp() {}

// Bytes returns the chain value.
func (t PlainTimestamp) Bytes() []byte { return t.Value }

// Time returns the claimed logical time.
func (t PlainTimestamp) Time() uint32 { return t.T }

// SignedTimestamp is a point-chain value together with a signature
// over a message known to both signer and verifier. The message
// itself is deliberately not a field here: it travels as a separate
// argument to VerifySignedTimestamp, the same way the chain triple
// (t, P, sigma) carries no message of its own.
type SignedTimestamp struct {
	Value     []byte
	T         uint32
	Signature []byte
}

func (SignedTimestamp) isTimestamp() {}

// Bytes returns the chain value, discarding the signature.
func (t SignedTimestamp) Bytes() []byte { return t.Value }

// Time returns the claimed logical time.
func (t SignedTimestamp) Time() uint32 { return t.T }
