// Package vectorclock composes per-node reverse-entropy clocks (a
// hashclock.Clock or a pointclock.Clock, or any other type satisfying
// revclock.Backend) into a vector clock: a map from node identifier to
// that node's most recently accepted timestamp, with the usual
// happens-before / concurrent / incomparable causality predicates
// defined over the logical times alone.
//
// Clock is generic over the concrete per-node backend so that a
// deployment can choose hash chains, point chains, or (in principle)
// a custom Backend, while sharing one implementation of the vector
// composition, update bookkeeping, and wire format.
package vectorclock

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/zoobc/revclock/revclock"
)

// Clock tracks one Backend instance per node identifier, fixed at
// construction: no node may be added afterward. C is the concrete
// backend struct (hashclock.Clock, pointclock.Clock); PC constrains *C
// to implement revclock.Backend.
type Clock[C any, PC interface {
	*C
	revclock.Backend
}] struct {
	ID      uuid.UUID
	Self    string
	nodeIDs []string
	nodes   map[string]*C
}

// New creates an empty vector clock over exactly nodeIDs, identifying
// itself as self, with a fresh random outer identifier. self must be
// one of nodeIDs.
func New[C any, PC interface {
	*C
	revclock.Backend
}](nodeIDs []string, self string) *Clock[C, PC] {
	ids := append([]string(nil), nodeIDs...)
	nodes := make(map[string]*C, len(ids))
	for _, id := range ids {
		nodes[id] = new(C)
	}
	return &Clock[C, PC]{
		ID:      uuid.New(),
		Self:    self,
		nodeIDs: ids,
		nodes:   nodes,
	}
}

// Nodes returns the fixed set of node identifiers this vector clock
// was constructed with, in the order given to New.
func (vc *Clock[C, PC]) Nodes() []string {
	return append([]string(nil), vc.nodeIDs...)
}

// Known reports whether nodeID is a member of this vector clock and
// has been bootstrapped (explicitly, or implicitly by a prior Update).
func (vc *Clock[C, PC]) Known(nodeID string) bool {
	c, ok := vc.nodes[nodeID]
	return ok && PC(c).Initialized()
}

// Bootstrap explicitly registers nodeID's chain uuid. Calling it is
// optional: a node's uuid is derived automatically, the first time a
// timestamp from it is accepted, by chaining that timestamp's value
// forward to time zero. Bootstrap exists for callers who already know
// a peer's uuid out of band and want to verify against it from the
// start rather than trusting whatever is first offered.
func (vc *Clock[C, PC]) Bootstrap(nodeID string, chainUUID []byte) error {
	c, ok := vc.nodes[nodeID]
	if !ok {
		return fmt.Errorf("%w: %q", revclock.ErrUnknownNode, nodeID)
	}
	return PC(c).Bootstrap(chainUUID)
}

// bootstrapFirstTouch derives nodeID's uuid from the first timestamp
// it publishes -- by chaining ts's value forward ts.Time() steps to
// reach time zero -- if nodeID has not already been bootstrapped.
func bootstrapFirstTouch[C any, PC interface {
	*C
	revclock.Backend
}](c PC, ts revclock.Timestamp) error {
	if c.Initialized() {
		return nil
	}
	derived, err := c.ChainForward(ts.Bytes(), ts.Time())
	if err != nil {
		return err
	}
	return c.Bootstrap(derived)
}

// Update accepts ts as nodeID's new entry if it is a valid forward
// step. An unrecognized nodeID is rejected. A recognized but not yet
// bootstrapped node is bootstrapped on the spot, trusting ts's value
// chained forward to time zero as that node's uuid; this is the vector
// clock's first-touch policy and is why Update, unlike VerifyTimestamp,
// can accept the very first timestamp seen from a peer.
func (vc *Clock[C, PC]) Update(nodeID string, ts revclock.Timestamp) bool {
	c, ok := vc.nodes[nodeID]
	if !ok || ts == nil {
		return false
	}
	pc := PC(c)
	if err := bootstrapFirstTouch[C, PC](pc, ts); err != nil {
		return false
	}
	return pc.Update(ts)
}

// Advance is shorthand for Update(vc.Self, ts): folding in a new
// timestamp this node's own updater produced.
func (vc *Clock[C, PC]) Advance(ts revclock.Timestamp) bool {
	return vc.Update(vc.Self, ts)
}

// VerifyTimestamp reports whether ts is a valid timestamp for the
// named node, without accepting it. Unlike Update, this never
// bootstraps an unseen node: there is nothing yet to verify against.
func (vc *Clock[C, PC]) VerifyTimestamp(nodeID string, ts revclock.Timestamp) (bool, error) {
	c, ok := vc.nodes[nodeID]
	if !ok {
		return false, fmt.Errorf("%w: %q", revclock.ErrUnknownNode, nodeID)
	}
	pc := PC(c)
	if !pc.Initialized() {
		return false, nil
	}
	return pc.VerifyTimestamp(ts), nil
}

// VerifySelf reports whether every bootstrapped node's currently
// accepted state is still consistent with its own uuid.
func (vc *Clock[C, PC]) VerifySelf() bool {
	for _, c := range vc.nodes {
		if !PC(c).VerifySelf() {
			return false
		}
	}
	return true
}

// Read returns a TimestampMap snapshot of every node's most recently
// accepted entry, Unset for any node not yet bootstrapped.
func (vc *Clock[C, PC]) Read() TimestampMap {
	out := TimestampMap{UUID: [16]byte(vc.ID), Nodes: make(map[string]Entry, len(vc.nodeIDs))}
	for _, id := range vc.nodeIDs {
		ts, t, ok := PC(vc.nodes[id]).Read()
		if !ok {
			out.Nodes[id] = Unset
			continue
		}
		out.Nodes[id] = Entry{Time: int64(t), Value: ts.Bytes()}
	}
	return out
}

// VerifyTimestampMap reports whether in is a valid timestamp map for
// this vector clock: its outer uuid matches, every node-id it names is
// one of ours, and every set entry verifies against that node's chain.
func (vc *Clock[C, PC]) VerifyTimestampMap(in TimestampMap) bool {
	if in.UUID != [16]byte(vc.ID) {
		return false
	}
	for id, e := range in.Nodes {
		c, ok := vc.nodes[id]
		if !ok {
			return false
		}
		if !e.Set() {
			continue
		}
		pc := PC(c)
		if !pc.Initialized() {
			return false
		}
		if !pc.VerifyTimestamp(revclock.PlainTimestamp{Value: e.Value, T: uint32(e.Time)}) {
			return false
		}
	}
	return true
}

// UpdateMap folds every set entry of in into this vector clock, the
// same way Update does for a single node, rejecting the whole call if
// in's outer uuid doesn't match or it names a node-id we don't have.
// Individual entries that fail their per-node update are silently
// skipped, same as Update's own silent-rejection contract.
func (vc *Clock[C, PC]) UpdateMap(in TimestampMap) error {
	if in.UUID != [16]byte(vc.ID) {
		return fmt.Errorf("%w", revclock.ErrWrongUUID)
	}
	for id := range in.Nodes {
		if _, ok := vc.nodes[id]; !ok {
			return fmt.Errorf("%w: %q", revclock.ErrUnknownNode, id)
		}
	}
	for id, e := range in.Nodes {
		if !e.Set() {
			continue
		}
		vc.Update(id, revclock.PlainTimestamp{Value: e.Value, T: uint32(e.Time)})
	}
	return nil
}

// AdvanceMap accepts ts as nodeID's new entry, same as Update, and on
// success returns the full current TimestampMap -- the shape to
// publish to peers so they can fold this node's progress into their
// own vector clocks via UpdateMap.
func (vc *Clock[C, PC]) AdvanceMap(nodeID string, ts revclock.Timestamp) (TimestampMap, error) {
	if _, ok := vc.nodes[nodeID]; !ok {
		return TimestampMap{}, fmt.Errorf("%w: %q", revclock.ErrUnknownNode, nodeID)
	}
	if !vc.Update(nodeID, ts) {
		return TimestampMap{}, fmt.Errorf("%w: rejected timestamp for %q", revclock.ErrProgrammer, nodeID)
	}
	return vc.Read(), nil
}
