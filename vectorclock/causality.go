package vectorclock

import (
	"fmt"

	"github.com/zoobc/revclock/revclock"
)

// AreIncomparable reports whether ts1 and ts2 have no causal relation
// defined between them: either they belong to different vector clock
// instances (mismatched outer uuid), or -- for the same instance --
// they share no node-id coordinate at all. Two timestamp maps that
// share at least one coordinate are always comparable, even if every
// other coordinate diverges.
func AreIncomparable(ts1, ts2 TimestampMap) bool {
	if ts1.UUID != ts2.UUID {
		return true
	}
	for id := range ts1.Nodes {
		if _, ok := ts2.Nodes[id]; ok {
			return false
		}
	}
	return true
}

// HappensBefore reports whether ts1 causally precedes ts2: for every
// node-id present in both maps, ts1's time there is never later than
// ts2's, and at least one is strictly earlier. Unset coordinates
// participate as ordinary values (their sentinel time of -1 precedes
// everything), and a node-id present in only one of the two maps
// contributes nothing to either direction.
//
// Calling this on a pair for which AreIncomparable is true is a
// programmer error -- happens-before is not defined there -- and
// fails loudly rather than guessing an answer.
func HappensBefore(ts1, ts2 TimestampMap) (bool, error) {
	if AreIncomparable(ts1, ts2) {
		return false, fmt.Errorf("%w: happens-before is undefined for incomparable timestamps", revclock.ErrIncomparable)
	}

	atLeastOneEarlier := false
	reverseCausality := false
	for id, e1 := range ts1.Nodes {
		e2, ok := ts2.Nodes[id]
		if !ok {
			continue
		}
		switch {
		case e1.Time < e2.Time:
			atLeastOneEarlier = true
		case e1.Time > e2.Time:
			reverseCausality = true
		}
	}
	return atLeastOneEarlier && !reverseCausality, nil
}

// AreConcurrent reports whether ts1 and ts2 are comparable but neither
// happens before the other.
func AreConcurrent(ts1, ts2 TimestampMap) (bool, error) {
	before, err := HappensBefore(ts1, ts2)
	if err != nil {
		return false, err
	}
	after, err := HappensBefore(ts2, ts1)
	if err != nil {
		return false, err
	}
	return !before && !after, nil
}
