package vectorclock

// Entry is one node's coordinate within a TimestampMap. Time is -1
// and Value is nil for a node that has not been bootstrapped yet, the
// Go rendering of the source's (-1, None) sentinel.
type Entry struct {
	Time  int64
	Value []byte
}

// Unset is the sentinel Entry for a node that has not been
// bootstrapped yet. A bootstrapped node that has published nothing
// reads as time 0, not Unset.
var Unset = Entry{Time: -1}

// Set reports whether this entry carries a real timestamp rather than
// the Unset sentinel.
func (e Entry) Set() bool { return e.Time >= 0 }

// TimestampMap is the shape Read, AdvanceMap, and UpdateMap exchange: an
// outer vector identifier plus one Entry per node-id. It is also the
// shape the causality predicates operate on -- they never look at a
// Clock directly, only at snapshots like this one.
type TimestampMap struct {
	UUID  [16]byte
	Nodes map[string]Entry
}
