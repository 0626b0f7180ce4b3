package vectorclock

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/zoobc/revclock/revclock"
)

// Pack serializes the vector clock to canonical JSON: a flat object
// with an "uuid" key (lowercase hex of the 16-byte outer identifier)
// plus one key per node, itself lowercase hex of the node-id bytes,
// whose value is lowercase hex of that node's inner Pack() or null for
// a node never bootstrapped. encoding/json sorts object keys
// lexicographically and emits no insignificant whitespace by default,
// which is exactly this format's canonical form; SetEscapeHTML(false)
// keeps the encoder from rewriting bytes that happen to collide with
// HTML metacharacters, though hex digests never contain any.
func (vc *Clock[C, PC]) Pack() ([]byte, error) {
	out := make(map[string]*string, len(vc.nodeIDs)+1)

	uuidHex := hex.EncodeToString(vc.ID[:])
	out["uuid"] = &uuidHex

	for _, id := range vc.nodeIDs {
		key := hex.EncodeToString([]byte(id))
		c := PC(vc.nodes[id])
		if !c.Initialized() {
			out[key] = nil
			continue
		}
		packedHex := hex.EncodeToString(c.Pack())
		out[key] = &packedHex
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Unpack decodes bytes produced by Pack into a fresh Clock identifying
// itself as self. The node-id set is exactly whatever keys (other than
// "uuid") were present in data, in sorted order.
func Unpack[C any, PC interface {
	*C
	revclock.Backend
}](data []byte, self string) (*Clock[C, PC], error) {
	var raw map[string]*string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: vector clock json: %v", revclock.ErrMalformedState, err)
	}

	uuidHexPtr, ok := raw["uuid"]
	if !ok || uuidHexPtr == nil {
		return nil, fmt.Errorf("%w: vector clock missing uuid", revclock.ErrMalformedState)
	}
	uuidBytes, err := hex.DecodeString(*uuidHexPtr)
	if err != nil || len(uuidBytes) != 16 {
		return nil, fmt.Errorf("%w: vector clock malformed uuid", revclock.ErrMalformedState)
	}
	delete(raw, "uuid")

	hexIDs := make([]string, 0, len(raw))
	for k := range raw {
		hexIDs = append(hexIDs, k)
	}
	sort.Strings(hexIDs)

	vc := &Clock[C, PC]{
		Self:    self,
		nodeIDs: make([]string, 0, len(hexIDs)),
		nodes:   make(map[string]*C, len(hexIDs)),
	}
	copy(vc.ID[:], uuidBytes)

	for _, hx := range hexIDs {
		idBytes, err := hex.DecodeString(hx)
		if err != nil {
			return nil, fmt.Errorf("%w: vector clock malformed node id %q", revclock.ErrMalformedState, hx)
		}
		nodeID := string(idBytes)

		c := new(C)
		if raw[hx] != nil {
			packed, err := hex.DecodeString(*raw[hx])
			if err != nil {
				return nil, fmt.Errorf("%w: vector clock malformed entry for node %q", revclock.ErrMalformedState, nodeID)
			}
			if err := PC(c).Unpack(packed); err != nil {
				return nil, err
			}
		}
		vc.nodeIDs = append(vc.nodeIDs, nodeID)
		vc.nodes[nodeID] = c
	}
	return vc, nil
}
