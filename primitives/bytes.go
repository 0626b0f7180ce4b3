package primitives

import "crypto/subtle"

// XOR combines two byte strings with bitwise exclusive-or, truncated to
// the length of the shorter input.
func XOR(b1, b2 []byte) []byte {
	n := len(b1)
	if len(b2) < n {
		n = len(b2)
	}
	b3 := make([]byte, n)
	for i := 0; i < n; i++ {
		b3[i] = b1[i] ^ b2[i]
	}
	return b3
}

// ConstantTimeEqual reports whether b1 and b2 hold the same bytes,
// without branching on their content. A length mismatch is reported
// immediately, since length is not considered secret in this protocol
// (chain values are fixed-size or provably terminated by their size).
func ConstantTimeEqual(b1, b2 []byte) bool {
	if len(b1) != len(b2) {
		return false
	}
	return subtle.ConstantTimeCompare(b1, b2) == 1
}
