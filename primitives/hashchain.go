package primitives

import "crypto/sha256"

// RecursiveHash applies SHA-256 to preimage n times, n == 0 returning
// preimage unchanged. This is the one-way direction of a hash clock's
// chain: given the value at time t, the value at time t-1 is its
// SHA-256 digest.
func RecursiveHash(preimage []byte, n uint32) []byte {
	state := preimage
	for i := uint32(0); i < n; i++ {
		sum := sha256.Sum256(state)
		state = sum[:]
	}
	out := make([]byte, len(state))
	copy(out, state)
	return out
}
