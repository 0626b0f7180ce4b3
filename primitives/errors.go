package primitives

import "errors"

// ErrInvalidScalar is returned when a byte string does not decode to a
// usable Ed25519 scalar (wrong length, or not reduced modulo the group
// order where reduction is required).
var ErrInvalidScalar = errors.New("primitives: invalid ed25519 scalar")

// ErrInvalidPoint is returned when a byte string is not a canonical
// compressed Ed25519 point encoding.
var ErrInvalidPoint = errors.New("primitives: invalid ed25519 point")
