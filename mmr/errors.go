package mmr

import "errors"

var (
	// ErrInvalidProof is returned when a proof's length or shape is
	// inconsistent with the accumulators it is replayed against.
	ErrInvalidProof = errors.New("mmr: invalid proof")
	// ErrPeakNotFound is returned when no peak of the target MMR has
	// the height a replayed proof terminates at.
	ErrPeakNotFound = errors.New("mmr: no peak at the expected height")
)
