// Package qubit models simulated qubits for BB84: preparation of a classical
// bit in one of two mutually unbiased bases, and projective measurement in a
// possibly different basis.
package qubit

import "math/rand"

// A Basis is one of the two measurement bases used by BB84.
type Basis int

const (
	// Z is the rectilinear (computational) basis.
	Z Basis = iota
	// X is the diagonal (Hadamard) basis.
	X
)

func (b Basis) String() string {
	switch b {
	case Z:
		return "Z"
	case X:
		return "X"
	default:
		return "unknown"
	}
}

// RandomBasis draws a uniformly random basis from r.
func RandomBasis(r *rand.Rand) Basis {
	if r.Intn(2) == 1 {
		return X
	}
	return Z
}

// A State is a single prepared qubit: the classical bit Bit encoded in basis
// Basis. It is immutable and only lives for one simulated transmission.
type State struct {
	Basis Basis
	Bit   bool
}

// Measure observes s in basis b, drawing any randomness from r. When the
// measurement basis matches the preparation basis the encoded bit is
// recovered exactly; otherwise the outcome is a fair coin, independent of the
// encoded bit. Sifting depends on the matched case being deterministic.
func Measure(s State, b Basis, r *rand.Rand) bool {
	if b == s.Basis {
		return s.Bit
	}
	return r.Intn(2) == 1
}
