package qubit

import (
	"fmt"
	"math/rand"
)

// A Channel simulates transmission of prepared qubits. The zero-configured
// channel is perfect: every state arrives exactly as prepared, which makes
// the sampled-bit comparison downstream succeed unconditionally. The noise
// and intercept rates exist so that callers can exercise the detection and
// abort paths; both default to zero.
type Channel struct {
	noise     float64
	intercept float64
	rand      *rand.Rand
}

// Perfect returns a channel that transmits every qubit undisturbed.
func Perfect() *Channel {
	return &Channel{}
}

// NewChannel returns a channel that flips each transmitted bit with
// probability noise, and subjects each qubit to an intercept-resend
// eavesdropper with probability intercept. Rates must lie in [0, 1], and r
// must be non-nil when either rate is positive.
func NewChannel(noise, intercept float64, r *rand.Rand) (*Channel, error) {
	if noise < 0 || noise > 1 {
		return nil, fmt.Errorf("noise rate %v outside [0, 1]", noise)
	}
	if intercept < 0 || intercept > 1 {
		return nil, fmt.Errorf("intercept rate %v outside [0, 1]", intercept)
	}
	if r == nil && (noise > 0 || intercept > 0) {
		return nil, fmt.Errorf("lossy channel needs a randomness source")
	}
	return &Channel{noise: noise, intercept: intercept, rand: r}, nil
}

// Transmit carries s across the channel and returns the state that arrives
// at the far end.
func (c *Channel) Transmit(s State) State {
	if c.intercept > 0 && c.rand.Float64() < c.intercept {
		// The eavesdropper measures in a random basis and must re-prepare in
		// that basis, destroying the original state.
		eb := RandomBasis(c.rand)
		s = State{Basis: eb, Bit: Measure(s, eb, c.rand)}
	}
	if c.noise > 0 && c.rand.Float64() < c.noise {
		s.Bit = !s.Bit
	}
	return s
}
