// Package bb84 simulates BB84 key negotiation between two parties and
// extracts a shared secret bit string: qubit encoding, measurement, basis
// sifting, and a disclosed-prefix comparison that aborts the attempt when
// the two sides disagree.
package bb84

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/qtxkit/qkdpad/bb84/bitstring"
	"github.com/qtxkit/qkdpad/bb84/qubit"
)

var (
	// DefaultOversample is the factor by which the raw exchange oversizes the
	// requested key, so that enough bits survive sifting and the disclosed
	// comparison.
	DefaultOversample = 4

	// DefaultSampleProportion is the fraction of the sifted key disclosed and
	// compared to detect eavesdropping.
	DefaultSampleProportion = 0.5
)

var (
	// ErrEavesdropper reports a mismatch in the disclosed portion of the
	// sifted keys. The attempt is abandoned and no key material is returned.
	ErrEavesdropper = errors.New("bb84: eavesdropper detected, sampled key bits disagree")

	// ErrInsufficientKey reports that sifting and the disclosed comparison
	// left no usable key bits. Callers may simply generate again.
	ErrInsufficientKey = errors.New("bb84: insufficient sifted bits, final key is empty")
)

// Stats packages together a collection of potentially interesting metrics
// pertaining to one key-generation attempt.
type Stats struct {
	// QubitsSent is the number of qubits prepared and transmitted.
	QubitsSent int
	// SiftedBits is the number of positions where both parties chose the
	// same basis.
	SiftedBits int
	// ComparedBits is the length of the disclosed prefix.
	ComparedBits int
	// KeyBits is the length of the final key, zero on failure.
	KeyBits int
	// QBER is the error rate observed within the disclosed prefix.
	QBER float64
}

// A GeneratorOpts packages together the arguments necessary to construct a
// Generator.
type GeneratorOpts struct {
	// Rand provides the randomness consumed by both parties' bit and basis
	// draws and by mismatched-basis measurements. This may use pRNG for
	// experimentation and testing, but for real key material it must be
	// cryptographically strong. Must be non-nil.
	Rand *rand.Rand

	// Channel simulates the quantum link between the parties. Defaults to
	// qubit.Perfect().
	Channel *qubit.Channel

	// Oversample scales the requested minimum key length up to the number of
	// qubits exchanged. The zero value selects DefaultOversample.
	Oversample int

	// SampleProportion specifies the fraction of sifted bits disclosed for
	// the eavesdropper check. The zero value selects
	// DefaultSampleProportion, so an exchange that discloses nothing cannot
	// be configured here.
	SampleProportion float64
}

// A Generator runs independent BB84 key-generation attempts. Each call to
// Generate draws fresh randomness and shares no state with previous calls,
// so a single Generator may be reused after an aborted attempt.
type Generator struct {
	rand       *rand.Rand
	channel    *qubit.Channel
	oversample int
	sampleProp float64

	// Test seams for pinning the random draws.
	bitFunc    func(n int) bitstring.Dense
	basisFuncA func(n int) bitstring.Dense
	basisFuncB func(n int) bitstring.Dense
}

// NewGenerator returns a new Generator, configured in accordance with opts,
// or an error if the options are nonsensical.
func NewGenerator(opts GeneratorOpts) (*Generator, error) {
	if opts.Rand == nil {
		return nil, errors.New("must provide Rand")
	}
	ch := opts.Channel
	if ch == nil {
		ch = qubit.Perfect()
	}
	oversample := opts.Oversample
	if oversample == 0 {
		oversample = DefaultOversample
	}
	if oversample < 1 {
		return nil, fmt.Errorf("oversample factor must be positive, got %d", oversample)
	}
	sampleProp := opts.SampleProportion
	if sampleProp == 0 {
		sampleProp = DefaultSampleProportion
	}
	if sampleProp < 0 || sampleProp > 1 {
		return nil, fmt.Errorf("sample proportion %v outside [0, 1]", sampleProp)
	}
	return &Generator{
		rand:       opts.Rand,
		channel:    ch,
		oversample: oversample,
		sampleProp: sampleProp,
	}, nil
}
