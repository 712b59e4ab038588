package bb84

import (
	"fmt"
	"math/rand"

	"github.com/qtxkit/qkdpad/bb84/bitstring"
	"github.com/qtxkit/qkdpad/bb84/qubit"
)

// An encoder is the sending party: it draws a raw key and a basis sequence
// and prepares one qubit per position.
type encoder struct {
	rand      *rand.Rand
	bitFunc   func(n int) bitstring.Dense
	basisFunc func(n int) bitstring.Dense
}

// A decoder is the receiving party: it draws its own basis sequence and
// measures each transmitted qubit in it.
type decoder struct {
	channel   *qubit.Channel
	rand      *rand.Rand
	basisFunc func(n int) bitstring.Dense
}

// Generate performs one full key-generation attempt: encode, measure, sift,
// and compare a disclosed prefix. On success it returns the suffix of the
// encoder's sifted key that was never disclosed. It returns ErrEavesdropper
// if the disclosed prefixes disagree, and ErrInsufficientKey if no key bits
// remain. The attempt always terminates, no retries are performed, and the
// returned key is not guaranteed to reach minKeyBits: sifting yield is
// binomial, so callers needing a guaranteed length must check Size() and
// loop.
func (g *Generator) Generate(minKeyBits int) (bitstring.Dense, Stats, error) {
	var stats Stats
	if minKeyBits < 1 {
		return bitstring.Empty(), stats, fmt.Errorf("minimum key length must be positive, got %d", minKeyBits)
	}
	numBits := minKeyBits * g.oversample

	enc := &encoder{rand: g.rand, bitFunc: g.bitFunc, basisFunc: g.basisFuncA}
	dec := &decoder{channel: g.channel, rand: g.rand, basisFunc: g.basisFuncB}

	aBits, aBases, states := enc.prepare(numBits)
	stats.QubitsSent = numBits

	bBits, bBases := dec.measure(states)

	siftedA := sift(aBits, aBases, bBases)
	siftedB := sift(bBits, aBases, bBases)
	stats.SiftedBits = siftedA.Size()

	key, compared, mismatches, err := checkDisclosed(siftedA, siftedB, g.sampleProp)
	stats.ComparedBits = compared
	if compared > 0 {
		stats.QBER = float64(mismatches) / float64(compared)
	}
	if err != nil {
		return bitstring.Empty(), stats, err
	}
	if key.Size() == 0 {
		return bitstring.Empty(), stats, ErrInsufficientKey
	}
	stats.KeyBits = key.Size()
	return key, stats, nil
}

// prepare draws the encoder's raw key and basis sequence and encodes one
// qubit per position.
func (e *encoder) prepare(numBits int) (bits, bases bitstring.Dense, states []qubit.State) {
	if e.bitFunc != nil {
		bits = e.bitFunc(numBits)
	} else {
		bits = randomBits(e.rand, numBits)
	}
	if e.basisFunc != nil {
		bases = e.basisFunc(numBits)
	} else {
		bases = randomBits(e.rand, numBits)
	}
	states = make([]qubit.State, numBits)
	for i := range states {
		states[i] = qubit.State{Basis: basisAt(bases, i), Bit: bits.Get(i)}
	}
	return bits, bases, states
}

// measure draws the decoder's basis sequence, passes each qubit through the
// channel, and measures it.
func (d *decoder) measure(states []qubit.State) (bits, bases bitstring.Dense) {
	n := len(states)
	if d.basisFunc != nil {
		bases = d.basisFunc(n)
	} else {
		bases = randomBits(d.rand, n)
	}
	for i, s := range states {
		received := d.channel.Transmit(s)
		bits.AppendBit(qubit.Measure(received, basisAt(bases, i), d.rand))
	}
	return bits, bases
}

// sift keeps the bits at positions where both parties chose the same basis,
// in ascending position order.
func sift(bits, sendBases, receiveBases bitstring.Dense) bitstring.Dense {
	return bits.Select(sendBases.XNor(receiveBases))
}

// checkDisclosed compares the first floor(L*proportion) bits of the two
// sifted keys and, when they agree, returns the undisclosed remainder of a.
// An empty sifted key trivially passes the comparison and yields an empty
// remainder; the caller turns that into ErrInsufficientKey.
func checkDisclosed(a, b bitstring.Dense, proportion float64) (key bitstring.Dense, compared, mismatches int, err error) {
	l := a.Size()
	if b.Size() != l {
		return bitstring.Empty(), 0, 0, fmt.Errorf("sifted keys of different lengths: %d != %d", l, b.Size())
	}
	compared = int(proportion * float64(l))
	prefixA, err := a.Slice(0, compared)
	if err != nil {
		return bitstring.Empty(), compared, 0, err
	}
	prefixB, err := b.Slice(0, compared)
	if err != nil {
		return bitstring.Empty(), compared, 0, err
	}
	mismatches = prefixA.XOr(prefixB).CountOnes()
	if mismatches > 0 {
		return bitstring.Empty(), compared, mismatches, ErrEavesdropper
	}
	key, err = a.Slice(compared, l)
	if err != nil {
		return bitstring.Empty(), compared, 0, err
	}
	return key, compared, 0, nil
}

// randomBits fills a bit sequence of length n uniformly at random.
func randomBits(r *rand.Rand, n int) bitstring.Dense {
	buf := make([]byte, bitstring.BytesFor(n))
	r.Read(buf)
	return bitstring.NewDense(buf, n)
}

func basisAt(bases bitstring.Dense, i int) qubit.Basis {
	if bases.Get(i) {
		return qubit.X
	}
	return qubit.Z
}
