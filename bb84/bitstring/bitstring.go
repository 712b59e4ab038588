// Package bitstring provides densely-packed sequences of classical bits,
// including conversions to and from their binary-digit string form.
package bitstring

import (
	"fmt"
	"math/bits"
	"strings"
)

const blockSize = 8

// A Dense is a bit sequence where every bit is explicitly represented. Bit i
// of the sequence is stored as bit i%8 of byte i/8.
type Dense struct {
	bits []byte
	len  int
}

// NewDense returns a new Dense whose data is a copy of data and whose length
// is bitLen. If bitLen is longer than data, trailing zeros are added. If
// bitLen is negative, it is inferred from data.
func NewDense(data []byte, bitLen int) Dense {
	if bitLen < 0 {
		bitLen = len(data) * blockSize
	}
	b := make([]byte, BytesFor(bitLen))
	copy(b, data)
	d := Dense{bits: b, len: bitLen}
	d.clearTail()
	return d
}

// Empty returns an empty bit sequence.
func Empty() Dense {
	return Dense{}
}

// FromString converts a string of '1's and '0's to a Dense. Spaces are
// skipped, any other character is an error.
func FromString(s string) (Dense, error) {
	d := Dense{}
	for _, c := range s {
		switch c {
		case '1':
			d.AppendBit(true)
		case '0':
			d.AppendBit(false)
		case ' ':
			continue
		default:
			return Dense{}, fmt.Errorf("invalid bit string %q: unexpected %q", s, c)
		}
	}
	return d, nil
}

// String renders d as a string of '0' and '1' characters, in sequence order.
func (d Dense) String() string {
	var sb strings.Builder
	sb.Grow(d.len)
	for i := 0; i < d.len; i++ {
		if d.Get(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// Size returns the number of bits in d.
func (d Dense) Size() int {
	return d.len
}

// SizeBytes returns the number of bytes necessary to represent d.
func (d Dense) SizeBytes() int {
	return BytesFor(d.len)
}

// Data returns a copy of the bytes underlying d. Bits past d.Size() are zero.
func (d Dense) Data() []byte {
	data := make([]byte, d.SizeBytes())
	copy(data, d.bits)
	return data
}

// Get returns the bit at idx. Bits past the end of d read as zero.
func (d Dense) Get(idx int) bool {
	if idx >= d.len {
		return false
	}
	return d.bits[idx/blockSize]&(1<<(idx%blockSize)) != 0
}

// Set assigns the bit at idx.
func (d *Dense) Set(idx int, bit bool) {
	if bit {
		d.bits[idx/blockSize] |= 1 << (idx % blockSize)
	} else {
		d.bits[idx/blockSize] &^= 1 << (idx % blockSize)
	}
}

// Flip inverts the bit at idx.
func (d *Dense) Flip(idx int) {
	d.bits[idx/blockSize] ^= 1 << (idx % blockSize)
}

// AppendBit adds a single bit to the end of d.
func (d *Dense) AppendBit(bit bool) {
	pos := d.len % blockSize
	d.len++
	if pos == 0 {
		d.bits = append(d.bits, 0)
	}
	if bit {
		d.bits[len(d.bits)-1] |= 1 << pos
	}
}

// And computes a bitwise AND between d and other. If one of the two is
// shorter, trailing zeros are implicitly added to make the sizes match.
func (d Dense) And(other Dense) Dense {
	long := maxLen(d, other)
	r := Dense{bits: make([]byte, BytesFor(long)), len: long}
	for i := range r.bits {
		r.bits[i] = d.getByte(i) & other.getByte(i)
	}
	return r
}

// XOr computes a bitwise XOR between d and other. If one of the two is
// shorter, trailing zeros are implicitly added to make the sizes match.
func (d Dense) XOr(other Dense) Dense {
	long := maxLen(d, other)
	r := Dense{bits: make([]byte, BytesFor(long)), len: long}
	for i := range r.bits {
		r.bits[i] = d.getByte(i) ^ other.getByte(i)
	}
	r.clearTail()
	return r
}

// XNor computes a bitwise equality between d and other. If one of the two is
// shorter, trailing zeros are implicitly added to make the sizes match.
func (d Dense) XNor(other Dense) Dense {
	long := maxLen(d, other)
	r := Dense{bits: make([]byte, BytesFor(long)), len: long}
	for i := range r.bits {
		r.bits[i] = ^(d.getByte(i) ^ other.getByte(i))
	}
	r.clearTail()
	return r
}

// Select keeps the bits of d at positions where mask is set, preserving
// their order.
func (d Dense) Select(mask Dense) Dense {
	var r Dense
	for i := 0; i < d.len; i++ {
		if !mask.Get(i) {
			continue
		}
		r.AppendBit(d.Get(i))
	}
	return r
}

// Slice copies bits [start, end) of d into a new Dense.
func (d Dense) Slice(start, end int) (Dense, error) {
	if start < 0 {
		return Dense{}, fmt.Errorf("slicing bit string with negative start: %d", start)
	}
	if end < start {
		return Dense{}, fmt.Errorf("slicing bit string to negative length: %d", end-start)
	}
	if end > d.len {
		return Dense{}, fmt.Errorf("slicing bit string of len %d up to %d", d.len, end)
	}
	var r Dense
	for i := start; i < end; i++ {
		r.AppendBit(d.Get(i))
	}
	return r, nil
}

// CountOnes returns the total number of bits set in d.
func (d Dense) CountOnes() int {
	var sum int
	for _, b := range d.bits {
		sum += bits.OnesCount8(b)
	}
	return sum
}

// Equal returns true iff a and b have the same length and contain the same
// bits.
func Equal(a, b Dense) bool {
	if a.len != b.len {
		return false
	}
	for i := 0; i < a.SizeBytes(); i++ {
		if a.getByte(i) != b.getByte(i) {
			return false
		}
	}
	return true
}

// BytesFor returns the number of bytes necessary to hold the provided number
// of bits.
func BytesFor(bits int) int {
	return (bits + blockSize - 1) / blockSize
}

func (d Dense) getByte(i int) byte {
	if i >= len(d.bits) {
		return 0
	}
	return d.bits[i]
}

// clearTail zeroes the unused high bits of the final block, so that byte-wise
// operations like CountOnes and Equal never see stale data.
func (d *Dense) clearTail() {
	pos := d.len % blockSize
	if pos == 0 || len(d.bits) == 0 {
		return
	}
	d.bits[len(d.bits)-1] &= 0xFF >> (blockSize - pos)
}

func maxLen(a, b Dense) int {
	if a.len > b.len {
		return a.len
	}
	return b.len
}
