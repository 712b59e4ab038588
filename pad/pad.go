// Package pad implements the repeating-key XOR stream cipher that consumes
// keys produced by the bb84 package. Text is mapped to a fixed 8-bit-wide
// binary form, XORed bit-by-bit against the key, and regrouped into
// characters. Encryption and decryption are the same transform.
//
// The key is only as strong as its length: true one-time-pad secrecy
// requires a key at least as long as the message, used once.
package pad

import (
	"errors"
	"fmt"
	"strings"

	"github.com/qtxkit/qkdpad/bb84/bitstring"
)

var (
	// ErrOutOfRange reports a character whose code point does not fit the
	// fixed 8-bit encoding.
	ErrOutOfRange = errors.New("pad: text contains a code point outside the 8-bit range")

	// ErrEmptyKey reports an empty key string.
	ErrEmptyKey = errors.New("pad: key must be a non-empty string of binary digits")
)

// Encrypt enciphers text under a key of '0' and '1' characters. Every
// character of text must have a code point in [0, 255].
func Encrypt(text, key string) (string, error) {
	return apply(text, key)
}

// Decrypt deciphers text previously produced by Encrypt with the same key.
// XOR is self-inverse, so this is the identical transform.
func Decrypt(text, key string) (string, error) {
	return apply(text, key)
}

func apply(text, key string) (string, error) {
	if key == "" {
		return "", ErrEmptyKey
	}
	keyBits, err := bitstring.FromString(key)
	if err != nil {
		return "", fmt.Errorf("pad: %w", err)
	}
	if keyBits.Size() == 0 {
		return "", ErrEmptyKey
	}
	msg, err := textToBits(text)
	if err != nil {
		return "", err
	}
	stream, err := bitstring.FromString(stretch(keyBits.String(), msg.Size()))
	if err != nil {
		return "", err
	}
	return bitsToText(msg.XOr(stream))
}

// stretch repeats key by self-concatenation until it covers n bits, then
// truncates. The result is identical to modular indexing, but this mirrors
// how the key schedule is defined.
func stretch(key string, n int) string {
	var sb strings.Builder
	sb.Grow(n + len(key))
	for sb.Len() < n {
		sb.WriteString(key)
	}
	return sb.String()[:n]
}

// textToBits encodes each character as 8 bits, most significant first.
func textToBits(text string) (bitstring.Dense, error) {
	var d bitstring.Dense
	for _, r := range text {
		if r > 0xFF {
			return bitstring.Empty(), fmt.Errorf("%w: %q (U+%04X)", ErrOutOfRange, r, r)
		}
		for shift := 7; shift >= 0; shift-- {
			d.AppendBit(r&(1<<shift) != 0)
		}
	}
	return d, nil
}

// bitsToText regroups every 8 bits, most significant first, into one
// character with a code point in [0, 255].
func bitsToText(d bitstring.Dense) (string, error) {
	if d.Size()%8 != 0 {
		return "", fmt.Errorf("pad: bit length %d is not a whole number of characters", d.Size())
	}
	var sb strings.Builder
	for i := 0; i < d.Size(); i += 8 {
		var cp rune
		for j := 0; j < 8; j++ {
			cp <<= 1
			if d.Get(i + j) {
				cp |= 1
			}
		}
		sb.WriteRune(cp)
	}
	return sb.String(), nil
}
