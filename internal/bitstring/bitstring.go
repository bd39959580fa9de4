// Package bitstring parses and validates user-entered binary patterns.
package bitstring

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmpty indicates an empty bit pattern
	ErrEmpty = errors.New("bit pattern is empty")

	// ErrInvalidBit indicates a character outside '0'/'1'
	ErrInvalidBit = errors.New("bit pattern may only contain 0s and 1s")
)

// Bits is an ordered sequence of binary digits (0 or 1)
type Bits []uint8

// Parse validates a user-entered pattern and converts it to Bits.
// Surrounding whitespace is tolerated; anything else must be '0' or '1'.
func Parse(pattern string) (Bits, error) {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return nil, ErrEmpty
	}

	bits := make(Bits, len(pattern))
	for i := 0; i < len(pattern); i++ {
		switch pattern[i] {
		case '0':
			bits[i] = 0
		case '1':
			bits[i] = 1
		default:
			return nil, fmt.Errorf("position %d (%q): %w", i, pattern[i], ErrInvalidBit)
		}
	}
	return bits, nil
}

// String renders the bits back as a '0'/'1' pattern
func (b Bits) String() string {
	var sb strings.Builder
	sb.Grow(len(b))
	for _, bit := range b {
		if bit == 0 {
			sb.WriteByte('0')
		} else {
			sb.WriteByte('1')
		}
	}
	return sb.String()
}
