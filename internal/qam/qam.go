// Package qam maps bit-groups onto a square Gray-coded constellation and
// synthesizes the quadrature-modulated carrier signal.
package qam

import (
	"errors"
	"fmt"
	"math"

	"sigstudio/internal/bitstring"
	"sigstudio/internal/signal"
)

var (
	// ErrInvalidOrder indicates an order outside {4, 16, 64, 256}
	ErrInvalidOrder = errors.New("QAM order must be 4, 16, 64 or 256")

	// ErrBadConfig indicates non-positive carrier, symbol rate or sample rate
	ErrBadConfig = errors.New("carrier frequency, symbol rate and sample rate must be positive")
)

// Point is a constellation coordinate in the I/Q plane. Levels are the odd
// integers -(side-1) .. side-1 of the square grid.
type Point struct {
	I float64
	Q float64
}

// Symbol records one modulated symbol for constellation labeling: its
// position in the stream, the originating bit-group and the mapped point.
type Symbol struct {
	Index int
	Bits  bitstring.Bits
	Point Point
}

// Config holds the carrier parameters of the modulator
type Config struct {
	CarrierFreq float64 // Hz
	SymbolRate  float64 // symbols per second
	SampleRate  float64 // samples per second
}

// Modulation is the full result of one modulate cycle
type Modulation struct {
	Order         int
	BitsPerSymbol int
	Signal        signal.Waveform
	Symbols       []Symbol  // ordered symbol assignments
	SymbolMap     SymbolMap // every bit-group of the order, not just the used ones
	PaddedBits    int       // zero bits appended to complete the final group
}

// SymbolMap is the bijective bit-group to constellation point mapping for
// one order. Keys are '0'/'1' strings of BitsPerSymbol length.
type SymbolMap map[string]Point

// bitsPerSymbol returns log2(order) for supported orders
func bitsPerSymbol(order int) (int, error) {
	switch order {
	case 4:
		return 2, nil
	case 16:
		return 4, nil
	case 64:
		return 6, nil
	case 256:
		return 8, nil
	}
	return 0, fmt.Errorf("order %d: %w", order, ErrInvalidOrder)
}

// grayToBinary inverts the Gray code of v
func grayToBinary(v int) int {
	for shift := 1; v>>shift != 0; shift <<= 1 {
		v ^= v >> shift
	}
	return v
}

// binaryToGray returns the Gray code of v
func binaryToGray(v int) int {
	return v ^ (v >> 1)
}

// axisLevel maps half a bit-group to a grid level. The bits Gray-decode to
// a column/row index, which spreads over the odd integers so that adjacent
// levels differ in exactly one bit.
func axisLevel(bits, side int) float64 {
	idx := grayToBinary(bits)
	return float64(2*idx - (side - 1))
}

// axisBits inverts axisLevel
func axisBits(level float64, side int) int {
	idx := (int(level) + side - 1) / 2
	return binaryToGray(idx)
}

// Map returns the constellation point for one bit-group of width
// log2(order). The first half of the group selects the I level, the second
// half the Q level, each per-axis Gray coded.
func Map(group bitstring.Bits, order int) (Point, error) {
	k, err := bitsPerSymbol(order)
	if err != nil {
		return Point{}, err
	}
	if len(group) != k {
		return Point{}, fmt.Errorf("bit-group %q has %d bits, order %d needs %d: %w",
			group.String(), len(group), order, k, ErrInvalidOrder)
	}

	side := 1 << (k / 2) // grid side = sqrt(order)
	iBits, qBits := 0, 0
	for _, b := range group[:k/2] {
		iBits = iBits<<1 | int(b)
	}
	for _, b := range group[k/2:] {
		qBits = qBits<<1 | int(b)
	}
	return Point{I: axisLevel(iBits, side), Q: axisLevel(qBits, side)}, nil
}

// Demap is the exact inverse of Map: it recovers the bit-group that maps
// to the given constellation point.
func Demap(p Point, order int) (bitstring.Bits, error) {
	k, err := bitsPerSymbol(order)
	if err != nil {
		return nil, err
	}
	side := 1 << (k / 2)

	iBits := axisBits(p.I, side)
	qBits := axisBits(p.Q, side)

	group := make(bitstring.Bits, k)
	for i := k/2 - 1; i >= 0; i-- {
		group[i] = uint8(iBits & 1)
		iBits >>= 1
	}
	for i := k - 1; i >= k/2; i-- {
		group[i] = uint8(qBits & 1)
		qBits >>= 1
	}
	return group, nil
}

// Constellation builds the full SymbolMap of an order
func Constellation(order int) (SymbolMap, error) {
	k, err := bitsPerSymbol(order)
	if err != nil {
		return nil, err
	}

	m := make(SymbolMap, order)
	for v := 0; v < order; v++ {
		group := make(bitstring.Bits, k)
		for i := k - 1; i >= 0; i-- {
			group[i] = uint8(v >> (k - 1 - i) & 1)
		}
		p, err := Map(group, order)
		if err != nil {
			return nil, err
		}
		m[group.String()] = p
	}
	return m, nil
}

// Modulate groups bits into symbols of log2(order) bits (zero-padding the
// final partial group on the right), maps each group to its constellation
// point and emits I*cos(2*pi*fc*t) - Q*sin(2*pi*fc*t) over one symbol
// period per symbol. The signal is the concatenation of all segments.
//
// Modulate is pure: equal inputs always produce equal output.
func Modulate(bits bitstring.Bits, order int, cfg Config) (Modulation, error) {
	k, err := bitsPerSymbol(order)
	if err != nil {
		return Modulation{}, err
	}
	if len(bits) == 0 {
		return Modulation{}, bitstring.ErrEmpty
	}
	if cfg.CarrierFreq <= 0 || cfg.SymbolRate <= 0 || cfg.SampleRate <= 0 {
		return Modulation{}, fmt.Errorf("carrier=%g symbolRate=%g sampleRate=%g: %w",
			cfg.CarrierFreq, cfg.SymbolRate, cfg.SampleRate, ErrBadConfig)
	}

	padding := (k - len(bits)%k) % k
	padded := make(bitstring.Bits, len(bits), len(bits)+padding)
	copy(padded, bits)
	for i := 0; i < padding; i++ {
		padded = append(padded, 0)
	}

	numSymbols := len(padded) / k
	perSymbol := int(math.Round(cfg.SampleRate / cfg.SymbolRate))
	if perSymbol < 2 {
		return Modulation{}, fmt.Errorf("%g Sps at %g symbols/s yields %d samples per symbol: %w",
			cfg.SampleRate, cfg.SymbolRate, perSymbol, ErrBadConfig)
	}

	symbolMap, err := Constellation(order)
	if err != nil {
		return Modulation{}, err
	}

	cos, sin := signal.Carrier(cfg.CarrierFreq, cfg.SampleRate, perSymbol)

	symbols := make([]Symbol, 0, numSymbols)
	x := make([]float64, 0, numSymbols*perSymbol)
	for s := 0; s < numSymbols; s++ {
		group := padded[s*k : (s+1)*k]
		p, err := Map(group, order)
		if err != nil {
			return Modulation{}, err
		}
		symbols = append(symbols, Symbol{Index: s, Bits: group, Point: p})

		for i := 0; i < perSymbol; i++ {
			x = append(x, p.I*cos[i]-p.Q*sin[i])
		}
	}

	rate := float64(perSymbol) * cfg.SymbolRate
	return Modulation{
		Order:         order,
		BitsPerSymbol: k,
		Signal:        signal.Waveform{T: signal.TimeAxis(0, len(x), rate), X: x},
		Symbols:       symbols,
		SymbolMap:     symbolMap,
		PaddedBits:    padding,
	}, nil
}
