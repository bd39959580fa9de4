// Package encoding implements digital line-coding schemes, mapping a bit
// pattern to a sampled waveform over successive bit periods.
package encoding

import (
	"errors"
	"fmt"

	"sigstudio/internal/bitstring"
	"sigstudio/internal/signal"
)

// Scheme selects the bit-to-waveform transformation
type Scheme int

const (
	NRZL Scheme = iota // level codes the bit directly
	NRZI               // '1' toggles the level
	AMI                // marks alternate polarity, '0' is zero level
	Manchester
	DiffManchester
)

var (
	// ErrUnknownScheme indicates a scheme name outside the supported set
	ErrUnknownScheme = errors.New("unknown encoding scheme")

	// ErrBadPeriod indicates a non-positive bit period or sample rate
	ErrBadPeriod = errors.New("bit period and sample rate must be positive")
)

var schemeNames = map[Scheme]string{
	NRZL:           "NRZ-L",
	NRZI:           "NRZ-I",
	AMI:            "AMI",
	Manchester:     "Manchester",
	DiffManchester: "Differential Manchester",
}

// String returns the display name of the scheme
func (s Scheme) String() string {
	if name, ok := schemeNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Scheme(%d)", int(s))
}

// ParseScheme resolves a user-entered scheme name. Matching is
// case-insensitive and ignores '-' and ' ' so "nrzl", "NRZ-L" and
// "diff manchester" all resolve.
func ParseScheme(name string) (Scheme, error) {
	key := normalize(name)
	for s, n := range schemeNames {
		if normalize(n) == key {
			return s, nil
		}
	}
	switch key {
	case "diffmanchester", "dmanchester":
		return DiffManchester, nil
	}
	return 0, fmt.Errorf("%q: %w", name, ErrUnknownScheme)
}

func normalize(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'Z':
			out = append(out, c+'a'-'A')
		case c == '-' || c == ' ' || c == '_':
		default:
			out = append(out, c)
		}
	}
	return string(out)
}

// Schemes lists every supported scheme in display order
func Schemes() []Scheme {
	return []Scheme{NRZL, NRZI, AMI, Manchester, DiffManchester}
}

// Encode maps bits to a waveform with one bit period per bit. Sample count
// is len(bits) * round(bitPeriod*sampleRate) for every scheme, so plots of
// different schemes stay time-aligned for the same input.
//
// Encode is pure: equal inputs always produce equal output.
func Encode(bits bitstring.Bits, scheme Scheme, bitPeriod, sampleRate float64) (signal.Waveform, error) {
	if len(bits) == 0 {
		return signal.Waveform{}, bitstring.ErrEmpty
	}
	if bitPeriod <= 0 || sampleRate <= 0 {
		return signal.Waveform{}, fmt.Errorf("bitPeriod=%g sampleRate=%g: %w", bitPeriod, sampleRate, ErrBadPeriod)
	}

	perBit := int(bitPeriod*sampleRate + 0.5)
	if perBit < 2 {
		return signal.Waveform{}, fmt.Errorf("bit period %gs at %g Sps yields %d samples per bit: %w", bitPeriod, sampleRate, perBit, ErrBadPeriod)
	}

	var levels []float64
	switch scheme {
	case NRZL:
		levels = nrzL(bits, perBit)
	case NRZI:
		levels = nrzI(bits, perBit)
	case AMI:
		levels = ami(bits, perBit)
	case Manchester:
		levels = manchester(bits, perBit)
	case DiffManchester:
		levels = diffManchester(bits, perBit)
	default:
		return signal.Waveform{}, fmt.Errorf("%v: %w", scheme, ErrUnknownScheme)
	}

	rate := float64(perBit) / bitPeriod
	return signal.Waveform{
		T: signal.TimeAxis(0, len(levels), rate),
		X: levels,
	}, nil
}

// nrzL holds +1 for '1' and -1 for '0' across the whole bit period
func nrzL(bits bitstring.Bits, perBit int) []float64 {
	out := make([]float64, 0, len(bits)*perBit)
	for _, bit := range bits {
		out = appendLevel(out, level(bit), perBit)
	}
	return out
}

// nrzI starts high and inverts the level on every '1'
func nrzI(bits bitstring.Bits, perBit int) []float64 {
	out := make([]float64, 0, len(bits)*perBit)
	current := 1.0
	for _, bit := range bits {
		if bit == 1 {
			current = -current
		}
		out = appendLevel(out, current, perBit)
	}
	return out
}

// ami codes '0' as zero level and alternates mark polarity, first mark
// positive
func ami(bits bitstring.Bits, perBit int) []float64 {
	out := make([]float64, 0, len(bits)*perBit)
	polarity := 1.0
	for _, bit := range bits {
		if bit == 1 {
			out = appendLevel(out, polarity, perBit)
			polarity = -polarity
		} else {
			out = appendLevel(out, 0, perBit)
		}
	}
	return out
}

// manchester places a mid-bit transition in every bit: '1' goes low to
// high, '0' goes high to low (textbook convention)
func manchester(bits bitstring.Bits, perBit int) []float64 {
	half := perBit / 2
	out := make([]float64, 0, len(bits)*perBit)
	for _, bit := range bits {
		first := -level(bit)
		out = appendLevel(out, first, half)
		out = appendLevel(out, -first, perBit-half)
	}
	return out
}

// diffManchester transitions mid-bit for every bit and additionally at the
// start of the bit for '0'; the line starts high
func diffManchester(bits bitstring.Bits, perBit int) []float64 {
	half := perBit / 2
	out := make([]float64, 0, len(bits)*perBit)
	current := 1.0
	for _, bit := range bits {
		if bit == 0 {
			current = -current
		}
		out = appendLevel(out, current, half)
		current = -current
		out = appendLevel(out, current, perBit-half)
	}
	return out
}

func appendLevel(dst []float64, v float64, n int) []float64 {
	for i := 0; i < n; i++ {
		dst = append(dst, v)
	}
	return dst
}

func level(bit uint8) float64 {
	if bit == 1 {
		return 1
	}
	return -1
}
