package qam

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"sigstudio/internal/bitstring"
)

var testConfig = Config{CarrierFreq: 10, SymbolRate: 2, SampleRate: 1000}

func mustBits(t *testing.T, pattern string) bitstring.Bits {
	t.Helper()
	bits, err := bitstring.Parse(pattern)
	require.NoError(t, err)
	return bits
}

// Reference 16-QAM table from the original visualization, reproduced by
// the per-axis Gray rule.
func Test16QAMMatchesReferenceTable(t *testing.T) {
	want := map[string]Point{
		"0000": {-3, -3}, "0001": {-3, -1}, "0010": {-3, 3}, "0011": {-3, 1},
		"0100": {-1, -3}, "0101": {-1, -1}, "0110": {-1, 3}, "0111": {-1, 1},
		"1000": {3, -3}, "1001": {3, -1}, "1010": {3, 3}, "1011": {3, 1},
		"1100": {1, -3}, "1101": {1, -1}, "1110": {1, 3}, "1111": {1, 1},
	}

	m, err := Constellation(16)
	require.NoError(t, err)
	require.Len(t, m, 16)
	for group, p := range want {
		require.Equal(t, p, m[group], "group %s", group)
	}
}

func Test4QAMCorners(t *testing.T) {
	m, err := Constellation(4)
	require.NoError(t, err)
	require.Equal(t, Point{-1, -1}, m["00"])
	require.Equal(t, Point{-1, 1}, m["01"])
	require.Equal(t, Point{1, -1}, m["10"])
	require.Equal(t, Point{1, 1}, m["11"])
}

func TestMapDemapRoundTrip(t *testing.T) {
	for _, order := range []int{4, 16, 64, 256} {
		m, err := Constellation(order)
		require.NoError(t, err)
		require.Len(t, m, order, "mapping must be bijective")

		seen := make(map[Point]bool, order)
		for group, p := range m {
			require.False(t, seen[p], "point %v assigned twice", p)
			seen[p] = true

			back, err := Demap(p, order)
			require.NoError(t, err)
			require.Equal(t, group, back.String(), "order %d", order)
		}
	}
}

func TestGrayAdjacency(t *testing.T) {
	// horizontally adjacent 16-QAM points differ in exactly one bit
	m, err := Constellation(16)
	require.NoError(t, err)

	byPoint := make(map[Point]string, len(m))
	for g, p := range m {
		byPoint[p] = g
	}

	hamming := func(a, b string) int {
		d := 0
		for i := range a {
			if a[i] != b[i] {
				d++
			}
		}
		return d
	}

	for p, g := range byPoint {
		if right, ok := byPoint[Point{p.I + 2, p.Q}]; ok {
			require.Equal(t, 1, hamming(g, right), "%v and its right neighbor", p)
		}
		if up, ok := byPoint[Point{p.I, p.Q + 2}]; ok {
			require.Equal(t, 1, hamming(g, up), "%v and its upper neighbor", p)
		}
	}
}

// Ten bits at order 16 pad to 3 symbols on a 4x4 grid.
func TestModulatePadsPartialGroup(t *testing.T) {
	mod, err := Modulate(mustBits(t, "0010111001"), 16, testConfig)
	require.NoError(t, err)

	require.Equal(t, 4, mod.BitsPerSymbol)
	require.Equal(t, 2, mod.PaddedBits)
	require.Len(t, mod.Symbols, 3)

	require.Equal(t, "0010", mod.Symbols[0].Bits.String())
	require.Equal(t, "1110", mod.Symbols[1].Bits.String())
	require.Equal(t, "0100", mod.Symbols[2].Bits.String()) // "01" + 2 pad zeros

	require.Equal(t, Point{-3, 3}, mod.Symbols[0].Point)
	require.Equal(t, Point{1, 3}, mod.Symbols[1].Point)
	require.Equal(t, Point{-1, -3}, mod.Symbols[2].Point)
}

// The result carries the order's complete map, not just the groups the
// input happened to use.
func TestModulateCarriesFullSymbolMap(t *testing.T) {
	mod, err := Modulate(mustBits(t, "0010111001"), 16, testConfig)
	require.NoError(t, err)

	require.Len(t, mod.SymbolMap, 16)
	full, err := Constellation(16)
	require.NoError(t, err)
	require.Equal(t, full, mod.SymbolMap)

	for _, sym := range mod.Symbols {
		require.Equal(t, sym.Point, mod.SymbolMap[sym.Bits.String()])
	}
}

func TestModulateSignalShape(t *testing.T) {
	mod, err := Modulate(mustBits(t, "1100"), 4, testConfig)
	require.NoError(t, err)

	perSymbol := 500 // 1000 Sps / 2 symbols per second
	require.Equal(t, 2*perSymbol, mod.Signal.Len())

	// segment 0 codes "11" -> (1,1): x(t) = cos - sin, so x(0) = 1
	require.InDelta(t, 1.0, mod.Signal.X[0], 1e-9)

	// segment 1 codes "00" -> (-1,-1): x(0 within segment) = -1
	require.InDelta(t, -1.0, mod.Signal.X[perSymbol], 1e-9)

	// peak amplitude bounded by |I|+|Q| = sqrt(2)*|(1,1)| envelope
	for _, v := range mod.Signal.X {
		require.LessOrEqual(t, math.Abs(v), math.Sqrt2+1e-9)
	}
}

func TestModulateIsPure(t *testing.T) {
	bits := mustBits(t, "011011")
	a, err := Modulate(bits, 4, testConfig)
	require.NoError(t, err)
	b, err := Modulate(bits, 4, testConfig)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestModulateValidation(t *testing.T) {
	_, err := Modulate(mustBits(t, "10"), 8, testConfig)
	require.ErrorIs(t, err, ErrInvalidOrder)

	_, err = Modulate(mustBits(t, "10"), 15, testConfig)
	require.ErrorIs(t, err, ErrInvalidOrder)

	_, err = Modulate(nil, 4, testConfig)
	require.ErrorIs(t, err, bitstring.ErrEmpty)

	_, err = Modulate(mustBits(t, "10"), 4, Config{CarrierFreq: 0, SymbolRate: 2, SampleRate: 1000})
	require.ErrorIs(t, err, ErrBadConfig)
}
