package encoding

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"sigstudio/internal/bitstring"
)

func mustBits(t *testing.T, pattern string) bitstring.Bits {
	t.Helper()
	bits, err := bitstring.Parse(pattern)
	require.NoError(t, err)
	return bits
}

func TestSampleCountInvariantAcrossSchemes(t *testing.T) {
	bits := mustBits(t, "10110010")
	const bitPeriod, rate = 1.0, 100.0

	var want int
	for _, scheme := range Schemes() {
		wf, err := Encode(bits, scheme, bitPeriod, rate)
		require.NoError(t, err, "scheme %v", scheme)

		if want == 0 {
			want = wf.Len()
		}
		require.Equal(t, want, wf.Len(), "scheme %v sample count", scheme)
		require.Equal(t, len(bits)*100, wf.Len())
		require.Len(t, wf.T, wf.Len())
	}
}

func TestEncodeIsPure(t *testing.T) {
	bits := mustBits(t, "1101")
	a, err := Encode(bits, AMI, 1.0, 50)
	require.NoError(t, err)
	b, err := Encode(bits, AMI, 1.0, 50)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestNRZLLevels(t *testing.T) {
	wf, err := Encode(mustBits(t, "10"), NRZL, 1.0, 4)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 1, 1, 1, -1, -1, -1, -1}, wf.X)
}

func TestNRZIToggleOnOne(t *testing.T) {
	wf, err := Encode(mustBits(t, "1101"), NRZI, 1.0, 2)
	require.NoError(t, err)
	// start high: '1'->-1, '1'->+1, '0' holds +1, '1'->-1
	require.Equal(t, []float64{-1, -1, 1, 1, 1, 1, -1, -1}, wf.X)
}

func TestAMIAlternatesMarkPolarity(t *testing.T) {
	wf, err := Encode(mustBits(t, "1011"), AMI, 1.0, 2)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 1, 0, 0, -1, -1, 1, 1}, wf.X)
}

// Manchester rule over "1101": every bit yields two half-period segments
// with a mid-bit transition, '1' low-to-high and '0' high-to-low.
func TestManchesterHalfPeriods(t *testing.T) {
	bits := mustBits(t, "1101")
	wf, err := Encode(bits, Manchester, 1.0, 10)
	require.NoError(t, err)
	require.Equal(t, 40, wf.Len())

	half := 5
	for i, bit := range bits {
		first := wf.X[i*10]
		second := wf.X[i*10+half]
		require.NotEqual(t, first, second, "bit %d must transition mid-period", i)
		if bit == 1 {
			require.Equal(t, -1.0, first, "'1' starts low")
			require.Equal(t, 1.0, second, "'1' ends high")
		} else {
			require.Equal(t, 1.0, first, "'0' starts high")
			require.Equal(t, -1.0, second, "'0' ends low")
		}
		// level is constant within each half
		for j := 1; j < half; j++ {
			require.Equal(t, first, wf.X[i*10+j])
			require.Equal(t, second, wf.X[i*10+half+j])
		}
	}
}

func TestDiffManchesterTransitions(t *testing.T) {
	wf, err := Encode(mustBits(t, "01"), DiffManchester, 1.0, 4)
	require.NoError(t, err)
	// '0': start transition (high->low) then mid transition back to high.
	// '1': no start transition (stays high) then mid transition to low.
	require.Equal(t, []float64{-1, -1, 1, 1, 1, 1, -1, -1}, wf.X)
}

func TestDiffManchesterAlwaysTransitionsMidBit(t *testing.T) {
	bits := mustBits(t, "100110")
	wf, err := Encode(bits, DiffManchester, 1.0, 8)
	require.NoError(t, err)
	for i := range bits {
		require.NotEqual(t, wf.X[i*8+3], wf.X[i*8+4], "bit %d mid transition", i)
	}
}

func TestEncodeRejectsBadInput(t *testing.T) {
	_, err := Encode(nil, NRZL, 1.0, 100)
	require.ErrorIs(t, err, bitstring.ErrEmpty)

	_, err = Encode(mustBits(t, "1"), NRZL, 0, 100)
	require.ErrorIs(t, err, ErrBadPeriod)

	_, err = Encode(mustBits(t, "1"), NRZL, 1.0, -5)
	require.ErrorIs(t, err, ErrBadPeriod)
}

func TestParseScheme(t *testing.T) {
	cases := map[string]Scheme{
		"NRZ-L":                   NRZL,
		"nrzl":                    NRZL,
		"nrz-i":                   NRZI,
		"AMI":                     AMI,
		"manchester":              Manchester,
		"Differential Manchester": DiffManchester,
		"diff-manchester":         DiffManchester,
	}
	for name, want := range cases {
		got, err := ParseScheme(name)
		require.NoError(t, err, name)
		require.Equal(t, want, got, name)
	}

	_, err := ParseScheme("4b5b")
	if !errors.Is(err, ErrUnknownScheme) {
		t.Fatalf("Expected ErrUnknownScheme, got %v", err)
	}
}
