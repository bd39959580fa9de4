package spectrum

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"sigstudio/internal/signal"
)

func TestSingleTonePeak(t *testing.T) {
	comp, err := Compose([]signal.Tone{{Freq: 10, Amplitude: 1.0}}, 0, 1000, 1)
	require.NoError(t, err)

	require.Equal(t, 1000, comp.Waveform.Len())
	require.False(t, comp.HasDC)
	require.Empty(t, comp.Clamped)

	// A 1.0-amplitude 10 Hz tone over an integer number of cycles lands
	// exactly in one bin with magnitude ~1.
	require.InDelta(t, 1.0, comp.PeakAt(10), 1e-6)

	// everything away from 10 Hz stays near zero
	for i, f := range comp.Freqs {
		if math.Abs(f-10) < 1.5 {
			continue
		}
		require.InDelta(t, 0, comp.Mags[i], 1e-6, "bin %g Hz", f)
	}
}

func TestMultiToneAndDC(t *testing.T) {
	tones := []signal.Tone{
		{Freq: 1, Amplitude: 1.0},
		{Freq: 3, Amplitude: 0.5},
		{Freq: 5, Amplitude: 0.3},
	}
	comp, err := Compose(tones, 0.4, 1000, 1)
	require.NoError(t, err)

	require.True(t, comp.HasDC)
	require.InDelta(t, 0.4, comp.Mags[0], 1e-6, "DC bin carries the offset")
	require.InDelta(t, 1.0, comp.PeakAt(1), 1e-6)
	require.InDelta(t, 0.5, comp.PeakAt(3), 1e-6)
	require.InDelta(t, 0.3, comp.PeakAt(5), 1e-6)
}

func TestNyquistClamping(t *testing.T) {
	tones := []signal.Tone{
		{Freq: 10, Amplitude: 1.0},
		{Freq: 600, Amplitude: 2.0}, // above Nyquist for 1 kSps
		{Freq: 500, Amplitude: 1.0}, // exactly at Nyquist, also excluded
	}
	comp, err := Compose(tones, 0, 1000, 1)
	require.NoError(t, err)

	require.Len(t, comp.Clamped, 2)
	require.Equal(t, 600.0, comp.Clamped[0].Freq)
	require.Equal(t, 500.0, comp.Clamped[1].Freq)

	// the clamped tones contribute nothing: signal is the 10 Hz tone alone
	require.InDelta(t, 1.0, comp.PeakAt(10), 1e-6)
	var total float64
	for _, m := range comp.Mags {
		total += m
	}
	require.InDelta(t, 1.0, total, 1e-3)
}

func TestComposeIsPure(t *testing.T) {
	tones := []signal.Tone{{Freq: 7, Amplitude: 0.8}}
	a, err := Compose(tones, 0.1, 500, 2)
	require.NoError(t, err)
	b, err := Compose(tones, 0.1, 500, 2)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestComposeValidation(t *testing.T) {
	_, err := Compose(nil, 0, 1000, 1)
	require.ErrorIs(t, err, ErrNoTones)

	_, err = Compose([]signal.Tone{{Freq: -1, Amplitude: 1}}, 0, 1000, 1)
	require.ErrorIs(t, err, ErrBadFrequency)

	_, err = Compose([]signal.Tone{{Freq: 1, Amplitude: 1}}, 0, 0, 1)
	require.ErrorIs(t, err, ErrBadSampling)

	_, err = Compose([]signal.Tone{{Freq: 1, Amplitude: 1}}, 0, 1000, -2)
	require.ErrorIs(t, err, ErrBadSampling)
}
