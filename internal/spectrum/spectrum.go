// Package spectrum synthesizes a composite signal from sinusoidal
// components and computes its normalized magnitude spectrum.
package spectrum

import (
	"errors"
	"fmt"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/floats"

	"sigstudio/internal/signal"
)

var (
	// ErrNoTones indicates an empty component list
	ErrNoTones = errors.New("at least one tone component is required")

	// ErrBadFrequency indicates a non-positive tone frequency
	ErrBadFrequency = errors.New("tone frequency must be positive")

	// ErrBadSampling indicates a non-positive sample rate or duration
	ErrBadSampling = errors.New("sample rate and duration must be positive")
)

// Composition is the full result of one compose cycle: the time-domain
// waveform, its positive-half magnitude spectrum and the clamping report.
type Composition struct {
	Waveform signal.Waveform

	// Freqs and Mags form the frequency -> magnitude series. Scaling puts a
	// pure tone of amplitude A at magnitude A; bin 0 carries the DC offset.
	Freqs []float64
	Mags  []float64

	// HasDC flags a non-zero DC offset so the renderer can mark bin 0
	HasDC bool

	// Clamped lists tones excluded from synthesis because their frequency
	// reaches or exceeds the Nyquist limit (sampleRate/2). They never alias
	// silently into the output.
	Clamped []signal.Tone
}

// Compose evaluates dcOffset + sum of amplitude*sin(2*pi*freq*t) at the
// given rate over the given duration and transforms the series into a
// normalized magnitude spectrum.
//
// Compose is pure: equal inputs always produce equal output.
func Compose(tones []signal.Tone, dcOffset, sampleRate, duration float64) (Composition, error) {
	if len(tones) == 0 {
		return Composition{}, ErrNoTones
	}
	if sampleRate <= 0 || duration <= 0 {
		return Composition{}, fmt.Errorf("sampleRate=%g duration=%g: %w", sampleRate, duration, ErrBadSampling)
	}
	for _, tn := range tones {
		if tn.Freq <= 0 {
			return Composition{}, fmt.Errorf("frequency %g Hz: %w", tn.Freq, ErrBadFrequency)
		}
	}

	n := int(sampleRate * duration)
	if n < 2 {
		return Composition{}, fmt.Errorf("%g Sps over %gs yields %d samples: %w", sampleRate, duration, n, ErrBadSampling)
	}

	nyquist := sampleRate / 2
	x := make([]float64, n)
	for i := range x {
		x[i] = dcOffset
	}

	var clamped []signal.Tone
	for _, tn := range tones {
		if tn.Freq >= nyquist {
			clamped = append(clamped, tn)
			continue
		}
		floats.Add(x, tn.Samples(n, sampleRate))
	}

	freqs, mags := magnitudeSpectrum(x, sampleRate)

	return Composition{
		Waveform: signal.Waveform{T: signal.TimeAxis(0, n, sampleRate), X: x},
		Freqs:    freqs,
		Mags:     mags,
		HasDC:    dcOffset != 0,
		Clamped:  clamped,
	}, nil
}

// magnitudeSpectrum returns the positive-frequency half of the DFT with
// amplitude scaling: |X0|/N for the DC bin, 2|Xk|/N elsewhere, so a pure
// tone of amplitude A peaks at A at the current resolution.
func magnitudeSpectrum(x []float64, sampleRate float64) (freqs, mags []float64) {
	n := len(x)
	spectrum := fft.FFTReal(x)

	half := n / 2
	freqs = make([]float64, half)
	mags = make([]float64, half)
	resolution := sampleRate / float64(n)

	for k := 0; k < half; k++ {
		freqs[k] = float64(k) * resolution
		mag := cmplx.Abs(spectrum[k]) / float64(n)
		if k > 0 {
			mag *= 2
		}
		mags[k] = mag
	}
	return freqs, mags
}

// PeakAt returns the magnitude of the bin closest to freq
func (c Composition) PeakAt(freq float64) float64 {
	if len(c.Freqs) == 0 {
		return 0
	}
	best, bestDist := 0, -1.0
	for i, f := range c.Freqs {
		d := f - freq
		if d < 0 {
			d = -d
		}
		if bestDist < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return c.Mags[best]
}
