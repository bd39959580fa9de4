// Package signal provides the shared sampled-waveform value type and
// closed-form tone synthesis used by the encoder, composer and modulator.
package signal

import "math"

// Waveform is an ordered series of (time, amplitude) samples.
// Waveforms are value objects: recomputed wholesale on every parameter
// change, never mutated in place.
type Waveform struct {
	T []float64 // sample times in seconds
	X []float64 // amplitudes
}

// Len returns the number of samples
func (w Waveform) Len() int { return len(w.X) }

// Duration returns the time span covered by the waveform, including the
// final sample's period.
func (w Waveform) Duration() float64 {
	n := len(w.T)
	if n < 2 {
		return 0
	}
	dt := (w.T[n-1] - w.T[0]) / float64(n-1)
	return w.T[n-1] - w.T[0] + dt
}

// TimeAxis builds n sample times at the given rate starting at t0,
// endpoint excluded (matches numpy.linspace(..., endpoint=False)).
func TimeAxis(t0 float64, n int, sampleRate float64) []float64 {
	t := make([]float64, n)
	for i := range t {
		t[i] = t0 + float64(i)/sampleRate
	}
	return t
}

// Tone holds the parameters of a single sinusoidal component
type Tone struct {
	Freq      float64 // Hz
	Amplitude float64
	Phase     float64 // radians
}

// Samples evaluates the tone at n points of the given sample rate
func (tn Tone) Samples(n int, sampleRate float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		t := float64(i) / sampleRate
		out[i] = tn.Amplitude * math.Sin(2*math.Pi*tn.Freq*t+tn.Phase)
	}
	return out
}

// Carrier evaluates cosine and sine carrier tables for one symbol period.
// The tables are reused across symbols so every segment carries an
// identical phase trajectory.
func Carrier(freq, sampleRate float64, n int) (cos, sin []float64) {
	cos = make([]float64, n)
	sin = make([]float64, n)
	for i := 0; i < n; i++ {
		t := float64(i) / sampleRate
		cos[i] = math.Cos(2 * math.Pi * freq * t)
		sin[i] = math.Sin(2 * math.Pi * freq * t)
	}
	return cos, sin
}
