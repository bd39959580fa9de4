package ui

import (
	"fmt"
	"io"
	"strconv"

	"sigstudio/internal/config"
	"sigstudio/internal/render"
	"sigstudio/internal/signal"
	"sigstudio/internal/spectrum"
)

// spectrumParams is the immutable parameter set of the spectrum tool
type spectrumParams struct {
	tones      []signal.Tone
	dcOffset   float64
	sampleRate float64
	duration   float64
}

func (p spectrumParams) clone() spectrumParams {
	out := p
	out.tones = append([]signal.Tone(nil), p.tones...)
	return out
}

// SpectrumSession is the interactive composite-signal explorer
type SpectrumSession struct {
	params spectrumParams
	comp   spectrum.Composition
	opts   render.Options
}

// NewSpectrumSession builds a session from the configured defaults
func NewSpectrumSession(cfg *config.Config) (*SpectrumSession, error) {
	if len(cfg.Spectrum.Frequencies) != len(cfg.Spectrum.Amplitudes) {
		return nil, fmt.Errorf("configured %d frequencies but %d amplitudes: %w",
			len(cfg.Spectrum.Frequencies), len(cfg.Spectrum.Amplitudes), spectrum.ErrNoTones)
	}

	tones := make([]signal.Tone, len(cfg.Spectrum.Frequencies))
	for i := range tones {
		tones[i] = signal.Tone{Freq: cfg.Spectrum.Frequencies[i], Amplitude: cfg.Spectrum.Amplitudes[i]}
	}

	s := &SpectrumSession{
		opts: render.Options{
			Width:   cfg.Render.Width,
			Height:  cfg.Render.Height,
			Braille: cfg.Render.Braille,
		},
	}
	params := spectrumParams{
		tones:      tones,
		dcOffset:   cfg.Spectrum.DCOffset,
		sampleRate: cfg.Spectrum.SampleRate,
		duration:   cfg.Spectrum.Duration,
	}
	if err := s.commit(params); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SpectrumSession) commit(p spectrumParams) error {
	comp, err := spectrum.Compose(p.tones, p.dcOffset, p.sampleRate, p.duration)
	if err != nil {
		return err
	}
	s.params = p
	s.comp = comp
	return nil
}

// Name implements Session
func (s *SpectrumSession) Name() string { return "plot-spectrum" }

// Help implements Session
func (s *SpectrumSession) Help() string {
	return `freq <n> <hz>     set frequency of tone n (1-based)
amp <n> <x>       set amplitude of tone n
add <hz> <amp>    append a tone
del <n>           remove tone n
dc <x>            set the DC offset
show              redraw the current plot
quit              exit`
}

// Apply implements Session
func (s *SpectrumSession) Apply(field string, args []string) error {
	p := s.params.clone()
	switch field {
	case "freq", "amp":
		if len(args) != 2 {
			return fmt.Errorf("usage: %s <n> <value>: %w", field, ErrUnknownCommand)
		}
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 || n > len(p.tones) {
			return fmt.Errorf("tone index %q out of range 1..%d: %w", args[0], len(p.tones), spectrum.ErrBadFrequency)
		}
		v, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("%q is not a number: %w", args[1], spectrum.ErrBadFrequency)
		}
		if field == "freq" {
			p.tones[n-1].Freq = v
		} else {
			p.tones[n-1].Amplitude = v
		}
	case "add":
		if len(args) != 2 {
			return fmt.Errorf("usage: add <hz> <amp>: %w", ErrUnknownCommand)
		}
		freq, err1 := strconv.ParseFloat(args[0], 64)
		amp, err2 := strconv.ParseFloat(args[1], 64)
		if err1 != nil || err2 != nil {
			return fmt.Errorf("add wants two numbers: %w", spectrum.ErrBadFrequency)
		}
		p.tones = append(p.tones, signal.Tone{Freq: freq, Amplitude: amp})
	case "del":
		if len(args) != 1 {
			return fmt.Errorf("usage: del <n>: %w", ErrUnknownCommand)
		}
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 || n > len(p.tones) {
			return fmt.Errorf("tone index %q out of range 1..%d: %w", args[0], len(p.tones), spectrum.ErrBadFrequency)
		}
		p.tones = append(p.tones[:n-1], p.tones[n:]...)
	case "dc":
		if len(args) != 1 {
			return fmt.Errorf("usage: dc <x>: %w", ErrUnknownCommand)
		}
		v, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("%q is not a number: %w", args[0], spectrum.ErrBadFrequency)
		}
		p.dcOffset = v
	default:
		return fmt.Errorf("%q: %w", field, ErrUnknownCommand)
	}
	return s.commit(p)
}

// Render implements Session
func (s *SpectrumSession) Render(w io.Writer) {
	fmt.Fprintf(w, "Components:")
	for i, tn := range s.params.tones {
		fmt.Fprintf(w, " [%d] %g Hz x %g", i+1, tn.Freq, tn.Amplitude)
	}
	fmt.Fprintf(w, " | DC %g\n\n", s.params.dcOffset)

	title := fmt.Sprintf("Time Domain Signal (DC offset = %g)", s.params.dcOffset)
	render.Waveform(w, title, s.comp.Waveform, s.opts)
	render.Stem(w, "Frequency Spectrum", s.comp.Freqs, s.comp.Mags, s.comp.HasDC, s.opts)

	for _, tn := range s.comp.Clamped {
		fmt.Fprintf(w, "warning: tone %g Hz at or above Nyquist (%g Hz) excluded from synthesis\n",
			tn.Freq, s.params.sampleRate/2)
	}
}
