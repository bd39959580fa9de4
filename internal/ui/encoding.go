package ui

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"sigstudio/internal/bitstring"
	"sigstudio/internal/config"
	"sigstudio/internal/encoding"
	"sigstudio/internal/render"
	"sigstudio/internal/signal"
)

// encodingParams is the immutable parameter set of the line-encoding tool
type encodingParams struct {
	bits       bitstring.Bits
	scheme     encoding.Scheme
	bitPeriod  float64
	sampleRate float64
}

// EncodingSession is the interactive line-encoding explorer
type EncodingSession struct {
	params encodingParams
	wave   signal.Waveform
	opts   render.Options
}

// NewEncodingSession builds a session from the configured defaults
func NewEncodingSession(cfg *config.Config) (*EncodingSession, error) {
	bits, err := bitstring.Parse(cfg.Encoding.BitPattern)
	if err != nil {
		return nil, fmt.Errorf("configured bit pattern: %w", err)
	}
	scheme, err := encoding.ParseScheme(cfg.Encoding.Scheme)
	if err != nil {
		return nil, fmt.Errorf("configured scheme: %w", err)
	}

	s := &EncodingSession{
		opts: render.Options{
			Width:   cfg.Render.Width,
			Height:  cfg.Render.Height,
			Braille: cfg.Render.Braille,
		},
	}
	params := encodingParams{
		bits:       bits,
		scheme:     scheme,
		bitPeriod:  cfg.Encoding.BitPeriod,
		sampleRate: cfg.Encoding.SampleRate,
	}
	if err := s.commit(params); err != nil {
		return nil, err
	}
	return s, nil
}

// commit validates candidate parameters by encoding them; only a
// successful encode replaces the session state.
func (s *EncodingSession) commit(p encodingParams) error {
	wave, err := encoding.Encode(p.bits, p.scheme, p.bitPeriod, p.sampleRate)
	if err != nil {
		return err
	}
	s.params = p
	s.wave = wave
	return nil
}

// Name implements Session
func (s *EncodingSession) Name() string { return "plot-encoding" }

// Help implements Session
func (s *EncodingSession) Help() string {
	names := make([]string, 0, len(encoding.Schemes()))
	for _, sc := range encoding.Schemes() {
		names = append(names, sc.String())
	}
	return strings.Join([]string{
		"bits <pattern>    set the bit pattern (0s and 1s)",
		"scheme <name>     select " + strings.Join(names, ", "),
		"period <seconds>  set the bit period",
		"show              redraw the current plot",
		"quit              exit",
	}, "\n")
}

// Apply implements Session
func (s *EncodingSession) Apply(field string, args []string) error {
	p := s.params
	switch field {
	case "bits":
		if len(args) != 1 {
			return fmt.Errorf("usage: bits <pattern>: %w", ErrUnknownCommand)
		}
		bits, err := bitstring.Parse(args[0])
		if err != nil {
			return err
		}
		p.bits = bits
	case "scheme":
		if len(args) == 0 {
			return fmt.Errorf("usage: scheme <name>: %w", ErrUnknownCommand)
		}
		scheme, err := encoding.ParseScheme(strings.Join(args, " "))
		if err != nil {
			return err
		}
		p.scheme = scheme
	case "period":
		if len(args) != 1 {
			return fmt.Errorf("usage: period <seconds>: %w", ErrUnknownCommand)
		}
		v, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("%q is not a number: %w", args[0], encoding.ErrBadPeriod)
		}
		p.bitPeriod = v
	default:
		return fmt.Errorf("%q: %w", field, ErrUnknownCommand)
	}
	return s.commit(p)
}

// Render implements Session
func (s *EncodingSession) Render(w io.Writer) {
	render.BitPattern(w, s.params.bits, s.opts)
	title := fmt.Sprintf("%s Encoded Signal", s.params.scheme)
	render.Waveform(w, title, s.wave, s.opts)
}
