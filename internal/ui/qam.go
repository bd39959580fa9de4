package ui

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"sigstudio/internal/bitstring"
	"sigstudio/internal/config"
	"sigstudio/internal/qam"
	"sigstudio/internal/render"
)

// qamParams is the immutable parameter set of the QAM tool
type qamParams struct {
	bits  bitstring.Bits
	order int
	cfg   qam.Config
}

// QAMSession is the interactive QAM modulator
type QAMSession struct {
	params qamParams
	mod    qam.Modulation
	opts   render.Options
}

// NewQAMSession builds a session from the configured defaults
func NewQAMSession(cfg *config.Config) (*QAMSession, error) {
	bits, err := bitstring.Parse(cfg.QAM.BitPattern)
	if err != nil {
		return nil, fmt.Errorf("configured bit pattern: %w", err)
	}

	s := &QAMSession{
		opts: render.Options{
			Width:   cfg.Render.Width,
			Height:  cfg.Render.Height,
			Braille: cfg.Render.Braille,
		},
	}
	params := qamParams{
		bits:  bits,
		order: cfg.QAM.Order,
		cfg: qam.Config{
			CarrierFreq: cfg.QAM.CarrierFreq,
			SymbolRate:  cfg.QAM.SymbolRate,
			SampleRate:  cfg.QAM.SampleRate,
		},
	}
	if err := s.commit(params); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *QAMSession) commit(p qamParams) error {
	mod, err := qam.Modulate(p.bits, p.order, p.cfg)
	if err != nil {
		return err
	}
	s.params = p
	s.mod = mod
	return nil
}

// Name implements Session
func (s *QAMSession) Name() string { return "plot-qam" }

// Help implements Session
func (s *QAMSession) Help() string {
	return `bits <pattern>    set the bit pattern (0s and 1s)
order <n>         set the QAM order (4, 16, 64, 256)
carrier <hz>      set the carrier frequency
show              redraw the current plot
quit              exit`
}

// Apply implements Session
func (s *QAMSession) Apply(field string, args []string) error {
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
	case "order":
		if len(args) != 1 {
			return fmt.Errorf("usage: order <n>: %w", ErrUnknownCommand)
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("%q is not an integer: %w", args[0], qam.ErrInvalidOrder)
		}
		p.order = n
	case "carrier":
		if len(args) != 1 {
			return fmt.Errorf("usage: carrier <hz>: %w", ErrUnknownCommand)
		}
		v, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("%q is not a number: %w", args[0], qam.ErrBadConfig)
		}
		p.cfg.CarrierFreq = v
	default:
		return fmt.Errorf("%q: %w", field, ErrUnknownCommand)
	}
	return s.commit(p)
}

// Render implements Session
func (s *QAMSession) Render(w io.Writer) {
	render.BitPattern(w, s.params.bits, s.opts)

	title := fmt.Sprintf("%d-QAM Modulated Signal", s.mod.Order)
	render.Waveform(w, title, s.mod.Signal, s.opts)

	used := make(map[string]bool, len(s.mod.Symbols))
	for _, sym := range s.mod.Symbols {
		used[sym.Bits.String()] = true
	}

	groups := make([]string, 0, len(s.mod.SymbolMap))
	for group := range s.mod.SymbolMap {
		groups = append(groups, group)
	}
	sort.Strings(groups)

	// the full map first, transmitted points on top so their marker wins
	pts := make([]render.ScatterPoint, 0, len(groups))
	for _, group := range groups {
		if used[group] {
			continue
		}
		p := s.mod.SymbolMap[group]
		pts = append(pts, render.ScatterPoint{X: p.I, Y: p.Q, Label: group, Marker: 'o'})
	}
	for _, group := range groups {
		if !used[group] {
			continue
		}
		p := s.mod.SymbolMap[group]
		pts = append(pts, render.ScatterPoint{X: p.I, Y: p.Q, Label: group, Marker: '*'})
	}
	render.Scatter(w, "Constellation Diagram", pts, s.opts)
	fmt.Fprintln(w, "       * transmitted symbol | o unused constellation point")

	fmt.Fprintf(w, "Symbols (%d bits each", s.mod.BitsPerSymbol)
	if s.mod.PaddedBits > 0 {
		fmt.Fprintf(w, ", %d pad bits appended", s.mod.PaddedBits)
	}
	fmt.Fprintln(w, "):")
	for _, sym := range s.mod.Symbols {
		fmt.Fprintf(w, "  #%d  %s -> (I=%+.0f, Q=%+.0f)\n", sym.Index, sym.Bits.String(), sym.Point.I, sym.Point.Q)
	}
	fmt.Fprintln(w)
}
