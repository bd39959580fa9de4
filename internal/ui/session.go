// Package ui implements the synchronous read-eval-render loops behind the
// interactive plot tools. Each session holds one immutable parameter set;
// a submitted command either replaces it wholesale and triggers a full
// redraw, or fails validation and leaves the previous plot in place.
package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
)

// ErrUnknownCommand indicates a command outside the session's vocabulary
var ErrUnknownCommand = errors.New("unknown command")

// Session is one interactive tool: a parameter set, a vocabulary of
// parameter-changing commands and a renderer over the current parameters.
type Session interface {
	// Name is the prompt prefix
	Name() string

	// Help describes the command vocabulary
	Help() string

	// Apply validates one command against the current parameters and, on
	// success, swaps in the updated set. On error the session state is
	// unchanged.
	Apply(field string, args []string) error

	// Render draws the plots for the current parameters
	Render(w io.Writer)
}

// Run drives a session until EOF or quit. Every cycle reads one line,
// applies it and redraws; invalid input prints a message and keeps the
// previous plot. No error is fatal.
func Run(s Session, in io.Reader, out io.Writer, log *zap.Logger) error {
	s.Render(out)
	fmt.Fprintln(out, "Type 'help' for commands, 'quit' to exit.")

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprintf(out, "%s> ", s.Name())
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "quit", "exit", "q":
			return nil
		case "help", "?":
			fmt.Fprintln(out, s.Help())
			continue
		case "show":
			s.Render(out)
			continue
		}

		if err := s.Apply(fields[0], fields[1:]); err != nil {
			fmt.Fprintf(out, "error: %v (previous plot retained)\n", err)
			log.Warn("rejected input", zap.String("session", s.Name()), zap.String("line", line), zap.Error(err))
			continue
		}

		log.Debug("parameters updated", zap.String("session", s.Name()), zap.String("line", line))
		s.Render(out)
	}
}
