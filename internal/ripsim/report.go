package ripsim

import (
	"fmt"
	"io"
	"time"
)

// WriteTopology prints the network as an adjacency listing with link costs
func WriteTopology(w io.Writer, t *Topology, source, destination string) {
	fmt.Fprintf(w, "Network Topology (source %s, destination %s):\n", source, destination)
	for _, router := range t.Routers() {
		fmt.Fprintf(w, "  %s:", router)
		for _, n := range t.Neighbors(router) {
			fmt.Fprintf(w, " %s(%g)", n, t.Cost(router, n))
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w)
}

// ReportOptions adjusts how a run is narrated
type ReportOptions struct {
	DisplayRouter string        // restrict table output to one router; empty shows all
	StepDelay     time.Duration // pause after each displayed iteration
}

// WriteReport narrates a full simulation run: initial tables, the tables and
// changes after every exchange round, and the resulting shortest path.
func WriteReport(w io.Writer, t *Topology, result RunResult, source, destination string, opts ReportOptions) {
	dests := t.Routers()
	display := dests
	if opts.DisplayRouter != "" {
		display = []string{opts.DisplayRouter}
	}

	fmt.Fprintln(w, "## Initial Routing Tables:")
	for _, router := range display {
		fmt.Fprintln(w)
		fmt.Fprintln(w, FormatTable(router, result.Initial[router], dests))
	}

	for _, round := range result.Rounds {
		fmt.Fprintf(w, "\n## After Iteration %d:\n", round.Number)
		for _, router := range display {
			fmt.Fprintln(w)
			fmt.Fprintln(w, FormatTable(router, round.Tables[router], dests))
		}
		fmt.Fprintf(w, "### Changes in Iteration %d:\n", round.Number)
		for _, change := range round.Changes {
			fmt.Fprintf(w, "- %s\n", change)
		}
		if opts.StepDelay > 0 {
			time.Sleep(opts.StepDelay)
		}
	}

	if result.Converged {
		fmt.Fprintln(w, "\nConverged!")
	} else {
		fmt.Fprintln(w, "\nStopped before convergence (iteration limit reached).")
	}

	path, cost := Path(result.Final, source, destination)
	if path == nil {
		fmt.Fprintf(w, "No route from %s to %s.\n", source, destination)
		return
	}
	fmt.Fprintf(w, "Shortest path from %s to %s:", source, destination)
	for i, hop := range path {
		if i > 0 {
			fmt.Fprint(w, " ->")
		}
		fmt.Fprintf(w, " %s", hop)
	}
	fmt.Fprintf(w, " (cost %g)\n", cost)
}
