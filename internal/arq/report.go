package arq

import (
	"fmt"
	"io"
)

// WriteReport prints the event log followed by the run summary
func WriteReport(w io.Writer, p Params, r Result) {
	fmt.Fprintf(w, "Stop-and-Wait ARQ: %d frames, tp=%g tf=%g ta=%g, error probability %g\n\n",
		p.Frames, p.PropagationDelay, p.TransmissionTime, p.ProcessingTime, p.ErrorProbability)

	for _, e := range r.Events {
		fmt.Fprintln(w, e.String())
	}

	fmt.Fprintf(w, "\nDelivered:       %d frames\n", r.Stats.Delivered)
	fmt.Fprintf(w, "Transmissions:   %d (%d retransmissions)\n", r.Stats.Transmissions, r.Stats.Retransmissions)
	fmt.Fprintf(w, "Elapsed time:    %.4f s\n", r.Stats.ElapsedTime)
	fmt.Fprintf(w, "Utilization:     %.4f (tf / (tf + 2tp + ta))\n", r.Stats.Utilization)
}
