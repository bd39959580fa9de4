// Package arq simulates Stop-and-Wait ARQ as a discrete event system with
// probabilistic frame corruption.
package arq

import (
	"container/heap"
	"errors"
	"fmt"
	"math/rand"
)

var (
	// ErrBadTiming indicates non-positive delay parameters
	ErrBadTiming = errors.New("propagation, transmission and processing times must be positive")

	// ErrBadProbability indicates an error probability outside [0, 1)
	ErrBadProbability = errors.New("error probability must be in [0, 1)")

	// ErrNoFrames indicates a non-positive frame count
	ErrNoFrames = errors.New("frame count must be positive")
)

// Params configures one simulation run
type Params struct {
	PropagationDelay float64 // tp: one-way propagation delay
	TransmissionTime float64 // tf: frame transmission time
	ProcessingTime   float64 // ta: receiver processing time
	Frames           int     // frames to deliver
	ErrorProbability float64 // chance a frame arrives corrupted
	Seed             int64   // RNG seed; equal seeds reproduce runs exactly
}

// EventKind distinguishes the two event types of the protocol
type EventKind int

const (
	EventSend EventKind = iota // sender puts a frame on the line
	EventAck                   // acknowledgement arrives back at the sender
)

// Event is one entry of the simulation log
type Event struct {
	Time       float64
	Kind       EventKind
	Seq        int  // frame sequence number (alternating 0/1)
	Corrupted  bool // send: frame will arrive damaged; ack: acknowledges the damaged frame
	Retransmit bool // send event caused by a negative acknowledgement
}

// String renders the event as one line of the simulation narrative
func (e Event) String() string {
	switch e.Kind {
	case EventSend:
		s := fmt.Sprintf("t=%8.4f  send frame %d", e.Time, e.Seq)
		if e.Retransmit {
			s += " (retransmission)"
		}
		if e.Corrupted {
			s += " [will arrive in error]"
		}
		return s
	case EventAck:
		if e.Corrupted {
			return fmt.Sprintf("t=%8.4f  ack %d (frame damaged, resend expected)", e.Time, e.Seq)
		}
		return fmt.Sprintf("t=%8.4f  ack %d", e.Time, e.Seq)
	}
	return fmt.Sprintf("t=%8.4f  event(%d)", e.Time, int(e.Kind))
}

// Stats summarizes a completed run
type Stats struct {
	Delivered       int     // frames successfully acknowledged
	Transmissions   int     // total send events, retransmissions included
	Retransmissions int     // send events beyond the first per frame
	ElapsedTime     float64 // simulated time until the final ack
	Utilization     float64 // tf / (tf + 2tp + ta), the protocol ceiling
}

// Result is the ordered event log plus the summary
type Result struct {
	Events []Event
	Stats  Stats
}

// event queue ordered by time, ties broken by insertion order

type queuedEvent struct {
	Event
	order int
}

type eventQueue []queuedEvent

func (q eventQueue) Len() int { return len(q) }
func (q eventQueue) Less(i, j int) bool {
	if q[i].Time != q[j].Time {
		return q[i].Time < q[j].Time
	}
	return q[i].order < q[j].order
}
func (q eventQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *eventQueue) Push(x interface{}) { *q = append(*q, x.(queuedEvent)) }
func (q *eventQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// Run executes the simulation to completion. A corrupted frame produces an
// acknowledgement for the same sequence number after the full round trip
// (tf + 2tp + ta), which the sender answers with a retransmission; a clean
// frame advances the alternating sequence number until Frames frames are
// delivered.
func Run(p Params) (Result, error) {
	if p.PropagationDelay <= 0 || p.TransmissionTime <= 0 || p.ProcessingTime <= 0 {
		return Result{}, fmt.Errorf("tp=%g tf=%g ta=%g: %w",
			p.PropagationDelay, p.TransmissionTime, p.ProcessingTime, ErrBadTiming)
	}
	if p.ErrorProbability < 0 || p.ErrorProbability >= 1 {
		return Result{}, fmt.Errorf("p=%g: %w", p.ErrorProbability, ErrBadProbability)
	}
	if p.Frames <= 0 {
		return Result{}, fmt.Errorf("%d frames: %w", p.Frames, ErrNoFrames)
	}

	rng := rand.New(rand.NewSource(p.Seed))
	roundTrip := p.TransmissionTime + 2*p.PropagationDelay + p.ProcessingTime

	var (
		q         eventQueue
		order     int
		result    Result
		delivered int
		now       float64
	)
	push := func(e Event) {
		heap.Push(&q, queuedEvent{Event: e, order: order})
		order++
	}

	push(Event{Time: 0, Kind: EventSend, Seq: 0})

	for q.Len() > 0 {
		qe := heap.Pop(&q).(queuedEvent)
		now = qe.Time
		e := qe.Event

		switch e.Kind {
		case EventSend:
			e.Corrupted = rng.Float64() < p.ErrorProbability
			result.Events = append(result.Events, e)
			result.Stats.Transmissions++
			if e.Retransmit {
				result.Stats.Retransmissions++
			}
			// the ack for this frame (positive or not) arrives one full
			// round trip later
			push(Event{Time: now + roundTrip, Kind: EventAck, Seq: e.Seq, Corrupted: e.Corrupted})

		case EventAck:
			result.Events = append(result.Events, e)
			if e.Corrupted {
				push(Event{Time: now, Kind: EventSend, Seq: e.Seq, Retransmit: true})
				continue
			}
			delivered++
			if delivered < p.Frames {
				push(Event{Time: now, Kind: EventSend, Seq: (e.Seq + 1) % 2})
			}
		}
	}

	result.Stats.Delivered = delivered
	result.Stats.ElapsedTime = now
	result.Stats.Utilization = p.TransmissionTime / roundTrip
	return result, nil
}
