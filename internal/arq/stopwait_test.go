package arq

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func cleanParams() Params {
	return Params{
		PropagationDelay: 5.0,
		TransmissionTime: 1.0,
		ProcessingTime:   0.5,
		Frames:           10,
		ErrorProbability: 0,
		Seed:             1,
	}
}

func TestErrorFreeRun(t *testing.T) {
	p := cleanParams()
	res, err := Run(p)
	require.NoError(t, err)

	require.Equal(t, 10, res.Stats.Delivered)
	require.Equal(t, 10, res.Stats.Transmissions, "no errors means no retransmissions")
	require.Zero(t, res.Stats.Retransmissions)

	// each frame costs exactly one round trip: tf + 2tp + ta = 11.5
	require.InDelta(t, 10*11.5, res.Stats.ElapsedTime, 1e-9)
	require.InDelta(t, 1.0/11.5, res.Stats.Utilization, 1e-9)

	// sequence numbers alternate 0,1,0,1,...
	seq := 0
	for _, e := range res.Events {
		if e.Kind != EventSend {
			continue
		}
		require.Equal(t, seq, e.Seq)
		seq = (seq + 1) % 2
	}
}

func TestCorruptedFramesRetransmit(t *testing.T) {
	p := cleanParams()
	p.ErrorProbability = 0.3
	p.Seed = 42

	res, err := Run(p)
	require.NoError(t, err)

	require.Equal(t, 10, res.Stats.Delivered, "every frame is eventually delivered")
	require.Equal(t, res.Stats.Transmissions, 10+res.Stats.Retransmissions)

	// a retransmission reuses the damaged frame's sequence number
	for i, e := range res.Events {
		if e.Kind == EventSend && e.Retransmit {
			require.Greater(t, i, 0)
			prev := res.Events[i-1]
			require.Equal(t, EventAck, prev.Kind)
			require.True(t, prev.Corrupted)
			require.Equal(t, prev.Seq, e.Seq)
		}
	}
}

func TestRunIsReproducible(t *testing.T) {
	p := cleanParams()
	p.ErrorProbability = 0.5
	p.Seed = 7

	a, err := Run(p)
	require.NoError(t, err)
	b, err := Run(p)
	require.NoError(t, err)
	require.Equal(t, a, b, "equal seeds must reproduce the run")

	p.Seed = 8
	c, err := Run(p)
	require.NoError(t, err)
	require.NotEqual(t, a.Events, c.Events, "different seeds should diverge at p=0.5")
}

func TestEventOrdering(t *testing.T) {
	p := cleanParams()
	p.ErrorProbability = 0.4
	p.Seed = 3

	res, err := Run(p)
	require.NoError(t, err)
	for i := 1; i < len(res.Events); i++ {
		require.LessOrEqual(t, res.Events[i-1].Time, res.Events[i].Time, "log must be time ordered")
	}
}

func TestRunValidation(t *testing.T) {
	p := cleanParams()
	p.TransmissionTime = 0
	_, err := Run(p)
	require.ErrorIs(t, err, ErrBadTiming)

	p = cleanParams()
	p.ErrorProbability = 1.0
	_, err = Run(p)
	require.ErrorIs(t, err, ErrBadProbability)

	p = cleanParams()
	p.Frames = 0
	_, err = Run(p)
	require.ErrorIs(t, err, ErrNoFrames)
}
