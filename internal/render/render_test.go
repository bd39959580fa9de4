package render

import (
	"bytes"
	"strings"
	"testing"

	"sigstudio/internal/bitstring"
	"sigstudio/internal/signal"
)

func testWaveform() signal.Waveform {
	tone := signal.Tone{Freq: 2, Amplitude: 1}
	return signal.Waveform{
		T: signal.TimeAxis(0, 100, 100),
		X: tone.Samples(100, 100),
	}
}

func TestWaveformFramesThePlot(t *testing.T) {
	var buf bytes.Buffer
	opts := Options{Width: 40, Height: 8}
	Waveform(&buf, "Encoded Signal", testWaveform(), opts)

	out := buf.String()
	if !strings.Contains(out, "Encoded Signal") {
		t.Fatalf("Missing title in output:\n%s", out)
	}
	if !strings.Contains(out, "Samples: 100") {
		t.Fatalf("Missing sample count in output:\n%s", out)
	}
	if !strings.Contains(out, "+"+strings.Repeat("-", 40)+"+") {
		t.Fatalf("Missing axis frame in output:\n%s", out)
	}
	if !strings.Contains(out, "*") {
		t.Fatalf("No data points plotted:\n%s", out)
	}

	// every grid row is framed by pipes
	rows := 0
	for _, line := range strings.Split(out, "\n") {
		if strings.HasSuffix(line, "|") && strings.Contains(line, " |") {
			rows++
		}
	}
	if rows != 8 {
		t.Fatalf("Expected 8 plot rows, found %d:\n%s", rows, out)
	}
}

func TestWaveformBrailleMode(t *testing.T) {
	var buf bytes.Buffer
	Waveform(&buf, "Signal", testWaveform(), Options{Width: 40, Height: 8, Braille: true})

	found := false
	for _, r := range buf.String() {
		if r >= 0x2800 && r <= 0x28FF && r != 0x2800 {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("Braille mode produced no braille cells:\n%s", buf.String())
	}
}

func TestWaveformEmptyInput(t *testing.T) {
	var buf bytes.Buffer
	Waveform(&buf, "Empty", signal.Waveform{}, DefaultOptions())
	if !strings.Contains(buf.String(), "no samples") {
		t.Fatalf("Expected empty-input notice, got:\n%s", buf.String())
	}
}

func TestStemMarksDC(t *testing.T) {
	var buf bytes.Buffer
	freqs := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	mags := []float64{0.4, 0, 0, 1.0, 0, 0.5, 0, 0, 0, 0, 0}
	Stem(&buf, "Frequency Spectrum", freqs, mags, true, Options{Width: 44, Height: 8})

	out := buf.String()
	if !strings.Contains(out, "DC component present at bin 0: 0.400") {
		t.Fatalf("Missing DC marker:\n%s", out)
	}
	if !strings.Contains(out, "+") || !strings.Contains(out, "|") {
		t.Fatalf("Missing stem bars:\n%s", out)
	}
}

func TestScatterLabelsPoints(t *testing.T) {
	var buf bytes.Buffer
	pts := []ScatterPoint{
		{X: -3, Y: 3, Label: "0010"},
		{X: 1, Y: -1, Label: "1101"},
	}
	Scatter(&buf, "Constellation Diagram", pts, Options{Width: 48, Height: 12})

	out := buf.String()
	for _, want := range []string{"Constellation Diagram", "o0010", "o1101"} {
		if !strings.Contains(out, want) {
			t.Fatalf("Missing %q in scatter output:\n%s", want, out)
		}
	}
}

func TestScatterMarkerOverridesDefault(t *testing.T) {
	var buf bytes.Buffer
	pts := []ScatterPoint{
		{X: -1, Y: 1, Label: "01"},
		{X: 1, Y: -1, Label: "10", Marker: '*'},
	}
	Scatter(&buf, "Constellation Diagram", pts, Options{Width: 48, Height: 12})

	out := buf.String()
	if !strings.Contains(out, "o01") {
		t.Fatalf("Unmarked point should draw as 'o':\n%s", out)
	}
	if !strings.Contains(out, "*10") {
		t.Fatalf("Marker rune not applied:\n%s", out)
	}
}

func TestBitPatternSquareWave(t *testing.T) {
	var buf bytes.Buffer
	bits, err := bitstring.Parse("10")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	BitPattern(&buf, bits, Options{Width: 20, Height: 4})

	out := buf.String()
	if !strings.Contains(out, "Input Bit Pattern: 10") {
		t.Fatalf("Missing header:\n%s", out)
	}
	lines := strings.Split(out, "\n")
	var high, low string
	for _, line := range lines {
		if strings.HasPrefix(line, "      1 |") {
			high = line
		}
		if strings.HasPrefix(line, "      0 |") {
			low = line
		}
	}
	if !strings.Contains(high, "_") || !strings.Contains(low, "_") {
		t.Fatalf("Square wave not drawn on both levels:\n%s", out)
	}
}
