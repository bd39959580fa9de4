// Package render draws waveforms, spectra and constellations as
// character-cell graphs for the terminal.
package render

import (
	"fmt"
	"io"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"

	"sigstudio/internal/bitstring"
	"sigstudio/internal/signal"
)

// Options controls the plot grid dimensions
type Options struct {
	Width   int  // columns of the plot area
	Height  int  // rows of the plot area
	Braille bool // render waveforms with 2x4 braille dot cells
}

// DefaultOptions returns a grid that fits a standard terminal
func DefaultOptions() Options {
	return Options{Width: 72, Height: 16}
}

func (o Options) clamped() Options {
	if o.Width < 16 {
		o.Width = 16
	}
	if o.Height < 4 {
		o.Height = 4
	}
	return o
}

// Waveform draws an amplitude-over-time line plot with y-axis labels and a
// framed x-axis.
func Waveform(w io.Writer, title string, wf signal.Waveform, opts Options) {
	opts = opts.clamped()
	if wf.Len() == 0 {
		fmt.Fprintf(w, "%s: no samples to display\n\n", title)
		return
	}

	minV := floats.Min(wf.X)
	maxV := floats.Max(wf.X)
	if maxV == minV {
		maxV = minV + 1e-6
	}

	fmt.Fprintf(w, "%s\n", title)
	fmt.Fprintf(w, "Samples: %d | Duration: %.3fs | Range: %.3f to %.3f\n",
		wf.Len(), wf.Duration(), minV, maxV)

	if opts.Braille {
		brailleGrid(w, wf.X, minV, maxV, opts)
	} else {
		lineGrid(w, wf.X, minV, maxV, opts)
	}
	timeLabels(w, wf.Duration(), opts.Width)
	fmt.Fprintln(w)
}

// lineGrid plots samples as '*' cells, '#' where several samples land in
// the same cell
func lineGrid(w io.Writer, x []float64, minV, maxV float64, opts Options) {
	grid := make([][]rune, opts.Height)
	for i := range grid {
		grid[i] = make([]rune, opts.Width)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}

	for i, v := range x {
		col := 0
		if len(x) > 1 {
			col = int(float64(i) * float64(opts.Width-1) / float64(len(x)-1))
		}
		row := cellRow(v, minV, maxV, opts.Height)
		if grid[row][col] == ' ' {
			grid[row][col] = '*'
		} else {
			grid[row][col] = '#'
		}
	}

	printGrid(w, grid, minV, maxV, opts)
}

// Braille dot positions (col, row) -> bit offset:
//
//	(0,0)=0  (1,0)=3
//	(0,1)=1  (1,1)=4
//	(0,2)=2  (1,2)=5
//	(0,3)=6  (1,3)=7
var brailleBits = [2][4]uint{
	{0, 1, 2, 6},
	{3, 4, 5, 7},
}

// brailleGrid plots at 2x horizontal and 4x vertical dot resolution
func brailleGrid(w io.Writer, x []float64, minV, maxV float64, opts Options) {
	dotCols := opts.Width * 2
	dotRows := opts.Height * 4

	// resample the series to dot-column resolution
	levels := make([]float64, dotCols)
	for dc := 0; dc < dotCols; dc++ {
		idx := 0
		if dotCols > 1 {
			idx = int(float64(dc) * float64(len(x)-1) / float64(dotCols-1))
		}
		levels[dc] = x[idx]
	}

	grid := make([][]rune, opts.Height)
	for row := range grid {
		grid[row] = make([]rune, opts.Width)
		for col := 0; col < opts.Width; col++ {
			var pattern uint
			for dx := 0; dx < 2; dx++ {
				dc := col*2 + dx
				norm := (levels[dc] - minV) / (maxV - minV)
				dotRow := int(float64(dotRows-1) * (1 - norm))
				if dotRow/4 == row {
					pattern |= 1 << brailleBits[dx][dotRow%4]
				}
			}
			grid[row][col] = rune(0x2800 + pattern)
		}
	}

	printGrid(w, grid, minV, maxV, opts)
}

func printGrid(w io.Writer, grid [][]rune, minV, maxV float64, opts Options) {
	for i, row := range grid {
		normY := float64(opts.Height-1-i) / float64(opts.Height-1)
		label := minV + normY*(maxV-minV)
		fmt.Fprintf(w, "%8.3f |%s|\n", label, string(row))
	}
	fmt.Fprintf(w, "         +%s+\n", strings.Repeat("-", opts.Width))
}

func timeLabels(w io.Writer, duration float64, width int) {
	mid := fmt.Sprintf("%.3fs", duration/2)
	end := fmt.Sprintf("%.3fs", duration)
	midPos := width / 2
	fmt.Fprintf(w, "         0%s%s%s%s\n",
		strings.Repeat(" ", maxInt(0, midPos-len(mid)/2-1)), mid,
		strings.Repeat(" ", maxInt(1, width-midPos-len(mid)/2-len(end))), end)
}

// cellRow maps an amplitude to a grid row, row 0 on top
func cellRow(v, minV, maxV float64, height int) int {
	norm := (v - minV) / (maxV - minV)
	row := int(float64(height-1) * (1 - norm))
	if row < 0 {
		row = 0
	}
	if row >= height {
		row = height - 1
	}
	return row
}

// Stem draws a discrete magnitude-vs-frequency plot, one vertical bar per
// nonzero bin inside the usual axis frame.
func Stem(w io.Writer, title string, freqs, mags []float64, markDC bool, opts Options) {
	opts = opts.clamped()
	if len(freqs) < 2 {
		fmt.Fprintf(w, "%s: no spectrum to display\n\n", title)
		return
	}

	maxM := floats.Max(mags)
	if maxM <= 0 {
		maxM = 1e-6
	}

	// limit the plotted band to 1.5x the highest significant bin so small
	// spectra do not vanish at the left edge
	topBin := len(freqs) - 1
	for i := len(mags) - 1; i > 0; i-- {
		if mags[i] > maxM*0.01 {
			topBin = i
			break
		}
	}
	topBin = minInt(len(freqs)-1, maxInt(topBin*3/2, 8))

	fmt.Fprintf(w, "%s\n", title)
	fmt.Fprintf(w, "Resolution: %.3f Hz | Peak: %.3f\n", freqs[1]-freqs[0], maxM)

	grid := make([][]rune, opts.Height)
	for i := range grid {
		grid[i] = make([]rune, opts.Width)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}

	for i := 0; i <= topBin; i++ {
		col := int(float64(i) * float64(opts.Width-1) / float64(topBin))
		barTop := cellRow(mags[i], 0, maxM, opts.Height)
		if mags[i] <= maxM*1e-4 {
			continue
		}
		for row := opts.Height - 1; row >= barTop; row-- {
			grid[row][col] = '|'
		}
		grid[barTop][col] = '+'
	}

	for i, row := range grid {
		normY := float64(opts.Height-1-i) / float64(opts.Height-1)
		fmt.Fprintf(w, "%8.3f |%s|\n", normY*maxM, string(row))
	}
	fmt.Fprintf(w, "         +%s+\n", strings.Repeat("-", opts.Width))

	endLabel := fmt.Sprintf("%.1f Hz", freqs[topBin])
	fmt.Fprintf(w, "         0%s%s\n", strings.Repeat(" ", maxInt(1, opts.Width-len(endLabel))), endLabel)

	if markDC {
		fmt.Fprintf(w, "DC component present at bin 0: %.3f\n", mags[0])
	}
	fmt.Fprintln(w)
}

// ScatterPoint is one labeled constellation point
type ScatterPoint struct {
	X      float64
	Y      float64
	Label  string
	Marker rune // cell character; 'o' when unset
}

// Scatter draws labeled points on an I/Q plane with axes through the
// origin. Labels print next to their point when space allows.
func Scatter(w io.Writer, title string, pts []ScatterPoint, opts Options) {
	opts = opts.clamped()
	if len(pts) == 0 {
		fmt.Fprintf(w, "%s: no points to display\n\n", title)
		return
	}

	var lim float64 = 1
	for _, p := range pts {
		lim = math.Max(lim, math.Max(math.Abs(p.X), math.Abs(p.Y)))
	}
	lim++ // margin so edge points stay inside the frame

	grid := make([][]rune, opts.Height)
	for i := range grid {
		grid[i] = make([]rune, opts.Width)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}

	// axes through the origin
	midRow := cellRow(0, -lim, lim, opts.Height)
	midCol := scatterCol(0, lim, opts.Width)
	for j := 0; j < opts.Width; j++ {
		grid[midRow][j] = '-'
	}
	for i := 0; i < opts.Height; i++ {
		grid[i][midCol] = '|'
	}
	grid[midRow][midCol] = '+'

	for _, p := range pts {
		row := cellRow(p.Y, -lim, lim, opts.Height)
		col := scatterCol(p.X, lim, opts.Width)
		marker := p.Marker
		if marker == 0 {
			marker = 'o'
		}
		grid[row][col] = marker
		for k := 0; k < len(p.Label) && col+1+k < opts.Width; k++ {
			grid[row][col+1+k] = rune(p.Label[k])
		}
	}

	fmt.Fprintf(w, "%s\n", title)
	for i, row := range grid {
		normY := float64(opts.Height-1-i)/float64(opts.Height-1)*2 - 1
		fmt.Fprintf(w, "%6.1f |%s|\n", normY*lim, string(row))
	}
	fmt.Fprintf(w, "       +%s+\n", strings.Repeat("-", opts.Width))
	fmt.Fprintf(w, "       I axis: %.0f .. %.0f | Q axis: %.0f .. %.0f\n\n", -lim, lim, -lim, lim)
}

func scatterCol(x, lim float64, width int) int {
	col := int((x + lim) / (2 * lim) * float64(width-1))
	if col < 0 {
		col = 0
	}
	if col >= width {
		col = width - 1
	}
	return col
}

// BitPattern draws the input bits as a two-level square wave, the "Input
// Bit Pattern" panel of every tool.
func BitPattern(w io.Writer, bits bitstring.Bits, opts Options) {
	opts = opts.clamped()
	if len(bits) == 0 {
		return
	}

	perBit := maxInt(1, opts.Width/len(bits))
	var high, low strings.Builder
	for _, b := range bits {
		seg := strings.Repeat(" ", perBit)
		if b == 1 {
			high.WriteString(strings.Repeat("_", perBit))
			low.WriteString(seg)
		} else {
			high.WriteString(seg)
			low.WriteString(strings.Repeat("_", perBit))
		}
	}

	fmt.Fprintf(w, "Input Bit Pattern: %s\n", bits.String())
	fmt.Fprintf(w, "      1 |%s\n", high.String())
	fmt.Fprintf(w, "      0 |%s\n", low.String())
	fmt.Fprintln(w)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
