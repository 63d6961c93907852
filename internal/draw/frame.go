package draw

import (
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// maxChunkSize caps a single write to roughly one MTU so frames stream
// smoothly over SSH.
const maxChunkSize = 1400

const (
	seqClear      = "\033[H\033[2J"
	seqHideCursor = "\033[?25l"
	seqShowCursor = "\033[?25h"
)

// TermSizeFunc reports the terminal dimensions.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc measures os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// textSpan is styled text placed over the canvas.
type textSpan struct {
	col, row int // 1-based canvas position
	width    int // Visible cells
	text     string
}

func (s textSpan) overlaps(o textSpan) bool {
	return s.row == o.row && s.col < o.col+o.width && o.col < s.col+s.width
}

// Frame composes a canvas and a text overlay into one terminal update.
// Canvas cells under text are left alone, text is only rewritten when it
// changed, and cells a span no longer covers are repainted by the canvas.
type Frame struct {
	canvas *Canvas
	out    io.Writer
	buf    strings.Builder
	numBuf [20]byte

	text      []textSpan // Queued for the next Flush
	shownText []textSpan // On screen since the last Flush
	stale     []textSpan // Scratch: shown last frame, gone now
}

// NewFrame creates a Frame drawing c to w.
func NewFrame(w io.Writer, c *Canvas) *Frame {
	return &Frame{canvas: c, out: w}
}

// Canvas returns the canvas the frame renders.
func (f *Frame) Canvas() *Canvas {
	return f.canvas
}

// Open hides the cursor and clears the terminal.
func (f *Frame) Open() error {
	f.buf.WriteString(seqHideCursor)
	f.Clear()
	return f.write()
}

// Close clears the terminal and shows the cursor again. Anything queued is
// dropped.
func (f *Frame) Close() error {
	f.buf.Reset()
	f.text = f.text[:0]
	f.buf.WriteString(seqClear + seqShowCursor)
	return f.write()
}

// Clear queues a full terminal clear. The next Flush redraws everything.
func (f *Frame) Clear() {
	f.buf.WriteString(seqClear)
	f.canvas.ForceRedraw()
	f.shownText = f.shownText[:0]
}

// Text places s at a 1-based canvas position. s may carry ANSI styling.
func (f *Frame) Text(col, row int, s string) {
	if s == "" {
		return
	}
	f.text = append(f.text, textSpan{col: col, row: row, width: lipgloss.Width(s), text: s})
}

// TextCentered places s so its visible width is centered on centerX.
func (f *Frame) TextCentered(centerX, row int, s string) {
	f.Text(centerX-lipgloss.Width(s)/2, row, s)
}

// Flush renders the canvas around the queued text, writes the text that
// changed and sends the frame in MTU-sized writes.
func (f *Frame) Flush() error {
	f.canvas.uncover()
	for _, span := range f.text {
		f.canvas.cover(span.col, span.row, span.width)
	}
	f.canvas.Render(&f.buf)
	f.canvas.RenderBorder(&f.buf)

	f.stale = f.stale[:0]
	for _, span := range f.shownText {
		if !slices.Contains(f.text, span) {
			f.stale = append(f.stale, span)
		}
	}

	for _, span := range f.text {
		if slices.Contains(f.shownText, span) && !slices.ContainsFunc(f.stale, span.overlaps) {
			continue
		}
		f.moveCursor(span.col, span.row)
		f.buf.WriteString(span.text)
	}
	f.shownText, f.text = f.text, f.shownText[:0]

	return f.write()
}

// moveCursor appends a cursor move to a 1-based canvas position.
func (f *Frame) moveCursor(col, row int) {
	f.buf.WriteString("\033[")
	f.buf.Write(strconv.AppendInt(f.numBuf[:0], int64(row+f.canvas.offsetRow), 10))
	f.buf.WriteByte(';')
	f.buf.Write(strconv.AppendInt(f.numBuf[:0], int64(col+f.canvas.offsetCol), 10))
	f.buf.WriteByte('H')
}

// write sends the buffer in chunks of at most maxChunkSize bytes and resets it.
func (f *Frame) write() error {
	data := f.buf.String()
	f.buf.Reset()
	for len(data) > 0 {
		n := min(len(data), maxChunkSize)
		if _, err := io.WriteString(f.out, data[:n]); err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}
