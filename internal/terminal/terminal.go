// Package terminal provides raw-mode control of the controlling tty and a
// queued ANSI escape writer. Output operations append to an internal queue;
// nothing reaches the tty until Flush, so a screen refresh lands in a single
// write.
package terminal

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Position is a zero-based screen coordinate. The ANSI cursor addressing it
// translates to is one-based.
type Position struct {
	Col int
	Row int
}

// Size is the tty dimensions in character cells.
type Size struct {
	Width  int
	Height int
}

// Terminal wraps an output writer with an escape-sequence queue and, when
// opened on a real tty, owns the raw-mode state of the input fd.
type Terminal struct {
	out   io.Writer
	queue bytes.Buffer

	fd    int
	state *term.State
}

// Open puts stdin into raw mode and returns a Terminal writing to stdout
// with the screen cleared and the cursor homed. Callers must Restore on
// every exit path.
func Open() (*Terminal, error) {
	fd := int(os.Stdin.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("entering raw mode: %w", err)
	}

	t := &Terminal{out: os.Stdout, fd: fd, state: state}
	t.ClearScreen()
	t.MoveTo(Position{})
	if err := t.Flush(); err != nil {
		_ = t.Restore()
		return nil, err
	}
	return t, nil
}

// NewWriter returns a Terminal driving an arbitrary writer, without touching
// tty modes. Size reports zero. Used by tests and non-interactive rendering.
func NewWriter(w io.Writer) *Terminal {
	return &Terminal{out: w, fd: -1}
}

// Restore leaves raw mode. Safe to call more than once.
func (t *Terminal) Restore() error {
	if t.state == nil {
		return nil
	}
	state := t.state
	t.state = nil
	if err := term.Restore(t.fd, state); err != nil {
		return fmt.Errorf("restoring terminal: %w", err)
	}
	return nil
}

// Size reports the current tty dimensions. It is re-read on every call so a
// resize between refreshes is picked up on the next draw.
func (t *Terminal) Size() (Size, error) {
	if t.fd < 0 {
		return Size{}, nil
	}
	w, h, err := term.GetSize(t.fd)
	if err != nil {
		return Size{}, fmt.Errorf("querying terminal size: %w", err)
	}
	return Size{Width: w, Height: h}, nil
}

// ClearScreen queues an erase of the whole screen.
func (t *Terminal) ClearScreen() {
	t.queue.WriteString("\x1b[2J")
}

// ClearLine queues an erase from the cursor to the end of the line.
func (t *Terminal) ClearLine() {
	t.queue.WriteString("\x1b[K")
}

// MoveTo queues a cursor move to the given zero-based position.
func (t *Terminal) MoveTo(p Position) {
	fmt.Fprintf(&t.queue, "\x1b[%d;%dH", p.Row+1, p.Col+1)
}

// HideCursor queues hiding the cursor.
func (t *Terminal) HideCursor() {
	t.queue.WriteString("\x1b[?25l")
}

// ShowCursor queues showing the cursor.
func (t *Terminal) ShowCursor() {
	t.queue.WriteString("\x1b[?25h")
}

// Print queues literal text.
func (t *Terminal) Print(s string) {
	t.queue.WriteString(s)
}

// Flush writes everything queued so far in one Write and resets the queue.
func (t *Terminal) Flush() error {
	if t.queue.Len() == 0 {
		return nil
	}
	_, err := t.out.Write(t.queue.Bytes())
	t.queue.Reset()
	if err != nil {
		return fmt.Errorf("flushing terminal output: %w", err)
	}
	return nil
}
