// Package editor implements the interactive loop: refresh the screen, read
// one key event, evaluate it, repeat until quit.
package editor

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/aledsdavies/etch/internal/terminal"
)

// Screen is the rendering surface the editor draws on. *terminal.Terminal
// satisfies it; tests substitute a recording fake.
type Screen interface {
	Size() (terminal.Size, error)
	ClearScreen()
	ClearLine()
	MoveTo(terminal.Position)
	HideCursor()
	ShowCursor()
	Print(string)
	Flush() error
}

// KeySource produces decoded key events. *terminal.KeyReader satisfies it.
type KeySource interface {
	ReadKey() (terminal.Key, error)
}

// Editor owns the screen, the key source, and the quit flag.
type Editor struct {
	screen Screen
	keys   KeySource
	log    zerolog.Logger

	shouldQuit bool
}

// New returns an editor over the given screen and key source.
func New(screen Screen, keys KeySource, log zerolog.Logger) *Editor {
	return &Editor{screen: screen, keys: keys, log: log}
}

// Run drives the editor loop until the quit chord or an error. The final
// refresh (the goodbye screen) is always attempted before returning.
func (e *Editor) Run(ctx context.Context) error {
	for {
		if err := e.refreshScreen(); err != nil {
			return err
		}
		if e.shouldQuit {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		key, err := e.keys.ReadKey()
		if err != nil {
			return err
		}
		e.evaluateKey(key)
	}
}

func (e *Editor) evaluateKey(key terminal.Key) {
	e.log.Debug().Int("kind", int(key.Kind)).Str("rune", string(key.Rune)).Msg("key event")

	if key.Kind == terminal.KeyCtrl && key.Rune == 'c' {
		e.shouldQuit = true
	}
}

func (e *Editor) refreshScreen() error {
	e.screen.HideCursor()
	if e.shouldQuit {
		e.screen.ClearScreen()
		e.screen.Print("Goodbye.\r\n")
	} else {
		if err := e.drawRows(); err != nil {
			return err
		}
		e.screen.MoveTo(terminal.Position{})
	}
	e.screen.ShowCursor()
	return e.screen.Flush()
}

// drawRows paints one tilde per screen row, kilo-style, with no trailing
// newline on the last row.
func (e *Editor) drawRows() error {
	size, err := e.screen.Size()
	if err != nil {
		return err
	}

	for row := 0; row < size.Height; row++ {
		e.screen.ClearLine()
		e.screen.Print("~")
		if row+1 < size.Height {
			e.screen.Print("\r\n")
		}
	}
	return nil
}
