package terminal

import (
	"bufio"
	"io"
)

// KeyKind classifies a decoded key event.
type KeyKind int

const (
	KeyRune KeyKind = iota
	KeyCtrl
	KeyEsc
	KeyEnter
	KeyBackspace
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
)

// Key is one decoded key event. Rune is set for KeyRune (the literal rune)
// and KeyCtrl (the lowercase letter of the chord, e.g. 'c' for Ctrl+C).
type Key struct {
	Kind KeyKind
	Rune rune
}

// KeyReader decodes raw tty bytes into Key events. Control bytes map to
// Ctrl chords, CSI sequences to arrow keys, and anything else to literal
// runes.
type KeyReader struct {
	r *bufio.Reader
}

// NewKeyReader wraps r for incremental key decoding.
func NewKeyReader(r io.Reader) *KeyReader {
	return &KeyReader{r: bufio.NewReader(r)}
}

// ReadKey blocks until one key event is available. It returns the reader's
// error unchanged, so io.EOF signals end of input.
func (k *KeyReader) ReadKey() (Key, error) {
	for {
		b, err := k.r.ReadByte()
		if err != nil {
			return Key{}, err
		}

		switch {
		case b == '\r' || b == '\n':
			return Key{Kind: KeyEnter}, nil
		case b == 0x7f:
			return Key{Kind: KeyBackspace}, nil
		case b == 0x1b:
			return k.readEscape()
		case b == '\t':
			return Key{Kind: KeyRune, Rune: '\t'}, nil
		case b >= 0x01 && b <= 0x1a:
			// Ctrl+A..Ctrl+Z arrive as bytes 0x01..0x1a.
			return Key{Kind: KeyCtrl, Rune: rune('a' + b - 1)}, nil
		case b < 0x20:
			// NUL and the 0x1c..0x1f separators have no chord mapping;
			// swallow them and wait for the next byte.
			continue
		case b < 0x80:
			return Key{Kind: KeyRune, Rune: rune(b)}, nil
		default:
			// Re-assemble a multi-byte UTF-8 rune.
			if err := k.r.UnreadByte(); err != nil {
				return Key{}, err
			}
			r, _, err := k.r.ReadRune()
			if err != nil {
				return Key{}, err
			}
			return Key{Kind: KeyRune, Rune: r}, nil
		}
	}
}

// readEscape resolves a byte stream starting with ESC. A raw-mode tty
// delivers an arrow key as one 3-byte read, so if nothing is buffered
// behind the ESC it was a lone Escape press.
func (k *KeyReader) readEscape() (Key, error) {
	if k.r.Buffered() < 2 {
		return Key{Kind: KeyEsc}, nil
	}
	b, err := k.r.ReadByte()
	if err != nil {
		return Key{}, err
	}
	if b != '[' {
		if err := k.r.UnreadByte(); err != nil {
			return Key{}, err
		}
		return Key{Kind: KeyEsc}, nil
	}
	final, err := k.r.ReadByte()
	if err != nil {
		return Key{}, err
	}
	switch final {
	case 'A':
		return Key{Kind: KeyUp}, nil
	case 'B':
		return Key{Kind: KeyDown}, nil
	case 'C':
		return Key{Kind: KeyRight}, nil
	case 'D':
		return Key{Kind: KeyLeft}, nil
	default:
		return Key{Kind: KeyEsc}, nil
	}
}
