package printer

import (
	"bytes"
	"strings"
	"unicode/utf8"
)

// ESC/POS control bytes
const (
	ESC = 0x1B
	GS  = 0x1D
	LF  = 0x0A
)

// Alignment
const (
	AlignLeft   = 0
	AlignCenter = 1
	AlignRight  = 2
)

// Character sizes
const (
	FontNormal = 0x00
	FontDouble = 0x11
	FontTall   = 0x01
)

// Receipt accumulates an ESC/POS job. Width is counted in characters,
// 32 for 58mm paper and 48 for 80mm.
type Receipt struct {
	buf   bytes.Buffer
	width int
}

// NewReceipt starts a job and sends the initialize command.
func NewReceipt(charWidth int) *Receipt {
	if charWidth <= 0 {
		charWidth = 32
	}
	r := &Receipt{width: charWidth}
	r.buf.Write([]byte{ESC, '@'})
	return r
}

// Width returns the line width in characters.
func (r *Receipt) Width() int { return r.width }

func (r *Receipt) Feed(n int) *Receipt {
	for i := 0; i < n; i++ {
		r.buf.WriteByte(LF)
	}
	return r
}

func (r *Receipt) Align(align int) *Receipt {
	r.buf.Write([]byte{ESC, 'a', byte(align)})
	return r
}

func (r *Receipt) Bold(on bool) *Receipt {
	b := byte(0)
	if on {
		b = 1
	}
	r.buf.Write([]byte{ESC, 'E', b})
	return r
}

func (r *Receipt) Size(size byte) *Receipt {
	r.buf.Write([]byte{GS, '!', size})
	return r
}

// Line writes s and a line feed. Text longer than the paper wraps on the printer.
func (r *Receipt) Line(s string) *Receipt {
	r.buf.WriteString(s)
	r.buf.WriteByte(LF)
	return r
}

func (r *Receipt) Rule(char rune) *Receipt {
	return r.Line(strings.Repeat(string(char), r.width))
}

// Pair prints key flush left and value flush right on one line. When both do
// not fit, the value moves to its own right-aligned line.
func (r *Receipt) Pair(key, value string) *Receipt {
	gap := r.width - utf8.RuneCountInString(key) - utf8.RuneCountInString(value)
	if gap < 1 {
		r.Line(key)
		gap = r.width - utf8.RuneCountInString(value)
		if gap < 0 {
			gap = 0
		}
		return r.Line(strings.Repeat(" ", gap) + value)
	}
	return r.Line(key + strings.Repeat(" ", gap) + value)
}

// Cut feeds past the tear bar and performs a partial cut.
func (r *Receipt) Cut() *Receipt {
	r.Feed(3)
	r.buf.Write([]byte{GS, 'V', 0x01})
	return r
}

// Bytes returns the job.
func (r *Receipt) Bytes() []byte {
	return r.buf.Bytes()
}
