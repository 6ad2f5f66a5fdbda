package printer

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ESC/POS control bytes
const (
	esc = 0x1B
	gs  = 0x1D
	lf  = 0x0A
)

// Alignment values for ESC a
const (
	AlignLeft   byte = 0
	AlignCenter byte = 1
	AlignRight  byte = 2
)

// Character sizes for GS !
const (
	SizeNormal byte = 0x00
	SizeDouble byte = 0x11
)

// DefaultWidth is the column count of 58mm paper
const DefaultWidth = 32

// Ticket accumulates an ESC/POS job. Methods chain and never fail.
type Ticket struct {
	buf   bytes.Buffer
	width int
}

// NewTicket starts a job for paper that fits width characters per line
func NewTicket(width int) *Ticket {
	if width <= 0 {
		width = DefaultWidth
	}
	t := &Ticket{width: width}
	t.buf.Write([]byte{esc, '@'})
	return t
}

// Width returns the characters per line
func (t *Ticket) Width() int { return t.width }

func (t *Ticket) Align(a byte) *Ticket {
	t.buf.Write([]byte{esc, 'a', a})
	return t
}

func (t *Ticket) Bold(on bool) *Ticket {
	var b byte
	if on {
		b = 1
	}
	t.buf.Write([]byte{esc, 'E', b})
	return t
}

func (t *Ticket) Size(size byte) *Ticket {
	t.buf.Write([]byte{gs, '!', size})
	return t
}

// Line writes s clipped to the paper width
func (t *Ticket) Line(s string) *Ticket {
	t.buf.WriteString(clip(s, t.width))
	t.buf.WriteByte(lf)
	return t
}

func (t *Ticket) Linef(format string, args ...any) *Ticket {
	return t.Line(fmt.Sprintf(format, args...))
}

// Rule fills one line with ch
func (t *Ticket) Rule(ch rune) *Ticket {
	t.buf.WriteString(strings.Repeat(string(ch), t.width))
	t.buf.WriteByte(lf)
	return t
}

// Columns writes left flush left and right flush right on one line.
// left is shortened when both do not fit.
func (t *Ticket) Columns(left, right string) *Ticket {
	room := t.width - utf8.RuneCountInString(right) - 1
	if room < 1 {
		room = 1
	}
	left = clip(left, room)
	pad := t.width - utf8.RuneCountInString(left) - utf8.RuneCountInString(right)
	if pad < 1 {
		pad = 1
	}
	t.buf.WriteString(left)
	t.buf.WriteString(strings.Repeat(" ", pad))
	t.buf.WriteString(right)
	t.buf.WriteByte(lf)
	return t
}

func (t *Ticket) Feed(n int) *Ticket {
	for range n {
		t.buf.WriteByte(lf)
	}
	return t
}

// Cut feeds and partially cuts the paper
func (t *Ticket) Cut() *Ticket {
	t.buf.Write([]byte{gs, 'V', 0x01})
	return t
}

func (t *Ticket) Bytes() []byte {
	return t.buf.Bytes()
}

func clip(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	r := []rune(s)
	if width <= 1 {
		return string(r[:width])
	}
	return string(r[:width-1]) + "~"
}
