package printer

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ESC/POS command bytes
const (
	ESC = 0x1B
	GS  = 0x1D
	LF  = 0x0A
)

const (
	AlignLeft   = 0
	AlignCenter = 1
	AlignRight  = 2
)

const (
	FontNormal = 0x00
	FontDouble = 0x11 // double width and height
)

// DefaultCharWidth fits 58 mm paper; 80 mm paper takes 48.
const DefaultCharWidth = 32

// Document builds the ESC/POS byte stream of one receipt. Widths are counted
// in runes so product names with accents still line up.
type Document struct {
	buf   bytes.Buffer
	width int
}

func NewDocument(charWidth int) *Document {
	if charWidth <= 0 {
		charWidth = DefaultCharWidth
	}
	d := &Document{width: charWidth}
	d.Init()
	return d
}

// Init sends ESC @, which also clears bold, size and alignment.
func (d *Document) Init() *Document {
	d.buf.Write([]byte{ESC, '@'})
	return d
}

func (d *Document) LineFeed() *Document {
	d.buf.WriteByte(LF)
	return d
}

func (d *Document) FeedLines(n int) *Document {
	for i := 0; i < n; i++ {
		d.buf.WriteByte(LF)
	}
	return d
}

func (d *Document) SetAlign(align int) *Document {
	d.buf.Write([]byte{ESC, 'a', byte(align)})
	return d
}

func (d *Document) SetBold(on bool) *Document {
	b := byte(0)
	if on {
		b = 1
	}
	d.buf.Write([]byte{ESC, 'E', b})
	return d
}

func (d *Document) SetFontSize(size byte) *Document {
	d.buf.Write([]byte{GS, '!', size})
	return d
}

// Text writes one line, cut to the paper width.
func (d *Document) Text(s string) *Document {
	d.buf.WriteString(d.truncate(s, d.width))
	d.buf.WriteByte(LF)
	return d
}

// Separator fills a line with char, e.g. "--------------------------------".
func (d *Document) Separator(char byte) *Document {
	d.buf.WriteString(strings.Repeat(string(char), d.width))
	d.buf.WriteByte(LF)
	return d
}

// KeyValue prints key on the left and value flush right. The key is
// shortened when both do not fit; the amount is never cut.
//
//	Subtotal:                 58.000
func (d *Document) KeyValue(key, value string) *Document {
	vw := utf8.RuneCountInString(value)
	key = d.truncate(key, d.width-vw-1)
	spaces := d.width - utf8.RuneCountInString(key) - vw
	if spaces < 1 {
		spaces = 1
	}
	d.buf.WriteString(key)
	d.buf.WriteString(strings.Repeat(" ", spaces))
	d.buf.WriteString(value)
	d.buf.WriteByte(LF)
	return d
}

// ItemLine prints the item name on its own line, then "qty unit x price"
// with the line total flush right.
//
//	Croissant Cokelat
//	  2 PCS x 22.000          44.000
func (d *Document) ItemLine(name, qty, unit, price, total string) *Document {
	d.Text(name)
	return d.KeyValue(fmt.Sprintf("  %s %s x %s", qty, unit, price), total)
}

// Barcode prints data as a CODE39 symbol with the text underneath. CODE39
// covers upper-case letters, digits and '-', which is what invoice numbers
// use; anything else is skipped.
func (d *Document) Barcode(data string) *Document {
	data = strings.ToUpper(data)
	var clean strings.Builder
	for _, r := range data {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || strings.ContainsRune("-. $/+%", r) {
			clean.WriteRune(r)
		}
	}
	if clean.Len() == 0 {
		return d
	}
	d.buf.Write([]byte{GS, 'h', 60}) // height in dots
	d.buf.Write([]byte{GS, 'w', 2})  // module width
	d.buf.Write([]byte{GS, 'H', 2})  // text below
	d.buf.Write([]byte{GS, 'k', 4})
	d.buf.WriteString(clean.String())
	d.buf.WriteByte(0)
	d.buf.WriteByte(LF)
	return d
}

func (d *Document) PartialCut() *Document {
	d.buf.Write([]byte{GS, 'V', 0x01})
	return d
}

func (d *Document) Bytes() []byte {
	return d.buf.Bytes()
}

// Reset drops everything written so far, keeping the init sequence.
func (d *Document) Reset() *Document {
	d.buf.Reset()
	d.Init()
	return d
}

func (d *Document) truncate(s string, width int) string {
	if width < 0 {
		width = 0
	}
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	return string([]rune(s)[:width])
}

// DrawerPulse is the ESC p command that kicks open the cash drawer wired to
// the printer's drawer port (pin 2, 50 ms on, 500 ms off).
func DrawerPulse() []byte {
	return []byte{ESC, 'p', 0, 25, 250}
}
