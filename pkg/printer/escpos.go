package printer

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ESC/POS command constants
const (
	ESC = 0x1B
	GS  = 0x1D
	LF  = 0x0A
)

// Text alignment
const (
	AlignLeft   = 0
	AlignCenter = 1
	AlignRight  = 2
)

// Font size
const (
	FontNormal = 0x00
	FontDouble = 0x11 // Double width + double height
	FontWide   = 0x10 // Double width only
	FontTall   = 0x01 // Double height only
)

// Document builds an ESC/POS byte stream for thermal printers.
type Document struct {
	buf   bytes.Buffer
	width int // print width in characters (default 32 for 58mm, 48 for 80mm)
}

// textWidth counts printed columns, not bytes.
func textWidth(s string) int {
	return utf8.RuneCountInString(s)
}

// fit truncates s to at most n columns.
func fit(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if textWidth(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}

func pad(n int) string {
	if n < 1 {
		n = 1
	}
	return strings.Repeat(" ", n)
}

// NewDocument creates a new ESC/POS document with the given character width.
// Common widths: 32 for 58mm paper, 48 for 80mm paper.
func NewDocument(charWidth int) *Document {
	if charWidth <= 0 {
		charWidth = 32
	}
	d := &Document{width: charWidth}
	d.Init()
	return d
}

// Init sends the ESC @ (initialize printer) command.
func (d *Document) Init() *Document {
	d.buf.Write([]byte{ESC, '@'})
	return d
}

// LineFeed sends a line feed.
func (d *Document) LineFeed() *Document {
	d.buf.WriteByte(LF)
	return d
}

// FeedLines sends n line feeds.
func (d *Document) FeedLines(n int) *Document {
	for i := 0; i < n; i++ {
		d.buf.WriteByte(LF)
	}
	return d
}

// SetAlign sets text alignment: AlignLeft, AlignCenter, AlignRight.
func (d *Document) SetAlign(align int) *Document {
	d.buf.Write([]byte{ESC, 'a', byte(align)})
	return d
}

// SetBold enables or disables bold text.
func (d *Document) SetBold(on bool) *Document {
	b := byte(0)
	if on {
		b = 1
	}
	d.buf.Write([]byte{ESC, 'E', b})
	return d
}

// SetFontSize sets the character size. Use FontNormal, FontDouble, FontWide, or FontTall.
func (d *Document) SetFontSize(size byte) *Document {
	d.buf.Write([]byte{GS, '!', size})
	return d
}

// Text writes a line of text followed by a line feed.
func (d *Document) Text(s string) *Document {
	d.buf.WriteString(s)
	d.buf.WriteByte(LF)
	return d
}

// TextF writes a formatted line of text followed by a line feed.
func (d *Document) TextF(format string, args ...interface{}) *Document {
	d.buf.WriteString(fmt.Sprintf(format, args...))
	d.buf.WriteByte(LF)
	return d
}

// Separator prints a full-width separator line (e.g. "--------------------------------").
func (d *Document) Separator(char byte) *Document {
	d.buf.WriteString(strings.Repeat(string(char), d.width))
	d.buf.WriteByte(LF)
	return d
}

// Width returns the print width in characters.
func (d *Document) Width() int {
	return d.width
}

// KeyValue prints a left-aligned key and right-aligned value on the same line.
// Example: "Subtotal             Rs.100.00"
func (d *Document) KeyValue(key, value string) *Document {
	d.buf.WriteString(key)
	d.buf.WriteString(pad(d.width - textWidth(key) - textWidth(value)))
	d.buf.WriteString(value)
	d.buf.WriteByte(LF)
	return d
}

// ItemRow prints one row of the Item / Qty / Price / Amount table.
// The name column takes whatever width the numeric columns leave and is
// truncated to fit.
// Example: "Pani Puri        2   40.00   80.00"
func (d *Document) ItemRow(name, qty, price, amount string) *Document {
	const qtyCol, moneyCol = 4, 9
	nameCol := d.width - qtyCol - 2*moneyCol
	if nameCol < 6 {
		nameCol = 6
	}
	name = fit(name, nameCol)

	d.buf.WriteString(name)
	d.buf.WriteString(pad(nameCol - textWidth(name) + qtyCol - textWidth(qty)))
	d.buf.WriteString(qty)
	d.buf.WriteString(pad(moneyCol - textWidth(price)))
	d.buf.WriteString(price)
	d.buf.WriteString(pad(moneyCol - textWidth(amount)))
	d.buf.WriteString(amount)
	d.buf.WriteByte(LF)
	return d
}

// Cut sends the paper cut command (full cut).
func (d *Document) Cut() *Document {
	d.buf.Write([]byte{GS, 'V', 0x00})
	return d
}

// PartialCut sends the partial cut command.
func (d *Document) PartialCut() *Document {
	d.buf.Write([]byte{GS, 'V', 0x01})
	return d
}

// Bytes returns the accumulated ESC/POS byte stream.
func (d *Document) Bytes() []byte {
	return d.buf.Bytes()
}

// Reset clears the buffer and reinitializes the document.
func (d *Document) Reset() *Document {
	d.buf.Reset()
	d.Init()
	return d
}
