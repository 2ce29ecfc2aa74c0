package relation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf16"
)

// Format selects how a Table is rendered for clients.
type Format string

const (
	// FormatConcat writes one single-element JSON array per title with no
	// separator between them. The body is not one JSON document; existing
	// consumers read it as a stream of values.
	FormatConcat Format = "concat"

	// FormatArray writes one JSON array holding every title.
	FormatArray Format = "array"
)

// Valid reports whether f is a known format.
func (f Format) Valid() bool {
	return f == FormatConcat || f == FormatArray
}

// ContentType returns the Content-Type header value for f.
func (f Format) ContentType() string {
	if f == FormatArray {
		return "application/json"
	}
	return "text/html; charset=utf-8"
}

// Row is the wire shape of one entry.
type Row struct {
	MovieTitle string `json:"movie_title"`
	People     string `json:"people"`
}

// Rows converts t to its wire shape in insertion order.
func Rows(t *Table) []Row {
	rows := make([]Row, 0, t.Len())
	for _, e := range t.Entries() {
		rows = append(rows, Row{MovieTitle: e.Title, People: strings.Join(e.People, Separator)})
	}
	return rows
}

const indent = "   "

// Render encodes t in the given format.
func Render(t *Table, f Format) ([]byte, error) {
	switch f {
	case FormatConcat, "":
		return renderConcat(t), nil
	case FormatArray:
		return renderArray(t)
	default:
		return nil, fmt.Errorf("unknown output format %q", f)
	}
}

// renderConcat writes each row as
//
//	[
//	   {
//	      "movie_title": "...",
//	      "people": "..."
//	   }
//	]
//
// with non-ASCII characters escaped.
func renderConcat(t *Table) []byte {
	var b bytes.Buffer
	for _, r := range Rows(t) {
		b.WriteString("[\n" + indent + "{\n")
		b.WriteString(indent + indent + `"movie_title": `)
		writeASCIIString(&b, r.MovieTitle)
		b.WriteString(",\n" + indent + indent + `"people": `)
		writeASCIIString(&b, r.People)
		b.WriteString("\n" + indent + "}\n]")
	}
	return b.Bytes()
}

func renderArray(t *Table) ([]byte, error) {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(Rows(t)); err != nil {
		return nil, fmt.Errorf("encode rows: %w", err)
	}
	return b.Bytes(), nil
}

const hexDigits = "0123456789abcdef"

// writeASCIIString writes s as a quoted JSON string using only printable
// ASCII. Everything outside 0x20-0x7e is written as a \uXXXX escape, with
// surrogate pairs above the BMP.
func writeASCIIString(b *bytes.Buffer, s string) {
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		default:
			switch {
			case r >= 0x20 && r < 0x7f:
				b.WriteRune(r)
			case r > 0xffff:
				r1, r2 := utf16.EncodeRune(r)
				writeUnicodeEscape(b, r1)
				writeUnicodeEscape(b, r2)
			default:
				writeUnicodeEscape(b, r)
			}
		}
	}
	b.WriteByte('"')
}

func writeUnicodeEscape(b *bytes.Buffer, r rune) {
	b.WriteString(`\u`)
	b.WriteByte(hexDigits[(r>>12)&0xf])
	b.WriteByte(hexDigits[(r>>8)&0xf])
	b.WriteByte(hexDigits[(r>>4)&0xf])
	b.WriteByte(hexDigits[r&0xf])
}
