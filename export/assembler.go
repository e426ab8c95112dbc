package export

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/bodgit/dirart/petscii"
)

// Number selects how byte literals are written.
type Number int

const (
	// Hex writes $41
	Hex Number = iota
	// Decimal writes 65
	Decimal
)

const (
	defaultWidth = 16
	defaultLabel = "filename%03d"
)

type dialect struct {
	label   string
	comment string
}

var dialects = map[Format]dialect{
	TASS:    {"%s\t.byte ", "\t; "},
	KickAss: {"%s:\t.byte ", "\t// "},
}

// Assembler writes one labelled, zero terminated, byte array per filename.
type Assembler struct {
	// Dialect is either TASS or KickAss
	Dialect Format
	// Width truncates each filename, defaults to 16
	Width int
	// Number is the literal format
	Number Number
	// Label is a format string taking the filename index
	Label string
}

func (a *Assembler) literal(c byte) string {
	if a.Number == Decimal {
		return fmt.Sprintf("%d", c)
	}
	return fmt.Sprintf("$%02x", c)
}

func (a *Assembler) label(i int) string {
	if a.Label == "" {
		return fmt.Sprintf(defaultLabel, i)
	}
	return fmt.Sprintf(a.Label, i)
}

// Encode writes names to w.
func (a *Assembler) Encode(w io.Writer, names [][]byte) error {
	d, ok := dialects[a.Dialect]
	if !ok {
		return fmt.Errorf("%w: %v", errUnknownFormat, a.Dialect)
	}

	width := a.Width
	if width <= 0 {
		width = defaultWidth
	}

	seen := make([][]byte, 0, len(names))

	var b strings.Builder
	for i, name := range names {
		name = Cut(name)
		if len(name) > width {
			name = name[:width]
		}

		b.Reset()
		fmt.Fprintf(&b, d.label, a.label(i))

		literals := make([]string, 0, len(name)+1)
		for _, c := range name {
			literals = append(literals, a.literal(c))
		}
		literals = append(literals, a.literal(0))
		b.WriteString(strings.Join(literals, ","))

		b.WriteString(d.comment)
		b.WriteString(petscii.Decode(name))

		for j, s := range seen {
			if bytes.Equal(s, name) {
				fmt.Fprintf(&b, " (duplicate of %s)", a.label(j))
				break
			}
		}
		seen = append(seen, name)

		b.WriteByte('\n')
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
	}

	return nil
}
