/*
Package petscii translates C64 screen codes into the PETSCII codes used by
the 1541 drive when it lists a directory.

Screen codes are what a character editor stores for each cell of the screen,
the directory listing however is printed through the KERNAL so each code has
to be moved into the matching PETSCII range.
*/
package petscii

import (
	"github.com/hashicorp/go-hclog"
)

const (
	// ShiftSpace is the padding character of directory names
	ShiftSpace = 0xa0

	// Placeholder is substituted for a screen code with no PETSCII equivalent
	Placeholder = 0x40

	printable = "0123456789" +
		"abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ" +
		"!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~ "
)

// Translator converts screen codes to PETSCII.
type Translator struct {
	// KeepShiftSpace passes 0xa0 through untouched so a line can be ended
	// early with a shift-space. Without it 0xa0 is a reversed space.
	KeepShiftSpace bool

	Logger hclog.Logger
}

func (t *Translator) logger() hclog.Logger {
	if t.Logger == nil {
		return hclog.NewNullLogger()
	}
	return t.Logger
}

func translate(c byte, keepShiftSpace bool) (byte, bool) {
	switch {
	case c <= 0x1f:
		return c + 0x40, true
	case c == ShiftSpace && keepShiftSpace:
		return c, true
	case c >= 0x20 && c <= 0x3f:
		return c, true
	case c >= 0x40 && c <= 0x5d:
		return c + 0x80, true
	case c == 0x5e:
		return 0xff, true
	case c == 0x5f:
		return 0x7f, true
	case c == 0x95:
		return 0xdf, true
	case c >= 0x60 && c <= 0x7f:
		return c + 0x80, true
	case c >= 0x80 && c <= 0xbf:
		return c - 0x80, true
	case c >= 0xc0:
		return c - 0x40, true
	}
	return Placeholder, false
}

// Translate returns the PETSCII code for screen code c.
func (t *Translator) Translate(c byte) byte {
	p, ok := translate(c, t.KeepShiftSpace)
	if !ok {
		t.logger().Warn("directory does not support screen code", "code", hclog.Fmt("0x%02x", c))
	}
	return p
}

// TranslateAll returns a new slice with every code in b translated.
func (t *Translator) TranslateAll(b []byte) []byte {
	out := make([]byte, len(b))
	for i, c := range b {
		out[i] = t.Translate(c)
	}
	return out
}

// ToASCII returns the ASCII rune for a PETSCII code and whether it is
// printable. Non-printable codes return '?'.
func ToASCII(p byte) (rune, bool) {
	if p < 0x80 {
		for _, r := range printable {
			if rune(p) == r {
				return r, true
			}
		}
	}
	return '?', false
}

// Decode renders b as ASCII with '?' for anything non-printable.
func Decode(b []byte) string {
	r := make([]rune, len(b))
	for i, p := range b {
		r[i], _ = ToASCII(p)
	}
	return string(r)
}
