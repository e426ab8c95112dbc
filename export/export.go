/*
Package export renders a list of directory filenames as text so the same
names can be referenced by a loader or an assembler source.

Every filename is cut at its first shift-space (0xa0) before rendering, the
padding is added by the drive and isn't part of the name a loader has to
match.
*/
package export

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
)

const shiftSpace = 0xa0

// Format selects an exporter.
type Format int

const (
	// Loader is a plain file table, one hex encoded name per line
	Loader Format = iota
	// TASS is 64tass source
	TASS
	// KickAss is KickAssembler source
	KickAss
)

var formatNames = map[Format]string{
	Loader:  "loader",
	TASS:    "tass",
	KickAss: "kickass",
}

var errUnknownFormat = errors.New("export: unknown format")

func (f Format) String() string {
	if s, ok := formatNames[f]; ok {
		return s
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ParseFormat returns the Format named s.
func ParseFormat(s string) (Format, error) {
	for f, name := range formatNames {
		if strings.EqualFold(s, name) {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", errUnknownFormat, s)
}

// Encoder writes a list of filenames.
type Encoder interface {
	Encode(w io.Writer, names [][]byte) error
}

// Cut returns name up to, but not including, the first shift-space.
func Cut(name []byte) []byte {
	if i := bytes.IndexByte(name, shiftSpace); i >= 0 {
		return name[:i]
	}
	return name
}

// LoaderTable writes one line per filename with every byte as Marker
// followed by two hex digits.
type LoaderTable struct {
	Marker byte
}

// Encode writes names to w.
func (l LoaderTable) Encode(w io.Writer, names [][]byte) error {
	marker := l.Marker
	if marker == 0 {
		marker = '$'
	}

	var b strings.Builder
	for _, name := range names {
		b.Reset()
		for _, c := range Cut(name) {
			fmt.Fprintf(&b, "%c%02x", marker, c)
		}
		b.WriteByte('\n')
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
	}
	return nil
}

// New returns the Encoder for format f with the default settings.
func New(f Format) (Encoder, error) {
	switch f {
	case Loader:
		return LoaderTable{}, nil
	case TASS, KickAss:
		return &Assembler{Dialect: f}, nil
	}
	return nil, fmt.Errorf("%w: %v", errUnknownFormat, f)
}
