/*
Package frame defines a frame of character art and reads the C source
exported by Marq's PETSCII editor.

A frame is a grid of screen codes, Width cells by Height rows. Each row of
the grid is one directory line once sliced.
*/
package frame

import "errors"

var (
	// ErrFrameNotFound is returned when a named frame doesn't exist
	ErrFrameNotFound = errors.New("frame: not found")

	// ErrNoMeta is returned when the source has no META comment
	ErrNoMeta = errors.New("frame: missing META comment")

	errShortFrame = errors.New("frame: fewer codes than width * height")
)

// Frame is a named grid of screen codes.
type Frame struct {
	Name    string
	Width   int
	Height  int
	Type    string
	Charset string
	Codes   []byte
}

// Validate checks the grid holds at least Width * Height codes.
func (f *Frame) Validate() error {
	if f.Width <= 0 || f.Height <= 0 || len(f.Codes) < f.Width*f.Height {
		return errShortFrame
	}
	return nil
}

// Slice selects the directory lines cut from a frame.
type Slice struct {
	// Lines is the number of lines, zero or more than available means all
	Lines int
	// Length is the number of codes per line, defaults to 16
	Length int
	// Offset is the column the line starts at
	Offset int
}

const defaultLength = 16

// Lines slices the frame into directory lines, returned as copies.
//
// When a line fits in a row, each row gives one line starting at column
// s.Offset, s.Length codes long and clipped at the end of the row. When the
// frame is narrower than a line the grid is read as one run of codes and cut
// into consecutive s.Length chunks starting at s.Offset, the last one
// clipped at the end of the grid.
func (f *Frame) Lines(s Slice) [][]byte {
	length := s.Length
	if length <= 0 {
		length = defaultLength
	}
	offset := s.Offset
	if offset < 0 {
		offset = 0
	}

	grid := f.Codes
	if size := f.Width * f.Height; len(grid) > size {
		grid = grid[:size]
	}

	if length > f.Width {
		return chunks(grid, offset, length, s.Lines)
	}

	lines := s.Lines
	if lines <= 0 || lines > f.Height {
		lines = f.Height
	}

	out := make([][]byte, 0, lines)
	for row := 0; row < lines; row++ {
		rowStart, rowEnd := row*f.Width, (row+1)*f.Width
		start := rowStart + offset
		if start >= rowEnd {
			out = append(out, []byte{})
			continue
		}
		end := start + length
		if end > rowEnd {
			end = rowEnd
		}
		out = append(out, append([]byte(nil), grid[start:end]...))
	}
	return out
}

func chunks(grid []byte, offset, length, lines int) [][]byte {
	var out [][]byte
	for start := offset; start < len(grid); start += length {
		if lines > 0 && len(out) == lines {
			break
		}
		end := start + length
		if end > len(grid) {
			end = len(grid)
		}
		out = append(out, append([]byte(nil), grid[start:end]...))
	}
	return out
}
