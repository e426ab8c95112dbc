package frame

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const source = `// PETSCII EDITOR
// META: 4 2 C64 upper
/* a
   block comment */
unsigned char frame0000[]={// border,bg,chars,colors
0,6,
1,2,3,4,
5,6,7,8,
14,14,14,14,14,14,14,14,
};
unsigned char frame0001[]={
0x20,0x20,0x20,0x20,0x20,0x20,0x20,0x20};
`

func TestParse(t *testing.T) {
	s, err := Parse(strings.NewReader(source))
	require.Nil(t, err)

	assert.Equal(t, Meta{Width: 4, Height: 2, Type: "C64", Charset: "upper"}, s.Meta)
	assert.Equal(t, []string{"frame0000", "frame0001"}, s.Names())

	f, err := s.Frame("frame0000")
	require.Nil(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 8}, f.Codes)
	assert.Equal(t, "upper", f.Charset)

	f, err = s.Frame("frame0001")
	require.Nil(t, err)
	assert.Len(t, f.Codes, 8)

	_, err = s.Frame("frame0002")
	assert.True(t, errors.Is(err, ErrFrameNotFound))
}

func TestParseNoMeta(t *testing.T) {
	_, err := Parse(strings.NewReader("unsigned char frame0000[]={1,2};"))
	assert.Equal(t, ErrNoMeta, err)
}

func TestParseShort(t *testing.T) {
	s, err := Parse(strings.NewReader("// META: 4 4 C64 upper\nunsigned char frame0000[]={1,2};"))
	require.Nil(t, err)

	_, err = s.Frame("frame0000")
	assert.True(t, errors.Is(err, errShortFrame))
}

func TestLines(t *testing.T) {
	f := &Frame{
		Width:  4,
		Height: 3,
		Codes:  []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12},
	}

	tables := []struct {
		name  string
		slice Slice
		want  [][]byte
	}{
		{"wide line", Slice{}, [][]byte{{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}}},
		{"chunks", Slice{Length: 5}, [][]byte{{1, 2, 3, 4, 5}, {6, 7, 8, 9, 10}, {11, 12}}},
		{"chunks offset", Slice{Length: 5, Offset: 2, Lines: 1}, [][]byte{{3, 4, 5, 6, 7}}},
		{"width", Slice{Length: 4}, [][]byte{{1, 2, 3, 4}, {5, 6, 7, 8}, {9, 10, 11, 12}}},
		{"lines", Slice{Lines: 2, Length: 4}, [][]byte{{1, 2, 3, 4}, {5, 6, 7, 8}}},
		{"too many lines", Slice{Lines: 10, Length: 4}, [][]byte{{1, 2, 3, 4}, {5, 6, 7, 8}, {9, 10, 11, 12}}},
		{"offset", Slice{Length: 2, Offset: 1}, [][]byte{{2, 3}, {6, 7}, {10, 11}}},
		{"offset past row end", Slice{Length: 4, Offset: 2}, [][]byte{{3, 4}, {7, 8}, {11, 12}}},
		{"offset outside row", Slice{Length: 1, Offset: 4}, [][]byte{{}, {}, {}}},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			assert.Equal(t, table.want, f.Lines(table.slice))
		})
	}
}

func TestLinesStayInRow(t *testing.T) {
	codes := make([]byte, 32)
	for i := range codes {
		codes[i] = byte(i)
	}
	f := &Frame{Width: 16, Height: 2, Codes: codes}

	lines := f.Lines(Slice{Length: 16, Offset: 4})
	require.Len(t, lines, 2)
	assert.Equal(t, codes[4:16], lines[0])
	assert.Equal(t, codes[20:32], lines[1])
}

func TestLinesNarrowFrame(t *testing.T) {
	// 8 by 2 frame holding a single 16 code filename
	codes := []byte("HELLO WORLD\xa0\xa0\xa0\xa0\xa0")
	f := &Frame{Width: 8, Height: 2, Codes: codes}

	lines := f.Lines(Slice{Length: 16})
	require.Len(t, lines, 1)
	assert.Equal(t, codes, lines[0])
}
