package dirart

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bodgit/dirart/d64"
	"github.com/bodgit/dirart/directory"
	"github.com/bodgit/dirart/export"
	"github.com/bodgit/dirart/frame"
	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// "HELLO WORLD" as screen codes followed by shift-space
var hello = []byte{0x08, 0x05, 0x0c, 0x0c, 0x0f, 0x20, 0x17, 0x0f, 0x12, 0x0c, 0x04, 0xa0, 0xa0, 0xa0, 0xa0, 0xa0}

const source = `// META: 16 3 C64 upper
unsigned char frame0000[]={
0,6,
8,5,12,12,15,32,23,15,18,12,4,160,160,160,160,160,
1,1,1,1,1,1,1,1,1,1,1,1,1,1,1,1,
8,5,12,12,15,32,23,15,18,12,4,160,160,160,160,160,
14,14,14,14,14,14,14,14,14,14,14,14,14,14,14,14,
14,14,14,14,14,14,14,14,14,14,14,14,14,14,14,14,
14,14,14,14,14,14,14,14,14,14,14,14,14,14,14,14,
};
`

func testLogger(t *testing.T) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:  t.Name(),
		Level: hclog.Trace,
	})
}

func tempDir(t *testing.T) string {
	dir, err := ioutil.TempDir("", "dirart")
	require.Nil(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })
	return dir
}

func TestEndToEnd(t *testing.T) {
	d := New(nil, testLogger(t))

	f := &frame.Frame{Name: "frame0000", Width: 8, Height: 2, Codes: hello}
	o := Options{LineLength: 16, DiskName: "DISKNAME", DiskID: "ID", KeepShiftSpace: true}

	filenames := d.Filenames(f, o)
	require.Len(t, filenames, 1)
	assert.Equal(t, []byte("HELLO WORLD\xa0\xa0\xa0\xa0\xa0"), filenames[0])

	img, err := d.Image(nil, filenames, o)
	require.Nil(t, err)

	b := img.Bytes()
	require.Len(t, b, 174848)

	header := b[d64.TrackOffset : d64.TrackOffset+directory.SectorSize]
	assert.Equal(t, append([]byte("DISKNAME"), bytes.Repeat([]byte{0xa0}, 8)...), header[0x90:0xa0])
	assert.Equal(t, []byte("ID"), header[0xa2:0xa4])

	entry := b[d64.TrackOffset+directory.SectorSize : d64.TrackOffset+directory.SectorSize+directory.EntrySize]
	assert.Equal(t, []byte("HELLO WORLD\xa0\xa0\xa0\xa0\xa0"), entry[0x05:0x15])
	assert.Equal(t, []byte{0x12, 0x04}, entry[0x00:0x02])
}

func TestImageUpdate(t *testing.T) {
	d := New(nil, testLogger(t))

	img, err := d.Image(nil, [][]byte{[]byte("ONE"), []byte("TWO")}, Options{DiskName: "FIRST", DiskID: "AB"})
	require.Nil(t, err)

	img, err = d.Image(img.Bytes(), [][]byte{[]byte("UNO")}, Options{})
	require.Nil(t, err)

	l, err := directory.ReadTrack(img.DirectoryTrack())
	require.Nil(t, err)
	assert.Equal(t, []byte("FIRST"), l.Name)
	assert.Equal(t, []byte("AB"), l.ID)
	assert.Equal(t, [][]byte{[]byte("UNO"), []byte("TWO")}, l.Names())

	_, err = d.Image(make([]byte, 100), nil, Options{})
	assert.NotNil(t, err)
}

func TestImageCapacity(t *testing.T) {
	var buf bytes.Buffer
	d := New(nil, hclog.New(&hclog.LoggerOptions{
		Name:   t.Name(),
		Level:  hclog.Warn,
		Output: &buf,
	}))

	filenames := make([][]byte, 145)
	for i := range filenames {
		filenames[i] = []byte{byte('A' + i%26), byte('0' + i/26)}
	}

	img, err := d.Image(nil, filenames, Options{})
	require.Nil(t, err)

	l, err := directory.ReadTrack(img.DirectoryTrack())
	require.Nil(t, err)
	assert.Len(t, l.Entries, 144)
	assert.Contains(t, buf.String(), "directory full")
	assert.Contains(t, buf.String(), "dropped=1")
}

func TestExport(t *testing.T) {
	d := New(nil, testLogger(t))

	filenames := [][]byte{[]byte("HI\xa0")}
	b, err := d.Export(filenames, export.LoaderTable{})
	require.Nil(t, err)
	assert.Equal(t, "$48$49\n", string(b))
}

func TestConvert(t *testing.T) {
	dir := tempDir(t)
	file := filepath.Join(dir, "dirart.c")
	require.Nil(t, ioutil.WriteFile(file, []byte(source), 0644))

	d := New(nil, testLogger(t))

	f, err := d.Frame(file, "frame0000")
	require.Nil(t, err)

	out := Output{
		Image:   filepath.Join(dir, "dirart.d64"),
		Export:  filepath.Join(dir, "dirart.s"),
		Encoder: &export.Assembler{Dialect: export.KickAss},
	}
	require.Nil(t, d.Convert(f, Options{DiskName: "TEST", KeepShiftSpace: true}, out))

	b, err := ioutil.ReadFile(out.Image)
	require.Nil(t, err)
	img, err := d64.Load(b)
	require.Nil(t, err)

	l, err := directory.ReadTrack(img.DirectoryTrack())
	require.Nil(t, err)
	assert.Equal(t, []byte("TEST"), l.Name)
	require.Len(t, l.Entries, 3)
	assert.Equal(t, []byte("HELLO WORLD"), l.Entries[0].Name)
	assert.Equal(t, []byte("AAAAAAAAAAAAAAAA"), l.Entries[1].Name)

	s, err := ioutil.ReadFile(out.Export)
	require.Nil(t, err)
	lines := strings.Split(strings.TrimSpace(string(s)), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "// HELLO WORLD")
	assert.Contains(t, lines[2], "duplicate of filename000")

	// Update the image in place with a new name only
	out = Output{Image: out.Image, Update: out.Image}
	require.Nil(t, d.Convert(f, Options{Lines: 1, DiskName: "AGAIN", KeepShiftSpace: true}, out))

	b, err = ioutil.ReadFile(out.Image)
	require.Nil(t, err)
	img, err = d64.Load(b)
	require.Nil(t, err)
	l, err = directory.ReadTrack(img.DirectoryTrack())
	require.Nil(t, err)
	assert.Equal(t, []byte("AGAIN"), l.Name)
	assert.Len(t, l.Entries, 3)
}

func TestFrameMissing(t *testing.T) {
	d := New(nil, nil)
	_, err := d.Frame("", "frame0000")
	assert.Equal(t, errNoSource, err)

	_, err = d.Frame(filepath.Join(tempDir(t), "missing.c"), "frame0000")
	assert.True(t, os.IsNotExist(err))
}
