/*
Package d64 implements a Commodore 1541 disk image.

A standard image is 35 tracks of 17 to 21 sectors, 683 sectors of 256 bytes
or 174848 bytes in total. Images with error info carry one extra byte per
sector appended after the sector data; those bytes are dropped on load so an
image is always written back as a standard 174848 byte image.

The image is only used as a carrier for the directory track, no attempt is
made to maintain the BAM or any file chains.
*/
package d64

import (
	"errors"
	"fmt"
	"io"

	"github.com/bodgit/dirart/directory"
)

const (
	sectorSize = 256
	tracks     = 35
	sectors    = 683

	// Size is the size in bytes of a standard 35 track image
	Size = sectors * sectorSize

	sizeWithErrors = Size + sectors
)

var (
	// ErrImageSize is returned when loading an image of an unsupported size
	ErrImageSize = errors.New("d64: unsupported image size")

	errBadTrackSector = errors.New("d64: invalid track/sector")
)

// SectorsOnTrack returns the number of sectors on track t, or zero if the
// track doesn't exist.
func SectorsOnTrack(t int) int {
	switch {
	case t >= 1 && t <= 17:
		return 21
	case t >= 18 && t <= 24:
		return 19
	case t >= 25 && t <= 30:
		return 18
	case t >= 31 && t <= tracks:
		return 17
	default:
		return 0
	}
}

// Offset returns the byte offset of track t, sector s.
func Offset(t, s int) (int, error) {
	n := SectorsOnTrack(t)
	if n == 0 || s < 0 || s >= n {
		return 0, errBadTrackSector
	}
	var offset int
	for i := 1; i < t; i++ {
		offset += SectorsOnTrack(i) * sectorSize
	}
	return offset + s*sectorSize, nil
}

// TrackOffset is the byte offset of the directory track, 0x16500
var TrackOffset = func() int {
	offset, err := Offset(directory.Track, 0)
	if err != nil {
		panic(err)
	}
	return offset
}()

// Image is a disk image held in memory. It implements the
// encoding.BinaryMarshaler and encoding.BinaryUnmarshaler interfaces.
type Image struct {
	b []byte
}

// New returns an empty, zero filled, image.
func New() *Image {
	return &Image{
		b: make([]byte, Size),
	}
}

// Load returns an image using a copy of b, which must be a complete image.
func Load(b []byte) (*Image, error) {
	img := new(Image)
	if err := img.UnmarshalBinary(b); err != nil {
		return nil, err
	}
	return img, nil
}

// LoadOrNew loads b if it isn't empty, otherwise it returns a new image.
func LoadOrNew(b []byte) (*Image, error) {
	if len(b) == 0 {
		return New(), nil
	}
	return Load(b)
}

// DirectoryTrack returns the directory track of the image. The slice shares
// memory with the image and must not be retained once the caller is finished
// updating it.
func (img *Image) DirectoryTrack() []byte {
	return img.b[TrackOffset : TrackOffset+directory.TrackSize : TrackOffset+directory.TrackSize]
}

// Splice copies track into the image as the directory track.
func (img *Image) Splice(track []byte) error {
	if len(track) != directory.TrackSize {
		return fmt.Errorf("d64: directory track is %d bytes, expected %d", len(track), directory.TrackSize)
	}
	copy(img.b[TrackOffset:], track)
	return nil
}

// Bytes returns the raw image.
func (img *Image) Bytes() []byte {
	return img.b
}

// MarshalBinary encodes the image into binary form and returns the result
func (img *Image) MarshalBinary() ([]byte, error) {
	return append([]byte(nil), img.b...), nil
}

// UnmarshalBinary decodes the image from binary form
func (img *Image) UnmarshalBinary(b []byte) error {
	switch len(b) {
	case Size, sizeWithErrors:
	default:
		return fmt.Errorf("%w: %d bytes", ErrImageSize, len(b))
	}
	img.b = append(img.b[:0], b[:Size]...)
	return nil
}

// WriteTo writes the image to w.
func (img *Image) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(img.b)
	return int64(n), err
}
