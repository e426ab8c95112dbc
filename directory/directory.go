/*
Package directory implements the directory track of a Commodore 1541 disk.

The track is 19 sectors of 256 bytes. Sector 0 holds the disk header, the
disk name at 0x90 and the disk ID at 0xa2, both padded with shift-space
(0xa0). The remaining sectors hold eight 32 byte entries each and are chained
in the interleave order 1, 4, 7, ... 18 so at most 144 entries fit on the
track.

Only the fields needed to display a directory are written; entries point at
a fake one block SEQ file on track 17, the BAM is left alone.
*/
package directory

import "errors"

const (
	// Track is the directory track number
	Track = 18

	// SectorSize is the size in bytes of one sector
	SectorSize = 256

	// Sectors is the number of sectors on the directory track
	Sectors = 19

	// TrackSize is the size in bytes of the directory track
	TrackSize = Sectors * SectorSize

	// EntrySize is the size in bytes of one directory entry
	EntrySize = 32

	// EntriesPerSector is the number of entries in one directory sector
	EntriesPerSector = SectorSize / EntrySize

	// NameSize is the size of both the disk name and a filename
	NameSize = 16

	// IDSize is the size of the disk ID
	IDSize = 2

	// MaxEntries is the number of entries the track can hold
	MaxEntries = len(interleave) * EntriesPerSector

	// ShiftSpace pads names
	ShiftSpace = 0xa0
)

const (
	headerName    = 0x90
	headerID      = 0xa2
	headerDOSType = 0xa5

	entryType   = 0x02
	entryTrack  = 0x03
	entrySector = 0x04
	entryName   = 0x05
	entryBlocks = 0x1e

	fileTypeSEQ = 0x81
	fileTrack   = 0x11
)

var interleave = [...]byte{1, 4, 7, 10, 13, 16, 2, 5, 8, 11, 14, 17, 3, 6, 9, 12, 15, 18}

// ErrShortBuffer is returned when a buffer does not have the expected size
var ErrShortBuffer = errors.New("directory: wrong buffer size")

// Link is a track/sector pointer.
type Link struct {
	Track, Sector byte
}

// Terminal marks the last sector of a chain.
var Terminal = Link{0x00, 0xff}

// Interleave returns the order entry sectors are allocated in.
func Interleave() []byte {
	return append([]byte(nil), interleave[:]...)
}

func isEmpty(b []byte) bool {
	for _, c := range b {
		if c != 0x00 {
			return false
		}
	}
	return true
}

func fill(b []byte, c byte) {
	for i := range b {
		b[i] = c
	}
}

// pad copies src into dst truncating it if it's too long and padding the
// remainder with shift-space.
func pad(dst, src []byte) {
	n := copy(dst, src)
	fill(dst[n:], ShiftSpace)
}

// WriteHeader builds the header sector in b, or updates it if b already
// holds one. The disk name and ID are only replaced when given.
func WriteHeader(b, name, id []byte) error {
	if len(b) != SectorSize {
		return ErrShortBuffer
	}

	if isEmpty(b) {
		b[0], b[1] = Track, interleave[0]
		b[2] = 'A'
		fill(b[headerName:headerDOSType+2+3], ShiftSpace)
		copy(b[headerDOSType:], "2A")
	}

	if len(name) > 0 {
		pad(b[headerName:headerName+NameSize], name)
	}
	if len(id) > 0 {
		pad(b[headerID:headerID+IDSize], id)
	}

	return nil
}

// WriteEntry builds the entry in b, or updates the filename of an existing
// entry. The link is always written.
func WriteEntry(b []byte, link Link, filename []byte) error {
	if len(b) != EntrySize {
		return ErrShortBuffer
	}

	if isEmpty(b) {
		b[entryType] = fileTypeSEQ
		b[entryTrack] = fileTrack
		b[entrySector] = 0x00
		b[entryBlocks] = 0x01
		b[entryBlocks+1] = 0x00
	}

	b[0], b[1] = link.Track, link.Sector
	pad(b[entryName:entryName+NameSize], filename)

	return nil
}

// WriteSector fills up to eight entries in b from filenames. Only the first
// entry carries next, the link to the following sector. It returns the
// number of entries written.
func WriteSector(b []byte, next Link, filenames [][]byte) (int, error) {
	if len(b) != SectorSize {
		return 0, ErrShortBuffer
	}

	n := 0
	for i, filename := range filenames {
		if i == EntriesPerSector {
			break
		}
		if err := WriteEntry(b[i*EntrySize:(i+1)*EntrySize], next, filename); err != nil {
			return n, err
		}
		next = Link{}
		n++
	}

	return n, nil
}

// WriteTrack builds the directory track in b, allocating it if b is nil. The
// header is always written, filenames fill the entry sectors in interleave
// order and anything past MaxEntries is dropped. It returns the track and
// the number of entries written.
func WriteTrack(b []byte, filenames [][]byte, name, id []byte) ([]byte, int, error) {
	if b == nil {
		b = make([]byte, TrackSize)
	}
	if len(b) != TrackSize {
		return nil, 0, ErrShortBuffer
	}

	if err := WriteHeader(b[:SectorSize], name, id); err != nil {
		return nil, 0, err
	}

	written := 0
	for i, sector := range interleave {
		if written == len(filenames) {
			break
		}

		next := Terminal
		if i+1 < len(interleave) {
			next = Link{Track, interleave[i+1]}
		}

		offset := int(sector) * SectorSize
		end := written + EntriesPerSector
		if end > len(filenames) {
			end = len(filenames)
		}

		n, err := WriteSector(b[offset:offset+SectorSize], next, filenames[written:end])
		if err != nil {
			return nil, written, err
		}
		written += n
	}

	return b, written, nil
}
