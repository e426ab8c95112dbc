package directory

import (
	"bytes"
	"errors"
	"fmt"
)

var errLoop = errors.New("directory: loop in sector chain")

// Entry is one used directory slot.
type Entry struct {
	Sector byte
	Slot   int
	Type   byte
	// Name is the raw filename with the shift-space padding removed
	Name   []byte
	Blocks uint16
}

// Listing is the decoded content of a directory track.
type Listing struct {
	Name    []byte
	ID      []byte
	Entries []Entry
}

func trimPadding(b []byte) []byte {
	end := len(b)
	for end > 0 && b[end-1] == ShiftSpace {
		end--
	}
	return append([]byte(nil), b[:end]...)
}

// ReadTrack decodes the header and follows the sector chain starting at the
// link in the header, collecting every non-empty entry.
func ReadTrack(b []byte) (*Listing, error) {
	if len(b) != TrackSize {
		return nil, ErrShortBuffer
	}

	l := &Listing{
		Name: trimPadding(b[headerName : headerName+NameSize]),
		ID:   trimPadding(b[headerID : headerID+IDSize]),
	}

	visited := make(map[byte]bool)
	t, s := b[0], b[1]
	for t == Track {
		if int(s) >= Sectors {
			return nil, fmt.Errorf("directory: invalid sector %d", s)
		}
		if visited[s] {
			return nil, errLoop
		}
		visited[s] = true

		sector := b[int(s)*SectorSize : (int(s)+1)*SectorSize]
		for i := 0; i < EntriesPerSector; i++ {
			slot := sector[i*EntrySize : (i+1)*EntrySize]
			if slot[entryType] == 0x00 {
				continue
			}
			l.Entries = append(l.Entries, Entry{
				Sector: s,
				Slot:   i,
				Type:   slot[entryType],
				Name:   trimPadding(slot[entryName : entryName+NameSize]),
				Blocks: uint16(slot[entryBlocks]) | uint16(slot[entryBlocks+1])<<8,
			})
		}

		t, s = sector[0], sector[1]
	}

	return l, nil
}

// Names returns the filenames in directory order.
func (l *Listing) Names() [][]byte {
	names := make([][]byte, 0, len(l.Entries))
	for _, e := range l.Entries {
		names = append(names, e.Name)
	}
	return names
}

// Contains reports whether name, ignoring padding, is in the listing.
func (l *Listing) Contains(name []byte) bool {
	name = trimPadding(name)
	for _, e := range l.Entries {
		if bytes.Equal(e.Name, name) {
			return true
		}
	}
	return false
}
