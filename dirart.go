/*
Package dirart is a library for turning directory art, drawn in Marq's
PETSCII editor, into the directory of a Commodore 1541 disk image.
*/
package dirart

import (
	"bytes"
	"errors"
	"fmt"
	"io/ioutil"
	"os"

	"github.com/bodgit/dirart/d64"
	"github.com/bodgit/dirart/directory"
	"github.com/bodgit/dirart/export"
	"github.com/bodgit/dirart/frame"
	"github.com/bodgit/dirart/petscii"
	"github.com/hashicorp/go-hclog"
)

// Options controls how a frame becomes a directory.
type Options struct {
	// Lines is the number of directory lines, zero means the frame height
	Lines int
	// LineLength is the number of codes per filename, zero means 16
	LineLength int
	// Offset is the column filenames start at
	Offset int
	// DiskName and DiskID are only written when not empty
	DiskName string
	DiskID   string
	// KeepShiftSpace treats a 0xa0 screen code as the end of a line
	KeepShiftSpace bool
}

type DirArt struct {
	db     *FrameDB
	logger hclog.Logger
}

func New(db *FrameDB, logger hclog.Logger) *DirArt {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &DirArt{
		db:     db,
		logger: logger,
	}
}

// Filenames slices f into lines and translates them to PETSCII.
func (d *DirArt) Filenames(f *frame.Frame, o Options) [][]byte {
	t := petscii.Translator{
		KeepShiftSpace: o.KeepShiftSpace,
		Logger:         d.logger.Named("petscii"),
	}

	lines := f.Lines(frame.Slice{
		Lines:  o.Lines,
		Length: o.LineLength,
		Offset: o.Offset,
	})

	d.logger.Debug("convert", "frame", f.Name, "codes", len(f.Codes), "lines", len(lines), "length", o.LineLength)

	filenames := make([][]byte, 0, len(lines))
	for i, line := range lines {
		filename := t.TranslateAll(line)
		if d.logger.IsTrace() {
			d.logger.Trace("line", "index", i, "hex", fmt.Sprintf("% x", filename), "decoded", petscii.Decode(filename))
		}
		filenames = append(filenames, filename)
	}
	return filenames
}

// Image writes filenames into the directory of existing, or of a new image
// when existing is empty, and returns the image.
func (d *DirArt) Image(existing []byte, filenames [][]byte, o Options) (*d64.Image, error) {
	img, err := d64.LoadOrNew(existing)
	if err != nil {
		return nil, err
	}

	track, n, err := directory.WriteTrack(img.DirectoryTrack(), filenames, []byte(o.DiskName), []byte(o.DiskID))
	if err != nil {
		return nil, err
	}
	if n < len(filenames) {
		d.logger.Warn("directory full, filenames dropped", "written", n, "dropped", len(filenames)-n)
	}

	if err := img.Splice(track); err != nil {
		return nil, err
	}

	return img, nil
}

// Export renders filenames with e.
func (d *DirArt) Export(filenames [][]byte, e export.Encoder) ([]byte, error) {
	b := new(bytes.Buffer)
	if err := e.Encode(b, filenames); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

var errNoSource = errors.New("no frame source and no database")

// Frame returns the named frame, read from the PETSCII editor source file
// or from the database when file is empty.
func (d *DirArt) Frame(file, name string) (*frame.Frame, error) {
	if file == "" {
		if d.db == nil {
			return nil, errNoSource
		}
		return d.db.FindFrame(name)
	}

	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	src, err := frame.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	d.logger.Debug("parsed source", "file", file, "frames", len(src.Names()), "width", src.Meta.Width, "height", src.Meta.Height)

	return src.Frame(name)
}

// Output lists the files Convert writes, empty paths are skipped.
type Output struct {
	// Image is the .d64 written
	Image string
	// Update is an existing image whose directory is updated
	Update string
	// Export is the text export written using Encoder
	Export  string
	Encoder export.Encoder
}

// Convert writes the directory built from f to the files in out.
func (d *DirArt) Convert(f *frame.Frame, o Options, out Output) error {
	filenames := d.Filenames(f, o)

	if out.Image != "" {
		var existing []byte
		if out.Update != "" {
			b, err := ioutil.ReadFile(out.Update)
			if err != nil {
				return err
			}
			existing = b
		}

		img, err := d.Image(existing, filenames, o)
		if err != nil {
			return err
		}

		if err := writeFileAtomic(out.Image, img.Bytes(), 0644); err != nil {
			return err
		}
		d.logger.Info("wrote image", "file", out.Image, "filenames", len(filenames))
	}

	if out.Export != "" && out.Encoder != nil {
		b, err := d.Export(filenames, out.Encoder)
		if err != nil {
			return err
		}
		if err := writeFileAtomic(out.Export, b, 0644); err != nil {
			return err
		}
		d.logger.Info("wrote export", "file", out.Export)
	}

	return nil
}
