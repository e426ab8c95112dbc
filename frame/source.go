package frame

import (
	"fmt"
	"io"
	"io/ioutil"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	reMeta        = regexp.MustCompile(`// META:\s*(\d+)\s+(\d+)\s+(\w+)\s+(\w+)`)
	reLineComment = regexp.MustCompile(`(?m)//.*$`)
	reComment     = regexp.MustCompile(`(?s)/\*.*?\*/`)
	reArray       = regexp.MustCompile(`(?s)unsigned\s+char\s+(\w+)\[\]\s*=\s*\{([^}]*)\};`)
)

// Meta is the frame geometry taken from the META comment.
type Meta struct {
	Width   int
	Height  int
	Type    string
	Charset string
}

// Source is a parsed PETSCII editor C file.
type Source struct {
	Meta   Meta
	frames map[string][]byte
}

// Names returns the frame names, sorted.
func (s *Source) Names() []string {
	names := make([]string, 0, len(s.frames))
	for name := range s.frames {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Frame returns the named frame.
func (s *Source) Frame(name string) (*Frame, error) {
	codes, ok := s.frames[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrFrameNotFound, name)
	}
	f := &Frame{
		Name:    name,
		Width:   s.Meta.Width,
		Height:  s.Meta.Height,
		Type:    s.Meta.Type,
		Charset: s.Meta.Charset,
		Codes:   append([]byte(nil), codes...),
	}
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return f, nil
}

func parseMeta(c string) (Meta, error) {
	for _, line := range strings.Split(c, "\n") {
		m := reMeta.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		w, err := strconv.Atoi(m[1])
		if err != nil {
			return Meta{}, err
		}
		h, err := strconv.Atoi(m[2])
		if err != nil {
			return Meta{}, err
		}
		return Meta{Width: w, Height: h, Type: m[3], Charset: m[4]}, nil
	}
	return Meta{}, ErrNoMeta
}

// Parse reads the C source produced by the PETSCII editor. When an array
// holds more than width * height values the first two, the border and
// background colors, are skipped and the screen codes kept.
func Parse(r io.Reader) (*Source, error) {
	b, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}
	c := string(b)

	meta, err := parseMeta(c)
	if err != nil {
		return nil, err
	}
	size := meta.Width * meta.Height

	c = reLineComment.ReplaceAllString(c, "")
	c = reComment.ReplaceAllString(c, "")

	s := &Source{
		Meta:   meta,
		frames: make(map[string][]byte),
	}

	for _, m := range reArray.FindAllStringSubmatch(c, -1) {
		var values []byte
		for _, v := range strings.Split(m[2], ",") {
			v = strings.TrimSpace(v)
			if v == "" {
				continue
			}
			n, err := strconv.ParseUint(v, 0, 8)
			if err != nil {
				return nil, fmt.Errorf("frame: %s: %w", m[1], err)
			}
			values = append(values, byte(n))
		}
		if size < len(values) {
			values = values[2:]
			if len(values) > size {
				values = values[:size]
			}
		}
		s.frames[m[1]] = values
	}

	return s, nil
}
