package dirart

import (
	"bytes"
	"crypto/sha1"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/dirart/frame"
	_ "github.com/mattn/go-sqlite3"
)

// FrameDB stores frames imported from PETSCII editor sources so they can be
// converted without the source file.
type FrameDB struct {
	db *sql.DB
}

func NewFrameDB(file string) (*FrameDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS source (id INTEGER PRIMARY KEY NOT NULL, name TEXT NOT NULL UNIQUE, sha1 TEXT NOT NULL)"); err != nil {
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS frame (id INTEGER PRIMARY KEY NOT NULL, name TEXT NOT NULL, source_id INTEGER NOT NULL, width INTEGER NOT NULL, height INTEGER NOT NULL, type TEXT NOT NULL, charset TEXT NOT NULL, codes BLOB NOT NULL, UNIQUE(source_id, name), FOREIGN KEY(source_id) REFERENCES source(id))"); err != nil {
		return nil, err
	}

	return &FrameDB{
		db: db,
	}, nil
}

func (db *FrameDB) Close() error {
	return db.db.Close()
}

// Import parses file and stores every frame in it, replacing any frame of
// the same name. It returns the number of frames imported.
func (db *FrameDB) Import(file string) (int, error) {
	f, err := os.Open(file)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	h := sha1.New()
	b := new(bytes.Buffer)
	if _, err := io.Copy(io.MultiWriter(h, b), f); err != nil {
		return 0, err
	}
	sha := fmt.Sprintf("%X", h.Sum(nil))

	src, err := frame.Parse(b)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", file, err)
	}

	tx, err := db.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	source, err := addSource(tx, filepath.Base(file), sha)
	if err != nil {
		return 0, err
	}

	n := 0
	for _, name := range src.Names() {
		fr, err := src.Frame(name)
		if err != nil {
			return 0, err
		}
		if _, err := tx.Exec("INSERT OR REPLACE INTO frame (name, source_id, width, height, type, charset, codes) VALUES (?, ?, ?, ?, ?, ?, ?)", fr.Name, source, fr.Width, fr.Height, fr.Type, fr.Charset, fr.Codes); err != nil {
			return 0, err
		}
		n++
	}

	return n, tx.Commit()
}

func addSource(tx *sql.Tx, name, sha string) (int64, error) {
	var id int64
	switch err := tx.QueryRow("SELECT id FROM source WHERE name = ?", name).Scan(&id); err {
	case sql.ErrNoRows:
		result, err := tx.Exec("INSERT INTO source (name, sha1) VALUES (?, ?)", name, sha)
		if err != nil {
			return 0, err
		}
		return result.LastInsertId()
	case nil:
		if _, err := tx.Exec("UPDATE source SET sha1 = ? WHERE id = ?", sha, id); err != nil {
			return 0, err
		}
		return id, nil
	default:
		return 0, err
	}
}

// FindFrame returns the named frame. The name may be qualified with the
// source file as "dirart.c/frame0000", otherwise the most recently imported
// frame with that name is returned.
func (db *FrameDB) FindFrame(name string) (*frame.Frame, error) {
	query := "SELECT f.name, f.width, f.height, f.type, f.charset, f.codes FROM frame AS f JOIN source AS s ON f.source_id = s.id WHERE f.name = ? ORDER BY f.id DESC LIMIT 1"
	args := []interface{}{name}
	if i := strings.LastIndex(name, "/"); i >= 0 {
		query = "SELECT f.name, f.width, f.height, f.type, f.charset, f.codes FROM frame AS f JOIN source AS s ON f.source_id = s.id WHERE s.name = ? AND f.name = ?"
		args = []interface{}{name[:i], name[i+1:]}
	}

	f := new(frame.Frame)
	switch err := db.db.QueryRow(query, args...).Scan(&f.Name, &f.Width, &f.Height, &f.Type, &f.Charset, &f.Codes); err {
	case sql.ErrNoRows:
		return nil, fmt.Errorf("%w: %s", frame.ErrFrameNotFound, name)
	case nil:
		if err := f.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return f, nil
	default:
		return nil, err
	}
}

// FrameInfo describes a stored frame.
type FrameInfo struct {
	Name   string
	Source string
	Width  int
	Height int
}

// Frames lists every stored frame ordered by source and name.
func (db *FrameDB) Frames() ([]FrameInfo, error) {
	rows, err := db.db.Query("SELECT f.name, s.name, f.width, f.height FROM frame AS f JOIN source AS s ON f.source_id = s.id ORDER BY s.name, f.name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var frames []FrameInfo
	for rows.Next() {
		var fi FrameInfo
		if err := rows.Scan(&fi.Name, &fi.Source, &fi.Width, &fi.Height); err != nil {
			return nil, err
		}
		frames = append(frames, fi)
	}
	return frames, rows.Err()
}
