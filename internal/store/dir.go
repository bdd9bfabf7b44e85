package store

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"github.com/san-kum/algoviz/internal/trace"
)

// Dir collects exports written by one batch run: one artifact and one CSV
// step table per entry, plus an index.json describing them all.
type Dir struct {
	baseDir string
}

func NewDir(baseDir string) *Dir {
	return &Dir{baseDir: baseDir}
}

func (d *Dir) Init() error {
	return os.MkdirAll(d.baseDir, 0755)
}

func (d *Dir) Path() string { return d.baseDir }

type Entry struct {
	ID          string    `json:"id"`
	Algorithm   string    `json:"algorithm"`
	Steps       int       `json:"steps"`
	Fingerprint string    `json:"fingerprint"`
	File        string    `json:"file"`
	Table       string    `json:"table"`
	Created     time.Time `json:"created"`
}

// Save writes e under id. With compress set the artifact is zstd-compressed.
func (d *Dir) Save(id string, e Export, compress bool) (Entry, error) {
	fp, err := e.Steps.Fingerprint()
	if err != nil {
		return Entry{}, err
	}
	ent := Entry{
		ID:          id,
		Algorithm:   e.Algorithm,
		Steps:       len(e.Steps),
		Fingerprint: fp,
		File:        id + ".json",
		Table:       id + ".csv",
		Created:     time.Now().UTC(),
	}
	if compress {
		ent.File += ".zst"
	}

	if err := WriteFile(filepath.Join(d.baseDir, ent.File), e); err != nil {
		return Entry{}, fmt.Errorf("store: write %s: %w", ent.File, err)
	}

	f, err := os.Create(filepath.Join(d.baseDir, ent.Table))
	if err != nil {
		return Entry{}, err
	}
	defer f.Close()
	if err := WriteTable(f, e.Steps); err != nil {
		return Entry{}, fmt.Errorf("store: write %s: %w", ent.Table, err)
	}

	entries, err := d.List()
	if err != nil {
		return Entry{}, err
	}
	entries = slices.DeleteFunc(entries, func(x Entry) bool { return x.ID == id })
	entries = append(entries, ent)
	if err := d.writeIndex(entries); err != nil {
		return Entry{}, err
	}
	return ent, nil
}

// List returns the index, empty when nothing has been saved yet.
func (d *Dir) List() ([]Entry, error) {
	data, err := os.ReadFile(filepath.Join(d.baseDir, "index.json"))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("store: index: %w", err)
	}
	return entries, nil
}

func (d *Dir) Load(id string) (Export, error) {
	entries, err := d.List()
	if err != nil {
		return Export{}, err
	}
	for _, ent := range entries {
		if ent.ID == id {
			return ReadFile(filepath.Join(d.baseDir, ent.File))
		}
	}
	return Export{}, fmt.Errorf("store: entry not found: %s", id)
}

func (d *Dir) writeIndex(entries []Entry) error {
	f, err := os.Create(filepath.Join(d.baseDir, "index.json"))
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}

// WriteTable writes one CSV row per step: index, pseudocode line,
// description and the element values.
func WriteTable(w io.Writer, steps trace.Steps) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"step", "line", "description", "values"}); err != nil {
		return err
	}
	for i, st := range steps {
		vals, err := json.Marshal(st.Values())
		if err != nil {
			return err
		}
		row := []string{strconv.Itoa(i), strconv.Itoa(st.LineIndex), st.Description, string(vals)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
