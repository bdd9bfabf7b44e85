package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/san-kum/algoviz/internal/trace"
)

var ErrInvalidExport = errors.New("store: invalid export")

// Export is the download artifact of a playback session.
type Export struct {
	Algorithm   string      `json:"algorithm"`
	Steps       trace.Steps `json:"steps"`
	CurrentStep int         `json:"currentStep"`
}

func (e Export) validate() error {
	if e.Algorithm == "" {
		return fmt.Errorf("%w: missing algorithm", ErrInvalidExport)
	}
	if len(e.Steps) == 0 {
		if e.CurrentStep != 0 {
			return fmt.Errorf("%w: currentStep %d without steps", ErrInvalidExport, e.CurrentStep)
		}
		return nil
	}
	if e.CurrentStep < 0 || e.CurrentStep >= len(e.Steps) {
		return fmt.Errorf("%w: currentStep %d not in 0..%d", ErrInvalidExport, e.CurrentStep, len(e.Steps)-1)
	}
	return nil
}

// Write encodes e as indented JSON.
func Write(w io.Writer, e Export) error {
	if err := e.validate(); err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}

func Read(r io.Reader) (Export, error) {
	var e Export
	if err := json.NewDecoder(r).Decode(&e); err != nil {
		return Export{}, fmt.Errorf("%w: %v", ErrInvalidExport, err)
	}
	if err := e.validate(); err != nil {
		return Export{}, err
	}
	return e, nil
}

// Compressed reports whether path names a zstd-compressed export.
func Compressed(path string) bool {
	return strings.HasSuffix(path, ".zst")
}

// WriteFile writes e to path, zstd-compressed when path ends in ".zst".
func WriteFile(path string, e Export) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()

	if !Compressed(path) {
		return Write(file, e)
	}
	enc, err := zstd.NewWriter(file)
	if err != nil {
		return fmt.Errorf("creating zstd encoder: %w", err)
	}
	if err := Write(enc, e); err != nil {
		enc.Close()
		return err
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("closing encoder: %w", err)
	}
	return nil
}

func ReadFile(path string) (Export, error) {
	file, err := os.Open(path)
	if err != nil {
		return Export{}, err
	}
	defer file.Close()

	if !Compressed(path) {
		return Read(file)
	}
	dec, err := zstd.NewReader(file)
	if err != nil {
		return Export{}, fmt.Errorf("creating zstd decoder: %w", err)
	}
	defer dec.Close()
	return Read(dec)
}
