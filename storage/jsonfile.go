package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var ErrStorageRead = errors.New("storage read failed")

// JSONFile is a document stored as a whole in a single file. Every write
// replaces the file; there is no locking.
type JSONFile struct {
	path string
}

func NewJSONFile(path string) JSONFile {
	return JSONFile{path: path}
}

func (f JSONFile) Path() string {
	return f.path
}

// Read decodes the file into v. A missing file reports found == false and no
// error. Unreadable or corrupt files return an error wrapping ErrStorageRead.
func (f JSONFile) Read(v any) (bool, error) {
	data, err := os.ReadFile(f.path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("%w: %s: %v", ErrStorageRead, f.path, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("%w: %s: %v", ErrStorageRead, f.path, err)
	}

	return true, nil
}

func (f JSONFile) Write(v any) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", f.path, err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", f.path, err)
	}

	if err := os.WriteFile(f.path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("write %s: %w", f.path, err)
	}

	return nil
}

// Remove deletes the file. Removing a missing file is not an error.
func (f JSONFile) Remove() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", f.path, err)
	}
	return nil
}
