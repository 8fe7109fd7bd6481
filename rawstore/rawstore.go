package rawstore

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/subsets-io/mas-connector/pkg/errlvl"
)

// Store persists raw source payloads and per-source sync state on disk.
//
// Layout under the base directory:
//
//	raw/<asset>.<ext>  - payloads as fetched from the source
//	state/<asset>.json - resumable sync state per source
//
// Raw payloads are kept verbatim so any parsing step can be re-run without
// hitting the sources again.
type Store struct {
	baseDir string
}

// New creates a Store rooted at baseDir.
func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// RawPath returns the path for a raw asset with the given extension.
func (s *Store) RawPath(asset, ext string) string {
	return filepath.Join(s.baseDir, "raw", asset+"."+ext)
}

// StatePath returns the path for a state file.
func (s *Store) StatePath(asset string) string {
	return filepath.Join(s.baseDir, "state", asset+".json")
}

// SaveJSON saves a document as raw/<asset>.json.
func (s *Store) SaveJSON(asset string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return newError(errlvl.ERROR, errMarshal, err)
	}

	return s.SaveFile(asset, "json", data)
}

// LoadJSON loads raw/<asset>.json into v.
func (s *Store) LoadJSON(asset string, v any) error {
	data, err := s.LoadFile(asset, "json")
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, v); err != nil {
		return newError(errlvl.ERROR, errUnmarshal, err)
	}

	return nil
}

// SaveFile saves a raw payload as raw/<asset>.<ext>.
func (s *Store) SaveFile(asset, ext string, data []byte) error {
	path := s.RawPath(asset, ext)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return newError(errlvl.ERROR, errWriteFile, err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return newError(errlvl.ERROR, errWriteFile, err)
	}

	return nil
}

// LoadFile loads the payload of raw/<asset>.<ext>.
func (s *Store) LoadFile(asset, ext string) ([]byte, error) {
	data, err := os.ReadFile(s.RawPath(asset, ext))
	if err != nil {
		return nil, newError(errlvl.ERROR, errReadFile, err)
	}

	return data, nil
}

// ListRaw returns the file names of all stored raw assets.
func (s *Store) ListRaw() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.baseDir, "raw"))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, newError(errlvl.ERROR, errReadFile, err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}

	return names, nil
}

// State is the resumable sync state of a single source.
type State struct {
	Completed []string `json:"completed,omitempty"` // finished assets of a multi-asset source
	Fetched   bool     `json:"fetched,omitempty"`   // set for single-page sources
}

// IsCompleted reports whether the named asset is already done.
func (st *State) IsCompleted(name string) bool {
	return slices.Contains(st.Completed, name)
}

// MarkCompleted records the named asset as done.
func (st *State) MarkCompleted(name string) {
	if !st.IsCompleted(name) {
		st.Completed = append(st.Completed, name)
	}
}

// LoadState loads the state of a source. A missing state file is not an error
// and loads as the empty state.
func (s *Store) LoadState(asset string) (*State, error) {
	data, err := os.ReadFile(s.StatePath(asset))
	if errors.Is(err, fs.ErrNotExist) {
		return &State{}, nil
	}
	if err != nil {
		return nil, newError(errlvl.ERROR, errReadState, err)
	}

	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, newError(errlvl.ERROR, errUnmarshal, err)
	}

	return &st, nil
}

// SaveState persists the state of a source.
func (s *Store) SaveState(asset string, st *State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return newError(errlvl.ERROR, errMarshal, err)
	}

	path := s.StatePath(asset)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return newError(errlvl.ERROR, errWriteState, err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return newError(errlvl.ERROR, errWriteState, err)
	}

	return nil
}
