package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// ErrCorrupt is returned by Storage.Load when a record exists but cannot be decoded.
var ErrCorrupt = errors.New("session record is corrupt")

// Storage persists the session record between runs
type Storage interface {
	Load() (State, error)
	Save(State) error
}

// record is the on-disk envelope. The state is nested so fields can be added
// without breaking older files.
type record struct {
	State   State `json:"state"`
	Version int   `json:"version"`
}

const recordVersion = 0

// FileStorage keeps the session record in a single JSON file
type FileStorage struct {
	path string
}

// NewFileStorage returns storage backed by the file at path
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

// Path returns the file the record is written to
func (f *FileStorage) Path() string {
	return f.path
}

// Load reads the record. A missing file is an empty, unauthenticated state.
func (f *FileStorage) Load() (State, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return State{}, nil
		}
		return State{}, err
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return State{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return rec.State, nil
}

// Save writes the record atomically with owner-only permissions
func (f *FileStorage) Save(state State) error {
	data, err := json.MarshalIndent(record{State: state, Version: recordVersion}, "", "  ")
	if err != nil {
		return err
	}
	return atomicWriteFile(f.path, append(data, '\n'), 0o600)
}

func atomicWriteFile(path string, data []byte, perm fs.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	tmp := filepath.Join(dir, fmt.Sprintf(".tmp-%d", time.Now().UnixNano()))
	if err := os.WriteFile(tmp, data, perm); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
