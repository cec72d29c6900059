package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Data is the persisted part of a session.
type Data struct {
	Token  string `json:"token"`
	UserID int64  `json:"userId"`
}

// Storage persists session data between runs.
type Storage interface {
	// Load returns the stored data, or a zero Data when nothing is stored.
	Load() (Data, error)
	Save(Data) error
	Clear() error
}

// FileStorage keeps the session in a JSON file readable only by its owner.
type FileStorage struct {
	path string
}

// NewFileStorage returns a FileStorage writing to path.
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

// Load implements Storage.
func (f *FileStorage) Load() (Data, error) {
	raw, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Data{}, nil
	}
	if err != nil {
		return Data{}, fmt.Errorf("reading session file: %w", err)
	}
	var d Data
	if err := json.Unmarshal(raw, &d); err != nil {
		return Data{}, fmt.Errorf("decoding session file: %w", err)
	}
	return d, nil
}

// Save implements Storage.
func (f *FileStorage) Save(d Data) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}
	raw, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("writing session file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replacing session file: %w", err)
	}
	return nil
}

// Clear implements Storage.
func (f *FileStorage) Clear() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing session file: %w", err)
	}
	return nil
}

// MemoryStorage is an in-process Storage, used by tests and embedders that do
// not persist sessions.
type MemoryStorage struct {
	mu   sync.Mutex
	data Data
}

// Load implements Storage.
func (m *MemoryStorage) Load() (Data, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data, nil
}

// Save implements Storage.
func (m *MemoryStorage) Save(d Data) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = d
	return nil
}

// Clear implements Storage.
func (m *MemoryStorage) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = Data{}
	return nil
}
