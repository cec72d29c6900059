package cli

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Selection remembers the selected account between invocations.
type Selection interface {
	Load() (int64, error)
	Save(accountID int64) error
}

// FileSelection keeps the account id in a plain text file.
type FileSelection struct {
	path string
}

// NewFileSelection stores the selection at path.
func NewFileSelection(path string) *FileSelection {
	return &FileSelection{path: path}
}

// Load returns zero when nothing was saved.
func (f *FileSelection) Load() (int64, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
}

// Save writes accountID; zero removes the file.
func (f *FileSelection) Save(accountID int64) error {
	if accountID == 0 {
		err := os.Remove(f.path)
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(f.path, []byte(strconv.FormatInt(accountID, 10)+"\n"), 0o600)
}

// MemorySelection is a Selection for tests.
type MemorySelection struct {
	ID int64
}

func (m *MemorySelection) Load() (int64, error) { return m.ID, nil }

func (m *MemorySelection) Save(accountID int64) error {
	m.ID = accountID
	return nil
}
