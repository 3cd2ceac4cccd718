package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Backend persists the calendar state document. Writes replace the whole
// document; there is no partial write.
type Backend interface {
	// Read returns the persisted document. The second return is false
	// when nothing has been persisted yet.
	Read() ([]byte, bool, error)

	// Write replaces the persisted document.
	Write(data []byte) error
}

// FileBackend stores the state document as a single JSON file. Writes go
// through a temp file and rename so a crash never leaves a torn document.
type FileBackend struct {
	path string
}

// NewFileBackend creates a backend writing to the given path.
func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

func (b *FileBackend) Read() ([]byte, bool, error) {
	data, err := os.ReadFile(b.path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading %s: %w", b.path, err)
	}
	return data, true, nil
}

func (b *FileBackend) Write(data []byte) error {
	dir := filepath.Dir(b.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".calendars-*.json")
	if err != nil {
		return fmt.Errorf("creating temp state file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp state file: %w", err)
	}
	if err := os.Rename(tmpPath, b.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing state file: %w", err)
	}
	return nil
}

// Compile-time check that FileBackend implements Backend
var _ Backend = (*FileBackend)(nil)

// MemoryBackend keeps the state document in memory, for tests. Safe for
// concurrent use.
type MemoryBackend struct {
	mu   sync.Mutex
	data []byte
	set  bool
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

// NewMemoryBackendWith creates an in-memory backend pre-seeded with a
// persisted document, for exercising load/migration paths.
func NewMemoryBackendWith(data []byte) *MemoryBackend {
	return &MemoryBackend{data: append([]byte(nil), data...), set: true}
}

func (b *MemoryBackend) Read() ([]byte, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.set {
		return nil, false, nil
	}
	return append([]byte(nil), b.data...), true, nil
}

func (b *MemoryBackend) Write(data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data = append([]byte(nil), data...)
	b.set = true
	return nil
}

// Compile-time check that MemoryBackend implements Backend
var _ Backend = (*MemoryBackend)(nil)
