package save

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
)

var (
	ErrNoSlot      = errors.New("save: no such slot")
	ErrInvalidSlot = errors.New("save: invalid slot name")
)

var slotPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// Slot describes a stored save.
type Slot struct {
	Name      string
	UpdatedAt time.Time
}

// Store keeps saves in named slots.
type Store interface {
	Put(ctx context.Context, slot string, data []byte) error
	Get(ctx context.Context, slot string) ([]byte, error)
	List(ctx context.Context) ([]Slot, error)
	Close() error
}

// Backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Open returns the store for backend rooted at dir.
func Open(backend, dir string) (Store, error) {
	switch backend {
	case BackendFile, "":
		return NewFileStore(dir)
	case BackendSQLite:
		return OpenSQLite(filepath.Join(dir, "saves.db"))
	}
	return nil, fmt.Errorf("save: unknown backend %q", backend)
}

// ValidSlot reports whether name can be used as a slot name.
func ValidSlot(name string) error {
	if !slotPattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidSlot, name)
	}
	return nil
}

// FileStore keeps one <slot>.json file per slot in a directory.
type FileStore struct {
	dir string
}

// NewFileStore creates dir if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("save: directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("save: create dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (f *FileStore) path(slot string) string {
	return filepath.Join(f.dir, slot+".json")
}

// Put writes the slot through a temp file so a crash never leaves half a save.
func (f *FileStore) Put(ctx context.Context, slot string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := ValidSlot(slot); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(f.dir, slot+".*.tmp")
	if err != nil {
		return fmt.Errorf("save: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("save: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("save: write: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path(slot)); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("save: %w", err)
	}
	return nil
}

// Get reads a slot.
func (f *FileStore) Get(ctx context.Context, slot string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := ValidSlot(slot); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.path(slot))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNoSlot, slot)
	}
	if err != nil {
		return nil, fmt.Errorf("save: read: %w", err)
	}
	return data, nil
}

// List returns the slots sorted by name.
func (f *FileStore) List(ctx context.Context) ([]Slot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return nil, fmt.Errorf("save: list: %w", err)
	}
	var slots []Slot
	for _, e := range entries {
		name, ok := strings.CutSuffix(e.Name(), ".json")
		if !ok || e.IsDir() || ValidSlot(name) != nil {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		slots = append(slots, Slot{Name: name, UpdatedAt: info.ModTime()})
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].Name < slots[j].Name })
	return slots, nil
}

// Close is a no-op.
func (f *FileStore) Close() error { return nil }
