package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/matzehuels/ghrepos/pkg/widget"
)

// FileStore is a file-based settings store for CLI applications.
// Each instance is stored as a JSON file named after its ID.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// DefaultDir returns ~/.config/ghrepos/widgets, honouring XDG_CONFIG_HOME.
func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("get config dir: %w", err)
	}
	return filepath.Join(base, "ghrepos", "widgets"), nil
}

// NewFileStore creates a new file-based settings store.
// If baseDir is empty, defaults to DefaultDir().
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		baseDir = dir
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("create settings dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) instancePath(id string) string {
	return filepath.Join(s.baseDir, id+".json")
}

func (s *FileStore) Get(ctx context.Context, id string) (*widget.Config, error) {
	if err := ValidateID(id); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	inst, err := s.read(s.instancePath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, err
	}
	return &inst.Config, nil
}

func (s *FileStore) Set(ctx context.Context, id string, cfg widget.Config) error {
	if err := ValidateID(id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	inst := Instance{ID: id, Config: cfg, UpdatedAt: time.Now().UTC()}
	data, err := json.MarshalIndent(inst, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal widget: %w", err)
	}
	if err := os.WriteFile(s.instancePath(id), data, 0600); err != nil {
		return fmt.Errorf("write widget file: %w", err)
	}
	return nil
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	if err := ValidateID(id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.instancePath(id)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove widget file: %w", err)
	}
	return nil
}

// List reads every instance file in the store directory. Files that are
// not valid instances are skipped.
func (s *FileStore) List(ctx context.Context) ([]Instance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("read settings dir: %w", err)
	}

	var list []Instance
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		id := strings.TrimSuffix(entry.Name(), ".json")
		if ValidateID(id) != nil {
			continue
		}
		inst, err := s.read(filepath.Join(s.baseDir, entry.Name()))
		if err != nil {
			continue
		}
		inst.ID = id
		list = append(list, *inst)
	}
	sortInstances(list)
	return list, nil
}

func (s *FileStore) read(path string) (*Instance, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, err
		}
		return nil, fmt.Errorf("read widget file: %w", err)
	}
	var inst Instance
	if err := json.Unmarshal(data, &inst); err != nil {
		return nil, fmt.Errorf("parse widget: %w", err)
	}
	return &inst, nil
}

func (s *FileStore) Close() error { return nil }

// Path returns the base directory for instance files.
func (s *FileStore) Path() string {
	return s.baseDir
}

var _ Store = (*FileStore)(nil)
