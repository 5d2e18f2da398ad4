package settings

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/matzehuels/ghrepos/pkg/widget"
)

// MemoryStore keeps instances in process memory.
type MemoryStore struct {
	mu        sync.RWMutex
	instances map[string]Instance
	now       func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{instances: make(map[string]Instance), now: time.Now}
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*widget.Config, error) {
	if err := ValidateID(id); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	inst, ok := s.instances[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	cfg := inst.Config
	return &cfg, nil
}

func (s *MemoryStore) Set(ctx context.Context, id string, cfg widget.Config) error {
	if err := ValidateID(id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.instances[id] = Instance{ID: id, Config: cfg, UpdatedAt: s.now().UTC()}
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	if err := ValidateID(id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.instances, id)
	return nil
}

func (s *MemoryStore) List(ctx context.Context) ([]Instance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]Instance, 0, len(s.instances))
	for _, inst := range s.instances {
		list = append(list, inst)
	}
	sortInstances(list)
	return list, nil
}

func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
