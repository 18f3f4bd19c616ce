package testinfra

import (
	"context"
	"sync"

	"github.com/shanedonnelly/devops/internal/application/dto"
	"github.com/shanedonnelly/devops/internal/application/interfaces"
)

// MemoryConfigStore is an in-memory ConfigStore for tests that don't want an
// object-storage container.
type MemoryConfigStore struct {
	mu    sync.Mutex
	blobs map[string]dto.SiteConfig
}

var _ interfaces.ConfigStore = (*MemoryConfigStore)(nil)

func NewMemoryConfigStore() *MemoryConfigStore {
	return &MemoryConfigStore{blobs: make(map[string]dto.SiteConfig)}
}

func (m *MemoryConfigStore) PutConfig(_ context.Context, slug string, config dto.SiteConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[slug] = config
	return nil
}

func (m *MemoryConfigStore) GetConfig(_ context.Context, slug string) (*dto.SiteConfig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	config, ok := m.blobs[slug]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	return &config, nil
}

func (m *MemoryConfigStore) DeleteConfig(_ context.Context, slug string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blobs, slug)
	return nil
}
