package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/pesapots/backend/internal/models"
)

// Memory is a Store that keeps documents in memory.
type Memory struct {
	mu        sync.RWMutex
	documents map[string][]byte
}

// NewMemory returns an empty memory store.
func NewMemory() *Memory {
	return &Memory{documents: map[string][]byte{}}
}

func (m *Memory) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	document, ok := m.documents[key]
	if !ok {
		return nil, fmt.Errorf("%w cache entry matching your query", models.ErrResourceNotFound)
	}

	return append([]byte{}, document...), nil
}

func (m *Memory) Save(_ context.Context, key string, document []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.documents[key] = append([]byte{}, document...)
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.documents, key)
	return nil
}

func (m *Memory) Close() error {
	return nil
}
