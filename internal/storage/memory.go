package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/nikolayk812/carrito/internal/port"
)

type memoryStorage struct {
	mu sync.Mutex
	m  map[string]string
}

// NewMemory is a non-durable backend for tests.
func NewMemory() port.CartStorage {
	return &memoryStorage{m: map[string]string{}}
}

func (s *memoryStorage) Get(_ context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, fmt.Errorf("key is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.m[key]
	return value, ok, nil
}

func (s *memoryStorage) Set(_ context.Context, key string, value string) error {
	if key == "" {
		return fmt.Errorf("key is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.m[key] = value
	return nil
}

func (s *memoryStorage) Delete(_ context.Context, key string) error {
	if key == "" {
		return fmt.Errorf("key is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.m, key)
	return nil
}
