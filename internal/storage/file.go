package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/nikolayk812/carrito/internal/port"
)

type fileStorage struct {
	mu   sync.Mutex
	path string
}

// NewFile keeps all keys in a single JSON object on disk, written
// atomically via a temp file and rename. It is the default backend:
// durable across restarts with nothing else to run.
func NewFile(path string) (port.CartStorage, error) {
	if path == "" {
		return nil, fmt.Errorf("path is empty")
	}
	return &fileStorage{path: path}, nil
}

func (s *fileStorage) Get(_ context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, fmt.Errorf("key is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		return "", false, fmt.Errorf("read: %w", err)
	}

	value, ok := entries[key]
	return value, ok, nil
}

func (s *fileStorage) Set(_ context.Context, key string, value string) error {
	if key == "" {
		return fmt.Errorf("key is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		return fmt.Errorf("read: %w", err)
	}

	entries[key] = value

	if err := s.write(entries); err != nil {
		return fmt.Errorf("write: %w", err)
	}

	return nil
}

func (s *fileStorage) Delete(_ context.Context, key string) error {
	if key == "" {
		return fmt.Errorf("key is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		return fmt.Errorf("read: %w", err)
	}

	if _, ok := entries[key]; !ok {
		return nil
	}
	delete(entries, key)

	if err := s.write(entries); err != nil {
		return fmt.Errorf("write: %w", err)
	}

	return nil
}

func (s *fileStorage) read() (map[string]string, error) {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile: %w", err)
	}

	entries := map[string]string{}
	if err := json.Unmarshal(b, &entries); err != nil {
		return nil, fmt.Errorf("json.Unmarshal: %w", err)
	}

	return entries, nil
}

func (s *fileStorage) write(entries map[string]string) error {
	b, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp")
	if err != nil {
		return fmt.Errorf("os.CreateTemp: %w", err)
	}

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("tmp.Write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("tmp.Close: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("os.Rename: %w", err)
	}

	return nil
}
