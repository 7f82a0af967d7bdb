// Package memstore реализует Record Store в памяти процесса.
// Используется в тестах и при локальной разработке без внешних зависимостей.
package memstore

import (
	"context"
	"sync"
)

// Store хранит значения в map под мьютексом.
type Store struct {
	mu   sync.RWMutex
	data map[string]string
}

// New создает пустое хранилище.
func New() *Store {
	return &Store{data: make(map[string]string)}
}

// Get возвращает значение по ключу и признак его наличия.
func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.data[key]
	return val, ok, nil
}

// Set перезаписывает значение по ключу.
func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}
