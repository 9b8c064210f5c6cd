package ballot

import (
	"context"
	"sync"
)

// Keys persisted for a visitor.
const (
	KeyVoted  = "voted"
	KeySchool = "selectedSchool"
	KeyReason = "selectedReason"
)

const votedTrue = "true"

// Storage is a key/value space scoped to one visitor.
type Storage interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Backend hands out the storage of a visitor.
type Backend interface {
	Scope(visitorID string) Storage
}

type MemoryBackend struct {
	mu     sync.Mutex
	scopes map[string]map[string]string
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{scopes: make(map[string]map[string]string)}
}

func (b *MemoryBackend) Scope(visitorID string) Storage {
	return &memoryScope{backend: b, visitor: visitorID}
}

type memoryScope struct {
	backend *MemoryBackend
	visitor string
}

func (s *memoryScope) Get(_ context.Context, key string) (string, bool, error) {
	s.backend.mu.Lock()
	defer s.backend.mu.Unlock()
	v, ok := s.backend.scopes[s.visitor][key]
	return v, ok, nil
}

func (s *memoryScope) Set(_ context.Context, key, value string) error {
	s.backend.mu.Lock()
	defer s.backend.mu.Unlock()
	scope, ok := s.backend.scopes[s.visitor]
	if !ok {
		scope = make(map[string]string)
		s.backend.scopes[s.visitor] = scope
	}
	scope[key] = value
	return nil
}

func (s *memoryScope) Remove(_ context.Context, key string) error {
	s.backend.mu.Lock()
	defer s.backend.mu.Unlock()
	delete(s.backend.scopes[s.visitor], key)
	if len(s.backend.scopes[s.visitor]) == 0 {
		delete(s.backend.scopes, s.visitor)
	}
	return nil
}
