package counter

import (
	"context"
	"sync"
)

// Memory keeps buckets in process memory. Counts are lost on restart.
type Memory struct {
	mu      sync.Mutex
	buckets map[string]map[string]int64
}

func NewMemory() *Memory {
	return &Memory{buckets: make(map[string]map[string]int64)}
}

func (m *Memory) Increment(_ context.Context, bucket, school string, delta int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.add(bucket, school, delta)
	return nil
}

func (m *Memory) IncrementPair(_ context.Context, first, second, school string, delta int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.add(first, school, delta)
	m.add(second, school, delta)
	return nil
}

func (m *Memory) Read(_ context.Context, bucket string) (map[string]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := make(map[string]int64, len(m.buckets[bucket]))
	for school, n := range m.buckets[bucket] {
		counts[school] = n
	}
	return counts, nil
}

func (m *Memory) add(bucket, school string, delta int64) {
	b, ok := m.buckets[bucket]
	if !ok {
		b = make(map[string]int64)
		m.buckets[bucket] = b
	}
	b[school] += delta
}
