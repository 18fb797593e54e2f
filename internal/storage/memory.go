package storage

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
)

// Op is one recorded Memory store call.
type Op struct {
	Kind string // "put" or "delete"
	Key  string
}

// Memory is an in-process Store that records every call in order. It backs
// tests and local experiments.
type Memory struct {
	PublicURL

	mu      sync.Mutex
	objects map[string][]byte
	ops     []Op

	// FailPut and FailDelete, when set, make the matching call fail for the
	// keys they return true for.
	FailPut    func(key string) bool
	FailDelete func(key string) bool
}

var _ Store = (*Memory)(nil)

// NewMemory creates an empty Memory store.
func NewMemory(publicURL string) *Memory {
	return &Memory{
		PublicURL: NewPublicURL(publicURL),
		objects:   make(map[string][]byte),
	}
}

// Put implements Store.
func (m *Memory) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read object %s: %w", key, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.ops = append(m.ops, Op{Kind: "put", Key: key})
	if m.FailPut != nil && m.FailPut(key) {
		return "", fmt.Errorf("failed to put object %s: injected failure", key)
	}
	m.objects[key] = data
	return m.URL(key), nil
}

// Delete implements Store.
func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ops = append(m.ops, Op{Kind: "delete", Key: key})
	if m.FailDelete != nil && m.FailDelete(key) {
		return fmt.Errorf("failed to delete object %s: injected failure", key)
	}
	if _, ok := m.objects[key]; !ok {
		return fmt.Errorf("failed to delete object %s: %w", key, ErrObjectNotFound)
	}
	delete(m.objects, key)
	return nil
}

// Seed stores an object without recording an operation and returns its URL.
func (m *Memory) Seed(key string, data []byte) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = data
	return m.URL(key)
}

// Has reports whether the object behind url is stored.
func (m *Memory) Has(url string) bool {
	key, ok := m.KeyFromURL(url)
	if !ok {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	_, exists := m.objects[key]
	return exists
}

// Keys returns the stored keys in sorted order.
func (m *Memory) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.objects))
	for k := range m.objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Ops returns a copy of the recorded calls.
func (m *Memory) Ops() []Op {
	m.mu.Lock()
	defer m.mu.Unlock()
	ops := make([]Op, len(m.ops))
	copy(ops, m.ops)
	return ops
}
