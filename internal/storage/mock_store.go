package storage

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
)

// MockStore is an in-memory implementation of PageStore for testing.
type MockStore struct {
	mu     sync.RWMutex
	pages  map[string]string
	locks  map[string]bool
	calls  MockCalls
	failOn map[string]error
}

// MockCalls tracks method invocations for test verification.
type MockCalls struct {
	Read  int
	Write int
	List  int
	Lock  int
}

// NewMockStore creates an in-memory store holding pages.
func NewMockStore(pages map[string]string) *MockStore {
	m := &MockStore{
		pages:  make(map[string]string, len(pages)),
		locks:  make(map[string]bool),
		failOn: make(map[string]error),
	}
	maps.Copy(m.pages, pages)
	return m
}

// FailWith makes the named method ("Read", "Write", "List", "Lock") return err.
func (m *MockStore) FailWith(method string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failOn[method] = err
}

// Read returns the named page.
func (m *MockStore) Read(ctx context.Context, name string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls.Read++

	if err := m.precheck(ctx, "Read", name); err != nil {
		return "", err
	}
	content, ok := m.pages[name]
	if !ok {
		return "", notFound(name)
	}
	return content, nil
}

// Write stores the named page.
func (m *MockStore) Write(ctx context.Context, name, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls.Write++

	if err := m.precheck(ctx, "Write", name); err != nil {
		return err
	}
	m.pages[name] = content
	return nil
}

// List returns the stored page names in lexical order.
func (m *MockStore) List(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls.List++

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := m.failOn["List"]; err != nil {
		return nil, err
	}
	return slices.Sorted(maps.Keys(m.pages)), nil
}

// Lock reserves the named page. It never waits.
func (m *MockStore) Lock(ctx context.Context, name string) (UnlockFunc, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls.Lock++

	if err := m.precheck(ctx, "Lock", name); err != nil {
		return nil, err
	}
	if m.locks[name] {
		return nil, locked(name)
	}
	m.locks[name] = true

	var once sync.Once
	return func() error {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			delete(m.locks, name)
		})
		return nil
	}, nil
}

func (m *MockStore) precheck(ctx context.Context, method, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := m.failOn[method]; err != nil {
		return err
	}
	return ValidateName(name)
}

// GetCalls returns the number of times each method was called.
func (m *MockStore) GetCalls() MockCalls {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls
}

// Page returns a stored page without counting a call.
func (m *MockStore) Page(name string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	content, ok := m.pages[name]
	return content, ok
}

// String returns a string representation for debugging.
func (m *MockStore) String() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return fmt.Sprintf("MockStore{pages: %d, locked: %d, calls: %+v}", len(m.pages), len(m.locks), m.calls)
}
