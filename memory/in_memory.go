package memory

import (
	"fmt"
	"strings"
	"sync"

	"github.com/lumostack/agentkit/core"
)

// storedMemory is the internal representation persisted by InMemoryStore.
type storedMemory struct {
	ID       string
	Content  string
	Metadata map[string]any
}

// InMemoryStore is a process-local MemoryStore. It offers:
//  1. Session scoped key/value memory (Get / Put)
//  2. Append-only stored memories with case-insensitive substring Search
//
// Search is a linear scan in insertion order assigning a constant score of
// 1.0 to every hit. Suitable for tests and demos; use VectorStore for
// semantic retrieval.
type InMemoryStore struct {
	mu      sync.RWMutex
	memory  map[string]map[string]any     // sessionID -> key -> value
	storage map[string][]storedMemory     // sessionID -> ordered memories
	index   map[string]map[string]int     // sessionID -> memoryID -> slice index
}

// NewInMemoryStore creates a new in-memory memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		memory:  make(map[string]map[string]any),
		storage: make(map[string][]storedMemory),
		index:   make(map[string]map[string]int),
	}
}

// Get returns a shallow copy of the key/value memory map for the session.
func (m *InMemoryStore) Get(sessionID string) (map[string]any, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sessionMemory, exists := m.memory[sessionID]
	if !exists {
		return make(map[string]any), nil
	}
	result := make(map[string]any, len(sessionMemory))
	for k, v := range sessionMemory {
		result[k] = v
	}
	return result, nil
}

// Put merges the provided delta map into the session's key/value memory.
func (m *InMemoryStore) Put(sessionID string, delta map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.memory[sessionID]; !exists {
		m.memory[sessionID] = make(map[string]any)
	}
	for k, v := range delta {
		m.memory[sessionID][k] = v
	}
	return nil
}

// Search performs a case-insensitive substring match over stored memories.
// Results come back in insertion order up to the provided limit, each with a
// constant score of 1.0.
func (m *InMemoryStore) Search(sessionID string, query string, limit int) ([]core.SearchResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	needle := strings.ToLower(query)
	results := make([]core.SearchResult, 0, limit)
	for _, stored := range m.storage[sessionID] {
		if len(results) >= limit {
			break
		}
		if query == "" || strings.Contains(strings.ToLower(stored.Content), needle) {
			md := make(map[string]any, len(stored.Metadata))
			for k, v := range stored.Metadata {
				md[k] = v
			}
			results = append(results, core.SearchResult{ID: stored.ID, Content: stored.Content, Score: 1.0, Metadata: md})
		}
	}
	return results, nil
}

// Store appends a new stored memory generating a simple incremental id.
func (m *InMemoryStore) Store(sessionID string, content string, metadata map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.index[sessionID]; !exists {
		m.index[sessionID] = make(map[string]int)
	}
	memoryID := fmt.Sprintf("mem_%d", len(m.storage[sessionID]))
	m.index[sessionID][memoryID] = len(m.storage[sessionID])
	m.storage[sessionID] = append(m.storage[sessionID], storedMemory{ID: memoryID, Content: content, Metadata: metadata})
	return nil
}

// Delete removes a stored memory entry by id.
func (m *InMemoryStore) Delete(sessionID string, memoryID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx, exists := m.index[sessionID][memoryID]
	if !exists {
		return fmt.Errorf("memory not found")
	}
	delete(m.index[sessionID], memoryID)
	m.storage[sessionID] = append(m.storage[sessionID][:idx], m.storage[sessionID][idx+1:]...)
	for id, i := range m.index[sessionID] {
		if i > idx {
			m.index[sessionID][id] = i - 1
		}
	}
	return nil
}
