package core

import (
	"context"
)

type testLogger struct{}

func (l testLogger) Debug(string, ...interface{}) {}
func (l testLogger) Info(string, ...interface{})  {}
func (l testLogger) Warn(string, ...interface{})  {}
func (l testLogger) Error(string, ...interface{}) {}

type rcMockSessionStore struct {
	applied map[string]map[string]interface{}
}

func (s *rcMockSessionStore) Get(id string) (*Session, error)       { return NewSession(id), nil }
func (s *rcMockSessionStore) Create(id string) (*Session, error)    { return NewSession(id), nil }
func (s *rcMockSessionStore) AppendEvent(id string, ev Event) error { return nil }
func (s *rcMockSessionStore) ApplyDelta(id string, delta map[string]interface{}) error {
	if s.applied == nil {
		s.applied = map[string]map[string]interface{}{}
	}
	cp := map[string]interface{}{}
	for k, v := range delta {
		cp[k] = v
	}
	s.applied[id] = cp
	return nil
}

type rcMockMemoryStore struct{ stored []string }

func (m *rcMockMemoryStore) Get(sessionID string) (map[string]any, error) {
	return map[string]any{}, nil
}
func (m *rcMockMemoryStore) Put(sessionID string, delta map[string]any) error { return nil }
func (m *rcMockMemoryStore) Search(sid, q string, limit int) ([]SearchResult, error) {
	return []SearchResult{{ID: "m1", Content: "remembered: " + q, Score: 1.0}}, nil
}
func (m *rcMockMemoryStore) Store(sid, content string, metadata map[string]interface{}) error {
	m.stored = append(m.stored, content)
	return nil
}
func (m *rcMockMemoryStore) Delete(sid, memoryID string) error { return nil }

func newRunContextForTest() (*RunContext, chan Event) {
	emit := make(chan Event, 5)
	resume := make(chan struct{}, 5)
	sess := NewSession("sess-x")
	sStore := &rcMockSessionStore{}
	mStore := &rcMockMemoryStore{}
	return NewRunContext(context.Background(), "sess-x", "run-x", AgentInfo{Name: "Agent1", Type: "test"}, Content{}, 0, emit, resume, sess, sStore, mStore, testLogger{}), emit
}
