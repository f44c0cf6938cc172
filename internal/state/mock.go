package state

import (
	"sync"
	"time"
)

// Mock is a test double for Manager.
type Mock struct {
	mu      sync.Mutex
	last    *Selection
	history []HistoryEntry
	saved   []string
	closed  bool
}

// NewMock creates a new mock state manager for testing.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) SaveSelection(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved = append(m.saved, path)
	m.last = &Selection{Path: path, SavedAt: time.Now()}
}

func (m *Mock) LastSelection() (*Selection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last, nil
}

func (m *Mock) History(limit int) ([]HistoryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if limit < len(m.history) {
		return m.history[:limit], nil
	}
	return m.history, nil
}

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Test helpers

func (m *Mock) SetLastSelection(sel *Selection) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.last = sel
}

func (m *Mock) SetHistory(entries []HistoryEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history = entries
}

func (m *Mock) Saved() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.saved...)
}

func (m *Mock) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
