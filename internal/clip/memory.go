package clip

import (
	"fmt"
	"sync"
)

// Memory is a process-local clipboard. Every Write and Clear bumps its change
// counter the way NSPasteboard does, so several handles sharing one Memory
// behave like handles sharing the system clipboard.
type Memory struct {
	mu    sync.RWMutex
	items []Item
	count int64
}

// NewMemory returns an empty in-memory clipboard.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Name() string { return "memory" }

func (m *Memory) Types() ([]Type, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Type, 0, len(m.items))
	for _, it := range m.items {
		out = append(out, it.Type)
	}
	return out, nil
}

func (m *Memory) Read(t Type) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, it := range m.items {
		if it.Type == t {
			return append([]byte(nil), it.Data...), nil
		}
	}
	return nil, nil
}

func (m *Memory) Write(items []Item) error {
	stored := make([]Item, 0, len(items))
	for _, it := range items {
		if !it.Type.Known() {
			return fmt.Errorf("%w: %s", ErrUnsupported, it.Type)
		}
		stored = append(stored, Item{Type: it.Type, Data: append([]byte(nil), it.Data...)})
	}

	m.mu.Lock()
	m.items = stored
	m.count++
	m.mu.Unlock()
	return nil
}

func (m *Memory) Clear() error {
	m.mu.Lock()
	m.items = nil
	m.count++
	m.mu.Unlock()
	return nil
}

func (m *Memory) ChangeCount() (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.count, nil
}
