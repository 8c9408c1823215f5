package pasteboard

import (
	"encoding/json"
	"fmt"

	"go.klb.dev/pasteboard/internal/clip"
)

// Item is one clipboard representation in a Snapshot. Data is base64 in JSON.
type Item struct {
	Type string `json:"type"`
	Data []byte `json:"data"`
}

// Snapshot is the full clipboard contents at one point in time.
type Snapshot struct {
	Items []Item `json:"items"`
}

// Text returns the text representation of s, or "".
func (s Snapshot) Text() string {
	for _, it := range s.Items {
		if it.Type == string(clip.TypeText) {
			return string(it.Data)
		}
	}
	return ""
}

// MarshalIndent encodes s as indented JSON.
func (s Snapshot) MarshalIndent() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// DecodeSnapshot parses JSON produced by Snapshot.MarshalIndent.
func DecodeSnapshot(b []byte) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(b, &s); err != nil {
		return Snapshot{}, fmt.Errorf("snapshot decode: %w", err)
	}
	return s, nil
}

// Snapshot captures every representation on the clipboard.
func (p *Pasteboard) Snapshot() (Snapshot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	types, err := p.backend.Types()
	if err != nil {
		return Snapshot{}, fmt.Errorf("snapshot: %w", err)
	}
	var s Snapshot
	for _, t := range types {
		data, err := p.backend.Read(t)
		if err != nil {
			return Snapshot{}, fmt.Errorf("snapshot %s: %w", t, err)
		}
		if data == nil {
			continue
		}
		s.Items = append(s.Items, Item{Type: string(t), Data: data})
	}
	return s, nil
}

// Restore writes s back to the clipboard as one change. An empty snapshot
// clears the clipboard.
func (p *Pasteboard) Restore(s Snapshot) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(s.Items) == 0 {
		if err := p.backend.Clear(); err != nil {
			return fmt.Errorf("restore: %w", err)
		}
		p.observe()
		return nil
	}
	items := make([]clip.Item, 0, len(s.Items))
	for _, it := range s.Items {
		t := clip.Type(it.Type)
		if !t.Known() {
			return &TypeError{Op: "restore", Format: it.Type, Err: ErrUnsupported}
		}
		items = append(items, clip.Item{Type: t, Data: it.Data})
	}
	return p.write("restore", items)
}
