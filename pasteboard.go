// Package pasteboard reads and writes the system clipboard: plain text, PNG
// and TIFF images, and detection of changes made by other applications.
//
// A Pasteboard is a handle, not an owner. Any number of handles may exist and
// all of them share the one system clipboard; each keeps its own record of
// the last change it has seen so that HasChanged reports only writes made
// elsewhere.
package pasteboard

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/spf13/afero"

	"go.klb.dev/pasteboard/internal/clip"
)

// Pasteboard is a handle on the system clipboard.
type Pasteboard struct {
	backend clip.Backend
	fs      afero.Fs
	log     *slog.Logger
	convert bool

	mu         sync.Mutex
	lastChange int64
}

// New returns a handle on the platform clipboard, or on the backend given
// with WithBackend. The handle's change baseline is the clipboard state at
// construction.
func New(opts ...Option) *Pasteboard {
	p := &Pasteboard{}
	for _, o := range opts {
		o(p)
	}
	if p.backend == nil {
		p.backend = clip.Default()
	}
	if p.fs == nil {
		p.fs = afero.NewOsFs()
	}
	if p.log == nil {
		p.log = slog.Default()
	}
	p.observe()
	return p
}

// Backend returns the name of the clipboard backend in use.
func (p *Pasteboard) Backend() string { return p.backend.Name() }

// Copy replaces the clipboard contents with text. Any image is dropped.
func (p *Pasteboard) Copy(text string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.write("copy", []clip.Item{textItem(text)})
}

// SetText is Copy.
func (p *Pasteboard) SetText(text string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.write("set text", []clip.Item{textItem(text)})
}

// Paste returns the clipboard text, or "" when the clipboard holds no text.
func (p *Pasteboard) Paste() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.text("paste")
}

// GetText is Paste.
func (p *Pasteboard) GetText() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.text("get text")
}

// Append adds text to the end of the clipboard text, or copies it when the
// clipboard holds none. The read and write happen under the handle's lock;
// another process may still write in between.
func (p *Pasteboard) Append(text string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	cur, err := p.text("append")
	if err != nil {
		return err
	}
	return p.write("append", []clip.Item{textItem(cur + text)})
}

// Clear empties the clipboard.
func (p *Pasteboard) Clear() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.backend.Clear(); err != nil {
		return fmt.Errorf("clear: %w", err)
	}
	p.observe()
	p.log.Debug("clipboard cleared", "backend", p.backend.Name())
	return nil
}

// HasText reports whether the clipboard holds text.
func (p *Pasteboard) HasText() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	types, err := p.backend.Types()
	if err != nil {
		return false, fmt.Errorf("has text: %w", err)
	}
	return clip.Has(types, clip.TypeText), nil
}

// HasImage reports whether the clipboard holds an image in any format.
func (p *Pasteboard) HasImage() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	types, err := p.backend.Types()
	if err != nil {
		return false, fmt.Errorf("has image: %w", err)
	}
	for _, f := range Formats {
		if clip.Has(types, f.clipType()) {
			return true, nil
		}
	}
	return false, nil
}

// HasImageFormat reports whether the clipboard holds an image in format f.
// With conversion enabled an image in the other format also counts.
func (p *Pasteboard) HasImageFormat(f Format) (bool, error) {
	if err := f.check("has image"); err != nil {
		return false, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	types, err := p.backend.Types()
	if err != nil {
		return false, fmt.Errorf("has image: %w", err)
	}
	if clip.Has(types, f.clipType()) {
		return true, nil
	}
	return p.convert && clip.Has(types, f.other().clipType()), nil
}

// HasChanged reports whether the clipboard changed since this handle last
// looked. Writes made through this handle do not count, provided the backend
// could report its change count right after the write; when it could not even
// on a retry, that write is reported once as a change.
func (p *Pasteboard) HasChanged() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	cc, err := p.backend.ChangeCount()
	if err != nil {
		return false, fmt.Errorf("change count: %w", err)
	}
	if cc == p.lastChange {
		return false, nil
	}
	p.lastChange = cc
	return true, nil
}

// write installs items as one clipboard change and moves the handle's
// baseline past it. Caller holds p.mu.
func (p *Pasteboard) write(op string, items []clip.Item) error {
	if err := p.backend.Write(items); err != nil {
		t := clip.TypeText
		if len(items) > 0 {
			t = items[len(items)-1].Type
		}
		return backendErr(op, t, err)
	}
	p.observe()
	logItems(p.log, "clipboard written", p.backend.Name(), items)
	return nil
}

// text reads the clipboard text. Caller holds p.mu.
func (p *Pasteboard) text(op string) (string, error) {
	b, err := p.backend.Read(clip.TypeText)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(b), nil
}

// observe records the current change count as seen, trying once more if the
// first read fails. Caller holds p.mu, or the handle is not yet shared.
func (p *Pasteboard) observe() {
	cc, err := p.backend.ChangeCount()
	if err != nil {
		cc, err = p.backend.ChangeCount()
	}
	if err != nil {
		p.log.Warn("clipboard change count unavailable", "backend", p.backend.Name(), "err", err)
		return
	}
	p.lastChange = cc
}

func textItem(s string) clip.Item {
	return clip.Item{Type: clip.TypeText, Data: []byte(s)}
}
