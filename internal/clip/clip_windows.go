//go:build windows

package clip

import (
	"fmt"
	"log/slog"
	"sync"

	"golang.design/x/clipboard"
	"golang.org/x/sys/windows"
)

var (
	user32                         = windows.NewLazySystemDLL("user32.dll")
	procGetClipboardSequenceNumber = user32.NewProc("GetClipboardSequenceNumber")
	procOpenClipboard              = user32.NewProc("OpenClipboard")
	procEmptyClipboard             = user32.NewProc("EmptyClipboard")
	procCloseClipboard             = user32.NewProc("CloseClipboard")
)

// windowsBackend reads and writes through golang.design/x/clipboard, which
// empties the clipboard on every write, so writes carry a single item.
type windowsBackend struct {
	mu sync.Mutex
}

// New returns the Windows clipboard backend, or the in-memory store if the
// clipboard cannot be initialised (e.g. a service session without a desktop).
func New() Backend {
	if err := clipboard.Init(); err != nil {
		slog.Warn("clipboard init failed, using in-memory store", "err", err)
		return NewMemory()
	}
	return &windowsBackend{}
}

func (b *windowsBackend) Name() string { return "Windows Clipboard" }

func (b *windowsBackend) Types() ([]Type, error) {
	var out []Type
	if len(clipboard.Read(clipboard.FmtText)) > 0 {
		out = append(out, TypeText)
	}
	if len(clipboard.Read(clipboard.FmtImage)) > 0 {
		out = append(out, TypePNG)
	}
	return out, nil
}

func (b *windowsBackend) Read(t Type) ([]byte, error) {
	var data []byte
	switch t {
	case TypeText:
		data = clipboard.Read(clipboard.FmtText)
	case TypePNG:
		data = clipboard.Read(clipboard.FmtImage)
	case TypeTIFF:
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, t)
	}
	if len(data) == 0 {
		return nil, nil
	}
	return data, nil
}

func (b *windowsBackend) Write(items []Item) error {
	if len(items) > 1 {
		return fmt.Errorf("%w: %s holds one representation at a time", ErrUnsupported, b.Name())
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, it := range items {
		switch it.Type {
		case TypeText:
			clipboard.Write(clipboard.FmtText, it.Data)
		case TypePNG:
			clipboard.Write(clipboard.FmtImage, it.Data)
		default:
			return fmt.Errorf("%w: %s", ErrUnsupported, it.Type)
		}
	}
	return nil
}

func (b *windowsBackend) Clear() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if r, _, err := procOpenClipboard.Call(0); r == 0 {
		return fmt.Errorf("OpenClipboard: %w", err)
	}
	defer procCloseClipboard.Call() //nolint:errcheck
	if r, _, err := procEmptyClipboard.Call(); r == 0 {
		return fmt.Errorf("EmptyClipboard: %w", err)
	}
	return nil
}

func (b *windowsBackend) ChangeCount() (int64, error) {
	r, _, _ := procGetClipboardSequenceNumber.Call()
	return int64(uint32(r)), nil
}
