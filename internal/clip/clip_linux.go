//go:build linux

package clip

import (
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"sync"

	textclip "github.com/atotto/clipboard"
	"golang.design/x/clipboard"
)

// linuxBackend talks to X11 through golang.design/x/clipboard. The selection
// owner serves one representation at a time, so writes carry a single item.
type linuxBackend struct {
	mu sync.Mutex
}

// New returns the Linux clipboard backend. When the display is unavailable it
// falls back to the xclip/xsel/wl-clipboard text backend, and to an in-memory
// store when none of those tools are installed either.
func New() Backend {
	if err := clipboard.Init(); err != nil {
		if !textclip.Unsupported {
			slog.Warn("clipboard display unavailable, using command-line tools (text only)", "err", err)
			return Fingerprinted(&textBackend{})
		}
		slog.Warn("clipboard unavailable, using in-memory store", "err", err)
		return NewMemory()
	}
	return Fingerprinted(&linuxBackend{})
}

func (b *linuxBackend) Name() string { return "Linux clipboard (X11)" }

func (b *linuxBackend) Types() ([]Type, error) {
	var out []Type
	if len(clipboard.Read(clipboard.FmtText)) > 0 {
		out = append(out, TypeText)
	}
	if len(clipboard.Read(clipboard.FmtImage)) > 0 {
		out = append(out, TypePNG)
	}
	return out, nil
}

func (b *linuxBackend) Read(t Type) ([]byte, error) {
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

func (b *linuxBackend) Write(items []Item) error {
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

// Clear takes selection ownership with empty text, which Read reports as
// absent.
func (b *linuxBackend) Clear() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	clipboard.Write(clipboard.FmtText, []byte{})
	return nil
}

// textBackend shells out to xclip, xsel or wl-clipboard via
// github.com/atotto/clipboard. It only carries text.
type textBackend struct {
	// readAll defaults to textclip.ReadAll.
	readAll func() (string, error)
}

func (b *textBackend) Name() string { return "Linux clipboard (command-line, text only)" }

// read returns the clipboard text. xclip and wl-paste exit non-zero when
// nothing owns the selection; that is an empty clipboard, not a failure.
func (b *textBackend) read() (string, error) {
	readAll := b.readAll
	if readAll == nil {
		readAll = textclip.ReadAll
	}
	s, err := readAll()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && s == "" {
			return "", nil
		}
		return "", fmt.Errorf("read clipboard: %w", err)
	}
	return s, nil
}

func (b *textBackend) Types() ([]Type, error) {
	s, err := b.read()
	if err != nil {
		return nil, err
	}
	if s == "" {
		return nil, nil
	}
	return []Type{TypeText}, nil
}

func (b *textBackend) Read(t Type) ([]byte, error) {
	switch t {
	case TypeText:
	case TypePNG, TypeTIFF:
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, t)
	}
	s, err := b.read()
	if err != nil {
		return nil, err
	}
	if s == "" {
		return nil, nil
	}
	return []byte(s), nil
}

func (b *textBackend) Write(items []Item) error {
	if len(items) > 1 {
		return fmt.Errorf("%w: %s holds one representation at a time", ErrUnsupported, b.Name())
	}
	for _, it := range items {
		if it.Type != TypeText {
			return fmt.Errorf("%w: %s", ErrUnsupported, it.Type)
		}
		if err := textclip.WriteAll(string(it.Data)); err != nil {
			return fmt.Errorf("write clipboard: %w", err)
		}
	}
	return nil
}

func (b *textBackend) Clear() error {
	if err := textclip.WriteAll(""); err != nil {
		return fmt.Errorf("clear clipboard: %w", err)
	}
	return nil
}

