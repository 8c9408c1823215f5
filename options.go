package pasteboard

import (
	"log/slog"

	"github.com/spf13/afero"

	"go.klb.dev/pasteboard/internal/clip"
)

// Backend is the clipboard store a Pasteboard reads and writes.
type Backend = clip.Backend

// NewMemoryBackend returns a process-local clipboard. Pasteboards sharing it
// observe each other's writes the way they would with the system clipboard.
func NewMemoryBackend() Backend {
	return clip.NewMemory()
}

// Option configures a Pasteboard.
type Option func(*Pasteboard)

// WithBackend replaces the platform clipboard.
func WithBackend(b Backend) Option {
	return func(p *Pasteboard) { p.backend = b }
}

// WithFS sets the filesystem image files are read from and written to.
func WithFS(fs afero.Fs) Option {
	return func(p *Pasteboard) { p.fs = fs }
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(p *Pasteboard) { p.log = l }
}

// WithConversion enables PNG↔TIFF conversion when the clipboard only holds
// the other image representation. Off by default.
func WithConversion(on bool) Option {
	return func(p *Pasteboard) { p.convert = on }
}
