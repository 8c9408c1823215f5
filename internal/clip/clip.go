// Package clip provides a unified interface to the system clipboard across
// platforms. Build constraints select the appropriate implementation:
//
//	clip_darwin.go   macOS NSPasteboard via cgo, native changeCount
//	clip_windows.go  Windows via golang.design/x/clipboard + GetClipboardSequenceNumber
//	clip_linux.go    Linux via golang.design/x/clipboard, atotto/clipboard fallback
//	clip_other.go    in-memory store
package clip

import (
	"errors"
	"sync"
)

// Type identifies a clipboard representation by its uniform type identifier.
type Type string

const (
	TypeText Type = "public.utf8-plain-text"
	TypePNG  Type = "public.png"
	TypeTIFF Type = "public.tiff"
)

// Known reports whether t is one of the representations a backend may hold.
func (t Type) Known() bool {
	switch t {
	case TypeText, TypePNG, TypeTIFF:
		return true
	}
	return false
}

// ErrUnsupported is returned when a backend cannot hold a representation.
var ErrUnsupported = errors.New("representation not supported by clipboard backend")

// Item is a single clipboard representation.
type Item struct {
	Type Type
	Data []byte
}

// Store holds clipboard contents. Platforms without a native change counter
// implement only this and are wrapped with Fingerprinted.
type Store interface {
	// Name returns a human-readable name for the backend.
	Name() string

	// Types lists the representations currently on the clipboard.
	Types() ([]Type, error)

	// Read returns the bytes of representation t.
	// Returns nil, nil if the clipboard does not hold t.
	Read(t Type) ([]byte, error)

	// Write replaces the clipboard contents with items as a single change.
	Write(items []Item) error

	// Clear empties the clipboard.
	Clear() error
}

// Backend is the interface that all platform clipboard implementations satisfy.
type Backend interface {
	Store

	// ChangeCount returns a counter that moves whenever the clipboard
	// contents change, whoever changed them.
	ChangeCount() (int64, error)
}

var (
	defaultOnce    sync.Once
	defaultBackend Backend
)

// Default returns the process-wide platform backend, initialising it on
// first use. The platform clipboard is global, so every caller shares it.
func Default() Backend {
	defaultOnce.Do(func() {
		defaultBackend = New()
	})
	return defaultBackend
}

// Has reports whether types contains t.
func Has(types []Type, t Type) bool {
	for _, x := range types {
		if x == t {
			return true
		}
	}
	return false
}
