//go:build !darwin && !windows && !linux

package clip

import "log/slog"

// New returns an in-memory store on platforms without a supported system
// clipboard (containers, BSDs, wasm).
func New() Backend {
	slog.Debug("no system clipboard on this platform, using in-memory store")
	return NewMemory()
}
