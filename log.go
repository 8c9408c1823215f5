package pasteboard

import (
	"context"
	"log/slog"

	"go.klb.dev/pasteboard/internal/clip"
	"go.klb.dev/pasteboard/internal/logging"
)

const previewLen = 120

// logItems logs a clipboard write at DEBUG: the representation types, then a
// text preview or the byte size of each item.
func logItems(l *slog.Logger, event, backend string, items []clip.Item) {
	if !l.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	types := make([]string, len(items))
	for i, it := range items {
		types[i] = string(it.Type)
	}
	l.Debug(event, "backend", backend, "types", types)

	for _, it := range items {
		if it.Type == clip.TypeText {
			preview := logging.Preview(string(it.Data), previewLen)
			l.Debug("clipboard item", "type", it.Type, "preview", preview)
		} else {
			l.Debug("clipboard item", "type", it.Type, "size_bytes", len(it.Data))
		}
	}
}
