package pasteboard

import (
	"context"
	"time"
)

// DefaultWatchInterval is the polling period used when Watch is given a
// non-positive interval.
const DefaultWatchInterval = 250 * time.Millisecond

// Watch polls HasChanged every interval and signals on the returned channel
// when another application changes the clipboard. Signals coalesce: a slow
// receiver sees one pending signal, not one per change. The channel is
// closed when ctx is done.
func (p *Pasteboard) Watch(ctx context.Context, interval time.Duration) <-chan struct{} {
	if interval <= 0 {
		interval = DefaultWatchInterval
	}
	ch := make(chan struct{}, 1)
	go func() {
		defer close(ch)
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				changed, err := p.HasChanged()
				if err != nil {
					p.log.Warn("clipboard watch failed", "err", err)
					continue
				}
				if !changed {
					continue
				}
				select {
				case ch <- struct{}{}:
				default:
				}
			}
		}
	}()
	return ch
}
