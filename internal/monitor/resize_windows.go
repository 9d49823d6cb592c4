//go:build windows

package monitor

import (
	"context"
	"time"
)

// resizePollInterval is how often the console size is sampled where there is no SIGWINCH.
const resizePollInterval = 250 * time.Millisecond

// watchResize polls the console size and flags changes.
func watchResize(ctx context.Context, flag *ResizeFlag, size SizeSource) func() {
	done := make(chan struct{})
	go func() {
		defer close(done)
		last, _ := size.Size()
		ticker := time.NewTicker(resizePollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				cols, _ := size.Size()
				if cols != last {
					last = cols
					flag.Set(cols)
				}
			}
		}
	}()

	return func() { <-done }
}
