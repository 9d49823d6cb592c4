//go:build !windows

package monitor

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// watchResize listens for SIGWINCH.
func watchResize(ctx context.Context, flag *ResizeFlag, size SizeSource) func() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGWINCH)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				return
			case <-sigs:
				cols, _ := size.Size()
				flag.Set(cols)
			}
		}
	}()

	return func() {
		signal.Stop(sigs)
		<-done
	}
}
