package monitor

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResizeFlag_SetAndConsume(t *testing.T) {
	f := NewResizeFlag()
	assert.False(t, f.Pending())
	assert.False(t, f.Consume())

	f.Set(132)
	assert.True(t, f.Pending())
	assert.Equal(t, 132, f.Width())

	assert.True(t, f.Consume())
	assert.False(t, f.Pending())
	assert.False(t, f.Consume(), "consume clears the flag")
	assert.Equal(t, 132, f.Width(), "width survives consume")
}

func TestResizeFlag_RefreshKeepsWidth(t *testing.T) {
	f := NewResizeFlag()
	f.Set(90)
	f.Consume()

	f.Refresh()
	assert.True(t, f.Pending())
	assert.Equal(t, 90, f.Width())
}

func TestResizeFlag_WakeDoesNotBlock(t *testing.T) {
	f := NewResizeFlag()
	for i := 0; i < 10; i++ {
		f.Set(80 + i)
	}

	select {
	case <-f.Wake():
	default:
		t.Fatal("expected a wake signal")
	}
	assert.Equal(t, 89, f.Width())
}

func TestResizeFlag_ConcurrentSetters(t *testing.T) {
	f := NewResizeFlag()
	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			f.Set(w)
		}(i)
	}
	wg.Wait()

	assert.True(t, f.Consume())
	assert.GreaterOrEqual(t, f.Width(), 1)
	assert.LessOrEqual(t, f.Width(), 50)
}

func TestWatch_StopIsIdempotent(t *testing.T) {
	stop := Watch(context.Background(), NewResizeFlag(), FixedSize{Cols: 80, Rows: 24})

	done := make(chan struct{})
	go func() {
		stop()
		stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("stop did not return")
	}
}

func TestWatch_StopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	stop := Watch(ctx, NewResizeFlag(), FixedSize{Cols: 80, Rows: 24})
	cancel()

	done := make(chan struct{})
	go func() {
		stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("stop did not return after context cancel")
	}
}
