package monitor

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTerminalSize(t *testing.T) {
	tests := []struct {
		name     string
		getSize  func(int) (int, int, error)
		wantCols int
		wantRows int
	}{
		{
			name:     "reported size",
			getSize:  func(int) (int, int, error) { return 132, 43, nil },
			wantCols: 132,
			wantRows: 43,
		},
		{
			name:     "error falls back",
			getSize:  func(int) (int, int, error) { return 0, 0, errors.New("not a terminal") },
			wantCols: FallbackCols,
			wantRows: FallbackRows,
		},
		{
			name:     "zero size falls back",
			getSize:  func(int) (int, int, error) { return 0, 0, nil },
			wantCols: FallbackCols,
			wantRows: FallbackRows,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := &TerminalSize{getSize: tt.getSize}
			cols, rows := ts.Size()
			assert.Equal(t, tt.wantCols, cols)
			assert.Equal(t, tt.wantRows, rows)
		})
	}
}

func TestTerminalSize_NotATerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "size")
	assert.NoError(t, err)
	defer f.Close()

	cols, rows := NewTerminalSize(f).Size()
	assert.Equal(t, FallbackCols, cols)
	assert.Equal(t, FallbackRows, rows)
}
