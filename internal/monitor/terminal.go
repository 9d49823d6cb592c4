package monitor

import (
	"os"

	"golang.org/x/term"
)

// Used when the terminal size cannot be read.
const (
	FallbackCols = 100
	FallbackRows = 30
)

// SizeSource reports the terminal size in character cells.
type SizeSource interface {
	Size() (cols, rows int)
}

// TerminalSize reads the size of the terminal attached to a file descriptor.
type TerminalSize struct {
	fd      int
	getSize func(fd int) (int, int, error)
}

// NewTerminalSize creates a SizeSource for f, usually os.Stdout.
func NewTerminalSize(f *os.File) *TerminalSize {
	return &TerminalSize{fd: int(f.Fd()), getSize: term.GetSize}
}

// Size returns the current terminal size, or 100x30 if it can't be determined.
func (t *TerminalSize) Size() (cols, rows int) {
	cols, rows, err := t.getSize(t.fd)
	if err != nil || cols <= 0 || rows <= 0 {
		return FallbackCols, FallbackRows
	}
	return cols, rows
}

// FixedSize is a SizeSource that always reports the same size.
type FixedSize struct {
	Cols, Rows int
}

// Size returns the fixed size.
func (s FixedSize) Size() (int, int) {
	return s.Cols, s.Rows
}
