// Package ui provides the small line-oriented output helpers used by the
// one-shot commands (check, add, init). The live dashboard has its own
// renderer in package monitor.
//
// # Components
//
//	Spinner    - animated status line for a blocking operation
//	IsTerminal - TTY detection deciding between animated and plain output
//
// # Symbols
//
//	SymbolSuccess (checkmark) - operation succeeded
//	SymbolFail    (X)         - operation failed
//	SymbolWarn    (!)         - finished with problems
//
// # Spinner Usage
//
//	s := ui.NewSpinner("Checking 6 sites", os.Stderr)
//	s.Start()
//	// ... do work ...
//	s.Success() // or s.Fail() or s.Warn()
//
// When the writer is not a terminal the spinner prints only the final line.
package ui
