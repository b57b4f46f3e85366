// Package ui provides the console feedback used outside the dashboard:
// a spinner for blocking steps and one-line status messages.
//
//	s := ui.NewSpinner(os.Stderr, "Probing http://localhost:3000/api/cpus")
//	s.Start()
//	// ... do work ...
//	s.Success("8 cores") // or s.Fail(err.Error())
//
// Colors are ANSI codes so they degrade cleanly on basic terminals.
package ui
