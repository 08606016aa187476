//go:build !unix

package ui

import tea "github.com/charmbracelet/bubbletea"

// watchResize is a no-op where SIGWINCH does not exist; the screen still
// picks up a new size on the next key press.
func watchResize(func(tea.Msg)) (stop func()) {
	return func() {}
}
