package ui

import (
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/x/term"

	"github.com/gubarz/trypick/internal/corpus"
	"github.com/gubarz/trypick/internal/tui"
)

// Options configures a picker session
type Options struct {
	Root  string // shown in the title line
	Query string // initial query
	Limit int    // cap on ranked rows, 0 for none

	// Width and Height pin the screen size when positive
	Width  int
	Height int
	Colors bool
	Policy tui.WidthPolicy

	Logger *log.Logger
	Now    func() time.Time
}

// getTTY returns file handles for TUI input/output
// Uses /dev/tty to bypass shell pipes and command substitution
func getTTY() (in *os.File, out *os.File, cleanup func()) {
	var closers []func()

	// If stdout is captured (e.g. by $()), draw on /dev/tty instead
	if fileInfo, err := os.Stdout.Stat(); err != nil || (fileInfo.Mode()&os.ModeCharDevice) == 0 {
		out, err := os.OpenFile("/dev/tty", os.O_WRONLY, 0)
		if err != nil {
			out = os.Stderr // Last resort fallback
		} else {
			closers = append(closers, func() { out.Close() })
		}

		in, err := os.OpenFile("/dev/tty", os.O_RDONLY, 0)
		if err != nil {
			in = os.Stdin
		} else {
			closers = append(closers, func() { in.Close() })
		}

		return in, out, func() {
			for _, c := range closers {
				c()
			}
		}
	}

	return os.Stdin, os.Stdout, func() {}
}

// Run shows the picker on the controlling terminal. It returns nil when the
// user cancels.
func Run(dirs []*corpus.Dir, opts Options) (*Selection, error) {
	ttyIn, ttyOut, cleanup := getTTY()
	defer cleanup()

	// Bubble Tea leaves the terminal alone when it has no renderer
	state, err := term.MakeRaw(ttyIn.Fd())
	if err != nil {
		return nil, fmt.Errorf("enter raw mode: %w", err)
	}
	defer term.Restore(ttyIn.Fd(), state)

	_, _ = io.WriteString(ttyOut, tui.AltScreenOn+tui.ClearScreen+tui.HideCursor)
	defer io.WriteString(ttyOut, tui.Reset+tui.ShowCursor+tui.AltScreenOff)

	screen := tui.NewScreen(ttyOut, tui.Options{
		Width:  opts.Width,
		Height: opts.Height,
		Colors: opts.Colors,
		Policy: opts.Policy,
		Logger: opts.Logger,
	})

	m := newPickerModel(screen, dirs, opts)
	if err := m.paint(); err != nil {
		return nil, err
	}

	p := tea.NewProgram(m,
		tea.WithoutRenderer(),
		tea.WithInput(ttyIn),
		tea.WithOutput(ttyOut),
	)
	stop := watchResize(p.Send)
	defer stop()

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	result := finalModel.(pickerModel)
	if result.err != nil {
		return nil, result.err
	}
	if result.quitting {
		return nil, nil
	}
	return result.selected, nil
}
