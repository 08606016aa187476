package output

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/log"
)

// ErrUnknownMode is returned for an output mode other than print, copy or exec
var ErrUnknownMode = errors.New("unknown output mode")

// Mode represents how the selected path is handled
type Mode string

const (
	ModePrint Mode = "print"
	ModeCopy  Mode = "copy"
	ModeExec  Mode = "exec"
)

// ParseMode validates a configured output mode
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModePrint, ModeCopy, ModeExec:
		return m, nil
	case "":
		return ModePrint, nil
	default:
		return "", fmt.Errorf("%w: %q (supported: print, copy, exec)", ErrUnknownMode, s)
	}
}

// Clipboard defines the interface for clipboard operations
type Clipboard interface {
	Copy(text string) error
}

// systemClipboard goes through atotto/clipboard (pbcopy, xclip, xsel,
// wl-copy or the Windows API)
type systemClipboard struct{}

func (systemClipboard) Copy(text string) error {
	if clipboard.Unsupported {
		return errors.New("no clipboard utility found")
	}
	return clipboard.WriteAll(text)
}

// Runner runs a prepared command; replaced in tests
type Runner func(cmd *exec.Cmd) error

// Emitter hands the selected path to its destination
type Emitter struct {
	out       io.Writer
	shell     string
	clipboard Clipboard
	run       Runner
	log       *log.Logger
}

// New creates an emitter printing to out. shell is used by exec mode.
func New(out io.Writer, shell string) *Emitter {
	return &Emitter{
		out:       out,
		shell:     shell,
		clipboard: systemClipboard{},
		run:       func(cmd *exec.Cmd) error { return cmd.Run() },
		log:       log.New(io.Discard),
	}
}

// WithClipboard sets a custom clipboard implementation (useful for testing)
func (e *Emitter) WithClipboard(c Clipboard) *Emitter {
	e.clipboard = c
	return e
}

// WithRunner sets the command runner used by exec mode
func (e *Emitter) WithRunner(r Runner) *Emitter {
	e.run = r
	return e
}

// WithLogger sets the logger
func (e *Emitter) WithLogger(l *log.Logger) *Emitter {
	if l != nil {
		e.log = l
	}
	return e
}

// Emit handles path according to mode
func (e *Emitter) Emit(path string, mode Mode) error {
	switch mode {
	case ModeCopy:
		if err := e.clipboard.Copy(path); err != nil {
			// no clipboard, just print
			e.log.Warn("clipboard unavailable, printing instead", "err", err)
			return e.print(path)
		}
		e.log.Debug("copied to clipboard", "path", path)
		return nil
	case ModeExec:
		return e.exec(path)
	case ModePrint, "":
		return e.print(path)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
}

func (e *Emitter) print(path string) error {
	_, err := fmt.Fprintln(e.out, path)
	return err
}

// exec starts an interactive shell inside path
func (e *Emitter) exec(path string) error {
	shell := e.shell
	if shell == "" {
		shell = "/bin/sh"
	}
	cmd := exec.Command(shell)
	cmd.Dir = path
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(), "TRY_DIR="+path)

	e.log.Debug("spawning shell", "shell", shell, "dir", path)
	if err := e.run(cmd); err != nil {
		return fmt.Errorf("shell %s in %s: %w", shell, path, err)
	}
	return nil
}
