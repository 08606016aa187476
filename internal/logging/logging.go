package logging

import (
	"fmt"
	"io"
	"os"

	clog "github.com/charmbracelet/log"
)

// New returns the application logger. The picker owns the terminal, so
// records go to path when set and are dropped otherwise. The returned
// closer releases the log file.
func New(path string) (*clog.Logger, io.Closer, error) {
	if path == "" {
		return clog.New(io.Discard), io.NopCloser(nil), nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := clog.NewWithOptions(f, clog.Options{
		ReportTimestamp: true,
		Level:           clog.DebugLevel,
		Prefix:          "trypick",
	})
	return logger, f, nil
}
