// Package audit appends one plaintext line per compression to a log file.
// The log is the only record of who compressed what; it must never block or
// fail a request, so callers log Record errors and move on.
package audit

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/spf13/afero"
)

const timeLayout = "2006-01-02 15:04:05"

// Entry is one compression event.
type Entry struct {
	CallerIP       string
	Mode           string
	GainPercent    float64
	OriginalSize   int64
	CompressedSize int64
}

// Logger serializes appends to the audit file at line granularity.
type Logger struct {
	mu    sync.Mutex
	fs    afero.Fs
	path  string
	clock func() time.Time
}

// NewLogger returns a Logger appending to path on the given filesystem.
func NewLogger(fs afero.Fs, path string) *Logger {
	return &Logger{fs: fs, path: path, clock: time.Now}
}

// Record appends one line for the entry, creating the file on first use.
func (l *Logger) Record(e Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := l.fs.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open audit log %s: %w", l.path, err)
	}
	defer f.Close() //nolint:errcheck

	line := fmt.Sprintf("%s | IP: %s | Mode: %s | Gain: %.2f%% | %d -> %d bytes\n",
		l.clock().Format(timeLayout), e.CallerIP, e.Mode, e.GainPercent, e.OriginalSize, e.CompressedSize)
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("append audit line: %w", err)
	}
	return nil
}
