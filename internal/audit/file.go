package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileSink appends records as JSON lines. Authentication events go to
// auth.log, authorization denials to security.log, server errors to
// error.log; every record below those categories lands in app.log. Files are
// opened with O_APPEND and every write happens under one mutex, so
// concurrent requests cannot interleave or truncate records.
type FileSink struct {
	mu    sync.Mutex
	level Level
	files map[string]*os.File
}

// log file names under the configured directory
const (
	appLog      = "app.log"
	authLog     = "auth.log"
	securityLog = "security.log"
	errorLog    = "error.log"
)

// NewFileSink creates the log directory and opens the four log files.
func NewFileSink(dir string, level Level) (*FileSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create log dir: %v", ErrUnavailable, err)
	}

	fs := &FileSink{level: level, files: make(map[string]*os.File, 4)}
	for _, name := range []string{appLog, authLog, securityLog, errorLog} {
		f, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fs.Close()
			return nil, fmt.Errorf("%w: open %s: %v", ErrUnavailable, name, err)
		}
		fs.files[name] = f
	}
	return fs, nil
}

// Close releases the underlying file handles.
func (fs *FileSink) Close() error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	var first error
	for _, f := range fs.files {
		if f == nil {
			continue
		}
		if err := f.Close(); err != nil && first == nil {
			first = err
		}
	}
	fs.files = nil
	return first
}

func fileFor(kind string) string {
	switch kind {
	case KindLoginSuccess, KindLoginFailure, KindLogout:
		return authLog
	case KindAuthzDenied:
		return securityLog
	case KindError:
		return errorLog
	default:
		return appLog
	}
}

func (fs *FileSink) Record(ctx context.Context, rec Record) error {
	if kindLevel(rec.Kind) < fs.level {
		return nil
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}
	if rec.Actor == "" {
		rec.Actor = "anonymous"
	}

	line, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("%w: marshal: %v", ErrUnavailable, err)
	}
	line = append(line, '\n')

	fs.mu.Lock()
	defer fs.mu.Unlock()
	if fs.files == nil {
		return fmt.Errorf("%w: sink closed", ErrUnavailable)
	}

	targets := []string{fileFor(rec.Kind)}
	if targets[0] != appLog {
		targets = append(targets, appLog)
	}
	for _, name := range targets {
		if _, err := fs.files[name].Write(line); err != nil {
			return fmt.Errorf("%w: write %s: %v", ErrUnavailable, name, err)
		}
	}
	return nil
}
