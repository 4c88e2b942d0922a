// Package audit implements the append-only audit sink. Security-relevant
// events (logins, authorization denials) must not proceed unaudited, so
// every sink reports write failures to the caller instead of dropping
// records silently.
package audit

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable means a record could not be appended.
var ErrUnavailable = errors.New("audit: sink unavailable")

// Event kinds.
const (
	KindLoginSuccess = "login_success"
	KindLoginFailure = "login_failure"
	KindAuthzDenied  = "authz_denied"
	KindLogout       = "logout"
	KindError        = "error"
	KindPageView     = "page_view"
)

// Record is one audit event. Actor is a username or "anonymous".
type Record struct {
	Timestamp time.Time `json:"timestamp"`
	Actor     string    `json:"actor"`
	Kind      string    `json:"kind"`
	Detail    string    `json:"detail,omitempty"`
	IP        string    `json:"ip,omitempty"`
	UserAgent string    `json:"user_agent,omitempty"`
}

// Sink appends audit records. Implementations must be safe for concurrent
// use and must never truncate or interleave records.
type Sink interface {
	Record(ctx context.Context, rec Record) error
}

// Level is the sink verbosity threshold.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel maps a config string to a Level, defaulting to info.
func ParseLevel(s string) Level {
	switch s {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// kindLevel gives each event kind a severity for level filtering.
func kindLevel(kind string) Level {
	switch kind {
	case KindError:
		return LevelError
	case KindLoginFailure, KindAuthzDenied:
		return LevelWarn
	case KindPageView:
		return LevelDebug
	default:
		return LevelInfo
	}
}

// MultiSink fans a record out to every sink and returns the first failure.
type MultiSink struct {
	sinks []Sink
}

func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

func (m *MultiSink) Record(ctx context.Context, rec Record) error {
	for _, s := range m.sinks {
		if err := s.Record(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}
