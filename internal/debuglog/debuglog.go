// Package debuglog writes structured debug entries to a log file.
//
// Logging is disabled until Init is called with enabled set. Every entry is
// a single JSON object per line carrying a sequence number, a timestamp and
// an event name, plus arbitrary fields.
package debuglog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// DefaultPath is the fixed path for debug logs.
const DefaultPath = "calgrid-debug.log"

// Logger logs layout diagnostics and viewer events as JSON lines.
type Logger struct {
	mu      sync.Mutex
	w       io.Writer
	closer  io.Closer
	enabled bool
	seq     int
	now     func() time.Time
}

var (
	globalMu sync.RWMutex
	global   = &Logger{}
)

// Init enables the global logger, writing to DefaultPath.
// When enabled is false the global logger is reset to a no-op.
func Init(enabled bool) error {
	if !enabled {
		set(&Logger{})
		return nil
	}

	f, err := os.Create(DefaultPath)
	if err != nil {
		return fmt.Errorf("creating debug log: %w", err)
	}

	l := New(f)
	l.closer = f
	set(l)

	l.Log("DEBUG_START", map[string]any{
		"log_file": DefaultPath,
		"time":     time.Now().Format(time.RFC3339),
	})
	return nil
}

// New returns an enabled logger writing to w.
func New(w io.Writer) *Logger {
	return &Logger{w: w, enabled: true, now: time.Now}
}

// SetOutput replaces the global logger with one writing to w.
// A nil writer disables logging.
func SetOutput(w io.Writer) {
	if w == nil {
		set(&Logger{})
		return
	}
	set(New(w))
}

// Close writes a final entry and closes the log file, if any.
func Close() {
	l := current()
	if l.closer == nil {
		return
	}
	l.Log("DEBUG_END", map[string]any{
		"time": time.Now().Format(time.RFC3339),
	})
	_ = l.closer.Close()
	set(&Logger{})
}

// Enabled reports whether the global logger writes anything.
func Enabled() bool {
	return current().enabled
}

// Log writes an entry through the global logger.
func Log(event string, data map[string]any) {
	current().Log(event, data)
}

// Log writes a structured log entry.
func (l *Logger) Log(event string, data map[string]any) {
	if l == nil || !l.enabled || l.w == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.seq++
	now := time.Now
	if l.now != nil {
		now = l.now
	}
	entry := map[string]any{
		"seq":   l.seq,
		"ts":    now().Format("15:04:05.000"),
		"event": event,
	}
	for k, v := range data {
		entry[k] = v
	}

	b, _ := json.Marshal(entry)
	_, _ = fmt.Fprintf(l.w, "%s\n", b)
}

func current() *Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return global
}

func set(l *Logger) {
	globalMu.Lock()
	global = l
	globalMu.Unlock()
}
