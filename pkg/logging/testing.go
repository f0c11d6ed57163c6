package logging

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

// lockedBuffer lets concurrent source readers log into one buffer.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) string() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func (b *lockedBuffer) reset() {
	b.mu.Lock()
	b.buf.Reset()
	b.mu.Unlock()
}

// TestLogger records JSON events at every level so tests can assert on them.
type TestLogger struct {
	*zerolog.Logger
	buf *lockedBuffer
}

// NewTestLogger returns a trace level logger. The global level is lowered
// for the duration of t.
func NewTestLogger(t testing.TB) *TestLogger {
	t.Helper()

	prev := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	buf := &lockedBuffer{}
	l := zerolog.New(buf).Level(zerolog.TraceLevel)
	return &TestLogger{Logger: &l, buf: buf}
}

// Output is everything logged so far.
func (tl *TestLogger) Output() string { return tl.buf.string() }

// Clear drops the recorded events.
func (tl *TestLogger) Clear() { tl.buf.reset() }

// Count is the number of recorded events.
func (tl *TestLogger) Count() int {
	out := strings.TrimSpace(tl.Output())
	if out == "" {
		return 0
	}
	return strings.Count(out, "\n") + 1
}

// ContainsAll reports whether every substring appears in the output.
func (tl *TestLogger) ContainsAll(substrs ...string) bool {
	out := tl.Output()
	for _, s := range substrs {
		if !strings.Contains(out, s) {
			return false
		}
	}
	return true
}

func (tl *TestLogger) AssertContains(t testing.TB, substr string) {
	t.Helper()
	if !tl.ContainsAll(substr) {
		t.Errorf("log does not contain %q:\n%s", substr, tl.Output())
	}
}

func (tl *TestLogger) AssertNotContains(t testing.TB, substr string) {
	t.Helper()
	if tl.ContainsAll(substr) {
		t.Errorf("log unexpectedly contains %q:\n%s", substr, tl.Output())
	}
}

func (tl *TestLogger) AssertCount(t testing.TB, want int) {
	t.Helper()
	if got := tl.Count(); got != want {
		t.Errorf("got %d log events, want %d:\n%s", got, want, tl.Output())
	}
}

// CaptureDefault swaps the package logger for a TestLogger until t ends.
func CaptureDefault(t testing.TB) *TestLogger {
	t.Helper()
	prev := defaultLogger
	tl := NewTestLogger(t)
	SetDefault(*tl.Logger)
	t.Cleanup(func() { SetDefault(prev) })
	return tl
}
