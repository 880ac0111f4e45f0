// Package testlogger provides a log.Logger bound to a test.
package testlogger

import (
	"strings"
	"testing"

	"github.com/go-kit/log"
)

// New returns a new log.Logger bound to a test. Log lines are routed
// through tb.Log so they appear next to the output of the test that
// produced them.
func New(tb testing.TB) log.Logger {
	tb.Helper()

	return log.NewSyncLogger(log.NewLogfmtLogger(&tbWriter{tb: tb}))
}

type tbWriter struct{ tb testing.TB }

func (w *tbWriter) Write(p []byte) (n int, err error) {
	w.tb.Helper()
	w.tb.Log(strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}
