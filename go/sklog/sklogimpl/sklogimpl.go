// Package sklogimpl holds the pieces of sklog that logger implementations need
// to see: the Severity type and the Logger interface. Code that only wants to
// log should import go/sklog instead.
package sklogimpl

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/GaryCAICHI/ysyx-workbench/go/skerr"
)

// Severity of a log line.
type Severity int

const (
	Debug Severity = iota
	Info
	Warning
	Error
	Fatal
)

var severityNames = []string{"DEBUG", "INFO", "WARNING", "ERROR", "FATAL"}

func (s Severity) String() string {
	if s < Debug || s > Fatal {
		return fmt.Sprintf("Severity(%d)", int(s))
	}
	return severityNames[s]
}

// ParseSeverity converts a level name such as "debug" or "WARNING" into a
// Severity.
func ParseSeverity(name string) (Severity, error) {
	for i, n := range severityNames {
		if strings.EqualFold(n, name) {
			return Severity(i), nil
		}
	}
	return Info, skerr.Fmt("unknown log level %q", name)
}

// Logger is implemented by every log backend.
//
// depth is the number of stack frames between the caller of the sklog
// function and the call to Log, so backends that report file:line can skip
// them.
type Logger interface {
	Log(depth int, severity Severity, format string, args ...interface{})
	Flush()
}

var (
	mtx         sync.RWMutex
	logger      Logger
	minSeverity = Info
)

// SetLogger replaces the active Logger.
func SetLogger(l Logger) {
	mtx.Lock()
	defer mtx.Unlock()
	logger = l
}

// SetMinSeverity drops every log line below s. Fatal is never dropped.
func SetMinSeverity(s Severity) {
	mtx.Lock()
	defer mtx.Unlock()
	minSeverity = s
}

// MinSeverity returns the current threshold.
func MinSeverity() Severity {
	mtx.RLock()
	defer mtx.RUnlock()
	return minSeverity
}

// Log sends a line to the active Logger. A Fatal line flushes the logger and
// exits the process.
func Log(depth int, severity Severity, format string, args ...interface{}) {
	mtx.RLock()
	l, threshold := logger, minSeverity
	mtx.RUnlock()
	if l == nil {
		return
	}
	if severity < threshold && severity != Fatal {
		return
	}
	l.Log(depth+1, severity, format, args...)
	if severity == Fatal {
		l.Flush()
		os.Exit(1)
	}
}

// Flush the active Logger.
func Flush() {
	mtx.RLock()
	l := logger
	mtx.RUnlock()
	if l != nil {
		l.Flush()
	}
}
