// This package defines the logging functions (e.g. Info, Errorf, etc.).

package sklog

import (
	"os"

	"github.com/GaryCAICHI/ysyx-workbench/go/sklog/sklogimpl"
	"github.com/GaryCAICHI/ysyx-workbench/go/sklog/stdlogging"
)

// WE MUST CALL SetLogger in an init function; otherwise the first log line
// before main() configures logging would be dropped.
func init() {
	sklogimpl.SetLogger(stdlogging.New(os.Stderr))
}

// SetLogger replaces the logger every function in this package writes to.
func SetLogger(l sklogimpl.Logger) {
	sklogimpl.SetLogger(l)
}

// SetLevel sets the lowest severity that is emitted, e.g. "debug" or "warning".
func SetLevel(level string) error {
	s, err := sklogimpl.ParseSeverity(level)
	if err != nil {
		return err
	}
	sklogimpl.SetMinSeverity(s)
	return nil
}

// Functions to log at various levels. They format with fmt.Sprintf, except
// Fatal which uses fmt.Sprint.
func Debugf(format string, v ...interface{}) {
	sklogimpl.Log(1, sklogimpl.Debug, format, v...)
}

func Infof(format string, v ...interface{}) {
	sklogimpl.Log(1, sklogimpl.Info, format, v...)
}

func Warningf(format string, v ...interface{}) {
	sklogimpl.Log(1, sklogimpl.Warning, format, v...)
}

func Errorf(format string, v ...interface{}) {
	sklogimpl.Log(1, sklogimpl.Error, format, v...)
}

// ErrorfWithDepth lets helpers report the location of their caller. 0 means
// the caller of ErrorfWithDepth, 1 its caller, and so on.
func ErrorfWithDepth(depth int, format string, v ...interface{}) {
	sklogimpl.Log(1+depth, sklogimpl.Error, format, v...)
}

// Fatal* exits the program after logging.
func Fatal(msg ...interface{}) {
	sklogimpl.Log(1, sklogimpl.Fatal, "", msg...)
}

func Fatalf(format string, v ...interface{}) {
	sklogimpl.Log(1, sklogimpl.Fatal, format, v...)
}

// Flush writes out buffered log lines. Call it before exiting without Fatal.
func Flush() {
	sklogimpl.Flush()
}
