// Package stdlogging implements sklogimpl.Logger and logs to either stderr or stdout.
package stdlogging

import (
	"github.com/GaryCAICHI/ysyx-workbench/go/sklog/sklogimpl"
	logger "github.com/jcgregorio/logger"
)

type stdlog struct {
	logger *logger.Logger
	dst    logger.SyncWriter
}

// New returns a sklogimpl.Logger that writes to a SyncWriter, such as
// os.Stdout or os.Stderr.
func New(dst logger.SyncWriter) sklogimpl.Logger {
	l := logger.NewFromOptions(&logger.Options{
		SyncWriter:   dst,
		DepthDelta:   3,
		IncludeDebug: true,
	})
	return &stdlog{
		logger: l,
		dst:    dst,
	}
}

// Log implements sklogimpl.Logger.
func (s *stdlog) Log(_ int, severity sklogimpl.Severity, format string, args ...interface{}) {
	if format == "" {
		switch severity {
		case sklogimpl.Debug:
			s.logger.Debug(args...)
		case sklogimpl.Info:
			s.logger.Info(args...)
		case sklogimpl.Warning:
			s.logger.Warning(args...)
		default:
			// Fatal included, sklogimpl.Log exits after flushing.
			s.logger.Error(args...)
		}
		return
	}
	switch severity {
	case sklogimpl.Debug:
		s.logger.Debugf(format, args...)
	case sklogimpl.Info:
		s.logger.Infof(format, args...)
	case sklogimpl.Warning:
		s.logger.Warningf(format, args...)
	default:
		s.logger.Errorf(format, args...)
	}
}

// Flush implements sklogimpl.Logger.
func (s *stdlog) Flush() {
	_ = s.dst.Sync()
}
