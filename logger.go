package reelcore

import (
	"os"

	charmlog "github.com/charmbracelet/log"
)

// Logger is the structured logging seam every component in this package
// logs through. The default implementation wraps charmbracelet/log; call
// SetLogger to replace it (e.g. to redirect into an application's own
// structured logger).
type Logger interface {
	Debugf(format string, v ...any)
	Infof(format string, v ...any)
	Warnf(format string, v ...any)
	Errorf(format string, v ...any)

	// Info/Warn log a structured record: msg plus alternating key/value
	// pairs, rendered as fields rather than interpolated into the message
	// string - worker transitions and decode errors carry fields like
	// "component"/"state"/"error", not %v text.
	Info(msg string, keyvals ...any)
	Warn(msg string, keyvals ...any)
}

var pkgLogger Logger = newDefaultLogger()

// SetLogger replaces the package-level logger used by every worker and
// supervisor. Must be called before constructing a Player to apply to its
// startup log lines too.
func SetLogger(logger Logger) {
	pkgLogger = logger
}

type charmLogger struct {
	l *charmlog.Logger
}

func newDefaultLogger() *charmLogger {
	l := charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		ReportTimestamp: true,
		Prefix:          "reelcore",
	})
	return &charmLogger{l: l}
}

func (c *charmLogger) Debugf(format string, v ...any) { c.l.Debugf(format, v...) }
func (c *charmLogger) Infof(format string, v ...any)  { c.l.Infof(format, v...) }
func (c *charmLogger) Warnf(format string, v ...any)  { c.l.Warnf(format, v...) }
func (c *charmLogger) Errorf(format string, v ...any) { c.l.Errorf(format, v...) }

func (c *charmLogger) Info(msg string, keyvals ...any) { c.l.Info(msg, keyvals...) }
func (c *charmLogger) Warn(msg string, keyvals ...any) { c.l.Warn(msg, keyvals...) }
