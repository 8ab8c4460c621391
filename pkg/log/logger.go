package log

import (
	"fmt"
	"io"
	"os"

	"github.com/op/go-logging"
)

type Level logging.Level

// The levels that can be passed to the SetLevel function.
const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
)

var format = logging.MustStringFormatter(
	`%{color}[%{time:15:04:05.000}] [%{module}] [%{level}]%{color:reset} %{message}`,
)

var leveledBackend logging.LeveledBackend

// Logger is a named leveled logger
type Logger interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})

	Notice(v ...interface{})
	Noticef(format string, v ...interface{})

	Info(v ...interface{})
	Infof(format string, v ...interface{})

	Warning(v ...interface{})
	Warningf(format string, v ...interface{})

	Error(v ...interface{})
	Errorf(format string, v ...interface{})
}

// New creates a named logger sharing the process-wide sink and level.
func New(name string) Logger {
	return logging.MustGetLogger(name)
}

// SetSink redirects all loggers to sink. The level resets to Info.
func SetSink(sink io.Writer) {
	backend := logging.NewLogBackend(sink, "", 0)
	backendWithFormatter := logging.NewBackendFormatter(backend, format)
	leveledBackend = logging.AddModuleLevel(backendWithFormatter)
	leveledBackend.SetLevel(logging.INFO, "")
	logging.SetBackend(leveledBackend)
}

// SetLevel sets the verbosity of every logger.
func SetLevel(level Level) {
	leveledBackend.SetLevel(toLogging(level), "")
}

// Enabled reports whether messages at level for module are written
func Enabled(level Level, module string) bool {
	return leveledBackend.IsEnabledFor(toLogging(level), module)
}

func toLogging(level Level) logging.Level {
	switch level {
	case Debug:
		return logging.DEBUG
	case Info:
		return logging.INFO
	case Notice:
		return logging.NOTICE
	case Warning:
		return logging.WARNING
	case Error:
		return logging.ERROR
	}
	panic(fmt.Sprintf("log: unknown level %d", level))
}

// Printer adapts a Logger to the single-method Printf interface the
// rendering packages accept. Messages go out at the configured level.
type Printer struct {
	logger Logger
	level  Level
}

// NewPrinter creates a Printf adapter writing to logger at level
func NewPrinter(logger Logger, level Level) *Printer {
	return &Printer{logger: logger, level: level}
}

// Printf writes a formatted message
func (p *Printer) Printf(format string, args ...interface{}) {
	switch p.level {
	case Debug:
		p.logger.Debugf(format, args...)
	case Info:
		p.logger.Infof(format, args...)
	case Notice:
		p.logger.Noticef(format, args...)
	case Warning:
		p.logger.Warningf(format, args...)
	default:
		p.logger.Errorf(format, args...)
	}
}

func init() {
	SetSink(os.Stdout)
	SetLevel(Notice)
}
