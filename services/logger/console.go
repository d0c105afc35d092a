package logsvc

import (
	"io"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/trezcool/sims/core"
)

// ConsoleLogger writes leveled, human readable lines with zerolog.
type ConsoleLogger struct {
	zl zerolog.Logger
}

var _ core.Logger = (*ConsoleLogger)(nil)

// NewLogger returns a console logger writing to out (stderr when nil).
// Debug messages are dropped unless conf.Debug is set.
func NewLogger(out io.Writer, conf *core.Config) *ConsoleLogger {
	if out == nil {
		out = os.Stderr
	}
	level := zerolog.InfoLevel
	if conf.Debug {
		level = zerolog.DebugLevel
	}
	zl := zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: !conf.Debug}).
		Level(level).
		With().
		Timestamp().
		Str("env", conf.Env).
		Logger()
	return &ConsoleLogger{zl: zl}
}

// expected fmt: msg | error, map[string]interface{}, any other value
func (l *ConsoleLogger) log(ev *zerolog.Event, msg string, args []interface{}) {
	for i, arg := range args {
		switch a := arg.(type) {
		case error:
			ev = ev.Err(a)
		case map[string]interface{}:
			ev = ev.Fields(a)
		default:
			ev = ev.Interface("arg"+strconv.Itoa(i), a)
		}
	}
	ev.Msg(msg)
}

func (l *ConsoleLogger) Debug(msg string, args ...interface{}) { l.log(l.zl.Debug(), msg, args) }
func (l *ConsoleLogger) Info(msg string, args ...interface{})  { l.log(l.zl.Info(), msg, args) }
func (l *ConsoleLogger) Warn(msg string, args ...interface{})  { l.log(l.zl.Warn(), msg, args) }
func (l *ConsoleLogger) Error(msg string, args ...interface{}) { l.log(l.zl.Error(), msg, args) }

// Fatal logs then exits the process.
func (l *ConsoleLogger) Fatal(msg string, args ...interface{}) { l.log(l.zl.Fatal(), msg, args) }
