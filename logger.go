package torcrypto

import (
	"fmt"

	"github.com/go-i2p/logger"
)

// defaultLogger is the package-wide sink used by every primitive's error
// path. Initialize does not construct it lazily: it exists before
// Initialize is ever called so that early failures (e.g. "no entropy
// source") still get logged.
var defaultLogger = &Logger{logLevel: WARNING}

// SetLogCallbacks redirects facade diagnostics to cb instead of the
// process log. Passing nil restores the default behavior.
func SetLogCallbacks(cb *LoggerCallbacks) {
	defaultLogger.callbacks = cb
}

// SetLogLevel sets the minimum level the default sink will emit. It has no
// effect when callbacks are installed; callbacks see every call regardless
// of level, the same as the teacher's logger.go.
func SetLogLevel(level int) {
	switch level {
	case DEBUG, INFO, WARNING, ERROR, FATAL:
		defaultLogger.logLevel = level
	default:
		defaultLogger.logLevel = ERROR
	}
}

func (l *Logger) log(level int, tag string, format string, args ...interface{}) {
	msg := format
	if len(args) != 0 {
		msg = fmt.Sprintf(format, args...)
	}
	if l.callbacks != nil {
		l.callbacks.onLog(level, tag, msg)
		return
	}
	if level < l.logLevel {
		return
	}
	log := logger.GetGoI2PLogger()
	switch level {
	case DEBUG:
		log.Debugf("[%s] %s", tag, msg)
	case INFO, WARNING:
		log.Warnf("[%s] %s", tag, msg)
	default:
		log.Errorf("[%s] %s", tag, msg)
	}
}

// logErr drains err into the log at ERROR severity tagged with the
// operation that failed ("while doing X" per spec §7), then returns err
// unchanged so call sites can `return logErr(...)`.
func logErr(tag string, err error) error {
	if err != nil {
		defaultLogger.log(ERROR, tag, "%v", err)
	}
	return err
}

// logBackend records, at INFO severity, which backend Initialize chose for
// a primitive under AccelOn.
func logBackend(primitive, backend string) {
	defaultLogger.log(INFO, "accel", "%s: using %s", primitive, backend)
}
