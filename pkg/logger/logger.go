// Package logger wrapper for zerolog
package logger

import (
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Config logger settings
type Config struct {
	Level             string
	TimeFieldFormat   string
	PrettyPrint       bool
	RedirectStdLogger bool
	DisableSampling   bool
	ErrorStack        bool
	ShowCaller        bool
	FileName          string
	// Stdout and Stderr replace os.Stdout and os.Stderr when set
	Stdout io.Writer
	Stderr io.Writer
}

// Logger object capable of interacting with Logger
type Logger struct {
	zero              zerolog.Logger
	zeroErr           zerolog.Logger
	level             string
	prettyPrint       bool
	redirectSTDLogger bool
	showCaller        bool
	stdout            io.Writer
	stderr            io.Writer
	extWriter         io.Writer
}

var defaultConfig = Config{
	Level:           "info",
	TimeFieldFormat: time.RFC3339,
	PrettyPrint:     true,
	ErrorStack:      false,
	ShowCaller:      false,
}

// NewDefault creates Logger with default settings
func NewDefault() *Logger {
	return New(defaultConfig)
}

// New creates a new Logger
func New(config Config) *Logger {
	zerolog.SetGlobalLevel(getZerologLevel(config.Level))
	zerolog.DisableSampling(config.DisableSampling)
	if config.TimeFieldFormat != "" {
		zerolog.TimeFieldFormat = config.TimeFieldFormat
	}
	if config.ErrorStack {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	}

	l := &Logger{
		level:             config.Level,
		prettyPrint:       config.PrettyPrint,
		redirectSTDLogger: config.RedirectStdLogger,
		showCaller:        config.ShowCaller,
		stdout:            config.Stdout,
		stderr:            config.Stderr,
	}
	if l.stdout == nil {
		l.stdout = os.Stdout
	}
	if l.stderr == nil {
		l.stderr = os.Stderr
	}

	if config.FileName != "" {
		var err error
		l.extWriter, err = os.OpenFile(prepareLogFileName(config.FileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			log.Fatalf("failed to open log file: %v", err)
		}
	}

	l.compileLogger()

	return l
}

// Debug starts a new message with debug level
func (l *Logger) Debug() *zerolog.Event {
	return l.zero.Debug()
}

// Info starts a new message with info level
func (l *Logger) Info() *zerolog.Event {
	return l.zero.Info()
}

// Error starts a new message with error level
func (l *Logger) Error() *zerolog.Event {
	return l.zeroErr.Error()
}

// Warn starts a new message with warn level
func (l *Logger) Warn() *zerolog.Event {
	return l.zeroErr.Warn()
}

// With creates a child logger with the field added to its context
func (l *Logger) With() zerolog.Context {
	return l.zero.With()
}

// Fatalf sends the event with formatted msg with fatal level
func (l *Logger) Fatalf(format string, v ...interface{}) {
	l.zeroErr.Fatal().Msgf(format, v...)
}

// Printf sends the event with formatted msg with debug level
func (l *Logger) Printf(format string, v ...interface{}) {
	l.zero.Debug().Msgf(format, v...)
}

// Duplicate creates a Logger sharing the writers of l with the context of zero
func (l *Logger) Duplicate(zero zerolog.Logger) *Logger {
	dup := &Logger{
		level:             l.level,
		prettyPrint:       l.prettyPrint,
		redirectSTDLogger: l.redirectSTDLogger,
		showCaller:        l.showCaller,
		stdout:            l.stdout,
		stderr:            l.stderr,
		extWriter:         l.extWriter,
	}

	dup.zero = zero.Output(dup.outWriter()).With().Logger()
	dup.zeroErr = zero.Output(dup.errWriter()).With().Logger()

	if l.prettyPrint {
		dup.addPrettyPrint(zero)
	}

	return dup
}

func (l *Logger) outWriter() io.Writer {
	if l.extWriter == nil {
		return l.stdout
	}
	return zerolog.MultiLevelWriter(l.stdout, l.extWriter)
}

func (l *Logger) errWriter() io.Writer {
	if l.extWriter == nil {
		return l.stderr
	}
	return zerolog.MultiLevelWriter(l.stderr, l.extWriter)
}

func (l *Logger) compileLogger() {
	l.zero = zerolog.New(l.outWriter()).With().Timestamp().Logger()
	l.zeroErr = zerolog.New(l.errWriter()).With().Timestamp().Logger()

	if l.showCaller {
		l.zero = l.zero.With().Caller().Logger()
		l.zeroErr = l.zeroErr.With().Caller().Logger()
	}

	if l.redirectSTDLogger {
		log.SetFlags(0)
		log.SetOutput(l.zero)
	}

	if l.prettyPrint {
		l.addPrettyPrint(l.zero)
	}
}

// addPrettyPrint switches the terminal writers to console output, the log file keeps JSON
func (l *Logger) addPrettyPrint(ctx zerolog.Logger) {
	out := io.Writer(zerolog.ConsoleWriter{Out: l.stdout, NoColor: !isTerminal(l.stdout)})
	errOut := io.Writer(zerolog.ConsoleWriter{Out: l.stderr, NoColor: !isTerminal(l.stderr)})
	if l.extWriter != nil {
		out = zerolog.MultiLevelWriter(out, l.extWriter)
		errOut = zerolog.MultiLevelWriter(errOut, l.extWriter)
	}

	l.zero = ctx.Output(out)
	l.zeroErr = ctx.Output(errOut)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func getZerologLevel(lvl string) zerolog.Level {
	switch strings.ToLower(lvl) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "panic":
		return zerolog.PanicLevel
	case "disabled":
		return zerolog.Disabled
	}
	return zerolog.NoLevel
}

func prepareLogFileName(pattern string) string {
	cur := time.Now()
	pattern = strings.ReplaceAll(pattern, "%d", cur.Format("2"))
	pattern = strings.ReplaceAll(pattern, "%D", cur.Format("02"))
	pattern = strings.ReplaceAll(pattern, "%m", cur.Format("1"))
	pattern = strings.ReplaceAll(pattern, "%M", cur.Format("01"))
	pattern = strings.ReplaceAll(pattern, "%y", cur.Format("06"))
	pattern = strings.ReplaceAll(pattern, "%Y", cur.Format("2006"))
	pattern = strings.ReplaceAll(pattern, "%H", cur.Format("15"))
	pattern = strings.ReplaceAll(pattern, "%N", cur.Format("04"))
	pattern = strings.ReplaceAll(pattern, "%S", cur.Format("05"))
	return pattern
}
