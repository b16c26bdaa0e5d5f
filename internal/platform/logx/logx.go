// internal/platform/logx/logx.go
package logx

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

type Logger interface {
	Debug(msg string, kv ...any)
	Info(msg string, kv ...any)
	Warn(msg string, kv ...any)
	Err(err error, kv ...any)
	With(kv ...any) Logger
	SetLevel(lvl Level)
}

// Options configura el logger.
type Options struct {
	// Level nivel mínimo para la consola
	Level Level

	// Console destino de la consola (default: os.Stderr)
	Console io.Writer

	// FilePath archivo adicional que recibe todo desde debug (vacío = sin archivo)
	FilePath string

	// NoColor desactiva colores en la consola
	NoColor bool
}

type zeroLogger struct {
	lvl *atomic.Int32 // compartido entre clones creados con With
	zl  zerolog.Logger
}

// New crea un logger de consola con el nivel de BLACKBIRD_LOG_LEVEL.
func New() Logger {
	return NewWithLevel(parseLevel(os.Getenv("BLACKBIRD_LOG_LEVEL")))
}

// NewWithLevel creates a console logger with a specific log level
func NewWithLevel(lvl Level) Logger {
	l, _, _ := NewWithOptions(Options{Level: lvl})
	return l
}

// NewSilent creates a logger that only outputs errors
func NewSilent() Logger {
	return NewWithLevel(LevelError)
}

// NewWriter crea un logger sin colores hacia w (útil en tests).
func NewWriter(w io.Writer, lvl Level) Logger {
	l, _, _ := NewWithOptions(Options{Level: lvl, Console: w, NoColor: true})
	return l
}

// NewWithOptions crea el logger y retorna una función para cerrar el archivo de log.
func NewWithOptions(opts Options) (Logger, func() error, error) {
	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	lvl := &atomic.Int32{}
	lvl.Store(int32(opts.Level))

	writers := []io.Writer{
		levelFilter{
			w:   zerolog.ConsoleWriter{Out: console, TimeFormat: "15:04:05", NoColor: opts.NoColor},
			min: lvl,
		},
	}

	closer := func() error { return nil }
	if opts.FilePath != "" {
		if err := os.MkdirAll(filepath.Dir(opts.FilePath), 0o755); err != nil {
			return nil, closer, fmt.Errorf("create log directory: %w", err)
		}
		f, err := os.OpenFile(opts.FilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, closer, fmt.Errorf("open log file: %w", err)
		}
		writers = append(writers, f)
		closer = f.Close
	}

	zerolog.TimeFieldFormat = time.RFC3339
	zl := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(zerolog.DebugLevel).
		With().Timestamp().Logger()

	return &zeroLogger{lvl: lvl, zl: zl}, closer, nil
}

func (s *zeroLogger) With(kv ...any) Logger {
	ctx := s.zl.With()
	for _, p := range pairs(kv...) {
		ctx = ctx.Interface(p.key, p.val)
	}
	return &zeroLogger{lvl: s.lvl, zl: ctx.Logger()}
}

func (s *zeroLogger) SetLevel(lvl Level) {
	s.lvl.Store(int32(lvl))
}

func (s *zeroLogger) Debug(msg string, kv ...any) { s.log(s.zl.Debug(), msg, kv...) }
func (s *zeroLogger) Info(msg string, kv ...any)  { s.log(s.zl.Info(), msg, kv...) }
func (s *zeroLogger) Warn(msg string, kv ...any)  { s.log(s.zl.Warn(), msg, kv...) }
func (s *zeroLogger) Err(err error, kv ...any) {
	if err == nil {
		return
	}
	s.log(s.zl.Error().Err(err), "", kv...)
}

func (s *zeroLogger) log(e *zerolog.Event, msg string, kv ...any) {
	for _, p := range pairs(kv...) {
		e = e.Interface(p.key, p.val)
	}
	e.Msg(msg)
}

// levelFilter descarta en consola lo que está por debajo del nivel actual;
// el archivo de log sigue recibiendo todo.
type levelFilter struct {
	w   io.Writer
	min *atomic.Int32
}

func (f levelFilter) Write(p []byte) (int, error) {
	return f.w.Write(p)
}

func (f levelFilter) WriteLevel(l zerolog.Level, p []byte) (int, error) {
	if fromZerolog(l) < Level(f.min.Load()) {
		return len(p), nil
	}
	return f.w.Write(p)
}

func fromZerolog(l zerolog.Level) Level {
	switch {
	case l <= zerolog.DebugLevel:
		return LevelDebug
	case l == zerolog.InfoLevel:
		return LevelInfo
	case l == zerolog.WarnLevel:
		return LevelWarn
	default:
		return LevelError
	}
}

type kvPair struct {
	key string
	val any
}

func pairs(kv ...any) []kvPair {
	out := make([]kvPair, 0, (len(kv)+1)/2)
	for i := 0; i < len(kv); i += 2 {
		var v any = "(missing)"
		if i+1 < len(kv) {
			v = kv[i+1]
		}
		out = append(out, kvPair{key: fmt.Sprint(kv[i]), val: v})
	}
	return out
}

// ParseLevel convierte un nombre de nivel; valores desconocidos son info.
func ParseLevel(s string) Level {
	return parseLevel(s)
}

func parseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug", "dbg":
		return LevelDebug
	case "info", "inf", "":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "err", "error":
		return LevelError
	default:
		return LevelInfo
	}
}
