package logging

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type Logger struct {
	mu    sync.RWMutex
	out   io.Writer
	json  bool
	level zerolog.Level
	zl    zerolog.Logger
}

type Field struct {
	Key string
	Val any
}

func New(jsonEnabled bool) *Logger {
	return NewWithWriter(os.Stderr, jsonEnabled)
}

func NewWithWriter(w io.Writer, jsonEnabled bool) *Logger {
	lg := &Logger{out: w, json: jsonEnabled, level: zerolog.InfoLevel}
	lg.rebuild()
	return lg
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{out: io.Discard, level: zerolog.Disabled, zl: zerolog.Nop()}
}

func (lg *Logger) SetJSON(enabled bool) {
	lg.mu.Lock()
	defer lg.mu.Unlock()
	lg.json = enabled
	lg.rebuild()
}

// SetLevel accepts debug, info, warn or error. Unknown values mean info.
func (lg *Logger) SetLevel(level string) {
	l, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || l == zerolog.NoLevel {
		l = zerolog.InfoLevel
	}
	lg.mu.Lock()
	defer lg.mu.Unlock()
	lg.level = l
	lg.rebuild()
}

func (lg *Logger) rebuild() {
	w := lg.out
	if !lg.json {
		w = zerolog.ConsoleWriter{Out: lg.out, TimeFormat: time.RFC3339, NoColor: true}
	}
	lg.zl = zerolog.New(w).Level(lg.level).With().Timestamp().Logger()
}

func (lg *Logger) Debug(msg string, fields ...Field) {
	lg.print(zerolog.DebugLevel, msg, fields...)
}

func (lg *Logger) Info(msg string, fields ...Field) {
	lg.print(zerolog.InfoLevel, msg, fields...)
}

func (lg *Logger) Warn(msg string, fields ...Field) {
	lg.print(zerolog.WarnLevel, msg, fields...)
}

func (lg *Logger) Error(msg string, fields ...Field) {
	lg.print(zerolog.ErrorLevel, msg, fields...)
}

func (lg *Logger) print(level zerolog.Level, msg string, fields ...Field) {
	lg.mu.RLock()
	zl := lg.zl
	lg.mu.RUnlock()

	ev := zl.WithLevel(level)
	if ev == nil {
		return
	}
	for _, f := range fields {
		if err, ok := f.Val.(error); ok {
			ev = ev.AnErr(f.Key, err)
			continue
		}
		ev = ev.Interface(f.Key, f.Val)
	}
	ev.Msg(msg)
}
