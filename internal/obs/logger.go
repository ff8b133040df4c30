package obs

import (
	"encoding/json"
	"io"
	"log"
	"os"
	"time"
)

// Logger emits single-line JSON records on stdout.
type Logger struct {
	l *log.Logger
}

func NewLogger() *Logger {
	return &Logger{l: log.New(os.Stdout, "", 0)}
}

// NewLoggerTo writes records to w (tests).
func NewLoggerTo(w io.Writer) *Logger {
	return &Logger{l: log.New(w, "", 0)}
}

func (lg *Logger) Info(msg string, fields map[string]any) {
	lg.emit("info", msg, fields)
}

func (lg *Logger) Warn(msg string, fields map[string]any) {
	lg.emit("warn", msg, fields)
}

func (lg *Logger) Error(msg string, fields map[string]any) {
	lg.emit("error", msg, fields)
}

func (lg *Logger) emit(level, msg string, fields map[string]any) {
	if lg == nil {
		return
	}
	rec := make(map[string]any, len(fields)+3)
	for k, v := range fields {
		rec[k] = v
	}
	rec["level"] = level
	rec["msg"] = msg
	rec["ts"] = time.Now().UTC().Format(time.RFC3339Nano)

	b, _ := json.Marshal(rec)
	lg.l.Println(string(b))
}
