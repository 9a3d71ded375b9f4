package logger

import (
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
)

const flushTimeout = 2 * time.Second

// Fields represents structured log fields
type Fields map[string]interface{}

// Init enables Sentry reporting. An empty dsn leaves logging local only.
func Init(dsn, environment, release string) error {
	if dsn == "" {
		return nil
	}
	return sentry.Init(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: environment,
		Release:     "voicelead@" + release,
	})
}

func Flush() {
	sentry.Flush(flushTimeout)
}

func enabled() bool {
	return sentry.CurrentHub().Client() != nil
}

func breadcrumb(level sentry.Level, kind, msg string, fields Fields) {
	if !enabled() {
		return
	}
	sentry.AddBreadcrumb(&sentry.Breadcrumb{
		Type:     kind,
		Category: "log",
		Message:  msg,
		Data:     map[string]interface{}(fields),
		Level:    level,
	})
}

// Info logs an informational message with structured fields
func Info(msg string, fields Fields) {
	log.Printf("[INFO] %s %s", msg, formatFields(fields))
	breadcrumb(sentry.LevelInfo, "info", msg, fields)
}

// Warn logs a warning message with structured fields
func Warn(msg string, fields Fields) {
	log.Printf("[WARN] %s %s", msg, formatFields(fields))
	breadcrumb(sentry.LevelWarning, "warning", msg, fields)
}

// Debug logs a debug message with structured fields
func Debug(msg string, fields Fields) {
	log.Printf("[DEBUG] %s %s", msg, formatFields(fields))
	breadcrumb(sentry.LevelDebug, "debug", msg, fields)
}

// Error logs an error message with structured fields and sends it to Sentry
func Error(msg string, err error, fields Fields) {
	log.Printf("[ERROR] %s: %v %s", msg, err, formatFields(fields))
	if !enabled() {
		return
	}
	sentry.CurrentHub().WithScope(func(scope *sentry.Scope) {
		for key, value := range fields {
			scope.SetExtra(key, value)
		}
		scope.SetTag("message", msg)
		sentry.CurrentHub().CaptureException(err)
	})
}

// formatFields renders fields in key order so log lines are stable
func formatFields(fields Fields) string {
	if len(fields) == 0 {
		return ""
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+formatValue(fields[k]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func formatValue(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case int:
		return fmt.Sprintf("%d", val)
	case int64:
		return fmt.Sprintf("%d", val)
	case float64:
		return fmt.Sprintf("%.2f", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
