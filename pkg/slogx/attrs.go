// Package slogx provides slog attribute constructors shared by the strix packages.
package slogx

import (
	"fmt"
	"log/slog"
)

// KeyLoggerName is the attribute key that names the component emitting a record.
const KeyLoggerName = "logger"

// Error returns an "error" attribute holding err's message.
// A nil error produces an empty string rather than a panic.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.String("error", err.Error())
}

// Stringer returns an attribute with the string form of value.
func Stringer(key string, value fmt.Stringer) slog.Attr {
	return slog.String(key, value.String())
}

// LoggerName tags a record with the name of the component that logged it.
func LoggerName(name string) slog.Attr {
	return slog.String(KeyLoggerName, name)
}

// Truncated returns an attribute with value cut to at most n runes, suffixed
// with an ellipsis when cut. Model replies can be long; debug logs keep the head.
func Truncated(key, value string, n int) slog.Attr {
	r := []rune(value)
	if n <= 0 || len(r) <= n {
		return slog.String(key, value)
	}
	return slog.String(key, string(r[:n])+"…")
}
