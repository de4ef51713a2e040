// Package logger provides structured logging for xplore built on zerolog.
//
// All components log through the Logger interface so tests can substitute
// a capturing implementation (see TestLogger). Console output is
// human-readable; file output, when configured, receives the same events
// as JSON lines.
package logger
