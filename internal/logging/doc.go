// Package logging provides structured logging for the agx CLI on top
// of log/slog.
//
// The default text handler is TTY-aware: colorized when the writer is a
// terminal that wants color, plain otherwise. Attribute values that
// look like credentials are masked before they are written.
package logging
