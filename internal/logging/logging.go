// Package logging adapts zerolog to the Printf(format string, v
// ...interface{}) Logger interface that xsdgen and wsdlgen already
// define, so callers configuring those packages' LogOutput option
// get structured, leveled output instead of a bare log.Logger.
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Logger adapts a zerolog.Logger to the xsdgen/wsdlgen Logger
// interface (a single Printf method), so code generation progress
// messages flow through structured logging without either package
// needing to import zerolog itself.
type Logger struct {
	zl zerolog.Logger
}

// New builds a Logger writing to w in zerolog's console format, the
// same human-readable format used for interactive CLI runs.
func New(w io.Writer) *Logger {
	cw := zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	return &Logger{zl: zerolog.New(cw).With().Timestamp().Logger()}
}

// NewJSON builds a Logger writing newline-delimited JSON to w, for
// non-interactive runs (CI, piped output) where structured fields
// matter more than readability.
func NewJSON(w io.Writer) *Logger {
	return &Logger{zl: zerolog.New(w).With().Timestamp().Logger()}
}

// Default builds a Logger writing console-formatted output to
// os.Stderr.
func Default() *Logger {
	return New(os.Stderr)
}

// Printf implements the xsdgen/wsdlgen Logger interface.
func (l *Logger) Printf(format string, v ...interface{}) {
	l.zl.Info().Msgf(format, v...)
}

// Errorf logs a message at error level, for failures a caller wants to
// report but not necessarily abort on (e.g. an unresolved WSDL
// import that other namespaces can still generate without).
func (l *Logger) Errorf(format string, v ...interface{}) {
	l.zl.Error().Msgf(format, v...)
}
