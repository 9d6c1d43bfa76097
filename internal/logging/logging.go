// Package logging provides the pluggable structured logger used across the
// bbcode module. It is disabled by default; a host application opts in with
// SetLogger or SetLogWriter on its *bbcode.Parser rather than through a package
// global, so that two parsers in the same process can log independently.
package logging

import (
	"errors"
	"io"

	seelog "github.com/cihub/seelog"
)

// Logger is the subset of seelog.LoggerInterface this package relies on.
// Kept as an interface so callers can plug in any seelog-compatible logger.
type Logger = seelog.LoggerInterface

// Disabled returns a logger that discards everything, the default for a
// freshly constructed Parser.
func Disabled() Logger {
	return seelog.Disabled
}

// FromWriter builds a Logger that writes trace-level-and-above records to w.
func FromWriter(w io.Writer) (Logger, error) {
	if w == nil {
		return nil, errors.New("logging: nil writer")
	}
	return seelog.LoggerFromWriterWithMinLevel(w, seelog.TraceLvl)
}
