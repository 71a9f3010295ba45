package sim

import (
	"fmt"
	"io"
	"log"
)

// A TimePrefixWriter prefixes everything written through it with the
// current virtual time, so that log lines interleave meaningfully with the
// simulation.
type TimePrefixWriter struct {
	w  io.Writer
	tt TimeTeller
}

// NewTimePrefixWriter creates a TimePrefixWriter that reads timestamps
// from tt and forwards to w.
func NewTimePrefixWriter(w io.Writer, tt TimeTeller) *TimePrefixWriter {
	return &TimePrefixWriter{w: w, tt: tt}
}

func (w *TimePrefixWriter) Write(p []byte) (int, error) {
	_, err := fmt.Fprintf(w.w, "[t=%s] ", w.tt.CurrentTime())
	if err != nil {
		return 0, err
	}

	return w.w.Write(p)
}

var logOutputBeforePrefix io.Writer

// installLogTimePrefix routes the default logger through a
// TimePrefixWriter backed by the given time source. The source must be
// fully constructed: the writer queries it on every log line.
func installLogTimePrefix(tt TimeTeller) {
	logOutputBeforePrefix = log.Writer()
	log.SetOutput(NewTimePrefixWriter(logOutputBeforePrefix, tt))
}

// removeLogTimePrefix restores the default logger output. It must run
// before the time source behind the prefix writer is torn down.
func removeLogTimePrefix() {
	if logOutputBeforePrefix == nil {
		return
	}

	log.SetOutput(logOutputBeforePrefix)
	logOutputBeforePrefix = nil
}
