package logging

import (
	"io"

	"go.uber.org/multierr"
)

// CombinedWriter tees log output to several writers. A failing writer does
// not stop the others; all errors are combined.
type CombinedWriter struct {
	Writers []io.Writer
}

func NewCombinedWriter(writers ...io.Writer) *CombinedWriter {
	cw := &CombinedWriter{}
	for _, w := range writers {
		if w != nil {
			cw.Writers = append(cw.Writers, w)
		}
	}
	return cw
}

// Write reports the bytes written by the last successful writer so that
// callers comparing n against len(p) are not confused by the fan-out.
func (cw *CombinedWriter) Write(p []byte) (int, error) {
	var (
		n    int
		errs error
	)
	for _, w := range cw.Writers {
		written, err := w.Write(p)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		n = written
	}
	return n, errs
}
