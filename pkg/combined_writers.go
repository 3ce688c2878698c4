package pkg

import (
	"io"

	"go.uber.org/multierr"
)

// CombinedWriter fans log output out to several writers. A failing writer does not
// stop the others; its error is joined into the returned one.
type CombinedWriter struct {
	writers []io.Writer
}

func NewCombinedWriter(writers ...io.Writer) *CombinedWriter {
	return &CombinedWriter{writers: writers}
}

func (cw *CombinedWriter) Write(p []byte) (int, error) {
	var err error
	delivered := false
	for _, w := range cw.writers {
		n, werr := w.Write(p)
		if werr == nil && n < len(p) {
			werr = io.ErrShortWrite
		}
		if werr != nil {
			err = multierr.Append(err, werr)
			continue
		}
		delivered = true
	}
	if !delivered && len(cw.writers) > 0 {
		return 0, err
	}
	return len(p), err
}
