package logging

import (
	"io"

	"go.uber.org/multierr"
)

// teeWriter duplicates log output to every writer. A failing writer does not
// stop the others; the write only counts as failed if none of them took it.
type teeWriter struct {
	writers []io.Writer
}

func newTeeWriter(writers ...io.Writer) *teeWriter {
	return &teeWriter{writers: writers}
}

func (t *teeWriter) Write(p []byte) (int, error) {
	var err error
	failed := 0
	for _, w := range t.writers {
		if _, werr := w.Write(p); werr != nil {
			err = multierr.Append(err, werr)
			failed++
		}
	}
	if failed == len(t.writers) && failed > 0 {
		return 0, err
	}
	return len(p), err
}
