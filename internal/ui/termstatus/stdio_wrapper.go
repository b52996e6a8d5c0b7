package termstatus

import (
	"bytes"
	"io"
)

// WrapStdio returns line-buffering writers that route output through term,
// so that it does not tear the status lines. On Close, the remaining bytes
// are written, followed by a line break.
func WrapStdio(term *Terminal) (stdout, stderr io.WriteCloser) {
	return newLineWriter(term.Print), newLineWriter(term.Error)
}

type lineWriter struct {
	buf   bytes.Buffer
	print func(string)
}

var _ io.WriteCloser = &lineWriter{}

func newLineWriter(print func(string)) *lineWriter {
	return &lineWriter{print: print}
}

func (w *lineWriter) Write(data []byte) (n int, err error) {
	n, err = w.buf.Write(data)
	if err != nil {
		return n, err
	}

	// print everything up to and including the last line break
	buf := w.buf.Bytes()
	if i := bytes.LastIndexByte(buf, '\n'); i != -1 {
		w.print(string(buf[:i+1]))
		w.buf.Next(i + 1)
	}

	return n, nil
}

func (w *lineWriter) Close() error {
	if w.buf.Len() > 0 {
		w.print(string(append(w.buf.Bytes(), '\n')))
		w.buf.Reset()
	}
	return nil
}
