// Package ioutil provides writer helpers used by the renderers.
package ioutil

//go:generate go tool errtrace -w .

import (
	"io"
	"strconv"
	"sync"

	"braces.dev/errtrace"
)

// CountingWriter writes URI pieces to the underlying writer and sums written bytes.
// The first write error is sticky: later writes are dropped and report it again.
type CountingWriter struct {
	w   io.Writer
	num int
	err error
	buf [20]byte
}

// NewCountingWriter returns a CountingWriter over w.
func NewCountingWriter(w io.Writer) *CountingWriter {
	return &CountingWriter{w: w}
}

func (cw *CountingWriter) done(n int, err error) (int, error) {
	cw.num += n
	if err != nil && cw.err == nil {
		cw.err = err
	}
	return n, errtrace.Wrap(err)
}

// Write implements [io.Writer].
func (cw *CountingWriter) Write(p []byte) (int, error) {
	if cw.err != nil {
		return 0, errtrace.Wrap(cw.err)
	}
	return errtrace.Wrap2(cw.done(cw.w.Write(p)))
}

// WriteString implements [io.StringWriter].
func (cw *CountingWriter) WriteString(s string) (int, error) {
	if cw.err != nil {
		return 0, errtrace.Wrap(cw.err)
	}
	return errtrace.Wrap2(cw.done(io.WriteString(cw.w, s)))
}

// Print writes non-empty parts in order.
func (cw *CountingWriter) Print(parts ...string) *CountingWriter {
	for _, s := range parts {
		if s == "" {
			continue
		}
		if _, err := cw.WriteString(s); err != nil {
			break
		}
	}
	return cw
}

// PrintIf writes delim followed by s when s is not empty.
// It renders optional delimited components like "?query" or "#fragment".
func (cw *CountingWriter) PrintIf(delim, s string) *CountingWriter {
	if s == "" {
		return cw
	}
	return cw.Print(delim, s)
}

// PrintUint writes delim followed by the decimal form of v.
func (cw *CountingWriter) PrintUint(delim string, v uint64) *CountingWriter {
	cw.Print(delim)
	if cw.err == nil {
		cw.Write(strconv.AppendUint(cw.buf[:0], v, 10)) //nolint:errcheck
	}
	return cw
}

// Call runs a RenderTo-like fn against the underlying writer and counts its output.
func (cw *CountingWriter) Call(fn func(io.Writer) (int, error)) *CountingWriter {
	if cw.err == nil {
		cw.done(fn(cw.w)) //nolint:errcheck
	}
	return cw
}

// Result returns the number of written bytes and the first write error.
func (cw *CountingWriter) Result() (int, error) {
	return cw.num, errtrace.Wrap(cw.err)
}

// Err returns the first write error.
func (cw *CountingWriter) Err() error { return errtrace.Wrap(cw.err) }

// Count returns the number of written bytes.
func (cw *CountingWriter) Count() int { return cw.num }

var pool = sync.Pool{
	New: func() any { return new(CountingWriter) },
}

// GetCountingWriter takes a CountingWriter over w from the pool.
// Release it with [FreeCountingWriter].
func GetCountingWriter(w io.Writer) *CountingWriter {
	cw := pool.Get().(*CountingWriter) //nolint:forcetypeassert
	cw.w = w
	return cw
}

// FreeCountingWriter resets cw and returns it to the pool.
func FreeCountingWriter(cw *CountingWriter) {
	*cw = CountingWriter{}
	pool.Put(cw)
}
