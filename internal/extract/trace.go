// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"
	"io"
)

// Tracer records the extractor reasoning trail: which rule in each
// cascade fired and what it produced. Implementations must accept
// calls from a single goroutine per Parser invocation.
type Tracer interface {
	Tracef(format string, args ...any)
}

// Nop is a Tracer that discards everything. It is the default.
var Nop Tracer = nopTracer{}

type nopTracer struct{}

func (nopTracer) Tracef(string, ...any) {}

// NewWriterTracer returns a Tracer that writes one line per trace
// event to w.
func NewWriterTracer(w io.Writer) Tracer {
	return &writerTracer{w: w}
}

type writerTracer struct {
	w io.Writer
}

func (t *writerTracer) Tracef(format string, args ...any) {
	fmt.Fprintf(t.w, format+"\n", args...)
}
