// trace.go: Optional structured tracing for the parser and binary writer
//
// A single optional hook, nil by default, invoked synchronously on the
// caller's goroutine, never required for correct operation.
//
// Copyright (c) 2025 AGILira
// Series: AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package miniconfig

import (
	"github.com/agilira/go-timecache"
)

// Field is a single key/value pair attached to a trace Event.
type Field struct {
	Key   string
	Value interface{}
}

// F builds a Field. Short name mirrors the density of call sites that use it
// (parse/build hot paths fire several events per document).
func F(key string, value interface{}) Field { return Field{Key: key, Value: value} }

// Tracer receives coarse-grained progress events from the INI parser and
// the binary writer. Implementations must not block or panic; the core
// never retries or recovers from a Tracer.
type Tracer interface {
	Event(name string, fields ...Field)
}

// TracerFunc adapts a plain function to the Tracer interface.
type TracerFunc func(name string, fields ...Field)

func (f TracerFunc) Event(name string, fields ...Field) { f(name, fields...) }

// timedTracer stamps every event with a cached clock read before forwarding
// to sink, avoiding a syscall-backed time.Now() on the parse/build hot path.
type timedTracer struct {
	sink Tracer
}

// NewTimedTracer wraps sink so every event it forwards carries a "ts_ns"
// field sourced from go-timecache's cached clock, which amortizes the cost
// of reading wall-clock time across many fast trace events instead of
// paying a syscall per token.
func NewTimedTracer(sink Tracer) Tracer {
	if sink == nil {
		return nil
	}
	return &timedTracer{sink: sink}
}

func (t *timedTracer) Event(name string, fields ...Field) {
	stamped := make([]Field, 0, len(fields)+1)
	stamped = append(stamped, F("ts_ns", timecache.CachedTimeNano()))
	stamped = append(stamped, fields...)
	t.sink.Event(name, stamped...)
}

// emit is a nil-safe helper used throughout the parser and writer so call
// sites never need to guard on a nil Tracer themselves.
func emit(t Tracer, name string, fields ...Field) {
	if t == nil {
		return
	}
	t.Event(name, fields...)
}
