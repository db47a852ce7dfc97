// Copyright 2021 The httpcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package netlog

import (
	"sync"

	"go.uber.org/zap"
)

// A Sink receives the diagnostic log of each request execution.
//
// Write must not retain p after returning. Implementations must be safe
// for concurrent use by multiple goroutines.
type Sink interface {
	Write(p []byte) error
}

// The SinkFunc type is an adapter to allow the use of ordinary
// functions as sinks.
type SinkFunc func(p []byte) error

// Write calls f(p).
func (f SinkFunc) Write(p []byte) error {
	return f(p)
}

// Discard is a Sink which drops everything.
var Discard Sink = SinkFunc(func([]byte) error { return nil })

// A ZapSink writes each diagnostic log as one debug-level entry.
type ZapSink struct {
	Logger *zap.Logger
}

// NewZapSink returns a sink writing to l. A nil l yields a sink which
// drops everything.
func NewZapSink(l *zap.Logger) *ZapSink {
	return &ZapSink{Logger: OrNop(l)}
}

// Write logs p.
func (s *ZapSink) Write(p []byte) error {
	if ce := s.Logger.Check(zap.DebugLevel, "network log"); ce != nil {
		ce.Write(zap.ByteString("log", p))
	}
	return nil
}

// A Recorder is a Sink keeping a copy of every log written to it.
type Recorder struct {
	mu   sync.Mutex
	logs [][]byte
}

// Write records a copy of p.
func (r *Recorder) Write(p []byte) error {
	c := make([]byte, len(p))
	copy(c, p)
	r.mu.Lock()
	r.logs = append(r.logs, c)
	r.mu.Unlock()
	return nil
}

// Logs returns the recorded logs in the order they were written.
func (r *Recorder) Logs() [][]byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	logs := make([][]byte, len(r.logs))
	copy(logs, r.logs)
	return logs
}

// Last returns the most recently recorded log, or nil.
func (r *Recorder) Last() []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.logs) == 0 {
		return nil
	}
	return r.logs[len(r.logs)-1]
}
