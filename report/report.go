// SPDX-License-Identifier: MIT

// Package report defines the observer surface through which long-running
// computations announce progress and diagnostics.
//
// Library packages never construct loggers. Every entry point that reports
// progress accepts an Observer; *log.Logger from charmbracelet/log satisfies
// it structurally, so the CLI passes its logger straight through. The
// lifetime of an observer is one top-level invocation.
package report

import (
	"time"
)

// Observer receives structured diagnostics as a message followed by
// alternating key/value pairs.
type Observer interface {
	Debug(msg interface{}, keyvals ...interface{})
	Info(msg interface{}, keyvals ...interface{})
	Warn(msg interface{}, keyvals ...interface{})
	Error(msg interface{}, keyvals ...interface{})
}

type nop struct{}

func (nop) Debug(interface{}, ...interface{}) {}
func (nop) Info(interface{}, ...interface{})  {}
func (nop) Warn(interface{}, ...interface{})  {}
func (nop) Error(interface{}, ...interface{}) {}

// Nop discards everything.
var Nop Observer = nop{}

// OrNop returns obs, or Nop when obs is nil.
func OrNop(obs Observer) Observer {
	if obs == nil {
		return Nop
	}

	return obs
}

// Span announces the start of an activity at debug level and returns the
// function that closes it. The closing call logs the given status together
// with the elapsed wall time.
//
//	done := report.Span(obs, "wiedemann.solveSingular", "rank", r)
//	defer func() { done(status.String()) }()
func Span(obs Observer, activity string, keyvals ...interface{}) func(status string) {
	obs = OrNop(obs)
	start := time.Now()
	obs.Debug(activity+" start", keyvals...)

	return func(status string) {
		kv := make([]interface{}, 0, len(keyvals)+4)
		kv = append(kv, keyvals...)
		kv = append(kv, "status", status, "elapsed", time.Since(start))
		obs.Debug(activity+" done", kv...)
	}
}
