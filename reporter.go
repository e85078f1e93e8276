// This file re-exports the internal Reporter interface and associated
// types so that callers embedding the engine can receive every streaming
// event directly, without reaching into internal/reporter themselves.

package vvstream

import "vvstream/internal/reporter"

// Reporter receives every domain event the streaming pipeline produces.
// Implement this interface to observe prefetch, seek, fetch, and decode
// activity.
type Reporter = reporter.Reporter

// NullReporter is a no-op reporter that discards all events.
type NullReporter = reporter.NullReporter

// LogReporter writes timestamped event lines to an io.Writer.
type LogReporter = reporter.LogReporter

// TerminalReporter prints colorized event lines to the terminal.
type TerminalReporter = reporter.TerminalReporter

// CompositeReporter fans events out to multiple reporters.
type CompositeReporter = reporter.CompositeReporter

// Event payload aliases.
type (
	PrefetchEventData      = reporter.PrefetchEvent
	SeekEventData          = reporter.SeekEvent
	MissEventData          = reporter.MissEvent
	ServiceEventData       = reporter.ServiceEvent
	BufferFullEventData    = reporter.BufferFullEvent
	FetchCompleteEventData = reporter.FetchEvent
	DecodeStartedEventData = reporter.DecodeEvent
)
