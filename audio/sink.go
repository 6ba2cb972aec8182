// Package audio is the playback engine's outlet: a bounded queue of decoded
// frames drained by the speaker. Enqueue never blocks; when the queue is full
// the engine waits on Ready, which keeps it free to notice control intents.
package audio

import "github.com/pkg/errors"

// ErrSinkFull is returned by Enqueue when the frame queue is at capacity.
// It is never fatal: wait on Ready and retry.
var ErrSinkFull = errors.New("audio: sink full")

// Sink accepts one decoded frame per Enqueue call.
type Sink interface {
	// Enqueue hands a frame to the sink, or returns ErrSinkFull without
	// blocking when no capacity is free.
	Enqueue(frame []float32) error

	// Ready signals when queue capacity has freed after a full Enqueue.
	Ready() <-chan struct{}

	// Close stops output and discards queued frames.
	Close() error
}
