// Package engine drives playback: it owns the playlist position and the
// playback mode, pulls bytes from the current source, decodes them, and
// feeds the audio sink, while staying responsive to control intents.
//
// Everything runs on a single goroutine (Run). The only two blocking points
// are waiting for an intent while not playing and waiting for sink capacity
// while playing, and both wake on intents and on context cancellation, so a
// pause, skip or quit is serviced within one chunk.
package engine

import (
	"context"
	"io"
	"log"

	"github.com/pkg/errors"

	"dfjuke/audio"
	"dfjuke/dfpwm"
	"dfjuke/domain"
	"dfjuke/source"
)

// DefaultChunkSize is how many source bytes are read per loop pass. Small
// enough that one chunk's playback time bounds control latency.
const DefaultChunkSize = 3072

// Decoder turns a chunk of codec bytes into playable samples. A decoder is
// only ever fed bytes from the one stream it was created for.
type Decoder interface {
	Decode(chunk []byte) []float32
}

// DecoderFactory creates a fresh decoder for a newly opened source.
type DecoderFactory func() Decoder

var errQuit = errors.New("quit requested")

type activeTrack struct {
	handle  source.Handle
	decoder Decoder
	locator string
}

// Engine is the playback state machine. Create one with New and run it with
// Run; feed it intents with Submit and watch Renders for state changes.
type Engine struct {
	playlist   *domain.Playlist
	state      *domain.PlayerState
	opener     source.Opener
	sink       audio.Sink
	newDecoder DecoderFactory
	chunk      []byte

	intents chan domain.Intent
	renders chan domain.Snapshot

	// non-nil exactly while mode is Playing and a track is mid-stream
	active *activeTrack
}

// Option configures an Engine.
type Option func(*Engine)

// WithChunkSize overrides DefaultChunkSize.
func WithChunkSize(n int) Option {
	return func(e *Engine) {
		e.chunk = make([]byte, n)
	}
}

// WithDecoderFactory overrides the DFPWM decoder, mainly for tests.
func WithDecoderFactory(f DecoderFactory) Option {
	return func(e *Engine) {
		e.newDecoder = f
	}
}

// New wires an engine over its collaborators. The playlist must be non-empty.
func New(playlist *domain.Playlist, opener source.Opener, sink audio.Sink, opts ...Option) *Engine {
	e := &Engine{
		playlist: playlist,
		state:    domain.NewPlayerState(playlist.Len()),
		opener:   opener,
		sink:     sink,
		newDecoder: func() Decoder {
			return dfpwm.New()
		},
		chunk:   make([]byte, DefaultChunkSize),
		intents: make(chan domain.Intent, 16),
		renders: make(chan domain.Snapshot, 32),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.state.SetTrack(playlist.Current(), playlist.Index())
	return e
}

// Submit queues an intent for the engine. Safe from any goroutine.
func (e *Engine) Submit(intent domain.Intent) {
	e.intents <- intent
}

// Renders delivers a snapshot after every state change. The channel is
// buffered; if a consumer lags, intermediate snapshots are dropped rather
// than stalling playback.
func (e *Engine) Renders() <-chan domain.Snapshot {
	return e.renders
}

// Snapshot returns the current playback state.
func (e *Engine) Snapshot() domain.Snapshot {
	return e.state.Snapshot()
}

// Run executes the control loop until a Quit intent or context cancellation.
// The open source handle, if any, is released on every return path.
func (e *Engine) Run(ctx context.Context) error {
	defer e.release()
	e.notify()

	for {
		// Pending intents always go first so control stays ahead of decode.
		select {
		case intent := <-e.intents:
			if e.apply(intent) {
				return nil
			}
			continue
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if e.state.Mode() != domain.Playing {
			// Idle: sleep until anything relevant happens.
			select {
			case intent := <-e.intents:
				if e.apply(intent) {
					return nil
				}
			case <-ctx.Done():
				return ctx.Err()
			}
			continue
		}

		if err := e.step(ctx); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			return err
		}
	}
}

// step performs one read-decode-emit pass over the active track.
func (e *Engine) step(ctx context.Context) error {
	owner := e.active
	n, err := owner.handle.Read(e.chunk)
	if n > 0 {
		frame := owner.decoder.Decode(e.chunk[:n])
		if emitErr := e.emit(ctx, frame); emitErr != nil {
			return emitErr
		}
		if e.active != owner {
			// An intent applied mid-emit already ended or replaced this
			// track; its end-of-stream no longer means anything.
			return nil
		}
	}
	if err != nil {
		if !errors.Is(err, io.EOF) {
			// Mid-stream failures end the track, they do not kill the engine.
			log.Printf("engine: read %s: %v, treating as end of track", owner.locator, err)
		}
		e.release()
		e.startTrack(e.playlist.Advance())
		e.notify()
	}
	return nil
}

// emit hands a frame to the sink, suspending on sink capacity. The wait
// stays preemptable: an intent arriving mid-suspension is applied
// immediately, and if it ended or switched the active track the stale frame
// is dropped.
func (e *Engine) emit(ctx context.Context, frame []float32) error {
	owner := e.active
	for {
		err := e.sink.Enqueue(frame)
		if err == nil {
			return nil
		}
		if !errors.Is(err, audio.ErrSinkFull) {
			log.Printf("engine: sink rejected frame: %v", err)
			return nil
		}

		select {
		case <-e.sink.Ready():
		case intent := <-e.intents:
			if e.apply(intent) {
				return errQuit
			}
			if e.active != owner {
				return nil
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// apply executes one intent and reports whether it was Quit.
func (e *Engine) apply(intent domain.Intent) bool {
	switch intent {
	case domain.IntentTogglePlay:
		e.togglePlay()
	case domain.IntentNext:
		e.skip(true)
	case domain.IntentPrevious:
		e.skip(false)
	case domain.IntentQuit:
		e.release()
		e.state.SetMode(domain.Stopped)
		e.notify()
		return true
	default:
		// Unrecognized intents are ignored, not errors.
	}
	return false
}

// togglePlay pauses active playback or (re)starts the current track. Pausing
// drops the source handle, so resuming restarts the track from the top; no
// byte-offset resume is attempted.
func (e *Engine) togglePlay() {
	if e.state.Mode() == domain.Playing {
		e.release()
		e.state.SetMode(domain.Paused)
		e.state.SetStatus("")
		e.notify()
		return
	}
	e.startTrack(e.playlist.Current())
	e.notify()
}

// skip releases the active track before moving the index, then reopens
// synchronously when playback was running so the audible gap is bounded by
// this call.
func (e *Engine) skip(forward bool) {
	wasPlaying := e.state.Mode() == domain.Playing
	e.release()

	var track domain.Track
	if forward {
		track = e.playlist.Advance()
	} else {
		track = e.playlist.Retreat()
	}

	if wasPlaying {
		e.startTrack(track)
	} else {
		e.state.SetTrack(track, e.playlist.Index())
		e.state.SetStatus("")
	}
	e.notify()
}

// startTrack opens the track's source and a fresh decoder. On failure the
// engine stays non-playing and the failure is surfaced as a status message.
func (e *Engine) startTrack(track domain.Track) {
	e.state.SetTrack(track, e.playlist.Index())

	handle, err := e.opener.Open(track.Locator)
	if err != nil {
		log.Printf("engine: open %s: %v", track.Locator, err)
		e.state.SetMode(domain.Stopped)
		e.state.SetStatus(source.Describe(track.Locator, err))
		return
	}

	e.active = &activeTrack{
		handle:  handle,
		decoder: e.newDecoder(),
		locator: track.Locator,
	}
	e.state.SetMode(domain.Playing)
	e.state.SetStatus("")
}

// release closes the active handle, if any. Safe to call on any exit path.
func (e *Engine) release() {
	if e.active == nil {
		return
	}
	if err := e.active.handle.Close(); err != nil {
		log.Printf("engine: close %s: %v", e.active.locator, err)
	}
	e.active = nil
}

// notify publishes the current snapshot without ever blocking the loop.
func (e *Engine) notify() {
	select {
	case e.renders <- e.state.Snapshot():
	default:
	}
}
