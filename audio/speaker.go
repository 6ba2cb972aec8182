package audio

import (
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"github.com/pkg/errors"
)

// SpeakerSink plays mono frames through the system speaker. It is a
// beep.Streamer fed from a bounded channel; when the engine outruns the
// speaker the channel fills and Enqueue reports ErrSinkFull, and when the
// speaker outruns the engine the stream pads with silence instead of
// glitching.
type SpeakerSink struct {
	frames chan []float32
	ready  chan struct{}

	mu     sync.Mutex
	cur    []float32
	pos    int
	closed bool
}

var speakerOnce sync.Once

// NewSpeakerSink initializes the speaker at the given sample rate and starts
// streaming. queueDepth bounds how many decoded frames may sit between the
// engine and the speaker; smaller values keep pause/skip snappier.
func NewSpeakerSink(sampleRate, queueDepth int) (*SpeakerSink, error) {
	sr := beep.SampleRate(sampleRate)
	var initErr error
	speakerOnce.Do(func() {
		initErr = speaker.Init(sr, sr.N(time.Second/10))
	})
	if initErr != nil {
		return nil, errors.Wrap(initErr, "init speaker")
	}

	s := &SpeakerSink{
		frames: make(chan []float32, queueDepth),
		ready:  make(chan struct{}, 1),
	}
	speaker.Play(s)
	return s, nil
}

// Enqueue implements Sink.
func (s *SpeakerSink) Enqueue(frame []float32) error {
	select {
	case s.frames <- frame:
		return nil
	default:
		return ErrSinkFull
	}
}

// Ready implements Sink.
func (s *SpeakerSink) Ready() <-chan struct{} {
	return s.ready
}

// Close implements Sink. Queued frames are dropped.
func (s *SpeakerSink) Close() error {
	speaker.Clear()
	return s.closeQueue()
}

func (s *SpeakerSink) closeQueue() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.cur = nil
	s.mu.Unlock()

	for {
		select {
		case <-s.frames:
		default:
			return nil
		}
	}
}

// Stream implements beep.Streamer. Called from the speaker goroutine.
func (s *SpeakerSink) Stream(samples [][2]float64) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, false
	}

	for i := range samples {
		if s.pos >= len(s.cur) && !s.refill() {
			samples[i] = [2]float64{}
			continue
		}
		v := float64(s.cur[s.pos])
		s.pos++
		samples[i] = [2]float64{v, v}
	}
	return len(samples), true
}

// refill makes a non-empty frame current, reporting false when the queue is
// drained. Caller holds s.mu.
func (s *SpeakerSink) refill() bool {
	for {
		select {
		case f := <-s.frames:
			// A slot just freed; wake a waiting producer.
			select {
			case s.ready <- struct{}{}:
			default:
			}
			if len(f) == 0 {
				continue
			}
			s.cur, s.pos = f, 0
			return true
		default:
			return false
		}
	}
}

// Err implements beep.Streamer.
func (s *SpeakerSink) Err() error {
	return nil
}

var _ Sink = (*SpeakerSink)(nil)
var _ beep.Streamer = (*SpeakerSink)(nil)
