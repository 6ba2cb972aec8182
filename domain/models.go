package domain

import (
	"path/filepath"
	"strings"
	"sync"
)

// Track is a single manifest entry: a display title plus the locator of its
// DFPWM byte stream. Tracks are immutable once loaded.
type Track struct {
	Title   string
	Locator string
}

// Remote reports whether the track streams over HTTP rather than from disk.
func (t Track) Remote() bool {
	return RemoteLocator(t.Locator)
}

// RemoteLocator distinguishes URL locators from local paths by scheme prefix.
func RemoteLocator(locator string) bool {
	return strings.HasPrefix(locator, "http://") || strings.HasPrefix(locator, "https://")
}

// Label returns the display name for a track, falling back to the file stem
// when the manifest carried no title.
func (t Track) Label() string {
	if t.Title != "" {
		return t.Title
	}
	base := filepath.Base(t.Locator)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Mode is the playback mode of the engine.
type Mode int

const (
	Stopped Mode = iota
	Paused
	Playing
)

func (m Mode) String() string {
	switch m {
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	default:
		return "stopped"
	}
}

// Intent is a normalized control action, independent of whether it came from
// the keyboard or an external signal line. Each intent is consumed exactly
// once by the playback engine.
type Intent int

const (
	IntentNone Intent = iota
	IntentTogglePlay
	IntentNext
	IntentPrevious
	IntentQuit
)

func (i Intent) String() string {
	switch i {
	case IntentTogglePlay:
		return "toggle-play"
	case IntentNext:
		return "next"
	case IntentPrevious:
		return "previous"
	case IntentQuit:
		return "quit"
	default:
		return "none"
	}
}

// Playlist is the ordered track list loaded once from the manifest. The
// current index always stays within [0, Len) and wraps at both ends.
type Playlist struct {
	tracks []Track
	index  int
}

// NewPlaylist creates a playlist positioned on the first track.
func NewPlaylist(tracks []Track) *Playlist {
	return &Playlist{tracks: tracks}
}

func (p *Playlist) Len() int {
	return len(p.tracks)
}

func (p *Playlist) Index() int {
	return p.index
}

// Current returns the track at the current index.
func (p *Playlist) Current() Track {
	return p.tracks[p.index]
}

// Tracks returns the full track list for display purposes.
func (p *Playlist) Tracks() []Track {
	return p.tracks
}

// Advance moves the index forward, wrapping past the end to the first track,
// and returns the new current track.
func (p *Playlist) Advance() Track {
	p.index = (p.index + 1) % len(p.tracks)
	return p.tracks[p.index]
}

// Retreat moves the index backward, wrapping before the start to the last
// track, and returns the new current track.
func (p *Playlist) Retreat() Track {
	p.index = (p.index - 1 + len(p.tracks)) % len(p.tracks)
	return p.tracks[p.index]
}

// Snapshot is a read-only view of the playback state handed to the UI and
// anything else that must not mutate it.
type Snapshot struct {
	Track  Track
	Index  int
	Total  int
	Mode   Mode
	Status string
}

// PlayerState holds the mutable playback state. The playback engine is its
// only writer; everyone else reads snapshots.
type PlayerState struct {
	mu     sync.RWMutex
	track  Track
	index  int
	total  int
	mode   Mode
	status string
}

// NewPlayerState creates a PlayerState in Stopped mode.
func NewPlayerState(total int) *PlayerState {
	return &PlayerState{mode: Stopped, total: total}
}

// Snapshot returns a copy of the current state (thread-safe).
func (s *PlayerState) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Track:  s.track,
		Index:  s.index,
		Total:  s.total,
		Mode:   s.mode,
		Status: s.status,
	}
}

// Mode returns the current playback mode (thread-safe).
func (s *PlayerState) Mode() Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// SetMode updates the playback mode.
func (s *PlayerState) SetMode(mode Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = mode
}

// SetTrack updates the current track and its playlist index.
func (s *PlayerState) SetTrack(track Track, index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.track = track
	s.index = index
}

// SetStatus sets a transient status message shown to the user until the next
// state change clears it.
func (s *PlayerState) SetStatus(status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
}
