package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlaylistWraparound(t *testing.T) {
	p := NewPlaylist([]Track{
		{Title: "one", Locator: "one.dfpwm"},
		{Title: "two", Locator: "two.dfpwm"},
		{Title: "three", Locator: "three.dfpwm"},
	})

	assert.Equal(t, 0, p.Index())
	assert.Equal(t, "two", p.Advance().Title)
	assert.Equal(t, "three", p.Advance().Title)

	// Past the end wraps to the first track.
	assert.Equal(t, "one", p.Advance().Title)
	assert.Equal(t, 0, p.Index())

	// Before the start wraps to the last track.
	assert.Equal(t, "three", p.Retreat().Title)
	assert.Equal(t, 2, p.Index())
}

func TestPlaylistIndexStaysInRange(t *testing.T) {
	p := NewPlaylist([]Track{{Title: "a"}, {Title: "b"}, {Title: "c"}})

	moves := []func() Track{p.Advance, p.Advance, p.Retreat, p.Retreat, p.Retreat, p.Advance}
	for _, move := range moves {
		move()
		assert.GreaterOrEqual(t, p.Index(), 0)
		assert.Less(t, p.Index(), p.Len())
	}
}

func TestTrackRemote(t *testing.T) {
	assert.True(t, Track{Locator: "http://example.com/a.dfpwm"}.Remote())
	assert.True(t, Track{Locator: "https://example.com/a.dfpwm"}.Remote())
	assert.False(t, Track{Locator: "songs/a.dfpwm"}.Remote())
	assert.False(t, Track{Locator: "httpd/a.dfpwm"}.Remote())
}

func TestTrackLabel(t *testing.T) {
	assert.Equal(t, "My Song", Track{Title: "My Song", Locator: "x.dfpwm"}.Label())
	assert.Equal(t, "velvet", Track{Locator: "songs/velvet.dfpwm"}.Label())
}

func TestPlayerStateSnapshot(t *testing.T) {
	s := NewPlayerState(3)
	snap := s.Snapshot()
	assert.Equal(t, Stopped, snap.Mode)
	assert.Equal(t, 3, snap.Total)

	s.SetTrack(Track{Title: "one"}, 1)
	s.SetMode(Playing)
	s.SetStatus("ok")

	snap = s.Snapshot()
	assert.Equal(t, "one", snap.Track.Title)
	assert.Equal(t, 1, snap.Index)
	assert.Equal(t, Playing, snap.Mode)
	assert.Equal(t, "ok", snap.Status)
}
