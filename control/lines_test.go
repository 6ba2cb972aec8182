package control

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dfjuke/domain"
)

func TestEdgeDetectorRisingHeldIdle(t *testing.T) {
	t0 := time.Now()
	d := newEdgeDetector(200 * time.Millisecond)

	assert.Equal(t, edgeIdle, d.observe(false, t0))
	assert.Equal(t, edgeRising, d.observe(true, t0.Add(10*time.Millisecond)))
	assert.Equal(t, edgeHeld, d.observe(true, t0.Add(20*time.Millisecond)))
	assert.Equal(t, edgeHeld, d.observe(true, t0.Add(5*time.Second)))
	assert.Equal(t, edgeIdle, d.observe(false, t0.Add(6*time.Second)))
}

func TestEdgeDetectorDebounceWindow(t *testing.T) {
	t0 := time.Now()
	d := newEdgeDetector(200 * time.Millisecond)

	assert.Equal(t, edgeRising, d.observe(true, t0))

	// A bouncing line: drops and re-asserts inside the quiescent window.
	assert.Equal(t, edgeIdle, d.observe(false, t0.Add(50*time.Millisecond)))
	assert.Equal(t, edgeHeld, d.observe(true, t0.Add(100*time.Millisecond)))

	// After the window it may fire again.
	assert.Equal(t, edgeIdle, d.observe(false, t0.Add(150*time.Millisecond)))
	assert.Equal(t, edgeRising, d.observe(true, t0.Add(250*time.Millisecond)))
}

func TestFileProbe(t *testing.T) {
	dir := t.TempDir()
	probe := FileProbe{Dir: dir}

	level, err := probe.Level("next")
	require.NoError(t, err)
	assert.False(t, level, "missing line file reads as deasserted")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "next"), []byte("1\n"), 0o644))
	level, err = probe.Level("next")
	require.NoError(t, err)
	assert.True(t, level)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "next"), []byte("0"), 0o644))
	level, err = probe.Level("next")
	require.NoError(t, err)
	assert.False(t, level)
}

type mapProbe map[string]bool

func (m mapProbe) Level(line string) (bool, error) { return m[line], nil }

func newTestDispatcher(probe LineProbe, submit func(domain.Intent)) *Dispatcher {
	d := NewDispatcher(Config{
		Dir:          "lines",
		Previous:     "prev",
		PlayPause:    "play",
		Next:         "next",
		Debounce:     200 * time.Millisecond,
		PollInterval: 50 * time.Millisecond,
	}, submit)
	d.probe = probe
	return d
}

func TestDispatcherFiresMappedIntentOnRisingEdge(t *testing.T) {
	probe := mapProbe{}
	var got []domain.Intent
	d := newTestDispatcher(probe, func(i domain.Intent) { got = append(got, i) })

	now := time.Now()
	d.now = func() time.Time { return now }

	d.scanAll()
	assert.Empty(t, got)

	probe["next"] = true
	d.check("next")
	assert.Equal(t, []domain.Intent{domain.IntentNext}, got)

	// Held line does not re-fire.
	d.check("next")
	assert.Equal(t, []domain.Intent{domain.IntentNext}, got)

	probe["next"] = false
	d.check("next")
	now = now.Add(time.Second)
	probe["next"] = true
	d.check("next")
	assert.Equal(t, []domain.Intent{domain.IntentNext, domain.IntentNext}, got)
}

func TestDispatcherIgnoresUnmappedLines(t *testing.T) {
	probe := mapProbe{"mystery": true}
	fired := 0
	d := newTestDispatcher(probe, func(domain.Intent) { fired++ })

	d.check("mystery")
	assert.Zero(t, fired)
}

func TestDispatcherMapsAllControls(t *testing.T) {
	probe := mapProbe{"prev": true, "play": true, "next": true}
	got := map[domain.Intent]int{}
	d := newTestDispatcher(probe, func(i domain.Intent) { got[i]++ })

	d.scanAll()
	assert.Equal(t, 1, got[domain.IntentPrevious])
	assert.Equal(t, 1, got[domain.IntentTogglePlay])
	assert.Equal(t, 1, got[domain.IntentNext])
}
