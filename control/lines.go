// Package control turns level-triggered external signal lines into playback
// intents. Each logical control (previous, play/pause, next) maps to a named
// line file in a watched directory; a line reads as asserted when its file
// contains a non-zero value, GPIO style. Keyboard input needs none of this
// and is dispatched directly by the UI key bindings.
package control

import (
	"bytes"
	"context"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"

	"dfjuke/domain"
)

// edge classifies one observation of a line level.
type edge int

const (
	edgeIdle edge = iota
	edgeRising
	edgeHeld
)

// edgeDetector tracks one line's level across observations. A rising edge
// only fires again after the level has dropped and the quiescent window has
// passed since the last fire, which keeps a held or bouncing line from
// storming the engine with intents.
type edgeDetector struct {
	window    time.Duration
	level     bool
	lastFired time.Time
}

func newEdgeDetector(window time.Duration) *edgeDetector {
	return &edgeDetector{window: window}
}

func (d *edgeDetector) observe(level bool, now time.Time) edge {
	defer func() { d.level = level }()

	if !level {
		return edgeIdle
	}
	if d.level {
		return edgeHeld
	}
	if !d.lastFired.IsZero() && now.Sub(d.lastFired) < d.window {
		return edgeHeld
	}
	d.lastFired = now
	return edgeRising
}

// LineProbe answers level queries for named lines.
type LineProbe interface {
	Level(line string) (bool, error)
}

// FileProbe reads line levels from files in a directory: missing file or a
// leading '0' means deasserted, anything else asserted.
type FileProbe struct {
	Dir string
}

func (p FileProbe) Level(line string) (bool, error) {
	data, err := os.ReadFile(filepath.Join(p.Dir, line))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrapf(err, "read line %s", line)
	}
	data = bytes.TrimSpace(data)
	return len(data) > 0 && data[0] != '0', nil
}

// Dispatcher watches signal lines and submits the mapped intent on each
// rising edge. Lines are re-checked on filesystem events and on a fallback
// poll tick, so it works both where writes generate events and where they
// do not.
type Dispatcher struct {
	dir          string
	probe        LineProbe
	submit       func(domain.Intent)
	pollInterval time.Duration
	now          func() time.Time

	// line file name -> intent, with one detector per line
	mapping   map[string]domain.Intent
	detectors map[string]*edgeDetector
}

// Config maps logical controls to line file names inside Dir.
type Config struct {
	Dir          string
	Previous     string
	PlayPause    string
	Next         string
	Debounce     time.Duration
	PollInterval time.Duration
}

// NewDispatcher builds a dispatcher delivering intents through submit.
// Controls with an empty line name are left unmapped.
func NewDispatcher(cfg Config, submit func(domain.Intent)) *Dispatcher {
	d := &Dispatcher{
		dir:          cfg.Dir,
		probe:        FileProbe{Dir: cfg.Dir},
		submit:       submit,
		pollInterval: cfg.PollInterval,
		now:          time.Now,
		mapping:      make(map[string]domain.Intent),
		detectors:    make(map[string]*edgeDetector),
	}
	for line, intent := range map[string]domain.Intent{
		cfg.Previous:  domain.IntentPrevious,
		cfg.PlayPause: domain.IntentTogglePlay,
		cfg.Next:      domain.IntentNext,
	} {
		if line == "" {
			continue
		}
		d.mapping[line] = intent
		d.detectors[line] = newEdgeDetector(cfg.Debounce)
	}
	return d
}

// Run watches the line directory until the context is cancelled.
func (d *Dispatcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "create line watcher")
	}
	defer watcher.Close()

	if err := watcher.Add(d.dir); err != nil {
		return errors.Wrapf(err, "watch line dir %s", d.dir)
	}

	ticker := time.NewTicker(d.pollInterval)
	defer ticker.Stop()

	d.scanAll()
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				d.check(filepath.Base(event.Name))
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("control: watcher: %v", err)
		case <-ticker.C:
			d.scanAll()
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (d *Dispatcher) scanAll() {
	for line := range d.mapping {
		d.check(line)
	}
}

// check samples one line and fires its intent on a rising edge. Events for
// unmapped files are ignored.
func (d *Dispatcher) check(line string) {
	detector, ok := d.detectors[line]
	if !ok {
		return
	}
	level, err := d.probe.Level(line)
	if err != nil {
		log.Printf("control: %v", err)
		return
	}
	if detector.observe(level, d.now()) == edgeRising {
		d.submit(d.mapping[line])
	}
}
