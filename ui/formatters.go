package ui

import (
	"fmt"

	"dfjuke/domain"
)

// SourceBadge renders where a track streams from.
func SourceBadge(track domain.Track) string {
	if track.Remote() {
		return "remote"
	}
	return "local"
}

// FormatNowPlaying creates the status panel text for a snapshot.
func FormatNowPlaying(snap domain.Snapshot) string {
	var line string
	switch snap.Mode {
	case domain.Playing:
		line = fmt.Sprintf("[lightgreen]%s", snap.Track.Label())
	case domain.Paused:
		line = fmt.Sprintf("[yellow]%s [darkgray](paused)", snap.Track.Label())
	default:
		line = fmt.Sprintf("[gray]%s [darkgray](stopped)", snap.Track.Label())
	}

	status := ""
	if snap.Status != "" {
		status = fmt.Sprintf("\n[red]%s", snap.Status)
	}

	return fmt.Sprintf(`
[white]Track %d/%d:
%s

[darkgray][source] %s
[darkgray][locator] %s%s

[darkgray] SPACE (play/pause)
[darkgray] n/p or arrows (next/prev)
[darkgray] ? (help)
[darkgray] q/ESC (quit)`,
		snap.Index+1, snap.Total, line,
		SourceBadge(snap.Track), snap.Track.Locator, status)
}

// CreateWelcomeMessage creates the startup screen message
func CreateWelcomeMessage(totalSongs int) string {
	return fmt.Sprintf(`
[lightgreen] dfjuke
[darkgray][play] Ready to Play Music!
[darkgray][source] manifest.json

[gray]  SPACE (play/pause)
[gray]  N/P or arrows (next/prev)
[gray]  ? (help) | q or ESC to exit

[darkgray]// %d songs loaded
[darkgray]// Auto-advance enabled`, totalSongs)
}

// Truncate shortens a string for a table column.
func Truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
