package ui

import (
	"strings"
	"testing"

	"dfjuke/domain"
)

func TestSourceBadge(t *testing.T) {
	if got := SourceBadge(domain.Track{Locator: "http://h/x.dfpwm"}); got != "remote" {
		t.Errorf("expected remote badge, got %q", got)
	}
	if got := SourceBadge(domain.Track{Locator: "songs/x.dfpwm"}); got != "local" {
		t.Errorf("expected local badge, got %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 40); got != "short" {
		t.Errorf("expected unchanged string, got %q", got)
	}
	if got := Truncate("a very long track title indeed", 10); got != "a very ..." {
		t.Errorf("unexpected truncation: %q", got)
	}
	if got := Truncate("anything", 0); got != "anything" {
		t.Errorf("zero max should disable truncation, got %q", got)
	}
}

func TestFormatNowPlayingIncludesStatus(t *testing.T) {
	snap := domain.Snapshot{
		Track:  domain.Track{Title: "Neon", Locator: "neon.dfpwm"},
		Index:  1,
		Total:  3,
		Mode:   domain.Stopped,
		Status: "file error: neon.dfpwm not found",
	}

	text := FormatNowPlaying(snap)
	if !strings.Contains(text, "Track 2/3") {
		t.Errorf("expected 1-based track position, got: %s", text)
	}
	if !strings.Contains(text, "file error: neon.dfpwm not found") {
		t.Errorf("expected status message in output, got: %s", text)
	}
}

func TestFormatNowPlayingOmitsEmptyStatus(t *testing.T) {
	snap := domain.Snapshot{
		Track: domain.Track{Title: "Neon", Locator: "neon.dfpwm"},
		Total: 1,
		Mode:  domain.Playing,
	}

	if strings.Contains(FormatNowPlaying(snap), "[red]") {
		t.Error("no error color expected without a status message")
	}
}
