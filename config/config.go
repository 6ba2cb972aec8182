package config

import "time"

// Config represents the complete application configuration
type Config struct {
	Manifest ManifestConfig `mapstructure:"manifest"`
	Source   SourceConfig   `mapstructure:"source"`
	Audio    AudioConfig    `mapstructure:"audio"`
	Lines    LinesConfig    `mapstructure:"lines"`
	UI       UIConfig       `mapstructure:"ui"`
}

// ManifestConfig locates the track manifest
type ManifestConfig struct {
	Locator string `mapstructure:"locator"` // local path or URL
}

// SourceConfig contains byte-source resolution settings
type SourceConfig struct {
	BaseDir string `mapstructure:"base_dir"` // fallback root for local locators
}

// AudioConfig contains decode and playback settings
type AudioConfig struct {
	SampleRate int `mapstructure:"sample_rate"`
	ChunkSize  int `mapstructure:"chunk_size"`  // bytes read per engine pass
	QueueDepth int `mapstructure:"queue_depth"` // frames buffered at the sink
}

// LinesConfig contains external signal line settings
type LinesConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	Dir            string `mapstructure:"dir"`
	PollIntervalMs int    `mapstructure:"poll_interval_ms"`
	DebounceMs     int    `mapstructure:"debounce_ms"`
	Previous       string `mapstructure:"previous"`
	PlayPause      string `mapstructure:"play_pause"`
	Next           string `mapstructure:"next"`
}

// UIConfig contains user interface settings
type UIConfig struct {
	MaxColumnWidth int `mapstructure:"max_column_width"`
}

// GetPollInterval returns the line poll interval as a time.Duration
func (l *LinesConfig) GetPollInterval() time.Duration {
	return time.Duration(l.PollIntervalMs) * time.Millisecond
}

// GetDebounce returns the line debounce window as a time.Duration
func (l *LinesConfig) GetDebounce() time.Duration {
	return time.Duration(l.DebounceMs) * time.Millisecond
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		Manifest: ManifestConfig{
			Locator: "manifest.json",
		},
		Audio: AudioConfig{
			SampleRate: 48000,
			ChunkSize:  3072,
			QueueDepth: 8,
		},
		Lines: LinesConfig{
			Enabled:        false,
			Dir:            "lines",
			PollIntervalMs: 50,
			DebounceMs:     200,
			Previous:       "prev",
			PlayPause:      "play",
			Next:           "next",
		},
		UI: UIConfig{
			MaxColumnWidth: 40,
		},
	}
}
