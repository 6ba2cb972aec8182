package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Load reads the configuration from config.toml and returns a Config struct.
// A missing config file is not an error: the jukebox runs on defaults from
// whatever directory holds its manifest.
func Load() (*Config, error) {
	// Set config file properties
	viper.SetConfigName("config")
	viper.SetConfigType("toml")
	viper.AddConfigPath("$HOME/.config/dfjuke/")
	viper.AddConfigPath(".")

	// Set defaults from DefaultConfig
	defaults := DefaultConfig()
	viper.SetDefault("manifest.locator", defaults.Manifest.Locator)
	viper.SetDefault("source.base_dir", defaults.Source.BaseDir)
	viper.SetDefault("audio.sample_rate", defaults.Audio.SampleRate)
	viper.SetDefault("audio.chunk_size", defaults.Audio.ChunkSize)
	viper.SetDefault("audio.queue_depth", defaults.Audio.QueueDepth)
	viper.SetDefault("lines.enabled", defaults.Lines.Enabled)
	viper.SetDefault("lines.dir", defaults.Lines.Dir)
	viper.SetDefault("lines.poll_interval_ms", defaults.Lines.PollIntervalMs)
	viper.SetDefault("lines.debounce_ms", defaults.Lines.DebounceMs)
	viper.SetDefault("lines.previous", defaults.Lines.Previous)
	viper.SetDefault("lines.play_pause", defaults.Lines.PlayPause)
	viper.SetDefault("lines.next", defaults.Lines.Next)
	viper.SetDefault("ui.max_column_width", defaults.UI.MaxColumnWidth)

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Unmarshal into Config struct
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Audio.ChunkSize <= 0 {
		return nil, fmt.Errorf("audio.chunk_size must be positive, got %d", cfg.Audio.ChunkSize)
	}
	if cfg.Audio.QueueDepth <= 0 {
		return nil, fmt.Errorf("audio.queue_depth must be positive, got %d", cfg.Audio.QueueDepth)
	}
	if cfg.Audio.SampleRate <= 0 {
		return nil, fmt.Errorf("audio.sample_rate must be positive, got %d", cfg.Audio.SampleRate)
	}

	return &cfg, nil
}
