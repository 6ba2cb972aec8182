package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"

	"dfjuke/audio"
	"dfjuke/config"
	"dfjuke/control"
	"dfjuke/domain"
	"dfjuke/engine"
	"dfjuke/manifest"
	"dfjuke/source"
	"dfjuke/ui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "dfjuke: %v\n", err)
		os.Exit(1)
	}

	// Startup failures are the only fatal ones, and they must be reported
	// before any UI comes up.
	tracks, err := manifest.Load(cfg.Manifest.Locator)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dfjuke: %v\n", err)
		os.Exit(1)
	}

	sink, err := audio.NewSpeakerSink(cfg.Audio.SampleRate, cfg.Audio.QueueDepth)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dfjuke: no audio sink: %v\n", err)
		os.Exit(1)
	}
	defer sink.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	eng := engine.New(
		domain.NewPlaylist(tracks),
		source.NewResolver(cfg.Source.BaseDir),
		sink,
		engine.WithChunkSize(cfg.Audio.ChunkSize),
	)

	app := ui.NewApp(ctx, cfg, tracks, eng.Submit, eng.Renders())

	if cfg.Lines.Enabled {
		dispatcher := control.NewDispatcher(control.Config{
			Dir:          cfg.Lines.Dir,
			Previous:     cfg.Lines.Previous,
			PlayPause:    cfg.Lines.PlayPause,
			Next:         cfg.Lines.Next,
			Debounce:     cfg.Lines.GetDebounce(),
			PollInterval: cfg.Lines.GetPollInterval(),
		}, eng.Submit)
		go func() {
			if err := dispatcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("line dispatcher stopped: %v", err)
			}
		}()
	}

	engineDone := make(chan error, 1)
	go func() {
		engineDone <- eng.Run(ctx)
	}()

	// A Quit intent ends the engine loop; take the UI down with it.
	go func() {
		<-engineDone
		app.Stop()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigChan:
			eng.Submit(domain.IntentQuit)
		case <-ctx.Done():
		}
	}()

	runErr := app.Run()

	// The engine guarantees the source handle is released on every exit
	// path; cancelling covers the case where the UI died on its own.
	cancel()

	if runErr != nil {
		log.Printf("ui exited with error: %v", runErr)
		os.Exit(1)
	}
}
