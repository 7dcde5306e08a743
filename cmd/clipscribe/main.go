package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/clipscribe/clipscribe/internal/config"
	"github.com/clipscribe/clipscribe/internal/deepgram"
	"github.com/clipscribe/clipscribe/internal/export"
	"github.com/clipscribe/clipscribe/internal/extractor"
	"github.com/clipscribe/clipscribe/internal/logger"
	"github.com/clipscribe/clipscribe/internal/store"
	"github.com/clipscribe/clipscribe/internal/transcriber"
	"github.com/clipscribe/clipscribe/internal/transcript"
	"github.com/clipscribe/clipscribe/internal/watcher"
	"github.com/clipscribe/clipscribe/pkg/executor"
)

func main() {
	var (
		configPath string
		videoPath  string
		keywords   string
		watchMode  bool
	)

	flag.StringVar(&configPath, "config", "config.yaml", "Path to YAML config file")
	flag.StringVar(&videoPath, "video", "", "Video file to transcribe")
	flag.StringVar(&keywords, "find", "", "Comma-separated keywords to search for (requires -video)")
	flag.BoolVar(&watchMode, "watch", false, "Watch the input directory for new videos")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level)
	ctx := context.Background()

	app, err := newApp(cfg, log)
	if err != nil {
		log.Error(ctx, "Startup failed: %v", err)
		os.Exit(1)
	}
	defer app.store.Close()

	switch {
	case watchMode:
		err = app.watch(ctx, cfg)
	case videoPath != "" && keywords != "":
		err = app.find(ctx, videoPath, splitKeywords(keywords))
	case videoPath != "":
		err = app.transcribeOne(ctx, videoPath)
	default:
		flag.Usage()
		os.Exit(2)
	}

	if err != nil {
		log.Error(ctx, "%v", err)
		os.Exit(1)
	}
}

type app struct {
	cfg         *config.Config
	logger      logger.Logger
	transcriber transcriber.Transcriber
	store       store.Store
}

// newApp wires the pipeline. A missing provider credential fails here,
// before any video is touched.
func newApp(cfg *config.Config, log logger.Logger) (*app, error) {
	client, err := deepgram.New(deepgram.Config{
		APIKey:  cfg.Deepgram.APIKey,
		Model:   cfg.Deepgram.Model,
		Timeout: time.Duration(cfg.Deepgram.TimeoutSeconds) * time.Second,
	}, log)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(cfg.Paths.Temp, 0755); err != nil {
		return nil, fmt.Errorf("create temp directory: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Paths.Database), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	st, err := store.New(cfg.Paths.Database)
	if err != nil {
		return nil, err
	}

	ext := extractor.New(cfg.Paths.Temp, executor.New(), log)
	tr := transcriber.New(ext, client, cfg.Formatter.GapThreshold, log)

	return &app{cfg: cfg, logger: log, transcriber: tr, store: st}, nil
}

// transcribe returns the result for a video, serving it from the store
// when the content hash is already known.
func (a *app) transcribe(ctx context.Context, videoPath string) (*transcript.Result, error) {
	hash, err := store.HashFile(videoPath)
	if err != nil {
		// An unreadable file surfaces through the extractor's own
		// validation instead.
		return a.transcriber.TranscribeVideo(ctx, videoPath)
	}

	if cached, found, err := a.store.GetByHash(ctx, hash); err == nil && found {
		a.logger.Info(ctx, "Serving %s from store (hash %.12s...)", videoPath, hash)
		return cached, nil
	}

	result, err := a.transcriber.TranscribeVideo(ctx, videoPath)
	if err != nil {
		return nil, err
	}
	if err := a.store.Save(ctx, filepath.Base(videoPath), hash, result); err != nil {
		a.logger.Warn(ctx, "Failed to store transcription: %v", err)
	}
	return result, nil
}

// transcribeOne handles a single video and writes JSON and docx outputs.
func (a *app) transcribeOne(ctx context.Context, videoPath string) error {
	result, err := a.transcribe(ctx, videoPath)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(a.cfg.Paths.Output, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath))
	jsonPath := filepath.Join(a.cfg.Paths.Output, base+".json")
	docxPath := filepath.Join(a.cfg.Paths.Output, base+".docx")

	if err := export.WriteJSON(result, jsonPath); err != nil {
		return err
	}
	if err := export.WriteDocx(result, filepath.Base(videoPath), docxPath); err != nil {
		return err
	}

	a.logger.Info(ctx, "Wrote %s and %s", jsonPath, docxPath)
	return nil
}

// find prints the time ranges matching the keywords as JSON on stdout.
func (a *app) find(ctx context.Context, videoPath string, keywords []string) error {
	result, err := a.transcribe(ctx, videoPath)
	if err != nil {
		return err
	}

	ranges := transcript.FindTimeRangesOpts(result.Words, keywords, transcript.SearchOptions{
		BridgeDistance: a.cfg.Formatter.BridgeDistance,
		ContextWords:   a.cfg.Formatter.ContextWords,
	})

	out, err := json.MarshalIndent(ranges, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal time ranges: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// watch runs the directory watcher until interrupted.
func (a *app) watch(ctx context.Context, cfg *config.Config) error {
	for _, dir := range []string{cfg.Paths.Input, cfg.Paths.Output} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	w, err := watcher.New(cfg.Paths.Input, a.handleVideo, a.logger, cfg.Performance.MaxConcurrent)
	if err != nil {
		return err
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := w.Start(ctx); err != nil && err != context.Canceled {
			errChan <- err
		}
	}()

	a.logger.Info(ctx, "clipscribe is ready. Monitoring: %s", cfg.Paths.Input)
	a.logger.Info(ctx, "Press Ctrl+C to stop")

	select {
	case <-sigChan:
		a.logger.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		return err
	}

	cancel()
	return nil
}

func (a *app) handleVideo(ctx context.Context, videoPath string) error {
	return a.transcribeOne(ctx, videoPath)
}

func splitKeywords(s string) []string {
	parts := strings.Split(s, ",")
	keywords := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			keywords = append(keywords, p)
		}
	}
	return keywords
}
