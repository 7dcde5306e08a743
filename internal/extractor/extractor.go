package extractor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrFileNotFound indicates the video path does not exist.
	ErrFileNotFound = errors.New("video file not found")
	// ErrUnsupportedFormat indicates the video extension is not in the
	// allow-list. No external process is invoked in this case.
	ErrUnsupportedFormat = errors.New("unsupported video format")
	// ErrExtraction indicates the transcoder exited non-zero or produced
	// no output.
	ErrExtraction = errors.New("audio extraction failed")
)

// supportedFormats is the fixed allow-list of video container extensions.
var supportedFormats = map[string]bool{
	".mp4": true,
	".avi": true,
	".mov": true,
	".mkv": true,
}

// SupportedFormats returns the allow-list as a sorted, comma-joined string
// for error messages and usage text.
func SupportedFormats() string {
	return ".avi, .mkv, .mov, .mp4"
}

// Extract validates the video file, then runs ffmpeg to produce a 16kHz
// mono PCM WAV suited for speech recognition. The temp file name is unique
// per call so concurrent extractions cannot collide.
func (e *implExtractor) Extract(ctx context.Context, videoPath string) (string, error) {
	if _, err := os.Stat(videoPath); err != nil {
		return "", fmt.Errorf("%w: %s", ErrFileNotFound, videoPath)
	}

	ext := strings.ToLower(filepath.Ext(videoPath))
	if !supportedFormats[ext] {
		return "", fmt.Errorf("%w: %s (supported: %s)", ErrUnsupportedFormat, ext, SupportedFormats())
	}

	tmp, err := os.CreateTemp(e.tempDir, "clipscribe-*.wav")
	if err != nil {
		return "", fmt.Errorf("create temp audio file: %w", err)
	}
	audioPath := tmp.Name()
	tmp.Close()

	e.logger.Info(ctx, "Extracting audio: %s -> %s", videoPath, audioPath)

	// -vn: drop video
	// -acodec pcm_s16le: uncompressed 16-bit PCM
	// -ar 16000 -ac 1: 16kHz mono, the rate speech models expect
	// -y: overwrite the pre-created temp file
	args := []string{
		"-i", videoPath,
		"-vn",
		"-acodec", "pcm_s16le",
		"-ar", "16000",
		"-ac", "1",
		"-y",
		audioPath,
	}

	if _, err := e.executor.Execute(ctx, "ffmpeg", args...); err != nil {
		e.removeTemp(ctx, audioPath)
		return "", fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	info, err := os.Stat(audioPath)
	if err != nil || info.Size() == 0 {
		e.removeTemp(ctx, audioPath)
		return "", fmt.Errorf("%w: output file was not created or is empty", ErrExtraction)
	}

	e.logger.Info(ctx, "Audio extracted: %s (%d bytes)", audioPath, info.Size())
	return audioPath, nil
}

func (e *implExtractor) removeTemp(ctx context.Context, path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		e.logger.Warn(ctx, "Failed to remove temp audio %s: %v", path, err)
	}
}
