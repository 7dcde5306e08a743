package extractor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/clipscribe/clipscribe/internal/logger"
)

// fakeExecutor records invocations and can simulate ffmpeg writing output.
type fakeExecutor struct {
	calls     int
	err       error
	writeSize int
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	// ffmpeg writes to the last argument.
	out := args[len(args)-1]
	if err := os.WriteFile(out, make([]byte, f.writeSize), 0644); err != nil {
		return "", err
	}
	return "", nil
}

func testLogger() logger.Logger {
	return logger.NewWithWriter("error", os.Stderr)
}

func writeVideoFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("not a real video"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExtractFileNotFound(t *testing.T) {
	exec := &fakeExecutor{}
	e := New(t.TempDir(), exec, testLogger())

	_, err := e.Extract(context.Background(), "missing.mp4")
	if !errors.Is(err, ErrFileNotFound) {
		t.Errorf("Extract() error = %v, want ErrFileNotFound", err)
	}
	if exec.calls != 0 {
		t.Errorf("ffmpeg invoked %d times, want 0", exec.calls)
	}
}

func TestExtractUnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	video := writeVideoFile(t, dir, "clip.wmv")

	tempDir := t.TempDir()
	exec := &fakeExecutor{}
	e := New(tempDir, exec, testLogger())

	_, err := e.Extract(context.Background(), video)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Extract() error = %v, want ErrUnsupportedFormat", err)
	}
	if exec.calls != 0 {
		t.Errorf("ffmpeg invoked %d times, want 0", exec.calls)
	}

	// Validation failed before any temp file was created.
	entries, err := os.ReadDir(tempDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("temp dir not empty after format rejection: %v", entries)
	}
}

func TestExtractSuccess(t *testing.T) {
	dir := t.TempDir()
	video := writeVideoFile(t, dir, "clip.mp4")

	exec := &fakeExecutor{writeSize: 1024}
	e := New(t.TempDir(), exec, testLogger())

	audioPath, err := e.Extract(context.Background(), video)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	defer os.Remove(audioPath)

	if filepath.Ext(audioPath) != ".wav" {
		t.Errorf("audio path = %v, want .wav file", audioPath)
	}
	if exec.calls != 1 {
		t.Errorf("ffmpeg invoked %d times, want 1", exec.calls)
	}
	info, err := os.Stat(audioPath)
	if err != nil {
		t.Fatalf("stat audio: %v", err)
	}
	if info.Size() == 0 {
		t.Error("audio file is empty")
	}
}

func TestExtractTranscoderFailure(t *testing.T) {
	dir := t.TempDir()
	video := writeVideoFile(t, dir, "clip.mkv")

	tempDir := t.TempDir()
	exec := &fakeExecutor{err: errors.New("ffmpeg: invalid data found")}
	e := New(tempDir, exec, testLogger())

	_, err := e.Extract(context.Background(), video)
	if !errors.Is(err, ErrExtraction) {
		t.Errorf("Extract() error = %v, want ErrExtraction", err)
	}

	// The failed temp file must not be left behind.
	entries, readErr := os.ReadDir(tempDir)
	if readErr != nil {
		t.Fatal(readErr)
	}
	if len(entries) != 0 {
		t.Errorf("temp dir not cleaned after failure: %v", entries)
	}
}

func TestExtractEmptyOutput(t *testing.T) {
	dir := t.TempDir()
	video := writeVideoFile(t, dir, "clip.mov")

	exec := &fakeExecutor{writeSize: 0}
	e := New(t.TempDir(), exec, testLogger())

	_, err := e.Extract(context.Background(), video)
	if !errors.Is(err, ErrExtraction) {
		t.Errorf("Extract() error = %v, want ErrExtraction for empty output", err)
	}
}

func TestExtractUniqueTempNames(t *testing.T) {
	dir := t.TempDir()
	video := writeVideoFile(t, dir, "clip.mp4")

	exec := &fakeExecutor{writeSize: 16}
	e := New(t.TempDir(), exec, testLogger())

	first, err := e.Extract(context.Background(), video)
	if err != nil {
		t.Fatal(err)
	}
	second, err := e.Extract(context.Background(), video)
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(first)
	defer os.Remove(second)

	if first == second {
		t.Errorf("consecutive extractions used the same temp path: %s", first)
	}
}
