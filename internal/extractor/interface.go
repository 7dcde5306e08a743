package extractor

import "context"

// Extractor produces a temporary audio file from a video file.
// The caller owns the returned path and must remove it when done.
type Extractor interface {
	Extract(ctx context.Context, videoPath string) (string, error)
}
