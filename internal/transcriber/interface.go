package transcriber

import (
	"context"

	"github.com/clipscribe/clipscribe/internal/transcript"
)

// Transcriber is the single entry point for turning a video file into a
// structured transcription result.
type Transcriber interface {
	TranscribeVideo(ctx context.Context, videoPath string) (*transcript.Result, error)
}
