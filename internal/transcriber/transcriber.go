package transcriber

import (
	"context"
	"os"

	"github.com/clipscribe/clipscribe/internal/deepgram"
	"github.com/clipscribe/clipscribe/internal/transcript"
)

// TranscribeVideo runs the full pipeline: extract temp audio, send it to
// the provider, normalize and segment the response, assemble the result.
// Errors from any step propagate unchanged. The temporary audio file is
// removed on every exit path, including cancellation.
func (t *implTranscriber) TranscribeVideo(ctx context.Context, videoPath string) (*transcript.Result, error) {
	t.logger.Info(ctx, "Starting transcription: %s", videoPath)

	audioPath, err := t.extractor.Extract(ctx, videoPath)
	if err != nil {
		return nil, err
	}
	defer t.removeAudio(ctx, audioPath)

	raw, err := t.client.Transcribe(ctx, audioPath)
	if err != nil {
		return nil, err
	}

	normalized, err := deepgram.Normalize(raw)
	if err != nil {
		return nil, err
	}

	var utterances []transcript.Utterance
	if len(normalized.UtteranceGroups) > 0 {
		utterances = transcript.FromGroups(normalized.UtteranceGroups)
	} else {
		utterances = transcript.Segment(normalized.Words, t.gapThreshold)
	}

	t.logger.Info(ctx, "Transcription complete: %d words, %d utterances, %.1fs audio",
		len(normalized.Words), len(utterances), normalized.Metadata.Duration)

	return &transcript.Result{
		Transcript: normalized.Transcript,
		Words:      normalized.Words,
		Utterances: utterances,
		Metadata:   normalized.Metadata,
	}, nil
}

func (t *implTranscriber) removeAudio(ctx context.Context, audioPath string) {
	if err := os.Remove(audioPath); err != nil && !os.IsNotExist(err) {
		t.logger.Warn(ctx, "Failed to remove temp audio %s: %v", audioPath, err)
	} else {
		t.logger.Debug(ctx, "Removed temp audio: %s", audioPath)
	}
}
