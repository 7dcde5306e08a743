package transcriber

import (
	"github.com/clipscribe/clipscribe/internal/deepgram"
	"github.com/clipscribe/clipscribe/internal/extractor"
	"github.com/clipscribe/clipscribe/internal/logger"
)

type implTranscriber struct {
	extractor    extractor.Extractor
	client       deepgram.Client
	gapThreshold float64
	logger       logger.Logger
}

// New creates a Transcriber composing the audio extractor and the provider
// client. gapThreshold is the fallback utterance segmentation gap used
// when the provider reports no utterance boundaries.
func New(ext extractor.Extractor, client deepgram.Client, gapThreshold float64, log logger.Logger) Transcriber {
	return &implTranscriber{
		extractor:    ext,
		client:       client,
		gapThreshold: gapThreshold,
		logger:       log,
	}
}
