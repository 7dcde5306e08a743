package deepgram

import "context"

// Client sends audio to the speech-to-text provider and returns the raw
// provider response.
type Client interface {
	Transcribe(ctx context.Context, audioPath string) (*RawResponse, error)
}
