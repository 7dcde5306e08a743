package store

import (
	"context"

	"github.com/clipscribe/clipscribe/internal/transcript"
)

// Store persists transcription results keyed by the video's content hash,
// so a re-submitted file can be served without calling the provider again.
type Store interface {
	Save(ctx context.Context, name, hash string, result *transcript.Result) error
	GetByHash(ctx context.Context, hash string) (*transcript.Result, bool, error)
	Close() error
}
