package watcher

import "context"

// Watcher monitors a directory for new video files
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// Handler processes one detected video file
type Handler func(ctx context.Context, videoPath string) error
