package extractor

import (
	"github.com/clipscribe/clipscribe/internal/logger"
	"github.com/clipscribe/clipscribe/pkg/executor"
)

type implExtractor struct {
	tempDir  string
	executor executor.Executor
	logger   logger.Logger
}

// New creates an Extractor that writes temporary audio files into tempDir.
func New(tempDir string, exec executor.Executor, log logger.Logger) Extractor {
	return &implExtractor{
		tempDir:  tempDir,
		executor: exec,
		logger:   log,
	}
}
