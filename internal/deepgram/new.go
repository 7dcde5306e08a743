package deepgram

import (
	"net/http"
	"time"

	"github.com/clipscribe/clipscribe/internal/logger"
)

const (
	// DefaultModel is the provider model used when none is configured.
	DefaultModel = "nova-3"

	defaultBaseURL = "https://api.deepgram.com"
	defaultTimeout = 300 * time.Second
)

// Config holds the explicit client configuration. The credential is
// injected here rather than read from the environment inside the client.
type Config struct {
	APIKey  string
	Model   string
	Timeout time.Duration
	// BaseURL overrides the provider endpoint, used by tests.
	BaseURL string
}

type implClient struct {
	cfg     Config
	http    *http.Client
	backoff time.Duration
	logger  logger.Logger
}

// New creates a Client. A missing API key is rejected here, before any
// network call is ever attempted.
func New(cfg Config, log logger.Logger) (Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}

	return &implClient{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.Timeout},
		backoff: time.Second,
		logger:  log,
	}, nil
}
