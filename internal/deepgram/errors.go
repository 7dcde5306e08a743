package deepgram

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingAPIKey indicates no credential was configured. It is
	// reported at construction time, before any network call.
	ErrMissingAPIKey = errors.New("deepgram api key is not configured")
	// ErrConnection indicates the provider could not be reached or the
	// call timed out. Timeouts are not retried.
	ErrConnection = errors.New("failed to connect to transcription provider")
	// ErrRateLimited indicates the provider kept rate-limiting after the
	// retry budget was exhausted.
	ErrRateLimited = errors.New("transcription provider rate limit exceeded")
)

// ProviderError is an authenticated-but-rejected response from the
// provider, carrying its error code and diagnostic message. It is also
// used when a 200 response does not have the expected shape.
type ProviderError struct {
	Status  int
	Code    string
	Message string
}

func (e *ProviderError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("deepgram error (status %d, %s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("deepgram error (status %d): %s", e.Status, e.Message)
}
