package deepgram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"
)

// maxAttempts caps the rate-limit retry loop.
const maxAttempts = 3

// Transcribe uploads the audio file to the provider and returns the raw
// response. Rate-limit responses are retried with exponential backoff up
// to maxAttempts; every other failure surfaces immediately.
func (c *implClient) Transcribe(ctx context.Context, audioPath string) (*RawResponse, error) {
	audio, err := os.ReadFile(audioPath)
	if err != nil {
		return nil, fmt.Errorf("read audio file: %w", err)
	}

	delay := c.backoff
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		raw, rateLimited, err := c.doRequest(ctx, audio)
		if err != nil {
			return nil, err
		}
		if !rateLimited {
			return raw, nil
		}

		if attempt == maxAttempts {
			break
		}

		c.logger.Warn(ctx, "Rate limited by provider, retrying in %s (attempt %d/%d)", delay, attempt, maxAttempts)
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
		delay *= 2
	}

	return nil, fmt.Errorf("%w after %d attempts", ErrRateLimited, maxAttempts)
}

// doRequest performs a single provider call. The second return value is
// true when the provider answered with HTTP 429.
func (c *implClient) doRequest(ctx context.Context, audio []byte) (*RawResponse, bool, error) {
	params := url.Values{}
	params.Set("model", c.cfg.Model)
	params.Set("punctuate", "true")
	params.Set("smart_format", "true")
	params.Set("utterances", "true")
	params.Set("detect_language", "true")
	apiURL := c.cfg.BaseURL + "/v1/listen?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(audio))
	if err != nil {
		return nil, false, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "audio/wav")

	resp, err := c.http.Do(req)
	if err != nil {
		// Transport failures and timeouts are both connection errors;
		// neither is retried.
		return nil, false, fmt.Errorf("%w: %v", ErrConnection, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		io.Copy(io.Discard, resp.Body)
		return nil, true, nil
	}

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		var eb errorBody
		if json.Unmarshal(body, &eb) == nil && eb.ErrMsg != "" {
			return nil, false, &ProviderError{Status: resp.StatusCode, Code: eb.ErrCode, Message: eb.ErrMsg}
		}
		return nil, false, &ProviderError{Status: resp.StatusCode, Message: string(body)}
	}

	var raw RawResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, false, &ProviderError{Status: resp.StatusCode, Code: "invalid_response", Message: err.Error()}
	}
	return &raw, false, nil
}
