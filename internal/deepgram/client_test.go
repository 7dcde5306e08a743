package deepgram

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/clipscribe/clipscribe/internal/logger"
)

const okBody = `{
	"metadata": {"duration": 12.5, "model_info": {"name": "nova-3"}},
	"results": {
		"channels": [{"alternatives": [{
			"transcript": "hello world",
			"confidence": 0.98,
			"detected_language": "en",
			"words": [
				{"word": "hello", "start": 0.0, "end": 0.48, "confidence": 0.99},
				{"word": "world", "start": 0.5, "end": 0.9, "confidence": 0.97}
			]
		}]}]
	}
}`

func testLogger() logger.Logger {
	return logger.NewWithWriter("error", os.Stderr)
}

func writeAudio(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "audio.wav")
	if err := os.WriteFile(path, []byte("RIFF fake wav"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestClient(t *testing.T, baseURL string) *implClient {
	t.Helper()
	c, err := New(Config{APIKey: "dg-test", BaseURL: baseURL}, testLogger())
	if err != nil {
		t.Fatal(err)
	}
	impl := c.(*implClient)
	impl.backoff = time.Millisecond
	return impl
}

func TestNewRequiresAPIKey(t *testing.T) {
	_, err := New(Config{}, testLogger())
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("New() error = %v, want ErrMissingAPIKey", err)
	}
}

func TestTranscribeSuccess(t *testing.T) {
	var gotAuth, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.RawQuery
		w.Write([]byte(okBody))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	raw, err := c.Transcribe(context.Background(), writeAudio(t))
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}

	if gotAuth != "Token dg-test" {
		t.Errorf("Authorization = %q, want Token dg-test", gotAuth)
	}
	for _, param := range []string{"model=nova-3", "utterances=true", "punctuate=true", "smart_format=true"} {
		if !strings.Contains(gotQuery, param) {
			t.Errorf("query %q missing %q", gotQuery, param)
		}
	}
	if len(raw.Results.Channels) != 1 {
		t.Fatalf("channels = %d, want 1", len(raw.Results.Channels))
	}
	if raw.Metadata.Duration != 12.5 {
		t.Errorf("duration = %v, want 12.5", raw.Metadata.Duration)
	}
}

func TestTranscribeRetriesRateLimit(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(okBody))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.Transcribe(context.Background(), writeAudio(t))
	if err != nil {
		t.Fatalf("Transcribe() error = %v, want success on third attempt", err)
	}
	if calls != 3 {
		t.Errorf("provider called %d times, want 3", calls)
	}
}

func TestTranscribeRateLimitExhausted(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.Transcribe(context.Background(), writeAudio(t))
	if !errors.Is(err, ErrRateLimited) {
		t.Errorf("Transcribe() error = %v, want ErrRateLimited", err)
	}
	if calls != maxAttempts {
		t.Errorf("provider called %d times, want %d", calls, maxAttempts)
	}
}

func TestTranscribeProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"err_code": "INVALID_AUDIO", "err_msg": "corrupt audio data"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.Transcribe(context.Background(), writeAudio(t))

	var pe *ProviderError
	if !errors.As(err, &pe) {
		t.Fatalf("Transcribe() error = %v, want ProviderError", err)
	}
	if pe.Status != http.StatusBadRequest || pe.Code != "INVALID_AUDIO" {
		t.Errorf("ProviderError = %+v", pe)
	}
	if pe.Message != "corrupt audio data" {
		t.Errorf("Message = %q, want provider diagnostic text", pe.Message)
	}
}

func TestTranscribeConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	c := newTestClient(t, srv.URL)
	_, err := c.Transcribe(context.Background(), writeAudio(t))
	if !errors.Is(err, ErrConnection) {
		t.Errorf("Transcribe() error = %v, want ErrConnection", err)
	}
}

func TestTranscribeTimeoutIsConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(okBody))
	}))
	defer srv.Close()

	c, err := New(Config{APIKey: "dg-test", BaseURL: srv.URL, Timeout: 20 * time.Millisecond}, testLogger())
	if err != nil {
		t.Fatal(err)
	}

	_, err = c.Transcribe(context.Background(), writeAudio(t))
	if !errors.Is(err, ErrConnection) {
		t.Errorf("Transcribe() error = %v, want ErrConnection on timeout", err)
	}
}

func TestTranscribeMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.Transcribe(context.Background(), writeAudio(t))

	var pe *ProviderError
	if !errors.As(err, &pe) {
		t.Fatalf("Transcribe() error = %v, want ProviderError for malformed body", err)
	}
}
