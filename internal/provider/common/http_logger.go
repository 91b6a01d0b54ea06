package common

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Mythicsoul/spicetify-marketplace/internal/logger"
)

// LoggingTransport wraps an http.RoundTripper to log all requests and responses
type LoggingTransport struct {
	Transport http.RoundTripper
}

// NewLoggingTransport creates a new logging transport wrapper
func NewLoggingTransport(transport http.RoundTripper) *LoggingTransport {
	if transport == nil {
		transport = http.DefaultTransport
	}
	return &LoggingTransport{
		Transport: transport,
	}
}

// RoundTrip executes a single HTTP transaction and logs its outcome
func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	logger.LogFetch(fmt.Sprintf("%s %s", req.Method, redactQuery(req.URL.String())))

	resp, err := t.Transport.RoundTrip(req)
	duration := time.Since(start)

	if err != nil {
		logger.LogError("HTTP_REQUEST", fmt.Sprintf("%s %s", req.Method, req.URL.Path), err)
		return nil, err
	}

	t.logResponse(req, resp, duration)
	return resp, nil
}

func (t *LoggingTransport) logResponse(req *http.Request, resp *http.Response, duration time.Duration) {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("HTTP: %s %s - %s (%v)", req.Method, req.URL.Path, resp.Status, duration.Round(time.Millisecond)))

	if remaining := resp.Header.Get("X-RateLimit-Remaining"); remaining != "" {
		buf.WriteString(fmt.Sprintf(" rate-limit remaining %s", remaining))
	}

	// Error bodies are small and explain rate limiting or validation failures.
	if resp.StatusCode >= 400 && resp.Body != nil {
		bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxLoggedBody))
		if err == nil {
			rest := resp.Body
			resp.Body = readCloser{Reader: io.MultiReader(bytes.NewReader(bodyBytes), rest), Closer: rest}
			buf.WriteString(fmt.Sprintf("\n%s", bytes.TrimSpace(bodyBytes)))
		}
	}

	logger.Log("%s", buf.String())
}

const maxLoggedBody = 2048

type readCloser struct {
	io.Reader
	io.Closer
}

var sensitiveParams = []string{"access_token", "client_secret", "token"}

func redactQuery(rawURL string) string {
	lower := strings.ToLower(rawURL)
	for _, param := range sensitiveParams {
		if strings.Contains(lower, param+"=") {
			if i := strings.Index(rawURL, "?"); i >= 0 {
				return rawURL[:i] + "?[REDACTED]"
			}
		}
	}
	return rawURL
}
