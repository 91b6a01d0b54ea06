package common

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Mythicsoul/spicetify-marketplace/internal/logger"
)

func TestLoggingTransport_PreservesErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-RateLimit-Remaining", "0")
		w.WriteHeader(http.StatusForbidden)
		io.WriteString(w, `{"message":"API rate limit exceeded"}`)
	}))
	defer server.Close()

	client := &http.Client{Transport: NewLoggingTransport(nil)}
	resp, err := client.Get(server.URL + "/search/repositories")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	if string(body) != `{"message":"API rate limit exceeded"}` {
		t.Errorf("body was not restored, got %q", body)
	}

	logs := logger.GetLogs()
	last := logs[len(logs)-1].Message
	if !strings.Contains(last, "403") || !strings.Contains(last, "rate limit exceeded") {
		t.Errorf("expected status and body in log, got %q", last)
	}
}

func TestRedactQuery(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "no sensitive params",
			url:  "https://api.github.com/search/repositories?q=topic%3Aspicetify-themes&page=2",
			want: "https://api.github.com/search/repositories?q=topic%3Aspicetify-themes&page=2",
		},
		{
			name: "access token",
			url:  "https://api.github.com/search/repositories?access_token=abc&page=1",
			want: "https://api.github.com/search/repositories?[REDACTED]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := redactQuery(tt.url); got != tt.want {
				t.Errorf("redactQuery() = %q, want %q", got, tt.want)
			}
		})
	}
}
