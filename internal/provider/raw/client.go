package raw

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/jsonc"

	"github.com/Mythicsoul/spicetify-marketplace/internal/logger"
	"github.com/Mythicsoul/spicetify-marketplace/internal/provider/common"
)

const (
	DefaultBaseURL = "https://raw.githubusercontent.com"

	// Raw files larger than this are not manifests, lists or readmes.
	maxBodySize = 4 << 20
)

// Client fetches static files served by the raw-content host.
type Client struct {
	http    *http.Client
	baseURL string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		http: &http.Client{
			Transport: common.NewLoggingTransport(nil),
			Timeout:   timeout,
		},
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// URL builds the raw address of path inside user/repo at branch.
func (c *Client) URL(user, repo, branch, path string) string {
	return common.RawURL(c.baseURL, user, repo, branch, path)
}

func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s returned %d", common.ErrUnexpectedStatus, url, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", url, err)
	}
	return data, nil
}

// GetJSON fetches url and decodes it into v. Comments and trailing commas are
// tolerated since the documents are hand edited.
func (c *Client) GetJSON(ctx context.Context, url string, v any) error {
	data, err := c.Get(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(jsonc.ToJSON(data), v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", url, err)
	}
	return nil
}

// FetchManifest returns the raw manifest.json of user/repo at branch.
func (c *Client) FetchManifest(ctx context.Context, user, repo, branch string) ([]byte, error) {
	return c.Get(ctx, c.URL(user, repo, branch, "manifest.json"))
}

// FetchText returns a text resource such as a readme.
func (c *Client) FetchText(ctx context.Context, url string) (string, error) {
	data, err := c.Get(ctx, url)
	if err != nil {
		logger.LogError("FETCH_TEXT", url, err)
		return "", err
	}
	return string(data), nil
}
