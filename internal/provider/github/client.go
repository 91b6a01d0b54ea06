package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"

	"github.com/Mythicsoul/spicetify-marketplace/internal/domain"
	"github.com/Mythicsoul/spicetify-marketplace/internal/provider/common"
)

type Client struct {
	client *github.Client
}

// NewClient builds a search client. An empty token searches anonymously with the
// lower rate limit; an empty baseURL targets api.github.com.
func NewClient(token, baseURL string, timeout time.Duration) (*Client, error) {
	var transport http.RoundTripper = common.NewLoggingTransport(nil)
	if token != "" {
		transport = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
			Base:   transport,
		}
	}

	client := github.NewClient(&http.Client{Transport: transport, Timeout: timeout})

	if baseURL != "" {
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid search API URL: %w", err)
		}
		client.BaseURL = u
	}

	return &Client{client: client}, nil
}

// SearchTopic returns one page of repositories tagged with topic.
func (c *Client) SearchTopic(ctx context.Context, topic string, page, perPage int, sort domain.SortOrder) (*github.RepositoriesSearchResult, error) {
	opts := &github.SearchOptions{
		ListOptions: github.ListOptions{Page: page, PerPage: perPage},
	}
	switch sort {
	case domain.SortTop:
		opts.Sort = "stars"
		opts.Order = "desc"
	case domain.SortRecent:
		opts.Sort = "updated"
		opts.Order = "desc"
	}

	result, _, err := c.client.Search.Repositories(ctx, "topic:"+topic, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to search topic %s: %w", topic, err)
	}
	return result, nil
}
