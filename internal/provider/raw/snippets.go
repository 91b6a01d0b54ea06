package raw

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/Mythicsoul/spicetify-marketplace/internal/domain"
	"github.com/Mythicsoul/spicetify-marketplace/internal/logger"
)

type snippet struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Code        string `json:"code"`
	Preview     string `json:"preview"`
}

// SnippetSource serves the CSS snippets listed in one static document. Relative
// previews resolve against home, the repository hosting the document.
type SnippetSource struct {
	client *Client
	url    string
	home   domain.RepoRef
}

func NewSnippetSource(client *Client, url string, home domain.RepoRef) *SnippetSource {
	return &SnippetSource{client: client, url: url, home: home}
}

func (s *SnippetSource) Tab() domain.Tab {
	return domain.TabSnippets
}

func (s *SnippetSource) FetchAll(ctx context.Context) []domain.CatalogEntry {
	var items []json.RawMessage
	if err := s.client.GetJSON(ctx, s.url, &items); err != nil {
		logger.LogError("FETCH_SNIPPETS", s.url, err)
		return nil
	}

	entries := make([]domain.CatalogEntry, 0, len(items))
	for i, raw := range items {
		var sn snippet
		if err := json.Unmarshal(raw, &sn); err != nil || sn.Title == "" || sn.Code == "" {
			logger.Log("Snippets: skipping malformed item %d", i)
			continue
		}
		entries = append(entries, domain.CatalogEntry{
			Kind:       domain.KindSnippet,
			Title:      sn.Title,
			Subtitle:   sn.Description,
			Repository: s.home,
			ImageURL:   s.previewURL(sn.Preview),
			Code:       sn.Code,
			Manifest:   raw,
		})
	}

	logger.Log("Snippets: loaded %d of %d items", len(entries), len(items))
	return entries
}

func (s *SnippetSource) previewURL(preview string) string {
	if preview == "" || strings.HasPrefix(preview, "http") {
		return preview
	}
	return s.client.URL(s.home.User, s.home.Repo, s.home.Branch, preview)
}
