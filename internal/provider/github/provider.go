package github

import (
	"context"
	"fmt"

	"github.com/google/go-github/v57/github"

	"github.com/Mythicsoul/spicetify-marketplace/internal/domain"
	"github.com/Mythicsoul/spicetify-marketplace/internal/logger"
)

const (
	ExtensionsTopic = "spicetify-extensions"
	ThemesTopic     = "spicetify-themes"
)

// Denylist reports repositories that must never be listed.
type Denylist interface {
	Contains(repoURL string) bool
}

// EntryResolver expands a search hit into catalog entries.
type EntryResolver interface {
	Entries(ctx context.Context, kind domain.Kind, candidate domain.Candidate) []domain.CatalogEntry
}

// Provider is a search-backed source for one tab.
type Provider struct {
	client   *Client
	resolver EntryResolver
	denylist Denylist
	tab      domain.Tab
	kind     domain.Kind
	topic    string
	pageSize int
}

// NewExtensionProvider searches topic in pages of pageSize repositories. The
// pager must use the same page size for its stopping rule; zero or anything
// above the API maximum means domain.PageSize.
func NewExtensionProvider(client *Client, resolver EntryResolver, denylist Denylist, topic string, pageSize int) *Provider {
	if topic == "" {
		topic = ExtensionsTopic
	}
	return newProvider(client, resolver, denylist, domain.TabExtensions, domain.KindExtension, topic, pageSize)
}

func NewThemeProvider(client *Client, resolver EntryResolver, denylist Denylist, topic string, pageSize int) *Provider {
	if topic == "" {
		topic = ThemesTopic
	}
	return newProvider(client, resolver, denylist, domain.TabThemes, domain.KindTheme, topic, pageSize)
}

func newProvider(client *Client, resolver EntryResolver, denylist Denylist, tab domain.Tab, kind domain.Kind, topic string, pageSize int) *Provider {
	if pageSize <= 0 || pageSize > domain.PageSize {
		pageSize = domain.PageSize
	}
	return &Provider{
		client:   client,
		resolver: resolver,
		denylist: denylist,
		tab:      tab,
		kind:     kind,
		topic:    topic,
		pageSize: pageSize,
	}
}

func (p *Provider) Tab() domain.Tab {
	return p.tab
}

// FetchPage returns the blacklist-filtered page. PageCount keeps the number of
// items the API returned so it stays comparable with TotalCount.
func (p *Provider) FetchPage(ctx context.Context, page int, sort domain.SortOrder) domain.SourcePage {
	if page < 1 {
		page = 1
	}
	logger.Log("GitHub: Searching topic %s page %d (sort: %s)", p.topic, page, sort)

	result, err := p.client.SearchTopic(ctx, p.topic, page, p.pageSize, sort)
	if err != nil {
		logger.LogError("GITHUB_SEARCH", fmt.Sprintf("%s#%d", p.topic, page), err)
		return domain.SourcePage{}
	}

	sp := domain.SourcePage{
		PageCount:  len(result.Repositories),
		TotalCount: result.GetTotal(),
		Items:      make([]domain.Candidate, 0, len(result.Repositories)),
	}
	for _, repo := range result.Repositories {
		if repo == nil {
			continue
		}
		if p.denylist != nil && p.denylist.Contains(repo.GetHTMLURL()) {
			sp.Filtered++
			continue
		}
		sp.Items = append(sp.Items, convertRepository(repo))
	}

	logger.Log("GitHub: Topic %s page %d returned %d/%d (%d blacklisted)", p.topic, page, sp.PageCount, sp.TotalCount, sp.Filtered)
	return sp
}

func (p *Provider) Resolve(ctx context.Context, candidate domain.Candidate) []domain.CatalogEntry {
	return p.resolver.Entries(ctx, p.kind, candidate)
}

func convertRepository(repo *github.Repository) domain.Candidate {
	return domain.Candidate{
		FullName:      repo.GetFullName(),
		Owner:         repo.GetOwner().GetLogin(),
		Name:          repo.GetName(),
		ContentsURL:   repo.GetContentsURL(),
		DefaultBranch: repo.GetDefaultBranch(),
		HTMLURL:       repo.GetHTMLURL(),
		Stars:         repo.GetStargazersCount(),
	}
}
