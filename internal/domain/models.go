package domain

import (
	"encoding/json"
	"fmt"
)

type Kind string

const (
	KindExtension Kind = "extension"
	KindTheme     Kind = "theme"
	KindSnippet   Kind = "snippet"
)

type Tab string

const (
	TabExtensions Tab = "Extensions"
	TabThemes     Tab = "Themes"
	TabSnippets   Tab = "Snippets"
	TabInstalled  Tab = "Installed"
)

// AllTabs is the default tab order shown when no valid tab list is persisted.
var AllTabs = []Tab{TabExtensions, TabThemes, TabSnippets, TabInstalled}

type SortOrder string

const (
	SortTop    SortOrder = "top"
	SortRecent SortOrder = "recent"
	SortBest   SortOrder = "best"
)

func ParseSortOrder(s string) (SortOrder, bool) {
	switch SortOrder(s) {
	case SortTop, SortRecent, SortBest:
		return SortOrder(s), true
	}
	return "", false
}

type Author struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

type RepoRef struct {
	User   string `json:"user"`
	Repo   string `json:"repo"`
	Branch string `json:"branch"`
}

// URL is the repository's web address, the form blacklist entries use.
func (r RepoRef) URL() string {
	if r.User == "" || r.Repo == "" {
		return ""
	}
	return fmt.Sprintf("https://github.com/%s/%s", r.User, r.Repo)
}

func (r RepoRef) FullName() string {
	return r.User + "/" + r.Repo
}

// CatalogEntry is one add-on card. Optional resources that the manifest does not
// provide are left empty (SchemesURL and Include stay nil).
type CatalogEntry struct {
	Kind          Kind            `json:"kind"`
	Title         string          `json:"title"`
	Subtitle      string          `json:"subtitle"`
	Authors       []Author        `json:"authors,omitempty"`
	Repository    RepoRef         `json:"repository"`
	ContentURL    string          `json:"content_url,omitempty"`
	ImageURL      string          `json:"image_url,omitempty"`
	ReadmeURL     string          `json:"readme_url,omitempty"`
	StylesheetURL string          `json:"stylesheet_url,omitempty"`
	SchemesURL    *string         `json:"schemes_url,omitempty"`
	Include       []string        `json:"include,omitempty"`
	Code          string          `json:"code,omitempty"`
	Stars         int             `json:"stars"`
	Manifest      json.RawMessage `json:"manifest,omitempty"`
}

// Key identifies an entry across loads and is the installed-item key:
// user/repo followed by the resolved main script (extensions) or stylesheet
// (themes) URL. Snippets are keyed by title.
func (e CatalogEntry) Key() string {
	switch e.Kind {
	case KindSnippet:
		return "snippet:" + e.Title
	case KindTheme:
		return fmt.Sprintf("%s/%s", e.Repository.FullName(), e.StylesheetURL)
	default:
		return fmt.Sprintf("%s/%s", e.Repository.FullName(), e.ContentURL)
	}
}

// Candidate is one raw repository search hit before manifest resolution.
type Candidate struct {
	FullName      string
	Owner         string
	Name          string
	ContentsURL   string
	DefaultBranch string
	HTMLURL       string
	Stars         int
}

// SourcePage is one page of provider results. PageCount is how many items the
// remote returned for the page before blacklist filtering and TotalCount is the
// remote's own total; Items holds what survived the blacklist.
type SourcePage struct {
	Items      []Candidate
	PageCount  int
	Filtered   int
	TotalCount int
}

type VisualConfig struct {
	Stars         bool `json:"stars"`
	HideInstalled bool `json:"hide_installed"`
}

type TabConfig struct {
	Name    Tab  `json:"name"`
	Enabled bool `json:"enabled"`
}
