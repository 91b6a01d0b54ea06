package views

import (
	"errors"
	"strings"
	"testing"

	"github.com/Mythicsoul/spicetify-marketplace/internal/domain"
)

func TestReadmeView_IgnoresContentForOtherEntry(t *testing.T) {
	v := NewReadmeView()
	v.SetSize(100, 40)

	alpha := entry("alpha", domain.KindExtension)
	alpha.ReadmeURL = "https://example.com/README.md"
	v.Open(alpha)

	if !strings.Contains(v.View(), "Loading README") {
		t.Error("Expected loading placeholder while the README is fetched")
	}

	v.SetContent(entry("beta", domain.KindExtension).Key(), "# Beta", nil)
	if !strings.Contains(v.View(), "Loading README") {
		t.Error("Content for another entry should be ignored")
	}

	v.SetContent(alpha.Key(), "", errors.New("boom"))
	if !strings.Contains(v.View(), "Could not load README") {
		t.Error("Expected the fetch error to be shown")
	}
}

func TestReadmeView_SnippetShowsCode(t *testing.T) {
	v := NewReadmeView()
	v.SetSize(100, 40)

	snippet := domain.CatalogEntry{Kind: domain.KindSnippet, Title: "Round covers", Code: "img { border-radius: 50% }"}
	v.Open(snippet)

	view := v.View()
	if strings.Contains(view, "Loading README") || strings.Contains(view, "no README") {
		t.Errorf("Expected snippet code instead of a placeholder, got %q", view)
	}
}

func TestReadmeView_Close(t *testing.T) {
	v := NewReadmeView()
	v.Open(entry("alpha", domain.KindExtension))
	v.Close()

	if v.Entry() != nil || v.View() != "" {
		t.Error("Expected an empty view after close")
	}
}
