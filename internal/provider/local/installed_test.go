package local

import (
	"context"
	"errors"
	"testing"

	"github.com/Mythicsoul/spicetify-marketplace/internal/domain"
)

type fakeLister struct {
	items map[domain.Kind][]domain.CatalogEntry
	fail  domain.Kind
}

func (f *fakeLister) ListInstalled(kind domain.Kind) ([]domain.CatalogEntry, error) {
	if kind == f.fail {
		return nil, errors.New("corrupt")
	}
	return f.items[kind], nil
}

func TestInstalledSource_FetchAll(t *testing.T) {
	lister := &fakeLister{items: map[domain.Kind][]domain.CatalogEntry{
		domain.KindTheme:     {{Kind: domain.KindTheme, Title: "theme"}},
		domain.KindExtension: {{Kind: domain.KindExtension, Title: "ext"}},
		domain.KindSnippet:   {{Kind: domain.KindSnippet, Title: "snip"}},
	}}

	tests := []struct {
		name string
		fail domain.Kind
		want []string
	}{
		{name: "all kinds in order", want: []string{"snip", "ext", "theme"}},
		{name: "failing kind skipped", fail: domain.KindExtension, want: []string{"snip", "theme"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lister.fail = tt.fail
			src := NewInstalledSource(lister)

			got := src.FetchAll(context.Background())
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %d entries", tt.want, len(got))
			}
			for i, title := range tt.want {
				if got[i].Title != title {
					t.Errorf("entry %d = %q, want %q", i, got[i].Title, title)
				}
			}
		})
	}

	if NewInstalledSource(lister).Tab() != domain.TabInstalled {
		t.Error("expected Installed tab")
	}
}

func TestInstalledSource_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got := NewInstalledSource(&fakeLister{}).FetchAll(ctx)
	if len(got) != 0 {
		t.Errorf("expected nothing after cancellation, got %d", len(got))
	}
}
