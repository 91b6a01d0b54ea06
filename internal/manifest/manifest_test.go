package manifest

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/Mythicsoul/spicetify-marketplace/internal/domain"
	"github.com/Mythicsoul/spicetify-marketplace/internal/provider/common"
)

type fakeFetcher struct {
	docs  map[string]string
	calls int
}

func (f *fakeFetcher) FetchManifest(ctx context.Context, user, repo, branch string) ([]byte, error) {
	f.calls++
	doc, ok := f.docs[user+"/"+repo+"@"+branch]
	if !ok {
		return nil, fmt.Errorf("%w: 404", common.ErrUnexpectedStatus)
	}
	return []byte(doc), nil
}

func (f *fakeFetcher) URL(user, repo, branch, path string) string {
	return common.RawURL("https://raw.example.com", user, repo, branch, path)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		doc       string
		wantCount int
		wantErr   bool
	}{
		{name: "single object", doc: `{"name":"Foo","description":"d","main":"foo.js"}`, wantCount: 1},
		{name: "array", doc: `[{"name":"A"},{"name":"B"}]`, wantCount: 2},
		{name: "array with non-object elements", doc: `[{"name":"A"}, null, 3, "x"]`, wantCount: 1},
		{name: "comments and trailing commas", doc: "{\n// hand edited\n\"name\":\"Foo\",\n}", wantCount: 1},
		{name: "empty", doc: "  ", wantErr: true},
		{name: "null", doc: "null", wantErr: true},
		{name: "not json", doc: "<html>404</html>", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.doc))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, common.ErrInvalidManifest) {
					t.Errorf("Parse() error should wrap ErrInvalidManifest, got %v", err)
				}
				return
			}
			if len(got) != tt.wantCount {
				t.Errorf("Parse() returned %d manifests, want %d", len(got), tt.wantCount)
			}
		})
	}
}

func TestParse_WrongFieldTypesAreBlank(t *testing.T) {
	got, err := Parse([]byte(`{"name":42,"description":"d","main":"x.js","authors":"me","include":"nope"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := got[0]
	if m.Name != "" {
		t.Errorf("expected non-string name to be blank, got %q", m.Name)
	}
	if m.Authors != nil {
		t.Errorf("expected invalid authors to be nil, got %v", m.Authors)
	}
	if m.Include != nil {
		t.Errorf("expected invalid include to be nil, got %v", m.Include)
	}
	if m.Valid(domain.KindExtension) {
		t.Error("manifest without a string name must be invalid")
	}
}

func TestManifestValid(t *testing.T) {
	tests := []struct {
		name string
		m    Manifest
		kind domain.Kind
		want bool
	}{
		{name: "extension", m: Manifest{Name: "n", Description: "d", Main: "m.js"}, kind: domain.KindExtension, want: true},
		{name: "extension missing main", m: Manifest{Name: "n", Description: "d"}, kind: domain.KindExtension, want: false},
		{name: "theme", m: Manifest{Name: "n", Description: "d", UserCSS: "user.css"}, kind: domain.KindTheme, want: true},
		{name: "theme missing usercss", m: Manifest{Name: "n", Description: "d", Main: "m.js"}, kind: domain.KindTheme, want: false},
		{name: "missing description", m: Manifest{Name: "n", Main: "m.js"}, kind: domain.KindExtension, want: false},
		{name: "snippet kind never comes from manifests", m: Manifest{Name: "n", Description: "d", Main: "m"}, kind: domain.KindSnippet, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.Valid(tt.kind); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEntries_MissingOptionalPaths(t *testing.T) {
	fetcher := &fakeFetcher{docs: map[string]string{
		"user/repo@main": `{"name":"Foo","description":"d","main":"foo.js"}`,
	}}
	r := NewResolver(fetcher)

	entries := r.Entries(context.Background(), domain.KindExtension, domain.Candidate{
		ContentsURL:   "https://api.github.com/repos/user/repo/contents/{+path}",
		DefaultBranch: "main",
		Stars:         7,
	})

	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if e.ImageURL != "" || e.ReadmeURL != "" {
		t.Errorf("expected empty image/readme URLs, got %q %q", e.ImageURL, e.ReadmeURL)
	}
	for _, u := range []string{e.ImageURL, e.ReadmeURL, e.ContentURL} {
		if strings.Contains(u, "undefined") {
			t.Errorf("URL must not contain 'undefined': %q", u)
		}
	}
	if e.ContentURL != "https://raw.example.com/user/repo/main/foo.js" {
		t.Errorf("unexpected content URL %q", e.ContentURL)
	}
	if e.Stars != 7 {
		t.Errorf("expected 7 stars, got %d", e.Stars)
	}
	want := []domain.Author{{Name: "user", URL: "https://github.com/user"}}
	if !reflect.DeepEqual(e.Authors, want) {
		t.Errorf("expected owner as author, got %v", e.Authors)
	}
}

func TestEntries_MixedArrayYieldsOneEntry(t *testing.T) {
	fetcher := &fakeFetcher{docs: map[string]string{
		"user/repo@main": `[
			{"name":"Good","description":"d","main":"good.js"},
			{"name":"Bad","description":"d"}
		]`,
	}}
	r := NewResolver(fetcher)

	entries := r.Entries(context.Background(), domain.KindExtension, domain.Candidate{
		ContentsURL:   "https://api.github.com/repos/user/repo/contents/{+path}",
		DefaultBranch: "main",
	})

	if len(entries) != 1 {
		t.Fatalf("expected exactly 1 entry, got %d", len(entries))
	}
	if entries[0].Title != "Good" {
		t.Errorf("expected the valid manifest, got %q", entries[0].Title)
	}
}

func TestEntries_ThemeResources(t *testing.T) {
	fetcher := &fakeFetcher{docs: map[string]string{
		"user/theme@master": `{
			"name":"Dark","description":"d","usercss":"src/user.css",
			"schemes":"https://cdn.example.com/color.ini",
			"include":["https://cdn.example.com/theme.js"],
			"preview":"shot.png","readme":"README.md","branch":"dist",
			"authors":[{"name":"alice","url":"https://github.com/alice"}]
		}`,
		"user/plain@master": `{"name":"Plain","description":"d","usercss":"user.css"}`,
	}}
	r := NewResolver(fetcher)

	entries := r.Entries(context.Background(), domain.KindTheme, domain.Candidate{
		ContentsURL:   "https://api.github.com/repos/user/theme/contents/{+path}",
		DefaultBranch: "master",
	})
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if e.Repository.Branch != "dist" {
		t.Errorf("expected manifest branch override, got %q", e.Repository.Branch)
	}
	if e.StylesheetURL != "https://raw.example.com/user/theme/dist/src/user.css" {
		t.Errorf("unexpected stylesheet URL %q", e.StylesheetURL)
	}
	if e.SchemesURL == nil || *e.SchemesURL != "https://cdn.example.com/color.ini" {
		t.Errorf("expected absolute schemes URL kept, got %v", e.SchemesURL)
	}
	if len(e.Include) != 1 {
		t.Errorf("expected include list, got %v", e.Include)
	}
	if e.ImageURL != "https://raw.example.com/user/theme/dist/shot.png" {
		t.Errorf("unexpected image URL %q", e.ImageURL)
	}
	if e.Authors[0].Name != "alice" {
		t.Errorf("expected manifest authors, got %v", e.Authors)
	}

	plain := r.Entries(context.Background(), domain.KindTheme, domain.Candidate{
		ContentsURL:   "https://api.github.com/repos/user/plain/contents/{+path}",
		DefaultBranch: "master",
	})
	if len(plain) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(plain))
	}
	if plain[0].SchemesURL != nil {
		t.Errorf("absent schemes must stay nil, got %q", *plain[0].SchemesURL)
	}
	if plain[0].Include != nil {
		t.Errorf("absent include must stay nil, got %v", plain[0].Include)
	}
}

func TestEntries_Idempotent(t *testing.T) {
	fetcher := &fakeFetcher{docs: map[string]string{
		"user/repo@main": `[{"name":"A","description":"d","main":"a.js","preview":"a.png"},{"name":"B","description":"d","main":"https://cdn.example.com/b.js"}]`,
	}}
	r := NewResolver(fetcher)
	candidate := domain.Candidate{
		ContentsURL:   "https://api.github.com/repos/user/repo/contents/{+path}",
		DefaultBranch: "main",
		Stars:         3,
	}

	first := r.Entries(context.Background(), domain.KindExtension, candidate)
	second := r.Entries(context.Background(), domain.KindExtension, candidate)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("resolving twice produced different entries:\n%+v\n%+v", first, second)
	}
	if first[1].ContentURL != "https://cdn.example.com/b.js" {
		t.Errorf("absolute main must be kept, got %q", first[1].ContentURL)
	}
}

func TestEntries_FetchFailureYieldsNothing(t *testing.T) {
	r := NewResolver(&fakeFetcher{docs: map[string]string{}})

	entries := r.Entries(context.Background(), domain.KindExtension, domain.Candidate{
		ContentsURL:   "https://api.github.com/repos/user/missing/contents/{+path}",
		DefaultBranch: "main",
	})
	if entries != nil {
		t.Errorf("expected nil entries, got %v", entries)
	}
}

func TestEntries_CoordinateFallbacks(t *testing.T) {
	tests := []struct {
		name      string
		candidate domain.Candidate
		wantUser  string
	}{
		{
			name:      "contents url",
			candidate: domain.Candidate{ContentsURL: "https://api.github.com/repos/user/repo/contents/{+path}", FullName: "other/repo"},
			wantUser:  "user",
		},
		{
			name:      "full name",
			candidate: domain.Candidate{FullName: "user/repo", Owner: "other", Name: "repo"},
			wantUser:  "user",
		},
		{
			name:      "owner and name",
			candidate: domain.Candidate{FullName: "broken", Owner: "user", Name: "repo"},
			wantUser:  "user",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := &fakeFetcher{docs: map[string]string{
				"user/repo@main": `{"name":"Foo","description":"d","main":"foo.js"}`,
			}}
			r := NewResolver(fetcher)

			tt.candidate.DefaultBranch = "main"
			entries := r.Entries(context.Background(), domain.KindExtension, tt.candidate)
			if len(entries) != 1 {
				t.Fatalf("expected 1 entry, got %d", len(entries))
			}
			if entries[0].Repository.User != tt.wantUser {
				t.Errorf("expected user %q, got %q", tt.wantUser, entries[0].Repository.User)
			}
		})
	}
}

func TestEntries_UnresolvableCandidate(t *testing.T) {
	fetcher := &fakeFetcher{docs: map[string]string{}}
	r := NewResolver(fetcher)

	none := r.Entries(context.Background(), domain.KindExtension, domain.Candidate{FullName: "no-slash", DefaultBranch: "main"})
	if none != nil {
		t.Errorf("expected nil for candidate without coordinates, got %v", none)
	}
	if fetcher.calls != 0 {
		t.Errorf("expected no fetch for unresolvable candidate, got %d calls", fetcher.calls)
	}
}
