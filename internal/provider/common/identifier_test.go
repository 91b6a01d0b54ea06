package common

import (
	"errors"
	"testing"
)

func TestParseContentsURL(t *testing.T) {
	tests := []struct {
		name        string
		contentsURL string
		wantUser    string
		wantRepo    string
		wantErr     bool
	}{
		{
			name:        "search result contents url",
			contentsURL: "https://api.github.com/repos/theRealPadster/spicetify-hide-podcasts/contents/{+path}",
			wantUser:    "theRealPadster",
			wantRepo:    "spicetify-hide-podcasts",
		},
		{
			name:        "without template suffix",
			contentsURL: "https://api.github.com/repos/owner/repo/contents",
			wantUser:    "owner",
			wantRepo:    "repo",
		},
		{
			name:        "wrong host",
			contentsURL: "https://example.com/repos/owner/repo/contents/{+path}",
			wantErr:     true,
		},
		{
			name:        "missing repo",
			contentsURL: "https://api.github.com/repos/owner/contents",
			wantErr:     true,
		},
		{
			name:        "empty string",
			contentsURL: "",
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, repo, err := ParseContentsURL(tt.contentsURL)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseContentsURL() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, ErrInvalidContentsURL) {
					t.Errorf("ParseContentsURL() error should wrap ErrInvalidContentsURL, got %v", err)
				}
				return
			}
			if user != tt.wantUser {
				t.Errorf("ParseContentsURL() user = %v, want %v", user, tt.wantUser)
			}
			if repo != tt.wantRepo {
				t.Errorf("ParseContentsURL() repo = %v, want %v", repo, tt.wantRepo)
			}
		})
	}
}

func TestParseFullName(t *testing.T) {
	tests := []struct {
		name     string
		fullName string
		wantErr  bool
	}{
		{name: "valid", fullName: "owner/repo"},
		{name: "too many parts", fullName: "owner/repo/extra", wantErr: true},
		{name: "empty owner", fullName: "/repo", wantErr: true},
		{name: "empty repo", fullName: "owner/", wantErr: true},
		{name: "empty", fullName: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseFullName(tt.fullName)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseFullName(%q) error = %v, wantErr %v", tt.fullName, err, tt.wantErr)
			}
		})
	}
}

func TestRawURL(t *testing.T) {
	tests := []struct {
		name string
		base string
		path string
		want string
	}{
		{
			name: "plain path",
			base: "https://raw.githubusercontent.com",
			path: "dist/foo.js",
			want: "https://raw.githubusercontent.com/u/r/main/dist/foo.js",
		},
		{
			name: "trailing slash base and leading slash path",
			base: "https://raw.githubusercontent.com/",
			path: "/foo.js",
			want: "https://raw.githubusercontent.com/u/r/main/foo.js",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RawURL(tt.base, "u", "r", "main", tt.path); got != tt.want {
				t.Errorf("RawURL() = %q, want %q", got, tt.want)
			}
		})
	}
}
