package manifest

import (
	"context"
	"fmt"
	"strings"

	"github.com/Mythicsoul/spicetify-marketplace/internal/domain"
	"github.com/Mythicsoul/spicetify-marketplace/internal/logger"
	"github.com/Mythicsoul/spicetify-marketplace/internal/provider/common"
)

// Fetcher retrieves manifest documents and builds raw-content URLs.
type Fetcher interface {
	FetchManifest(ctx context.Context, user, repo, branch string) ([]byte, error)

	URL(user, repo, branch, path string) string
}

type Resolver struct {
	fetcher Fetcher
}

func NewResolver(fetcher Fetcher) *Resolver {
	return &Resolver{fetcher: fetcher}
}

// Resolve fetches and parses the manifests of user/repo at branch. Any failure
// yields nil, which callers treat as a repository without entries.
func (r *Resolver) Resolve(ctx context.Context, user, repo, branch string) []Manifest {
	data, err := r.fetcher.FetchManifest(ctx, user, repo, branch)
	if err != nil {
		logger.LogError("FETCH_MANIFEST", fmt.Sprintf("%s/%s@%s", user, repo, branch), err)
		return nil
	}

	manifests, err := Parse(data)
	if err != nil {
		logger.LogError("PARSE_MANIFEST", fmt.Sprintf("%s/%s@%s", user, repo, branch), err)
		return nil
	}
	return manifests
}

// Entries resolves a search candidate into catalog entries of the given kind.
func (r *Resolver) Entries(ctx context.Context, kind domain.Kind, candidate domain.Candidate) []domain.CatalogEntry {
	user, repo, err := common.ParseContentsURL(candidate.ContentsURL)
	if err != nil {
		user, repo, err = common.ParseFullName(candidate.FullName)
	}
	if err != nil {
		if candidate.Owner == "" || candidate.Name == "" {
			logger.LogError("RESOLVE_CANDIDATE", candidate.FullName, err)
			return nil
		}
		user, repo = candidate.Owner, candidate.Name
	}

	manifests := r.Resolve(ctx, user, repo, candidate.DefaultBranch)
	if manifests == nil {
		return nil
	}

	ref := domain.RepoRef{User: user, Repo: repo, Branch: candidate.DefaultBranch}
	return r.Build(kind, manifests, ref, candidate.Stars)
}

// Build converts manifests into entries, dropping the ones invalid for kind.
func (r *Resolver) Build(kind domain.Kind, manifests []Manifest, ref domain.RepoRef, stars int) []domain.CatalogEntry {
	entries := make([]domain.CatalogEntry, 0, len(manifests))
	for _, m := range manifests {
		if !m.Valid(kind) {
			logger.Log("Manifest: dropping invalid %s manifest %q in %s", kind, m.Name, ref.FullName())
			continue
		}
		entries = append(entries, r.entry(kind, m, ref, stars))
	}
	return entries
}

func (r *Resolver) entry(kind domain.Kind, m Manifest, ref domain.RepoRef, stars int) domain.CatalogEntry {
	branch := ref.Branch
	if m.Branch != "" {
		branch = m.Branch
	}
	resolve := func(path string) string {
		if path == "" {
			return ""
		}
		if strings.HasPrefix(path, "http") {
			return path
		}
		return r.fetcher.URL(ref.User, ref.Repo, branch, path)
	}

	entry := domain.CatalogEntry{
		Kind:       kind,
		Title:      m.Name,
		Subtitle:   m.Description,
		Authors:    authorsOrOwner(m.Authors, ref.User),
		Repository: domain.RepoRef{User: ref.User, Repo: ref.Repo, Branch: branch},
		ImageURL:   resolve(m.Preview),
		ReadmeURL:  resolve(m.Readme),
		Stars:      stars,
		Manifest:   m.Raw,
	}

	switch kind {
	case domain.KindExtension:
		entry.ContentURL = resolve(m.Main)
	case domain.KindTheme:
		entry.StylesheetURL = resolve(m.UserCSS)
		if m.Schemes != nil {
			schemes := resolve(*m.Schemes)
			entry.SchemesURL = &schemes
		}
		if m.Include != nil {
			entry.Include = append([]string(nil), m.Include...)
		}
	}

	return entry
}

func authorsOrOwner(authors []domain.Author, user string) []domain.Author {
	if len(authors) > 0 {
		return append([]domain.Author(nil), authors...)
	}
	return []domain.Author{{Name: user, URL: "https://github.com/" + user}}
}
