// Package local serves the Installed tab from persisted state.
package local

import (
	"context"

	"github.com/Mythicsoul/spicetify-marketplace/internal/domain"
	"github.com/Mythicsoul/spicetify-marketplace/internal/logger"
)

// Lister is the part of the persisted state the Installed tab reads.
type Lister interface {
	ListInstalled(kind domain.Kind) ([]domain.CatalogEntry, error)
}

var installedOrder = []domain.Kind{domain.KindSnippet, domain.KindExtension, domain.KindTheme}

type InstalledSource struct {
	repo Lister
}

func NewInstalledSource(repo Lister) *InstalledSource {
	return &InstalledSource{repo: repo}
}

func (s *InstalledSource) Tab() domain.Tab {
	return domain.TabInstalled
}

// FetchAll lists installed snippets, then extensions, then themes. A kind
// that cannot be read is skipped.
func (s *InstalledSource) FetchAll(ctx context.Context) []domain.CatalogEntry {
	var entries []domain.CatalogEntry
	for _, kind := range installedOrder {
		if ctx.Err() != nil {
			return entries
		}
		items, err := s.repo.ListInstalled(kind)
		if err != nil {
			logger.LogError("LIST_INSTALLED", string(kind), err)
			continue
		}
		entries = append(entries, items...)
	}
	return entries
}
