// Package blacklist holds the process-wide set of denylisted repository URLs.
package blacklist

import (
	"context"
	"strings"
	"sync"

	"github.com/Mythicsoul/spicetify-marketplace/internal/logger"
)

// Loader fetches a JSON document into v.
type Loader interface {
	GetJSON(ctx context.Context, url string, v any) error
}

type document struct {
	Repos []string `json:"repos"`
}

// Blacklist is loaded once and read-only afterwards. A failed load leaves it
// empty so browsing keeps working.
type Blacklist struct {
	once  sync.Once
	mu    sync.RWMutex
	repos map[string]struct{}
}

func New(repos ...string) *Blacklist {
	b := &Blacklist{repos: make(map[string]struct{}, len(repos))}
	for _, r := range repos {
		b.repos[normalize(r)] = struct{}{}
	}
	return b
}

// Load fetches the denylist from url. Only the first call does any work.
func (b *Blacklist) Load(ctx context.Context, loader Loader, url string) {
	b.once.Do(func() {
		var doc document
		if err := loader.GetJSON(ctx, url, &doc); err != nil {
			logger.LogError("LOAD_BLACKLIST", url, err)
			return
		}

		repos := make(map[string]struct{}, len(doc.Repos))
		for _, r := range doc.Repos {
			if r == "" {
				continue
			}
			repos[normalize(r)] = struct{}{}
		}

		b.mu.Lock()
		for r := range b.repos {
			repos[r] = struct{}{}
		}
		b.repos = repos
		b.mu.Unlock()

		logger.Log("Blacklist: loaded %d repositories", len(repos))
	})
}

func (b *Blacklist) Contains(repoURL string) bool {
	if repoURL == "" {
		return false
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.repos[normalize(repoURL)]
	return ok
}

func (b *Blacklist) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.repos)
}

func normalize(repoURL string) string {
	return strings.TrimSuffix(strings.TrimSpace(repoURL), "/")
}
