package storage

import "github.com/Mythicsoul/spicetify-marketplace/internal/domain"

// Config is the persisted marketplace state. Installed keeps the install
// order of item keys per kind; Items holds the entry recorded at install time.
type Config struct {
	Tabs      []domain.TabConfig             `json:"tabs"`
	ActiveTab domain.Tab                     `json:"active_tab"`
	SortBy    domain.SortOrder               `json:"sort_by"`
	Visual    domain.VisualConfig            `json:"visual"`
	Installed map[domain.Kind][]string       `json:"installed"`
	Items     map[string]domain.CatalogEntry `json:"items"`
}

func defaultTabs() []domain.TabConfig {
	tabs := make([]domain.TabConfig, 0, len(domain.AllTabs))
	for _, tab := range domain.AllTabs {
		tabs = append(tabs, domain.TabConfig{Name: tab, Enabled: true})
	}
	return tabs
}

func defaultConfig() *Config {
	return &Config{
		Tabs:      defaultTabs(),
		ActiveTab: domain.TabExtensions,
		SortBy:    domain.SortTop,
		Visual:    domain.VisualConfig{Stars: true},
		Installed: map[domain.Kind][]string{},
		Items:     map[string]domain.CatalogEntry{},
	}
}

// validTabs reports whether tabs names every known tab exactly once.
func validTabs(tabs []domain.TabConfig) bool {
	if len(tabs) != len(domain.AllTabs) {
		return false
	}
	seen := make(map[domain.Tab]bool, len(tabs))
	for _, tab := range tabs {
		if seen[tab.Name] {
			return false
		}
		seen[tab.Name] = true
	}
	for _, tab := range domain.AllTabs {
		if !seen[tab] {
			return false
		}
	}
	return true
}
