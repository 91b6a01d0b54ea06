package storage

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/Mythicsoul/spicetify-marketplace/internal/domain"
)

func TestInvalidTabsAreRepaired(t *testing.T) {
	tests := []struct {
		name string
		tabs []domain.TabConfig
	}{
		{name: "missing tab", tabs: []domain.TabConfig{
			{Name: domain.TabExtensions, Enabled: true},
			{Name: domain.TabThemes, Enabled: true},
		}},
		{name: "unknown tab", tabs: []domain.TabConfig{
			{Name: domain.TabExtensions, Enabled: true},
			{Name: domain.TabThemes, Enabled: true},
			{Name: domain.TabSnippets, Enabled: true},
			{Name: "Apps", Enabled: true},
		}},
		{name: "duplicate tab", tabs: []domain.TabConfig{
			{Name: domain.TabExtensions, Enabled: true},
			{Name: domain.TabExtensions, Enabled: true},
			{Name: domain.TabSnippets, Enabled: true},
			{Name: domain.TabInstalled, Enabled: true},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			home := setHome(t)
			configPath := writeConfig(t, home, Config{Tabs: tt.tabs, ActiveTab: domain.TabThemes, SortBy: domain.SortBest})

			repo, err := NewLocalRepository()
			if err != nil {
				t.Fatalf("Failed to create repository: %v", err)
			}

			tabs := repo.GetTabs()
			if len(tabs) != len(domain.AllTabs) {
				t.Fatalf("Expected default tabs, got %v", tabs)
			}
			for i, tab := range tabs {
				if tab.Name != domain.AllTabs[i] || !tab.Enabled {
					t.Errorf("Tab %d = %+v, want enabled %s", i, tab, domain.AllTabs[i])
				}
			}
			if repo.GetSortBy() != domain.SortBest {
				t.Errorf("Sort should survive tab repair, got %s", repo.GetSortBy())
			}

			data, _ := os.ReadFile(configPath)
			var saved Config
			json.Unmarshal(data, &saved)
			if !validTabs(saved.Tabs) {
				t.Error("Repair was not saved to disk")
			}
		})
	}
}

func TestActiveTabFallback(t *testing.T) {
	home := setHome(t)
	writeConfig(t, home, Config{
		Tabs: []domain.TabConfig{
			{Name: domain.TabExtensions, Enabled: false},
			{Name: domain.TabThemes, Enabled: true},
			{Name: domain.TabSnippets, Enabled: true},
			{Name: domain.TabInstalled, Enabled: true},
		},
		ActiveTab: domain.TabExtensions,
		SortBy:    "bogus",
	})

	repo, err := NewLocalRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}

	if repo.GetActiveTab() != domain.TabThemes {
		t.Errorf("Expected fallback to Themes, got %s", repo.GetActiveTab())
	}
	if repo.GetSortBy() != domain.SortTop {
		t.Errorf("Expected sort reset to top, got %s", repo.GetSortBy())
	}

	if err := repo.SetActiveTab(domain.TabExtensions); err == nil {
		t.Error("Expected error activating a disabled tab")
	}
	if err := repo.SetActiveTab(domain.TabSnippets); err != nil {
		t.Fatalf("Failed to set active tab: %v", err)
	}
	if repo.GetActiveTab() != domain.TabSnippets {
		t.Errorf("Expected Snippets, got %s", repo.GetActiveTab())
	}
}

func TestSetTabs(t *testing.T) {
	setHome(t)

	repo, err := NewLocalRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}

	if err := repo.SetTabs([]domain.TabConfig{{Name: domain.TabThemes, Enabled: true}}); err == nil {
		t.Error("Expected error for an incomplete tab list")
	}

	tabs := []domain.TabConfig{
		{Name: domain.TabInstalled, Enabled: true},
		{Name: domain.TabThemes, Enabled: true},
		{Name: domain.TabSnippets, Enabled: false},
		{Name: domain.TabExtensions, Enabled: false},
	}
	if err := repo.SetTabs(tabs); err != nil {
		t.Fatalf("Failed to set tabs: %v", err)
	}

	if got := repo.GetTabs(); got[0].Name != domain.TabInstalled {
		t.Errorf("Expected reordered tabs, got %v", got)
	}
	if repo.GetActiveTab() != domain.TabInstalled {
		t.Errorf("Disabling the active tab should move to the first enabled one, got %s", repo.GetActiveTab())
	}
}
