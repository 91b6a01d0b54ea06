package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/Mythicsoul/spicetify-marketplace/internal/domain"
	"github.com/Mythicsoul/spicetify-marketplace/internal/logger"
)

const (
	configDir  = ".spicetify-marketplace"
	configFile = "config.json"
)

var errCorruptConfig = errors.New("corrupt state file")

type LocalRepository struct {
	configPath string
	config     *Config
	mu         sync.RWMutex
}

// NewLocalRepository opens the state file in the user's home directory.
func NewLocalRepository() (*LocalRepository, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	return NewLocalRepositoryAt(filepath.Join(homeDir, configDir, configFile))
}

func NewLocalRepositoryAt(configPath string) (*LocalRepository, error) {
	repo := &LocalRepository{
		configPath: configPath,
		config:     defaultConfig(),
	}

	if err := repo.ensureConfigDir(); err != nil {
		return nil, err
	}

	rewrite := false
	if err := repo.load(); err != nil {
		switch {
		case os.IsNotExist(err):
		case errors.Is(err, errCorruptConfig):
			repo.quarantine()
			rewrite = true
		default:
			return nil, err
		}
	}

	if repo.repair() || rewrite {
		repo.mu.Lock()
		err := repo.save()
		repo.mu.Unlock()
		if err != nil {
			return nil, err
		}
	}

	return repo, nil
}

func (r *LocalRepository) Path() string {
	return r.configPath
}

func (r *LocalRepository) ensureConfigDir() error {
	dir := filepath.Dir(r.configPath)
	return os.MkdirAll(dir, 0700)
}

// quarantine moves an unreadable state file aside so the defaults written in
// its place do not destroy it.
func (r *LocalRepository) quarantine() {
	backup := r.configPath + ".corrupt"
	if err := os.Rename(r.configPath, backup); err != nil {
		logger.LogError("QUARANTINE", r.configPath, err)
		return
	}
	logger.Log("Config at %s was unreadable, moved to %s and reset to defaults", r.configPath, backup)
}

func (r *LocalRepository) load() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	logger.LogFileOpen(r.configPath)
	data, err := os.ReadFile(r.configPath)
	if err != nil {
		logger.LogError("LOAD", r.configPath, err)
		return err
	}

	if err := json.Unmarshal(data, r.config); err != nil {
		logger.LogError("UNMARSHAL", r.configPath, err)
		r.config = defaultConfig()
		return fmt.Errorf("%w: %v", errCorruptConfig, err)
	}

	logger.Log("Config loaded successfully from %s", r.configPath)
	return nil
}

// repair replaces persisted values that no longer make sense with defaults. It
// reports whether anything changed.
func (r *LocalRepository) repair() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	changed := false
	if !validTabs(r.config.Tabs) {
		logger.Log("Config: invalid tab list %v, resetting to defaults", r.config.Tabs)
		r.config.Tabs = defaultTabs()
		changed = true
	}
	if active := r.resolveActiveTab(); active != r.config.ActiveTab {
		logger.Log("Config: active tab %q unavailable, falling back to %s", r.config.ActiveTab, active)
		r.config.ActiveTab = active
		changed = true
	}
	if _, ok := domain.ParseSortOrder(string(r.config.SortBy)); !ok {
		r.config.SortBy = domain.SortTop
		changed = true
	}
	if r.config.Installed == nil {
		r.config.Installed = map[domain.Kind][]string{}
		changed = true
	}
	if r.config.Items == nil {
		r.config.Items = map[string]domain.CatalogEntry{}
		changed = true
	}
	return changed
}

// resolveActiveTab returns the persisted active tab when it is enabled,
// otherwise the first enabled tab, otherwise the first tab.
func (r *LocalRepository) resolveActiveTab() domain.Tab {
	for _, tab := range r.config.Tabs {
		if tab.Name == r.config.ActiveTab && tab.Enabled {
			return tab.Name
		}
	}
	for _, tab := range r.config.Tabs {
		if tab.Enabled {
			return tab.Name
		}
	}
	return r.config.Tabs[0].Name
}

func (r *LocalRepository) save() error {
	data, err := json.MarshalIndent(r.config, "", "  ")
	if err != nil {
		logger.LogError("MARSHAL", r.configPath, err)
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	logger.LogFileWrite(r.configPath)
	if err := os.WriteFile(r.configPath, data, 0600); err != nil {
		logger.LogError("SAVE", r.configPath, err)
		return err
	}

	logger.Log("Config saved successfully to %s", r.configPath)
	return nil
}

func (r *LocalRepository) ListInstalled(kind domain.Kind) ([]domain.CatalogEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := r.config.Installed[kind]
	entries := make([]domain.CatalogEntry, 0, len(keys))
	for _, key := range keys {
		entry, ok := r.config.Items[key]
		if !ok {
			logger.LogError("LIST_INSTALLED", key, fmt.Errorf("installed item has no stored entry"))
			continue
		}
		entries = append(entries, entry)
	}

	logger.Log("Listing installed %ss: found %d", kind, len(entries))
	return entries, nil
}

func (r *LocalRepository) IsInstalled(key string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.config.Items[key]
	return ok
}

func (r *LocalRepository) Install(entry domain.CatalogEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := entry.Key()
	if _, ok := r.config.Items[key]; ok {
		logger.Log("Updating installed %s: %s", entry.Kind, key)
	} else {
		r.config.Installed[entry.Kind] = append(r.config.Installed[entry.Kind], key)
		logger.Log("Installing %s: %s", entry.Kind, key)
	}
	r.config.Items[key] = entry

	return r.save()
}

func (r *LocalRepository) Uninstall(key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.config.Items[key]
	if !ok {
		logger.LogError("UNINSTALL", key, fmt.Errorf("item not installed"))
		return fmt.Errorf("item not installed: %s", key)
	}

	delete(r.config.Items, key)
	r.config.Installed[entry.Kind] = slices.DeleteFunc(r.config.Installed[entry.Kind], func(k string) bool {
		return k == key
	})
	logger.Log("Uninstalled %s: %s", entry.Kind, key)

	return r.save()
}

func (r *LocalRepository) GetTabs() []domain.TabConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.config.Tabs)
}

func (r *LocalRepository) SetTabs(tabs []domain.TabConfig) error {
	if !validTabs(tabs) {
		logger.LogError("SET_TABS", fmt.Sprintf("%v", tabs), fmt.Errorf("invalid tab list"))
		return fmt.Errorf("invalid tab list: every tab must appear exactly once")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.config.Tabs = slices.Clone(tabs)
	r.config.ActiveTab = r.resolveActiveTab()
	return r.save()
}

func (r *LocalRepository) GetActiveTab() domain.Tab {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.config.ActiveTab
}

func (r *LocalRepository) SetActiveTab(tab domain.Tab) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range r.config.Tabs {
		if t.Name == tab && t.Enabled {
			logger.Log("Setting active tab: %s", tab)
			r.config.ActiveTab = tab
			return r.save()
		}
	}

	logger.LogError("SET_ACTIVE_TAB", string(tab), fmt.Errorf("tab not enabled"))
	return fmt.Errorf("tab not enabled: %s", tab)
}

func (r *LocalRepository) GetSortBy() domain.SortOrder {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.config.SortBy
}

func (r *LocalRepository) SetSortBy(sort domain.SortOrder) error {
	if _, ok := domain.ParseSortOrder(string(sort)); !ok {
		return fmt.Errorf("unknown sort order: %s", sort)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.config.SortBy = sort
	return r.save()
}

func (r *LocalRepository) GetVisual() domain.VisualConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.config.Visual
}

func (r *LocalRepository) SetVisual(visual domain.VisualConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.config.Visual = visual
	return r.save()
}
